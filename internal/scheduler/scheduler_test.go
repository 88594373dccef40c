package scheduler_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"switchyard.app/platform/internal/model"
	"switchyard.app/platform/internal/scheduler"
)

func strPtr(s string) *string { return &s }

// Wednesday 16:00 UTC: noon in New York, 09:00 in Los Angeles, 06:00 in Honolulu.
var now = time.Date(2026, 10, 14, 16, 0, 0, 0, time.UTC)

func businessHours() *model.Campaign {
	return &model.Campaign{
		ID:                   1,
		WindowStartMinute:    9 * 60,
		WindowEndMinute:      17 * 60,
		CallDays:             []int32{1, 2, 3, 4, 5},
		MaxAttempts:          3,
		RetryIntervalMinutes: 60,
		MaxConcurrent:        2,
	}
}

var _ = Describe("ResolveTimezone", func() {
	It("prefers an explicit IANA zone", func() {
		c := &model.Contact{Timezone: strPtr("Europe/Berlin"), State: strPtr("CA")}
		Expect(scheduler.ResolveTimezone(c, nil).String()).To(Equal("Europe/Berlin"))
	})

	It("ignores invalid zones and falls back to the state", func() {
		c := &model.Contact{Timezone: strPtr("Mars/Olympus"), State: strPtr("ca")}
		Expect(scheduler.ResolveTimezone(c, nil).String()).To(Equal("America/Los_Angeles"))
	})

	It("accepts full state names", func() {
		c := &model.Contact{State: strPtr("British Columbia")}
		Expect(scheduler.ResolveTimezone(c, nil).String()).To(Equal("America/Vancouver"))
	})

	It("uses the phone area code", func() {
		c := &model.Contact{Phone: strPtr("+13125550100")}
		Expect(scheduler.ResolveTimezone(c, nil).String()).To(Equal("America/Chicago"))
	})

	It("falls back for international numbers", func() {
		c := &model.Contact{Phone: strPtr("+442079460958")}
		Expect(scheduler.ResolveTimezone(c, nil)).To(Equal(time.UTC))
	})
})

var _ = Describe("InWindow", func() {
	It("compares against local time", func() {
		c := businessHours()
		ny, _ := time.LoadLocation("America/New_York")
		la, _ := time.LoadLocation("America/Los_Angeles")
		hi, _ := time.LoadLocation("Pacific/Honolulu")
		Expect(scheduler.InWindow(c, now, ny)).To(BeTrue())
		Expect(scheduler.InWindow(c, now, la)).To(BeTrue())
		Expect(scheduler.InWindow(c, now, hi)).To(BeFalse())
	})

	It("treats the end minute as exclusive", func() {
		c := businessHours()
		Expect(scheduler.InWindow(c, time.Date(2026, 10, 14, 17, 0, 0, 0, time.UTC), time.UTC)).To(BeFalse())
		Expect(scheduler.InWindow(c, time.Date(2026, 10, 14, 9, 0, 0, 0, time.UTC), time.UTC)).To(BeTrue())
	})

	It("honours allowed weekdays", func() {
		c := businessHours()
		saturday := time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)
		Expect(scheduler.InWindow(c, saturday, time.UTC)).To(BeFalse())
		c.CallDays = nil
		Expect(scheduler.InWindow(c, saturday, time.UTC)).To(BeTrue())
	})

	It("wraps windows past midnight", func() {
		c := &model.Campaign{WindowStartMinute: 22 * 60, WindowEndMinute: 2 * 60}
		Expect(scheduler.InWindow(c, time.Date(2026, 10, 14, 23, 30, 0, 0, time.UTC), time.UTC)).To(BeTrue())
		Expect(scheduler.InWindow(c, time.Date(2026, 10, 14, 1, 0, 0, 0, time.UTC), time.UTC)).To(BeTrue())
		Expect(scheduler.InWindow(c, time.Date(2026, 10, 14, 12, 0, 0, 0, time.UTC), time.UTC)).To(BeFalse())
	})
})

var _ = Describe("Build", func() {
	candidate := func(id int64, c *model.Contact) scheduler.Candidate {
		return scheduler.Candidate{Enrollment: model.CampaignContact{ID: id}, Contact: c}
	}

	It("dispatches callable contacts up to the free slots", func() {
		c := businessHours()
		plan := scheduler.Build(c, []scheduler.Candidate{
			candidate(1, &model.Contact{Phone: strPtr("+12125550100")}),
			candidate(2, &model.Contact{Phone: strPtr("+18085550100")}),
			candidate(3, &model.Contact{Phone: strPtr("+12125550101"), DoNotCall: true}),
			candidate(4, &model.Contact{}),
			candidate(5, &model.Contact{Phone: strPtr("+14155550100")}),
			candidate(6, &model.Contact{Phone: strPtr("+16175550100")}),
			candidate(7, nil),
		}, scheduler.FreeSlots(c, 0), now)

		ids := []int64{}
		for _, d := range plan.Dispatch {
			ids = append(ids, d.Enrollment.ID)
		}
		Expect(ids).To(Equal([]int64{1, 5}))
		Expect(plan.Deferred).To(Equal(1))

		reasons := map[int64]scheduler.SkipReason{}
		for _, s := range plan.Skip {
			reasons[s.Enrollment.ID] = s.Reason
		}
		Expect(reasons).To(Equal(map[int64]scheduler.SkipReason{
			3: scheduler.SkipDoNotCall,
			4: scheduler.SkipNoPhone,
			7: scheduler.SkipContactMissing,
		}))
	})

	It("dispatches nothing without free slots", func() {
		c := businessHours()
		Expect(scheduler.FreeSlots(c, 5)).To(BeZero())
		plan := scheduler.Build(c, []scheduler.Candidate{candidate(1, &model.Contact{Phone: strPtr("+12125550100")})}, 0, now)
		Expect(plan.Dispatch).To(BeEmpty())
	})
})

var _ = Describe("AfterCall", func() {
	It("completes answered calls", func() {
		next := scheduler.AfterCall(businessHours(), 1, model.CallStatusCompleted, now)
		Expect(next.Status).To(Equal(model.CampaignContactStatusCompleted))
		Expect(next.NextAttemptAt).To(BeNil())
	})

	It("reschedules retryable outcomes", func() {
		next := scheduler.AfterCall(businessHours(), 1, model.CallStatusNoAnswer, now)
		Expect(next.Status).To(Equal(model.CampaignContactStatusPending))
		Expect(*next.NextAttemptAt).To(Equal(now.Add(time.Hour)))
	})

	It("fails once attempts are exhausted", func() {
		next := scheduler.AfterCall(businessHours(), 3, model.CallStatusBusy, now)
		Expect(next.Status).To(Equal(model.CampaignContactStatusFailed))
		Expect(scheduler.AfterDispatchFailure(businessHours(), 3, now).Status).To(Equal(model.CampaignContactStatusFailed))
	})
})
