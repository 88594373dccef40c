package billing_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/shopspring/decimal"

	"switchyard.app/platform/internal/billing"
	"switchyard.app/platform/internal/model"
)

var _ = Describe("Catalog", func() {
	It("loads the embedded plans", func() {
		catalog, err := billing.DefaultCatalog()
		Expect(err).NotTo(HaveOccurred())
		Expect(catalog.List()).To(HaveLen(3))

		growth, err := catalog.Get("growth")
		Expect(err).NotTo(HaveOccurred())
		Expect(growth.MonthlyPriceCents).To(Equal(int64(14900)))
		Expect(growth.OverageCentsPerMinute().String()).To(Equal("7.5"))

		_, err = catalog.Get(catalog.DefaultPlan)
		Expect(err).NotTo(HaveOccurred())
	})

	It("rejects unknown plans", func() {
		catalog, _ := billing.DefaultCatalog()
		_, err := catalog.Get("enterprise")
		Expect(err).To(MatchError(billing.ErrUnknownPlan))
	})

	It("rejects malformed catalogs", func() {
		_, err := billing.ParseCatalog([]byte("default_plan: a\nplans:\n  - code: a\n    overage_cents_per_minute: abc\n"))
		Expect(err).To(HaveOccurred())

		_, err = billing.ParseCatalog([]byte("default_plan: b\nplans:\n  - code: a\n    overage_cents_per_minute: \"1\"\n"))
		Expect(err).To(MatchError(ContainSubstring("default plan")))
	})
})

var _ = Describe("CalculateQuote", func() {
	var growth billing.Plan

	BeforeEach(func() {
		catalog, err := billing.DefaultCatalog()
		Expect(err).NotTo(HaveOccurred())
		growth, err = catalog.Get("growth")
		Expect(err).NotTo(HaveOccurred())
	})

	It("prices a monthly plan with extra seats and overage", func() {
		q, err := billing.CalculateQuote(billing.QuoteRequest{
			Plan:             growth,
			Seats:            7,
			EstimatedMinutes: 2501,
			Interval:         model.BillingIntervalMonthly,
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(q.BaseCents).To(Equal(int64(14900)))
		Expect(q.ExtraSeats).To(Equal(int32(2)))
		Expect(q.SeatCents).To(Equal(int64(5800)))
		Expect(q.EstimatedOverageMinutes).To(Equal(int32(1)))
		// 7.5 cents rounds half-up to 8.
		Expect(q.EstimatedOverageCents).To(Equal(int64(8)))
		Expect(q.TotalCents).To(Equal(int64(14900 + 5800 + 8)))
	})

	It("charges ten months for annual and discounts only the recurring part", func() {
		q, err := billing.CalculateQuote(billing.QuoteRequest{
			Plan:             growth,
			Seats:            5,
			EstimatedMinutes: 2600,
			Interval:         model.BillingIntervalAnnual,
			DiscountPercent:  decimal.NewFromFloat(12.5),
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(q.BaseCents).To(Equal(int64(149000)))
		Expect(q.SeatCents).To(BeZero())
		Expect(q.DiscountCents).To(Equal(int64(18625)))
		Expect(q.RecurringCents).To(Equal(int64(130375)))
		Expect(q.EstimatedOverageCents).To(Equal(int64(750)))
		Expect(q.TotalCents).To(Equal(int64(131125)))
	})

	It("keeps the discount and recurring charge summing to the list price", func() {
		plan := billing.Plan{Code: "odd", MonthlyPriceCents: 125, IncludedSeats: 1}
		q, err := billing.CalculateQuote(billing.QuoteRequest{
			Plan:            plan,
			Seats:           1,
			DiscountPercent: decimal.NewFromInt(10),
		})
		Expect(err).NotTo(HaveOccurred())
		// 12.5 cents of discount rounds half-up to 13.
		Expect(q.DiscountCents).To(Equal(int64(13)))
		Expect(q.RecurringCents).To(Equal(int64(112)))
		Expect(q.DiscountCents + q.RecurringCents).To(Equal(q.BaseCents + q.SeatCents))
		Expect(q.TotalCents).To(Equal(int64(112)))
	})

	It("defaults to monthly", func() {
		q, err := billing.CalculateQuote(billing.QuoteRequest{Plan: growth, Seats: 1})
		Expect(err).NotTo(HaveOccurred())
		Expect(q.Interval).To(Equal(model.BillingIntervalMonthly))
		Expect(q.TotalCents).To(Equal(int64(14900)))
	})

	DescribeTable("rejects invalid input",
		func(req billing.QuoteRequest) {
			req.Plan = growth
			_, err := billing.CalculateQuote(req)
			Expect(err).To(MatchError(billing.ErrInvalidQuote))
		},
		Entry("no seats", billing.QuoteRequest{Seats: 0}),
		Entry("negative minutes", billing.QuoteRequest{Seats: 1, EstimatedMinutes: -1}),
		Entry("discount above 100", billing.QuoteRequest{Seats: 1, DiscountPercent: decimal.NewFromInt(101)}),
		Entry("unknown interval", billing.QuoteRequest{Seats: 1, Interval: "weekly"}),
	)
})

var _ = Describe("ComputeCycle", func() {
	var (
		starter billing.Plan
		start   = time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC)
		end     = time.Date(2026, 10, 14, 0, 0, 0, 0, time.UTC)
	)

	BeforeEach(func() {
		catalog, _ := billing.DefaultCatalog()
		starter, _ = catalog.Get("starter")
	})

	sub := func(status model.SubscriptionStatus) *model.Subscription {
		return &model.Subscription{
			ID:                 42,
			OrganizationID:     7,
			PlanCode:           "starter",
			Status:             status,
			Seats:              3,
			MinutesUsed:        620,
			CurrentPeriodStart: start,
			CurrentPeriodEnd:   end,
		}
	}

	It("activates trials without an invoice", func() {
		res := billing.ComputeCycle(sub(model.SubscriptionStatusTrialing), starter)
		Expect(res.Action).To(Equal(billing.CycleActivate))
		Expect(res.Status).To(Equal(model.SubscriptionStatusActive))
		Expect(res.Invoice).To(BeNil())
		Expect(res.PeriodStart).To(Equal(end))
		Expect(res.PeriodEnd).To(Equal(time.Date(2026, 11, 14, 0, 0, 0, 0, time.UTC)))
	})

	It("invoices and renews active subscriptions", func() {
		res := billing.ComputeCycle(sub(model.SubscriptionStatusActive), starter)
		Expect(res.Action).To(Equal(billing.CycleRenew))
		Expect(res.Status).To(Equal(model.SubscriptionStatusActive))
		Expect(res.PeriodStart).To(Equal(end))

		inv := res.Invoice
		Expect(inv).NotTo(BeNil())
		Expect(inv.IdempotencyKey).To(Equal(billing.InvoiceKey(42, end)))
		Expect(inv.IdempotencyKey).To(Equal("cycle:42:1791936000"))
		Expect(inv.SeatCents).To(Equal(int64(1900)))
		Expect(inv.OverageMinutes).To(Equal(int32(120)))
		Expect(inv.OverageCents).To(Equal(int64(1080)))
		Expect(inv.TotalCents).To(Equal(int64(4900 + 1900 + 1080)))
		Expect(inv.PeriodEnd).To(Equal(end))
	})

	It("keeps past due status when renewing", func() {
		res := billing.ComputeCycle(sub(model.SubscriptionStatusPastDue), starter)
		Expect(res.Status).To(Equal(model.SubscriptionStatusPastDue))
		Expect(res.Invoice).NotTo(BeNil())
	})

	It("cancels at period end after the final invoice", func() {
		s := sub(model.SubscriptionStatusActive)
		s.CancelAtPeriodEnd = true
		res := billing.ComputeCycle(s, starter)
		Expect(res.Action).To(Equal(billing.CycleCancel))
		Expect(res.Status).To(Equal(model.SubscriptionStatusCanceled))
		Expect(res.Invoice).NotTo(BeNil())
		Expect(res.PeriodEnd).To(Equal(end))
	})

	It("keeps the month-end billing day through short months", func() {
		s := sub(model.SubscriptionStatusActive)
		s.CurrentPeriodStart = time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC)
		s.CurrentPeriodEnd = time.Date(2027, 1, 31, 0, 0, 0, 0, time.UTC)

		res := billing.ComputeCycle(s, starter)
		Expect(res.PeriodStart).To(Equal(s.CurrentPeriodEnd))
		Expect(res.PeriodEnd).To(Equal(time.Date(2027, 2, 28, 0, 0, 0, 0, time.UTC)))

		s.CurrentPeriodStart, s.CurrentPeriodEnd = res.PeriodStart, res.PeriodEnd
		res = billing.ComputeCycle(s, starter)
		Expect(res.PeriodEnd).To(Equal(time.Date(2027, 3, 31, 0, 0, 0, 0, time.UTC)))

		s.CurrentPeriodStart, s.CurrentPeriodEnd = res.PeriodStart, res.PeriodEnd
		res = billing.ComputeCycle(s, starter)
		Expect(res.PeriodEnd).To(Equal(time.Date(2027, 4, 30, 0, 0, 0, 0, time.UTC)))
	})

	It("activates a trial ending on the 31st into the last day of the next month", func() {
		s := sub(model.SubscriptionStatusTrialing)
		s.CurrentPeriodStart = time.Date(2027, 1, 17, 0, 0, 0, 0, time.UTC)
		s.CurrentPeriodEnd = time.Date(2027, 1, 31, 0, 0, 0, 0, time.UTC)

		res := billing.ComputeCycle(s, starter)
		Expect(res.PeriodEnd).To(Equal(time.Date(2027, 2, 28, 0, 0, 0, 0, time.UTC)))
	})

	DescribeTable("NextPeriodEnd",
		func(start time.Time, anchor int, want time.Time) {
			Expect(billing.NextPeriodEnd(start, anchor)).To(Equal(want))
		},
		Entry("mid month", time.Date(2026, 10, 14, 9, 30, 0, 0, time.UTC), 14, time.Date(2026, 11, 14, 9, 30, 0, 0, time.UTC)),
		Entry("leap february", time.Date(2028, 1, 31, 0, 0, 0, 0, time.UTC), 31, time.Date(2028, 2, 29, 0, 0, 0, 0, time.UTC)),
		Entry("restores the anchor", time.Date(2027, 2, 28, 0, 0, 0, 0, time.UTC), 30, time.Date(2027, 3, 30, 0, 0, 0, 0, time.UTC)),
		Entry("year rollover", time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC), 31, time.Date(2027, 1, 31, 0, 0, 0, 0, time.UTC)),
	)

	It("cancels trials without charging", func() {
		s := sub(model.SubscriptionStatusTrialing)
		s.CancelAtPeriodEnd = true
		res := billing.ComputeCycle(s, starter)
		Expect(res.Action).To(Equal(billing.CycleCancel))
		Expect(res.Invoice).To(BeNil())
	})
})
