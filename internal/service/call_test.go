package service_test

import (
	"context"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"switchyard.app/platform/internal/calltoken"
	"switchyard.app/platform/internal/integration/voice"
	"switchyard.app/platform/internal/model"
	"switchyard.app/platform/internal/queue"
	"switchyard.app/platform/internal/service"
)

var _ = Describe("CallService", func() {
	var (
		svc         service.CallService
		calls       *mockCallRecordStore
		enrollments *mockEnrollmentStore
		subs        *mockSubscriptionStore
		producer    *mockProducer
		triggers    *mockTriggers
		signer      *calltoken.Signer
		minutes     []int32
		ctx         context.Context
	)

	const enrollmentID = int64(300)

	BeforeEach(func() {
		ctx = context.Background()
		minutes = nil
		calls = &mockCallRecordStore{records: map[int64]*model.CallRecord{
			1: {
				ID:                1,
				OrganizationID:    7,
				CampaignID:        int64Ptr(10),
				CampaignContactID: int64Ptr(enrollmentID),
				ContactID:         100,
				Provider:          model.VoiceProviderVapi,
				ProviderCallID:    strPtr("pc_1"),
				Status:            model.CallStatusInProgress,
			},
		}}
		enrollments = &mockEnrollmentStore{due: []model.CampaignContact{
			{ID: enrollmentID, CampaignID: 10, OrganizationID: 7, ContactID: 100, Attempts: 1, Status: model.CampaignContactStatusInProgress},
		}}
		subs = &mockSubscriptionStore{
			addMinutesFn: func(_ context.Context, _ int64, m int32) error {
				minutes = append(minutes, m)
				return nil
			},
		}
		campaigns := &mockCampaignStore{byID: map[int64]*model.Campaign{
			10: {ID: 10, OrganizationID: 7, MaxAttempts: 2, RetryIntervalMinutes: 30},
		}}
		producer = &mockProducer{}
		triggers = &mockTriggers{}
		signer = calltoken.NewSigner("test-secret", time.Hour)
		tx := &mockTxRunner{provider: &mockStoreProvider{
			calls:         calls,
			enrollments:   enrollments,
			subscriptions: subs,
		}}
		svc = service.NewCallService(calls, campaigns, tx, signer, nil, producer, triggers)
	})

	ended := func(status model.CallStatus, seconds int32) *voice.CallEvent {
		return &voice.CallEvent{
			Provider:        model.VoiceProviderVapi,
			Name:            "end-of-call-report",
			Kind:            voice.EventEnded,
			ProviderCallID:  "pc_1",
			Status:          status,
			DurationSeconds: seconds,
			Transcript:      "AI: Hi Ada",
		}
	}

	It("completes the call, settles the enrollment and books whole minutes", func() {
		Expect(svc.HandleEvent(ctx, ended(model.CallStatusCompleted, 61))).To(Succeed())

		Expect(calls.completed).To(HaveLen(1))
		Expect(calls.completed[0].Status).To(Equal(model.CallStatusCompleted))
		Expect(calls.completed[0].EndedAt).NotTo(BeNil())
		Expect(enrollments.outcomes[enrollmentID].status).To(Equal(model.CampaignContactStatusCompleted))
		Expect(minutes).To(Equal([]int32{2}))

		Expect(triggers.events).To(ConsistOf(emitted{orgID: 7, trigger: model.TriggerCallCompleted, subjectID: 1}))
		Expect(producer.tasks).To(HaveLen(1))
		Expect(producer.tasks[0].TaskType).To(Equal(queue.TaskTypeCallSummary))
	})

	It("reschedules an unanswered call with attempts left", func() {
		Expect(svc.HandleEvent(ctx, ended(model.CallStatusNoAnswer, 0))).To(Succeed())

		oc := enrollments.outcomes[enrollmentID]
		Expect(oc.status).To(Equal(model.CampaignContactStatusPending))
		Expect(oc.outcome).To(Equal(string(model.CallStatusNoAnswer)))
		Expect(oc.next).NotTo(BeNil())
		Expect(*oc.next).To(BeTemporally("~", time.Now().Add(30*time.Minute), time.Minute))
		Expect(minutes).To(BeEmpty())
	})

	It("fails the enrollment on the last attempt", func() {
		enrollments.due[0].Attempts = 2

		Expect(svc.HandleEvent(ctx, ended(model.CallStatusBusy, 5))).To(Succeed())

		oc := enrollments.outcomes[enrollmentID]
		Expect(oc.status).To(Equal(model.CampaignContactStatusFailed))
		Expect(oc.next).To(BeNil())
		Expect(minutes).To(Equal([]int32{1}))
	})

	It("resolves the call through its signed token", func() {
		token, err := signer.Sign(calltoken.Binding{OrganizationID: 7, CampaignID: 10, ContactID: 100, CallID: 1})
		Expect(err).NotTo(HaveOccurred())
		ev := ended(model.CallStatusCompleted, 120)
		ev.ProviderCallID = "pc_other"
		ev.CallToken = token

		Expect(svc.HandleEvent(ctx, ev)).To(Succeed())
		Expect(calls.completed).To(HaveLen(1))
		Expect(minutes).To(Equal([]int32{2}))
	})

	It("rejects a token bound to another organization", func() {
		token, err := signer.Sign(calltoken.Binding{OrganizationID: 8, CallID: 1})
		Expect(err).NotTo(HaveOccurred())
		ev := ended(model.CallStatusCompleted, 10)
		ev.CallToken = token

		Expect(svc.HandleEvent(ctx, ev)).To(MatchError(service.ErrCallNotFound))
	})

	It("reports events for unknown calls", func() {
		ev := ended(model.CallStatusCompleted, 10)
		ev.ProviderCallID = "pc_missing"

		Expect(svc.HandleEvent(ctx, ev)).To(MatchError(service.ErrCallNotFound))
	})

	It("marks a call in progress on a status event", func() {
		calls.records[1].Status = model.CallStatusQueued

		Expect(svc.HandleEvent(ctx, &voice.CallEvent{
			Provider:       model.VoiceProviderVapi,
			Kind:           voice.EventStatus,
			ProviderCallID: "pc_1",
			Status:         model.CallStatusInProgress,
		})).To(Succeed())
		Expect(calls.statuses).To(HaveKeyWithValue(int64(1), model.CallStatusInProgress))
		Expect(calls.completed).To(BeEmpty())
	})

	Describe("finished calls", func() {
		BeforeEach(func() {
			calls.records[1].Status = model.CallStatusCompleted
		})

		It("ignores repeated end events", func() {
			Expect(svc.HandleEvent(ctx, ended(model.CallStatusCompleted, 61))).To(Succeed())
			Expect(calls.completed).To(BeEmpty())
			Expect(minutes).To(BeEmpty())
			Expect(triggers.events).To(BeEmpty())
		})

		It("stores a summary that arrives after the end event", func() {
			ev := ended(model.CallStatusCompleted, 61)
			ev.Name = "call_analyzed"
			ev.Summary = "Booked a demo"

			Expect(svc.HandleEvent(ctx, ev)).To(Succeed())
			Expect(calls.summaries).To(HaveKeyWithValue(int64(1), "Booked a demo"))
			Expect(calls.completed).To(BeEmpty())
			Expect(minutes).To(BeEmpty())
		})
	})
})
