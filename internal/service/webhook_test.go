package service_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"switchyard.app/platform/internal/integration/nylas"
	"switchyard.app/platform/internal/integration/voice"
	"switchyard.app/platform/internal/model"
	"switchyard.app/platform/internal/queue"
	"switchyard.app/platform/internal/service"
)

var _ = Describe("WebhookIngestService", func() {
	var (
		svc       service.WebhookIngestService
		eventLogs *mockEventLogStore
		producer  *mockProducer
		ctx       context.Context
	)

	BeforeEach(func() {
		ctx = context.Background()
		eventLogs = &mockEventLogStore{}
		producer = &mockProducer{}
		svc = service.NewWebhookIngestService(eventLogs, producer)
	})

	It("stores a new event and enqueues it", func() {
		res, err := svc.Ingest(ctx, service.WebhookIngestParams{
			Source:     model.EventSourceStripe,
			EventType:  "invoice.paid",
			ExternalID: "evt_1",
			Payload:    json.RawMessage(`{"id":"evt_1"}`),
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Enqueued).To(BeTrue())
		Expect(res.Duplicated).To(BeFalse())
		Expect(res.DedupeKey).To(Equal("stripe:invoice.paid:evt_1"))
		Expect(*res.EventLog.ExternalID).To(Equal("evt_1"))

		Expect(producer.tasks).To(HaveLen(1))
		Expect(producer.tasks[0].TaskType).To(Equal(queue.TaskTypeWebhookEvent))
		Expect(*producer.tasks[0].EventLogID).To(Equal(res.EventLog.ID))
	})

	It("dedupes a replayed event without enqueueing", func() {
		existing := &model.EventLog{ID: 77}
		eventLogs.createOrGetFn = func(_ context.Context, _ *model.EventLog) (*model.EventLog, bool, error) {
			return existing, false, nil
		}

		res, err := svc.Ingest(ctx, service.WebhookIngestParams{
			Source:    model.EventSourceNylas,
			EventType: "message.created",
			Payload:   json.RawMessage(`{}`),
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Duplicated).To(BeTrue())
		Expect(res.EventLog).To(BeIdenticalTo(existing))
		Expect(producer.tasks).To(BeEmpty())
	})

	It("rejects an empty payload", func() {
		_, err := svc.Ingest(ctx, service.WebhookIngestParams{Source: model.EventSourceVapi, EventType: "status"})
		Expect(err).To(MatchError(service.ErrEmptyPayload))
	})

	It("surfaces enqueue failures so the provider retries", func() {
		producer.err = errors.New("redis down")
		_, err := svc.Ingest(ctx, service.WebhookIngestParams{
			Source:    model.EventSourceSquare,
			EventType: "invoice.payment_made",
			Payload:   json.RawMessage(`{}`),
		})
		Expect(err).To(MatchError(ContainSubstring("enqueueing webhook event")))
	})

	Describe("DedupeKey", func() {
		It("hashes the payload when there is no external id", func() {
			a := service.DedupeKey(model.EventSourceRetell, "call_ended", "", []byte(`{"a":1}`))
			b := service.DedupeKey(model.EventSourceRetell, "call_ended", "", []byte(`{"a":1}`))
			c := service.DedupeKey(model.EventSourceRetell, "call_ended", "", []byte(`{"a":2}`))
			Expect(a).To(Equal(b))
			Expect(a).NotTo(Equal(c))
			Expect(a).To(HavePrefix("retell:"))
		})
	})
})

type fakeBilling struct {
	service.BillingService
	stripeErr   error
	stripeCalls int
}

func (f *fakeBilling) HandleStripeEvent(context.Context, []byte) error {
	f.stripeCalls++
	return f.stripeErr
}

type fakeEmail struct {
	service.EmailService
	handled []*nylas.WebhookEvent
}

func (f *fakeEmail) HandleWebhook(_ context.Context, ev *nylas.WebhookEvent) error {
	f.handled = append(f.handled, ev)
	return nil
}

type fakeCalls struct {
	service.CallService
	err    error
	events []*voice.CallEvent
}

func (f *fakeCalls) HandleEvent(_ context.Context, ev *voice.CallEvent) error {
	f.events = append(f.events, ev)
	return f.err
}

type fakeVoiceProvider struct {
	event *voice.CallEvent
	err   error
}

func (f *fakeVoiceProvider) Name() model.VoiceProvider { return model.VoiceProviderVapi }

func (f *fakeVoiceProvider) PlaceCall(context.Context, voice.CallRequest) (string, error) {
	return "call_1", nil
}

func (f *fakeVoiceProvider) Authenticate(http.Header, []byte) error { return nil }

func (f *fakeVoiceProvider) ParseEvent([]byte) (*voice.CallEvent, error) { return f.event, f.err }

var _ = Describe("WebhookProcessor", func() {
	var (
		proc      service.WebhookProcessor
		eventLogs *mockEventLogStore
		billing   *fakeBilling
		email     *fakeEmail
		calls     *fakeCalls
		provider  *fakeVoiceProvider
		ctx       context.Context
	)

	BeforeEach(func() {
		ctx = context.Background()
		eventLogs = &mockEventLogStore{}
		billing = &fakeBilling{}
		email = &fakeEmail{}
		calls = &fakeCalls{}
		provider = &fakeVoiceProvider{event: &voice.CallEvent{Provider: model.VoiceProviderVapi, ProviderCallID: "call_1"}}
		proc = service.NewWebhookProcessor(eventLogs, billing, email, calls, voice.NewRegistry(provider))
	})

	stored := func(source model.EventSource, payload string) {
		eventLogs.getByIDFn = func(_ context.Context, id int64) (*model.EventLog, error) {
			return &model.EventLog{ID: id, Source: source, EventType: "x", Payload: json.RawMessage(payload)}, nil
		}
	}

	It("marks a handled event processed", func() {
		stored(model.EventSourceStripe, `{}`)

		Expect(proc.ProcessEvent(ctx, 1)).To(Succeed())
		Expect(billing.stripeCalls).To(Equal(1))
		Expect(eventLogs.processed).To(ConsistOf(int64(1)))
	})

	It("skips events that were already processed", func() {
		eventLogs.getByIDFn = func(_ context.Context, id int64) (*model.EventLog, error) {
			now := time.Now()
			return &model.EventLog{ID: id, Source: model.EventSourceStripe, ProcessedAt: &now}, nil
		}

		Expect(proc.ProcessEvent(ctx, 1)).To(Succeed())
		Expect(billing.stripeCalls).To(BeZero())
	})

	It("ignores a missing event log", func() {
		Expect(proc.ProcessEvent(ctx, 404)).To(Succeed())
	})

	It("returns transient errors for retry and records them", func() {
		stored(model.EventSourceStripe, `{}`)
		billing.stripeErr = errors.New("db timeout")

		Expect(proc.ProcessEvent(ctx, 1)).To(MatchError("db timeout"))
		Expect(eventLogs.failed).To(HaveKeyWithValue(int64(1), "db timeout"))
		Expect(eventLogs.processed).To(BeEmpty())
	})

	It("drops unparseable payloads without retrying", func() {
		stored(model.EventSourceNylas, `not json`)

		Expect(proc.ProcessEvent(ctx, 1)).To(Succeed())
		Expect(eventLogs.failed).To(HaveKey(int64(1)))
		Expect(email.handled).To(BeEmpty())
	})

	It("fails a message notification without a message id permanently", func() {
		stored(model.EventSourceNylas, `{"id":"n_1","type":"message.created","data":{"object":{"grant_id":"g"}}}`)

		Expect(proc.ProcessEvent(ctx, 1)).To(Succeed())
		Expect(eventLogs.failed[1]).To(ContainSubstring("missing message id"))
		Expect(eventLogs.processed).To(BeEmpty())
		Expect(email.handled).To(BeEmpty())
	})

	It("drops events from unknown sources", func() {
		stored(model.EventSource("paypal"), `{}`)

		Expect(proc.ProcessEvent(ctx, 1)).To(Succeed())
		Expect(eventLogs.failed[1]).To(ContainSubstring("unknown event source"))
	})

	It("routes voice events to the call service", func() {
		stored(model.EventSourceVapi, `{}`)

		Expect(proc.ProcessEvent(ctx, 1)).To(Succeed())
		Expect(calls.events).To(HaveLen(1))
		Expect(eventLogs.processed).To(ConsistOf(int64(1)))
	})

	It("treats ignored voice events as handled", func() {
		stored(model.EventSourceVapi, `{}`)
		provider.err = voice.ErrIgnoredEvent

		Expect(proc.ProcessEvent(ctx, 1)).To(Succeed())
		Expect(calls.events).To(BeEmpty())
		Expect(eventLogs.processed).To(ConsistOf(int64(1)))
	})

	It("does not retry events for unknown calls", func() {
		stored(model.EventSourceVapi, `{}`)
		calls.err = service.ErrCallNotFound

		Expect(proc.ProcessEvent(ctx, 1)).To(Succeed())
		Expect(eventLogs.failed).To(HaveKey(int64(1)))
	})

	It("rejects voice sources without a registered provider", func() {
		stored(model.EventSourceRetell, `{}`)

		Expect(proc.ProcessEvent(ctx, 1)).To(Succeed())
		Expect(eventLogs.failed).To(HaveKey(int64(1)))
	})
})
