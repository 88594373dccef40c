package webhook_test

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"switchyard.app/platform/internal/http/handler/webhook"
	"switchyard.app/platform/internal/integration/square"
	"switchyard.app/platform/internal/integration/voice"
	"switchyard.app/platform/internal/model"
	"switchyard.app/platform/internal/service"
)

type fakeIngester struct {
	calls     []service.WebhookIngestParams
	duplicate bool
	err       error
}

func (f *fakeIngester) Ingest(_ context.Context, p service.WebhookIngestParams) (*service.WebhookIngestResult, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.calls = append(f.calls, p)
	return &service.WebhookIngestResult{
		EventLog:   &model.EventLog{ID: int64(len(f.calls))},
		Enqueued:   !f.duplicate,
		Duplicated: f.duplicate,
	}, nil
}

type fakeStripe struct{ err error }

func (f fakeStripe) Verify(_ []byte, signature string) (string, string, error) {
	if f.err != nil || signature == "" {
		return "", "", errors.New("bad signature")
	}
	return "evt_1", "invoice.paid", nil
}

type fakeSquare struct{ ok bool }

func (f fakeSquare) Verify([]byte, string) error {
	if !f.ok {
		return square.ErrInvalidSignature
	}
	return nil
}

type fakeNylas struct{ ok bool }

func (f fakeNylas) VerifySignature([]byte, string) bool { return f.ok }

type fakeProvider struct {
	authErr  error
	event    *voice.CallEvent
	parseErr error
}

func (p *fakeProvider) Name() model.VoiceProvider { return model.VoiceProviderVapi }

func (p *fakeProvider) PlaceCall(context.Context, voice.CallRequest) (string, error) {
	return "", errors.New("not used")
}

func (p *fakeProvider) Authenticate(http.Header, []byte) error { return p.authErr }

func (p *fakeProvider) ParseEvent([]byte) (*voice.CallEvent, error) { return p.event, p.parseErr }

func post(router *gin.Engine, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

var _ = Describe("billing webhooks", func() {
	var (
		router   *gin.Engine
		ingester *fakeIngester
		sq       fakeSquare
	)

	build := func() {
		router = gin.New()
		h := webhook.NewBillingWebhookHandler(fakeStripe{}, sq, ingester)
		router.POST("/webhooks/stripe", h.Stripe)
		router.POST("/webhooks/square", h.Square)
	}

	BeforeEach(func() {
		ingester = &fakeIngester{}
		sq = fakeSquare{ok: true}
		build()
	})

	It("ingests a verified stripe event under its id", func() {
		w := post(router, "/webhooks/stripe", `{"id":"evt_1"}`, map[string]string{"Stripe-Signature": "t=1,v1=abc"})
		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(ingester.calls).To(HaveLen(1))
		Expect(ingester.calls[0].Source).To(Equal(model.EventSourceStripe))
		Expect(ingester.calls[0].ExternalID).To(Equal("evt_1"))
		Expect(ingester.calls[0].EventType).To(Equal("invoice.paid"))
	})

	It("rejects an unsigned stripe event", func() {
		w := post(router, "/webhooks/stripe", `{"id":"evt_1"}`, nil)
		Expect(w.Code).To(Equal(http.StatusUnauthorized))
		Expect(ingester.calls).To(BeEmpty())
	})

	It("acknowledges duplicates with 200", func() {
		ingester.duplicate = true
		w := post(router, "/webhooks/stripe", `{"id":"evt_1"}`, map[string]string{"Stripe-Signature": "sig"})
		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(w.Body.String()).To(ContainSubstring(`"duplicate":true`))
	})

	It("answers 500 when the event cannot be stored", func() {
		ingester.err = errors.New("db down")
		w := post(router, "/webhooks/stripe", `{"id":"evt_1"}`, map[string]string{"Stripe-Signature": "sig"})
		Expect(w.Code).To(Equal(http.StatusInternalServerError))
	})

	It("rejects a body that is not JSON", func() {
		w := post(router, "/webhooks/stripe", `not json`, map[string]string{"Stripe-Signature": "sig"})
		Expect(w.Code).To(Equal(http.StatusBadRequest))
	})

	It("ingests a verified square event under its event_id", func() {
		w := post(router, "/webhooks/square", `{"event_id":"sq_1","type":"subscription.updated"}`, nil)
		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(ingester.calls[0].Source).To(Equal(model.EventSourceSquare))
		Expect(ingester.calls[0].ExternalID).To(Equal("sq_1"))
	})

	It("rejects a square event with a bad signature", func() {
		sq = fakeSquare{ok: false}
		build()
		w := post(router, "/webhooks/square", `{"event_id":"sq_1","type":"subscription.updated"}`, nil)
		Expect(w.Code).To(Equal(http.StatusUnauthorized))
	})
})

var _ = Describe("nylas webhooks", func() {
	var (
		router   *gin.Engine
		ingester *fakeIngester
	)

	build := func(ok bool) {
		router = gin.New()
		h := webhook.NewNylasWebhookHandler(fakeNylas{ok: ok}, ingester)
		router.GET("/webhooks/nylas", h.Challenge)
		router.POST("/webhooks/nylas", h.HandleEvent)
	}

	BeforeEach(func() {
		ingester = &fakeIngester{}
		build(true)
	})

	It("echoes the challenge as plain text", func() {
		req := httptest.NewRequest(http.MethodGet, "/webhooks/nylas?challenge=xyz", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(w.Body.String()).To(Equal("xyz"))
	})

	It("ingests a signed notification", func() {
		w := post(router, "/webhooks/nylas", `{"id":"n_1","type":"message.created","data":{"object":{"grant_id":"g"}}}`, nil)
		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(ingester.calls[0].Source).To(Equal(model.EventSourceNylas))
		Expect(ingester.calls[0].EventType).To(Equal("message.created"))
		Expect(ingester.calls[0].ExternalID).To(Equal("n_1"))
	})

	It("rejects a bad signature", func() {
		build(false)
		w := post(router, "/webhooks/nylas", `{"id":"n_1","type":"message.created"}`, nil)
		Expect(w.Code).To(Equal(http.StatusUnauthorized))
	})
})

var _ = Describe("voice webhooks", func() {
	var (
		router   *gin.Engine
		ingester *fakeIngester
		provider *fakeProvider
	)

	BeforeEach(func() {
		ingester = &fakeIngester{}
		provider = &fakeProvider{event: &voice.CallEvent{
			Provider:       model.VoiceProviderVapi,
			Kind:           voice.EventEnded,
			ProviderCallID: "call_1",
			Status:         model.CallStatusCompleted,
		}}
		router = gin.New()
		h := webhook.NewVoiceWebhookHandler(voice.NewRegistry(provider), ingester)
		router.POST("/webhooks/voice/:provider", h.HandleEvent)
	})

	It("dedupes by provider call id, event and status", func() {
		w := post(router, "/webhooks/voice/vapi", `{"message":{}}`, nil)
		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(ingester.calls[0].Source).To(Equal(model.EventSourceVapi))
		Expect(ingester.calls[0].ExternalID).To(Equal("call_1:ended:completed"))

		provider.event.Name = "end-of-call-report"
		w = post(router, "/webhooks/voice/vapi", `{"message":{}}`, nil)
		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(ingester.calls[1].ExternalID).To(Equal("call_1:end-of-call-report:completed"))
	})

	It("answers 404 for an unknown provider", func() {
		w := post(router, "/webhooks/voice/twilio", `{}`, nil)
		Expect(w.Code).To(Equal(http.StatusNotFound))
	})

	It("rejects unauthenticated events", func() {
		provider.authErr = voice.ErrUnauthorized
		w := post(router, "/webhooks/voice/vapi", `{}`, nil)
		Expect(w.Code).To(Equal(http.StatusUnauthorized))
		Expect(ingester.calls).To(BeEmpty())
	})

	It("acknowledges ignored event types without storing them", func() {
		provider.parseErr = voice.ErrIgnoredEvent
		w := post(router, "/webhooks/voice/vapi", `{"message":{"type":"speech-update"}}`, nil)
		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(ingester.calls).To(BeEmpty())
	})
})
