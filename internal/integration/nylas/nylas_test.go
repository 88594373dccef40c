package nylas_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"switchyard.app/platform/core/config"
	"switchyard.app/platform/internal/integration"
	"switchyard.app/platform/internal/integration/nylas"
)

var _ = Describe("Client", func() {
	var (
		srv    *httptest.Server
		client *nylas.Client
		hits   []string
	)

	BeforeEach(func() {
		hits = nil
		srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			hits = append(hits, r.Method+" "+r.URL.Path)
			switch r.URL.Path {
			case "/v3/connect/token":
				_ = json.NewEncoder(w).Encode(map[string]string{"grant_id": "g1", "email": "ada@example.com", "provider": "google"})
			case "/v3/grants/g1/messages/m1":
				if r.Header.Get("Authorization") != "Bearer key" {
					w.WriteHeader(http.StatusUnauthorized)
					return
				}
				_, _ = w.Write([]byte(`{"data":{"id":"m1","subject":"Hi","body":"<p>hello</p>","date":1760000000}}`))
			case "/v3/grants/g1/messages/send":
				_, _ = w.Write([]byte(`{"data":{"id":"m2"}}`))
			default:
				w.WriteHeader(http.StatusNotFound)
			}
		}))
		DeferCleanup(srv.Close)
		client = nylas.New(config.NylasConfig{
			APIKey: "key", APIURL: srv.URL, ClientID: "cid",
			RedirectURI: "https://app.example.com/cb", WebhookSecret: "whsec",
		})
	})

	It("builds the hosted auth URL", func() {
		raw, err := client.AuthURL("state-1")
		Expect(err).NotTo(HaveOccurred())
		u, err := url.Parse(raw)
		Expect(err).NotTo(HaveOccurred())
		Expect(u.Path).To(Equal("/v3/connect/auth"))
		Expect(u.Query().Get("client_id")).To(Equal("cid"))
		Expect(u.Query().Get("state")).To(Equal("state-1"))
	})

	It("exchanges a code for a grant", func() {
		g, err := client.ExchangeCode(context.Background(), "code")
		Expect(err).NotTo(HaveOccurred())
		Expect(g.GrantID).To(Equal("g1"))
		Expect(g.Email).To(Equal("ada@example.com"))
	})

	It("fetches and sends messages", func() {
		m, err := client.GetMessage(context.Background(), "g1", "m1")
		Expect(err).NotTo(HaveOccurred())
		Expect(m.Body).To(Equal("<p>hello</p>"))
		Expect(m.ReceivedAt().Unix()).To(Equal(int64(1760000000)))

		sent, err := client.Send(context.Background(), "g1", nylas.SendRequest{Subject: "Re: Hi"})
		Expect(err).NotTo(HaveOccurred())
		Expect(sent.ID).To(Equal("m2"))
		Expect(hits).To(ContainElement("POST /v3/grants/g1/messages/send"))
	})

	It("verifies webhook signatures", func() {
		body := []byte(`{"type":"message.created"}`)
		Expect(client.VerifySignature(body, integration.SignHex("whsec", body))).To(BeTrue())
		Expect(client.VerifySignature(body, integration.SignHex("other", body))).To(BeFalse())
	})

	It("reports missing configuration", func() {
		_, err := nylas.New(config.NylasConfig{}).AuthURL("s")
		Expect(err).To(MatchError(nylas.ErrNotConfigured))
	})
})

var _ = Describe("ParseWebhook", func() {
	It("decodes message.created", func() {
		ev, err := nylas.ParseWebhook([]byte(`{"id":"n1","type":"message.created","time":1760000000,"data":{"object":{
			"id":"m1","grant_id":"g1","thread_id":"t1","subject":"Your receipt","snippet":"Thanks",
			"from":[{"name":"Shop","email":"NoReply@Shop.com"}],"to":[{"email":"ada@example.com"}],
			"date":1760000000,"unread":true,
			"headers":[{"name":"list-unsubscribe","value":"<mailto:u@shop.com>"}]}}}`))
		Expect(err).NotTo(HaveOccurred())
		Expect(ev.GrantID).To(Equal("g1"))
		Expect(ev.Message.Sender().Email).To(Equal("noreply@shop.com"))
		Expect(ev.Message.Recipients()).To(Equal([]string{"ada@example.com"}))
		Expect(ev.Message.Unread).To(BeTrue())
		Expect(ev.ListUnsubscribe).To(Equal("<mailto:u@shop.com>"))
	})

	It("decodes grant.expired without a message", func() {
		ev, err := nylas.ParseWebhook([]byte(`{"id":"n2","type":"grant.expired","data":{"object":{"grant_id":"g1"}}}`))
		Expect(err).NotTo(HaveOccurred())
		Expect(ev.Message).To(BeNil())
		Expect(ev.GrantID).To(Equal("g1"))
	})

	It("requires a message id on message events", func() {
		_, err := nylas.ParseWebhook([]byte(`{"type":"message.updated","data":{"object":{}}}`))
		Expect(err).To(HaveOccurred())
	})
})

var _ = Describe("ParseEnvelope", func() {
	It("accepts a message event without a message id", func() {
		ev, err := nylas.ParseEnvelope([]byte(`{"id":"n_1","type":"message.created","data":{"object":{"grant_id":"g"}}}`))
		Expect(err).NotTo(HaveOccurred())
		Expect(ev.ID).To(Equal("n_1"))
		Expect(ev.Type).To(Equal(nylas.EventMessageCreated))
		Expect(ev.GrantID).To(Equal("g"))
		Expect(ev.Message).To(BeNil())
	})

	It("derives an id from the object and time", func() {
		ev, err := nylas.ParseEnvelope([]byte(`{"type":"message.updated","time":17,"data":{"object":{"id":"m1"}}}`))
		Expect(err).NotTo(HaveOccurred())
		Expect(ev.ID).To(Equal("message.updated:m1:17"))
	})

	DescribeTable("rejects envelopes it cannot store",
		func(payload string) {
			_, err := nylas.ParseEnvelope([]byte(payload))
			Expect(err).To(HaveOccurred())
		},
		Entry("invalid json", `{"type":`),
		Entry("no type", `{"id":"n_1"}`),
	)
})
