package router_test

import (
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"switchyard.app/platform/internal/http/router"
	"switchyard.app/platform/internal/integration/voice"
	"switchyard.app/platform/internal/service"
	"switchyard.app/platform/internal/store"
)

type denyAll struct{ keys []string }

func (d *denyAll) Allow(key string) (bool, time.Duration) {
	d.keys = append(d.keys, key)
	return false, 2 * time.Second
}

// These requests are all answered by middleware or handlers before any
// store is touched, so the services run without a database.
var _ = Describe("SetupRoutes", func() {
	var engine *gin.Engine

	serve := func(method, path string, headers map[string]string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, path, nil)
		for k, v := range headers {
			req.Header.Set(k, v)
		}
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)
		return w
	}

	BeforeEach(func() {
		engine = gin.New()
		services := service.NewServices(store.NewStores(nil), nil, service.Deps{})
		router.SetupRoutes(engine, services, router.RouterConfig{
			DashboardURL: "https://app.switchyard.test",
			AdminAPIKey:  "admin-key",
			Voice:        voice.NewRegistry(),
		})
	})

	It("serves health", func() {
		w := serve(http.MethodGet, "/health", nil)
		Expect(w.Code).To(Equal(http.StatusOK))
	})

	DescribeTable("requires a session on tenant routes",
		func(method, path string) {
			Expect(serve(method, path, nil).Code).To(Equal(http.StatusUnauthorized))
		},
		Entry("my organizations", http.MethodGet, "/api/v1/orgs"),
		Entry("contacts", http.MethodGet, "/api/v1/orgs/1/contacts"),
		Entry("campaign start", http.MethodPost, "/api/v1/orgs/1/campaigns/2/start"),
		Entry("email", http.MethodGet, "/api/v1/orgs/1/email/messages"),
		Entry("billing", http.MethodGet, "/api/v1/orgs/1/billing/plans"),
	)

	It("rejects a wrong admin API key", func() {
		w := serve(http.MethodGet, "/api/v1/admin/stats", map[string]string{"X-Admin-API-Key": "nope"})
		Expect(w.Code).To(Equal(http.StatusUnauthorized))
	})

	It("echoes the nylas challenge without authentication", func() {
		w := serve(http.MethodGet, "/webhooks/nylas?challenge=hello", nil)
		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(w.Body.String()).To(Equal("hello"))
	})

	It("answers 404 for an unregistered voice provider", func() {
		w := serve(http.MethodPost, "/webhooks/voice/vapi", nil)
		Expect(w.Code).To(Equal(http.StatusNotFound))
	})

	Describe("with a rate limiter", func() {
		var limiter *denyAll

		BeforeEach(func() {
			limiter = &denyAll{}
			engine = gin.New()
			services := service.NewServices(store.NewStores(nil), nil, service.Deps{})
			router.SetupRoutes(engine, services, router.RouterConfig{
				Limiter: limiter,
				Voice:   voice.NewRegistry(),
			})
		})

		DescribeTable("throttles public routes by client IP",
			func(method, path string) {
				w := serve(method, path, nil)
				Expect(w.Code).To(Equal(http.StatusTooManyRequests))
				Expect(w.Header().Get("Retry-After")).To(Equal("2"))
				Expect(limiter.keys).To(HaveLen(1))
				Expect(limiter.keys[0]).To(HavePrefix("ip:"))
			},
			Entry("auth url", http.MethodGet, "/auth/url"),
			Entry("auth exchange", http.MethodPost, "/auth/exchange"),
			Entry("nylas challenge", http.MethodGet, "/webhooks/nylas?challenge=hello"),
			Entry("voice webhook", http.MethodPost, "/webhooks/voice/vapi"),
		)

		It("leaves health unthrottled", func() {
			Expect(serve(http.MethodGet, "/health", nil).Code).To(Equal(http.StatusOK))
			Expect(limiter.keys).To(BeEmpty())
		})

		It("authenticates tenant routes before throttling them", func() {
			Expect(serve(http.MethodGet, "/api/v1/orgs/1/contacts", nil).Code).To(Equal(http.StatusUnauthorized))
			Expect(limiter.keys).To(BeEmpty())
		})
	})
})
