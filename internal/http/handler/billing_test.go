package handler_test

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"switchyard.app/platform/internal/http/handler"
	"switchyard.app/platform/internal/integration/stripe"
	"switchyard.app/platform/internal/model"
	"switchyard.app/platform/internal/service"
)

var _ = Describe("BillingHandler", func() {
	var (
		router *gin.Engine
		svc    *mockBillingService
	)

	BeforeEach(func() {
		router = gin.New()
		svc = &mockBillingService{}
		h := handler.NewBillingHandler(svc)
		router.POST("/orgs/1/billing/checkout", asMember(testUser, testOrg, model.RoleAdmin), h.Checkout)
	})

	It("opens a checkout session billed to the caller's email", func() {
		svc.checkoutFn = func(_ context.Context, orgID int64, plan string, seats int32, email string) (*stripe.CheckoutSession, error) {
			Expect(orgID).To(Equal(testOrg.ID))
			Expect(plan).To(Equal("growth"))
			Expect(seats).To(Equal(int32(3)))
			Expect(email).To(Equal(testUser.Email))
			return &stripe.CheckoutSession{ID: "cs_1", URL: "https://checkout.stripe.com/c/cs_1"}, nil
		}

		w := doJSON(router, http.MethodPost, "/orgs/1/billing/checkout", map[string]any{"plan_code": "growth", "seats": 3})
		Expect(w.Code).To(Equal(http.StatusCreated))
		Expect(decode(w)).To(HaveKeyWithValue("url", "https://checkout.stripe.com/c/cs_1"))
	})

	It("answers 400 for an enterprise plan", func() {
		svc.checkoutFn = func(context.Context, int64, string, int32, string) (*stripe.CheckoutSession, error) {
			return nil, service.ErrPlanNotPurchasable
		}
		w := doJSON(router, http.MethodPost, "/orgs/1/billing/checkout", map[string]any{"plan_code": "enterprise"})
		Expect(w.Code).To(Equal(http.StatusBadRequest))
	})

	It("hides unexpected failures behind a generic message", func() {
		svc.checkoutFn = func(context.Context, int64, string, int32, string) (*stripe.CheckoutSession, error) {
			return nil, context.DeadlineExceeded
		}
		w := doJSON(router, http.MethodPost, "/orgs/1/billing/checkout", map[string]any{"plan_code": "growth"})
		Expect(w.Code).To(Equal(http.StatusInternalServerError))
		Expect(decode(w)["error"]).To(Equal("failed to start checkout"))
	})
})
