package handler_test

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"switchyard.app/platform/internal/http/handler"
	"switchyard.app/platform/internal/model"
	"switchyard.app/platform/internal/service"
)

var _ = Describe("AdminHandler", func() {
	var (
		router *gin.Engine
		svc    *mockAdminService
	)

	BeforeEach(func() {
		router = gin.New()
		svc = &mockAdminService{}
		h := handler.NewAdminHandler(svc)
		router.POST("/admin/users/grant", h.GrantAdmin)
		router.GET("/admin/orgs", h.ListOrganizations)
	})

	It("grants platform admin by default", func() {
		svc.setAdminFn = func(_ context.Context, actorID *int64, email string, admin bool) (*model.User, error) {
			Expect(actorID).To(BeNil())
			Expect(admin).To(BeTrue())
			return &model.User{ID: 9, Email: email, IsPlatformAdmin: admin}, nil
		}

		w := doJSON(router, http.MethodPost, "/admin/users/grant", map[string]string{"email": "ops@example.com"})
		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(decode(w)).To(HaveKeyWithValue("is_platform_admin", true))
	})

	It("revokes when admin is false", func() {
		svc.setAdminFn = func(_ context.Context, _ *int64, email string, admin bool) (*model.User, error) {
			Expect(admin).To(BeFalse())
			return &model.User{ID: 9, Email: email}, nil
		}
		w := doJSON(router, http.MethodPost, "/admin/users/grant", map[string]any{"email": "ops@example.com", "admin": false})
		Expect(w.Code).To(Equal(http.StatusOK))
	})

	It("answers 404 for an unknown user", func() {
		svc.setAdminFn = func(context.Context, *int64, string, bool) (*model.User, error) {
			return nil, service.ErrUserNotFound
		}
		w := doJSON(router, http.MethodPost, "/admin/users/grant", map[string]string{"email": "ghost@example.com"})
		Expect(w.Code).To(Equal(http.StatusNotFound))
	})

	It("rejects an unknown organization status filter", func() {
		w := doJSON(router, http.MethodGet, "/admin/orgs?status=deleted", nil)
		Expect(w.Code).To(Equal(http.StatusBadRequest))
	})
})
