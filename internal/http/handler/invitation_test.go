package handler_test

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"switchyard.app/platform/internal/http/handler"
	"switchyard.app/platform/internal/model"
	"switchyard.app/platform/internal/service"
)

var _ = Describe("InvitationHandler", func() {
	var (
		router *gin.Engine
		svc    *mockInvitationService
	)

	pending := func(orgID int64, email string, role model.Role) *model.Invitation {
		return &model.Invitation{
			ID:             42,
			OrganizationID: orgID,
			Email:          email,
			Role:           role,
			Status:         model.InvitationStatusPending,
			ExpiresAt:      time.Now().Add(7 * 24 * time.Hour),
		}
	}

	BeforeEach(func() {
		router = gin.New()
		svc = &mockInvitationService{}
		h := handler.NewInvitationHandler(svc)

		router.GET("/invites/validate", h.Validate)

		tenant := router.Group("/orgs/1/invitations", asMember(testUser, testOrg, model.RoleAdmin))
		tenant.POST("", h.Create)
		tenant.GET("", h.List)
		tenant.DELETE("/:invitation_id", h.Revoke)

		admin := router.Group("/admin/invites")
		admin.POST("", h.AdminCreate)
		admin.POST("/revoke", h.AdminRevoke)
	})

	Describe("Create", func() {
		It("invites into the current organization on behalf of the caller", func() {
			svc.createFn = func(_ context.Context, orgID int64, email string, role model.Role, invitedBy *int64) (*model.Invitation, string, error) {
				Expect(orgID).To(Equal(testOrg.ID))
				Expect(*invitedBy).To(Equal(testUser.ID))
				return pending(orgID, email, role), "https://app.switchyard.test/invite?token=t", nil
			}

			w := doJSON(router, http.MethodPost, "/orgs/1/invitations", map[string]string{
				"email": "grace@example.com",
				"role":  "admin",
			})
			Expect(w.Code).To(Equal(http.StatusCreated))

			resp := decode(w)
			Expect(resp["email"]).To(Equal("grace@example.com"))
			Expect(resp["role"]).To(Equal("admin"))
			Expect(resp["invite_url"]).To(ContainSubstring("token=t"))
		})

		It("rejects a missing email", func() {
			w := doJSON(router, http.MethodPost, "/orgs/1/invitations", map[string]string{})
			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})

		It("answers 409 for a duplicate pending invitation", func() {
			svc.createFn = func(context.Context, int64, string, model.Role, *int64) (*model.Invitation, string, error) {
				return nil, "", service.ErrInvitePendingExists
			}
			w := doJSON(router, http.MethodPost, "/orgs/1/invitations", map[string]string{"email": "grace@example.com"})
			Expect(w.Code).To(Equal(http.StatusConflict))
		})
	})

	It("lists invitations with pagination", func() {
		svc.listByOrg = []model.Invitation{*pending(1, "a@example.com", model.RoleMember)}

		w := doJSON(router, http.MethodGet, "/orgs/1/invitations?limit=10", nil)
		Expect(w.Code).To(Equal(http.StatusOK))

		resp := decode(w)
		Expect(resp["items"]).To(HaveLen(1))
		Expect(resp["limit"]).To(BeNumerically("==", 10))
	})

	It("scopes revocation to the current organization", func() {
		svc.revokeFn = func(_ context.Context, orgID *int64, id int64) (*model.Invitation, error) {
			Expect(*orgID).To(Equal(testOrg.ID))
			inv := pending(*orgID, "a@example.com", model.RoleMember)
			inv.ID = id
			inv.Status = model.InvitationStatusRevoked
			return inv, nil
		}

		w := doJSON(router, http.MethodDelete, "/orgs/1/invitations/42", nil)
		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(decode(w)["status"]).To(Equal("revoked"))
	})

	Describe("Validate", func() {
		It("requires a token", func() {
			w := doJSON(router, http.MethodGet, "/invites/validate", nil)
			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})

		DescribeTable("maps token problems to statuses",
			func(err error, status int, code string) {
				svc.validateFn = func(context.Context, string) (*model.Invitation, error) { return nil, err }

				w := doJSON(router, http.MethodGet, "/invites/validate?token=t", nil)
				Expect(w.Code).To(Equal(status))
				Expect(decode(w)["code"]).To(Equal(code))
			},
			Entry("unknown", service.ErrInviteNotFound, http.StatusNotFound, "not_found"),
			Entry("expired", service.ErrInviteExpired, http.StatusGone, "expired"),
			Entry("used", service.ErrInviteAlreadyUsed, http.StatusGone, "already_used"),
			Entry("revoked", service.ErrInviteRevoked, http.StatusGone, "revoked"),
		)

		It("returns the invited email for a valid token", func() {
			svc.validateFn = func(context.Context, string) (*model.Invitation, error) {
				return pending(1, "a@example.com", model.RoleMember), nil
			}

			w := doJSON(router, http.MethodGet, "/invites/validate?token=t", nil)
			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(decode(w)).To(HaveKeyWithValue("valid", true))
		})
	})

	Describe("admin API", func() {
		It("creates an invitation for any organization without an actor", func() {
			svc.createFn = func(_ context.Context, orgID int64, email string, role model.Role, invitedBy *int64) (*model.Invitation, string, error) {
				Expect(orgID).To(Equal(int64(9)))
				Expect(invitedBy).To(BeNil())
				return pending(orgID, email, role), "https://app.switchyard.test/invite?token=t", nil
			}

			w := doJSON(router, http.MethodPost, "/admin/invites", map[string]string{
				"organization_id": "9",
				"email":           "ops@example.com",
			})
			Expect(w.Code).To(Equal(http.StatusCreated))
			Expect(decode(w)["organization_id"]).To(Equal("9"))
		})

		It("revokes across organizations", func() {
			svc.revokeFn = func(_ context.Context, orgID *int64, id int64) (*model.Invitation, error) {
				Expect(orgID).To(BeNil())
				return pending(3, "a@example.com", model.RoleMember), nil
			}

			w := doJSON(router, http.MethodPost, "/admin/invites/revoke", map[string]string{"id": "42"})
			Expect(w.Code).To(Equal(http.StatusOK))
		})

		It("answers 404 for an unknown invitation", func() {
			svc.revokeFn = func(context.Context, *int64, int64) (*model.Invitation, error) {
				return nil, service.ErrInviteNotFound
			}
			w := doJSON(router, http.MethodPost, "/admin/invites/revoke", map[string]string{"id": "42"})
			Expect(w.Code).To(Equal(http.StatusNotFound))
		})
	})
})
