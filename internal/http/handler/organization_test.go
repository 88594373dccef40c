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

var _ = Describe("OrganizationHandler", func() {
	var (
		orgSvc    *mockOrganizationService
		memberSvc *mockMemberService
		h         *handler.OrganizationHandler
	)

	routerAs := func(role model.Role) *gin.Engine {
		r := gin.New()
		r.POST("/orgs", asMember(testUser, nil, ""), h.Create)
		g := r.Group("/orgs/1", asMember(testUser, testOrg, role))
		g.GET("", h.Get)
		g.PATCH("", h.Update)
		g.PATCH("/members/:user_id", h.UpdateMember)
		g.DELETE("/members/:user_id", h.RemoveMember)
		return r
	}

	BeforeEach(func() {
		orgSvc = &mockOrganizationService{}
		memberSvc = &mockMemberService{}
		h = handler.NewOrganizationHandler(orgSvc, memberSvc)
	})

	Describe("Create", func() {
		It("makes the caller the owner", func() {
			orgSvc.createFn = func(_ context.Context, name string, slug *string, ownerID int64) (*model.Organization, error) {
				Expect(ownerID).To(Equal(testUser.ID))
				Expect(slug).To(BeNil())
				return &model.Organization{ID: 3, Name: name, Slug: "acme", OwnerUserID: ownerID}, nil
			}

			w := doJSON(routerAs(model.RoleOwner), http.MethodPost, "/orgs", map[string]string{"name": "Acme"})
			Expect(w.Code).To(Equal(http.StatusCreated))

			resp := decode(w)
			Expect(resp["id"]).To(Equal("3"))
			Expect(resp["role"]).To(Equal("owner"))
		})

		It("rejects a missing name", func() {
			w := doJSON(routerAs(model.RoleOwner), http.MethodPost, "/orgs", map[string]string{})
			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})

		It("answers 409 when the slug is taken", func() {
			orgSvc.createFn = func(context.Context, string, *string, int64) (*model.Organization, error) {
				return nil, errAlreadyExists()
			}
			w := doJSON(routerAs(model.RoleOwner), http.MethodPost, "/orgs", map[string]string{"name": "Acme", "slug": "acme"})
			Expect(w.Code).To(Equal(http.StatusConflict))
		})
	})

	It("returns the current organization with the caller's role", func() {
		w := doJSON(routerAs(model.RoleViewer), http.MethodGet, "/orgs/1", nil)
		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(decode(w)).To(HaveKeyWithValue("role", "viewer"))
	})

	It("renames the organization", func() {
		orgSvc.updateFn = func(_ context.Context, orgID int64, name string) (*model.Organization, error) {
			Expect(orgID).To(Equal(testOrg.ID))
			return &model.Organization{ID: orgID, Name: name}, nil
		}
		w := doJSON(routerAs(model.RoleAdmin), http.MethodPatch, "/orgs/1", map[string]string{"name": "Acme Two"})
		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(decode(w)["name"]).To(Equal("Acme Two"))
	})

	Describe("UpdateMember", func() {
		BeforeEach(func() {
			memberSvc.updateRoleFn = func(_ context.Context, orgID, userID int64, role model.Role) (*model.Membership, error) {
				return &model.Membership{OrganizationID: orgID, UserID: userID, Role: role}, nil
			}
		})

		It("changes a member's role", func() {
			w := doJSON(routerAs(model.RoleAdmin), http.MethodPatch, "/orgs/1/members/9", map[string]string{"role": "admin"})
			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(decode(w)["role"]).To(Equal("admin"))
		})

		It("lets only owners grant ownership", func() {
			w := doJSON(routerAs(model.RoleAdmin), http.MethodPatch, "/orgs/1/members/9", map[string]string{"role": "owner"})
			Expect(w.Code).To(Equal(http.StatusForbidden))

			w = doJSON(routerAs(model.RoleOwner), http.MethodPatch, "/orgs/1/members/9", map[string]string{"role": "owner"})
			Expect(w.Code).To(Equal(http.StatusOK))
		})

		It("rejects an unknown role", func() {
			w := doJSON(routerAs(model.RoleOwner), http.MethodPatch, "/orgs/1/members/9", map[string]string{"role": "emperor"})
			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})

		It("answers 409 when demoting the last owner", func() {
			memberSvc.updateRoleFn = func(context.Context, int64, int64, model.Role) (*model.Membership, error) {
				return nil, service.ErrLastOwner
			}
			w := doJSON(routerAs(model.RoleOwner), http.MethodPatch, "/orgs/1/members/9", map[string]string{"role": "member"})
			Expect(w.Code).To(Equal(http.StatusConflict))
		})
	})

	It("removes a member", func() {
		var removed int64
		memberSvc.removeFn = func(_ context.Context, _, userID int64) error {
			removed = userID
			return nil
		}
		w := doJSON(routerAs(model.RoleAdmin), http.MethodDelete, "/orgs/1/members/9", nil)
		Expect(w.Code).To(Equal(http.StatusNoContent))
		Expect(removed).To(Equal(int64(9)))
	})

	It("answers 400 for a malformed member id", func() {
		w := doJSON(routerAs(model.RoleAdmin), http.MethodDelete, "/orgs/1/members/abc", nil)
		Expect(w.Code).To(Equal(http.StatusBadRequest))
	})
})
