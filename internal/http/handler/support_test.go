package handler_test

import (
	"net/http"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"switchyard.app/platform/internal/http/handler"
	"switchyard.app/platform/internal/model"
)

var _ = Describe("SupportHandler", func() {
	var (
		svc *mockSupportService
		h   *handler.SupportHandler
	)

	BeforeEach(func() {
		svc = &mockSupportService{}
		h = handler.NewSupportHandler(svc)
	})

	agentRouter := func(user *model.User) *gin.Engine {
		r := gin.New()
		g := r.Group("/admin/tickets", asMember(user, nil, ""))
		g.PATCH("/:ticket_id", h.AdminUpdate)
		g.POST("/:ticket_id/comments", h.AdminComment)
		return r
	}

	It("unassigns when the assignee is zero", func() {
		w := doJSON(agentRouter(testUser), http.MethodPatch, "/admin/tickets/3", map[string]string{"assignee_user_id": "0"})
		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(svc.assigned).To(HaveLen(1))
		Expect(svc.assigned[0]).To(BeNil())
		Expect(svc.statuses).To(BeEmpty())
	})

	It("assigns and changes status together", func() {
		w := doJSON(agentRouter(testUser), http.MethodPatch, "/admin/tickets/3", map[string]string{
			"assignee_user_id": "7",
			"status":           "pending",
		})
		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(*svc.assigned[0]).To(Equal(int64(7)))
		Expect(svc.statuses).To(ConsistOf(model.TicketStatus("pending")))
	})

	It("requires a change", func() {
		w := doJSON(agentRouter(testUser), http.MethodPatch, "/admin/tickets/3", map[string]string{})
		Expect(w.Code).To(Equal(http.StatusBadRequest))
	})

	It("records internal agent notes", func() {
		w := doJSON(agentRouter(testUser), http.MethodPost, "/admin/tickets/3/comments", map[string]any{
			"body":     "customer is on the legacy plan",
			"internal": true,
		})
		Expect(w.Code).To(Equal(http.StatusCreated))
		Expect(svc.commented).To(ConsistOf(true))
	})

	It("refuses agent comments from API-key callers", func() {
		w := doJSON(agentRouter(nil), http.MethodPost, "/admin/tickets/3/comments", map[string]any{"body": "hi"})
		Expect(w.Code).To(Equal(http.StatusForbidden))
		Expect(svc.commented).To(BeEmpty())
	})
})
