package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"switchyard.app/platform/internal/http/dto"
	"switchyard.app/platform/internal/model"
	"switchyard.app/platform/internal/service"
)

// SupportHandler serves both the tenant ticket routes and the admin queue.
type SupportHandler struct {
	support service.SupportService
}

func NewSupportHandler(support service.SupportService) *SupportHandler {
	return &SupportHandler{support: support}
}

func (h *SupportHandler) Create(c *gin.Context) {
	var req dto.TicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	ticket, err := h.support.Create(c.Request.Context(), currentOrgID(c), currentUser(c).ID, req.ToInput())
	if err != nil {
		respondError(c, err, "create ticket")
		return
	}
	c.JSON(http.StatusCreated, ticket)
}

func (h *SupportHandler) List(c *gin.Context) {
	status, ok := ticketStatusQuery(c)
	if !ok {
		return
	}
	limit, offset := pagination(c)
	tickets, err := h.support.ListForOrganization(c.Request.Context(), currentOrgID(c), status, limit, offset)
	if err != nil {
		respondError(c, err, "list tickets")
		return
	}
	c.JSON(http.StatusOK, newList(tickets, limit, offset))
}

func (h *SupportHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "ticket_id")
	if !ok {
		return
	}
	ticket, err := h.support.GetForOrganization(c.Request.Context(), currentOrgID(c), id)
	if err != nil {
		respondError(c, err, "get ticket")
		return
	}
	c.JSON(http.StatusOK, ticket)
}

func (h *SupportHandler) Comment(c *gin.Context) {
	id, ok := pathID(c, "ticket_id")
	if !ok {
		return
	}
	var req dto.CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	comment, err := h.support.Comment(c.Request.Context(), currentOrgID(c), id, currentUser(c).ID, req.Body)
	if err != nil {
		respondError(c, err, "add comment")
		return
	}
	c.JSON(http.StatusCreated, comment)
}

func (h *SupportHandler) AdminList(c *gin.Context) {
	status, ok := ticketStatusQuery(c)
	if !ok {
		return
	}
	limit, offset := pagination(c)
	tickets, err := h.support.List(c.Request.Context(), status, limit, offset)
	if err != nil {
		respondError(c, err, "list tickets")
		return
	}
	c.JSON(http.StatusOK, newList(tickets, limit, offset))
}

func (h *SupportHandler) AdminGet(c *gin.Context) {
	id, ok := pathID(c, "ticket_id")
	if !ok {
		return
	}
	ticket, err := h.support.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "get ticket")
		return
	}
	c.JSON(http.StatusOK, ticket)
}

// AdminComment requires a session; API-key callers have no author.
func (h *SupportHandler) AdminComment(c *gin.Context) {
	id, ok := pathID(c, "ticket_id")
	if !ok {
		return
	}
	author := actorID(c)
	if author == nil {
		c.JSON(http.StatusForbidden, gin.H{"error": "agent session required"})
		return
	}
	var req dto.CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	comment, err := h.support.AgentComment(c.Request.Context(), id, *author, req.Body, req.Internal)
	if err != nil {
		respondError(c, err, "add comment")
		return
	}
	c.JSON(http.StatusCreated, comment)
}

func (h *SupportHandler) AdminUpdate(c *gin.Context) {
	id, ok := pathID(c, "ticket_id")
	if !ok {
		return
	}
	var req dto.TicketUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if req.Status == nil && req.AssigneeUserID == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "status or assignee_user_id is required"})
		return
	}

	ctx := c.Request.Context()
	var ticket *model.SupportTicket
	var err error
	if req.AssigneeUserID != nil {
		assignee := req.AssigneeUserID
		if *assignee == 0 {
			assignee = nil
		}
		if ticket, err = h.support.Assign(ctx, id, assignee); err != nil {
			respondError(c, err, "assign ticket")
			return
		}
	}
	if req.Status != nil {
		if ticket, err = h.support.SetStatus(ctx, id, *req.Status); err != nil {
			respondError(c, err, "update ticket status")
			return
		}
	}
	c.JSON(http.StatusOK, ticket)
}

func ticketStatusQuery(c *gin.Context) (*model.TicketStatus, bool) {
	raw := c.Query("status")
	if raw == "" {
		return nil, true
	}
	status := model.TicketStatus(raw)
	if !status.Valid() {
		respondError(c, service.ErrTicketStatus, "list tickets")
		return nil, false
	}
	return &status, true
}
