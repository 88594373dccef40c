package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"switchyard.app/platform/internal/http/dto"
	"switchyard.app/platform/internal/model"
	"switchyard.app/platform/internal/service"
)

type AdminHandler struct {
	admin service.AdminService
}

func NewAdminHandler(admin service.AdminService) *AdminHandler {
	return &AdminHandler{admin: admin}
}

func (h *AdminHandler) ListOrganizations(c *gin.Context) {
	limit, offset := pagination(c)
	q := service.OrganizationQuery{
		Query:  strings.TrimSpace(c.Query("q")),
		Limit:  limit,
		Offset: offset,
	}
	if s := c.Query("status"); s != "" {
		status := model.OrganizationStatus(s)
		if !status.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status"})
			return
		}
		q.Status = &status
	}

	page, err := h.admin.ListOrganizations(c.Request.Context(), q)
	if err != nil {
		respondError(c, err, "list organizations")
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *AdminHandler) Suspend(c *gin.Context) {
	orgID, ok := pathID(c, "org_id")
	if !ok {
		return
	}
	var req dto.SuspendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	org, err := h.admin.Suspend(c.Request.Context(), actorID(c), orgID, req.Reason)
	if err != nil {
		respondError(c, err, "suspend organization")
		return
	}
	c.JSON(http.StatusOK, org)
}

func (h *AdminHandler) Reactivate(c *gin.Context) {
	orgID, ok := pathID(c, "org_id")
	if !ok {
		return
	}
	org, err := h.admin.Reactivate(c.Request.Context(), actorID(c), orgID)
	if err != nil {
		respondError(c, err, "reactivate organization")
		return
	}
	c.JSON(http.StatusOK, org)
}

func (h *AdminHandler) Stats(c *gin.Context) {
	stats, err := h.admin.Stats(c.Request.Context())
	if err != nil {
		respondError(c, err, "get platform stats")
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (h *AdminHandler) RunBillingCycle(c *gin.Context) {
	summary, err := h.admin.RunBillingCycle(c.Request.Context(), actorID(c))
	if err != nil {
		respondError(c, err, "run billing cycle")
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (h *AdminHandler) GrantAdmin(c *gin.Context) {
	var req dto.GrantAdminRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	admin := true
	if req.Admin != nil {
		admin = *req.Admin
	}
	user, err := h.admin.SetPlatformAdmin(c.Request.Context(), actorID(c), req.Email, admin)
	if err != nil {
		respondError(c, err, "update platform admin")
		return
	}
	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

func (h *AdminHandler) AuditLogs(c *gin.Context) {
	limit, offset := pagination(c)
	orgID, ok := queryID(c, "org_id")
	if !ok {
		return
	}
	logs, err := h.admin.AuditLogs(c.Request.Context(), orgID, limit, offset)
	if err != nil {
		respondError(c, err, "list audit logs")
		return
	}
	c.JSON(http.StatusOK, newList(logs, limit, offset))
}
