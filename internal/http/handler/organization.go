package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"switchyard.app/platform/internal/http/dto"
	"switchyard.app/platform/internal/http/middleware"
	"switchyard.app/platform/internal/model"
	"switchyard.app/platform/internal/service"
)

type OrganizationHandler struct {
	orgService    service.OrganizationService
	memberService service.MemberService
}

func NewOrganizationHandler(orgService service.OrganizationService, memberService service.MemberService) *OrganizationHandler {
	return &OrganizationHandler{orgService: orgService, memberService: memberService}
}

// Create makes the caller the owner of a new organization on a trial.
func (h *OrganizationHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.CreateOrganizationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.WarnContext(ctx, "invalid request body", "error", err)
		badRequest(c, err)
		return
	}

	org, err := h.orgService.Create(ctx, req.Name, req.Slug, currentUser(c).ID)
	if err != nil {
		respondError(c, err, "create organization")
		return
	}

	c.JSON(http.StatusCreated, dto.ToOrganizationResponse(org, model.RoleOwner))
}

func (h *OrganizationHandler) ListMine(c *gin.Context) {
	orgs, err := h.orgService.ListForUser(c.Request.Context(), currentUser(c).ID)
	if err != nil {
		respondError(c, err, "list organizations")
		return
	}
	c.JSON(http.StatusOK, gin.H{"organizations": dto.ToOrganizationBriefs(orgs)})
}

func (h *OrganizationHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()
	c.JSON(http.StatusOK, dto.ToOrganizationResponse(middleware.GetOrganization(ctx), middleware.GetRole(ctx)))
}

func (h *OrganizationHandler) Update(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.UpdateOrganizationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	org, err := h.orgService.Update(ctx, currentOrgID(c), req.Name)
	if err != nil {
		respondError(c, err, "update organization")
		return
	}
	c.JSON(http.StatusOK, dto.ToOrganizationResponse(org, middleware.GetRole(ctx)))
}

func (h *OrganizationHandler) ListMembers(c *gin.Context) {
	members, err := h.memberService.List(c.Request.Context(), currentOrgID(c))
	if err != nil {
		respondError(c, err, "list members")
		return
	}
	if members == nil {
		members = []model.Member{}
	}
	c.JSON(http.StatusOK, gin.H{"members": members})
}

func (h *OrganizationHandler) UpdateMember(c *gin.Context) {
	userID, ok := pathID(c, "user_id")
	if !ok {
		return
	}

	var req dto.UpdateMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	role, err := model.ParseRole(string(req.Role))
	if err != nil {
		badRequest(c, err)
		return
	}
	// Only owners may hand out ownership.
	if role == model.RoleOwner && !middleware.GetRole(c.Request.Context()).AtLeast(model.RoleOwner) {
		c.JSON(http.StatusForbidden, gin.H{"error": "only owners can grant ownership"})
		return
	}

	membership, err := h.memberService.UpdateRole(c.Request.Context(), currentOrgID(c), userID, role)
	if err != nil {
		respondError(c, err, "update member")
		return
	}
	c.JSON(http.StatusOK, membership)
}

func (h *OrganizationHandler) RemoveMember(c *gin.Context) {
	userID, ok := pathID(c, "user_id")
	if !ok {
		return
	}
	if err := h.memberService.Remove(c.Request.Context(), currentOrgID(c), userID); err != nil {
		respondError(c, err, "remove member")
		return
	}
	c.Status(http.StatusNoContent)
}
