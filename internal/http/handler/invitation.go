package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"switchyard.app/platform/internal/http/dto"
	"switchyard.app/platform/internal/service"
)

type InvitationHandler struct {
	invService service.InvitationService
}

func NewInvitationHandler(invService service.InvitationService) *InvitationHandler {
	return &InvitationHandler{invService: invService}
}

// Create invites an email address into the current organization.
func (h *InvitationHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.CreateInvitationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: email is required"})
		return
	}

	inv, inviteURL, err := h.invService.Create(ctx, currentOrgID(c), req.Email, req.Role, actorID(c))
	if err != nil {
		respondError(c, err, "create invitation")
		return
	}

	slog.InfoContext(ctx, "invitation created", "invitation_id", inv.ID)
	c.JSON(http.StatusCreated, dto.ToInvitationResponse(inv, inviteURL))
}

func (h *InvitationHandler) List(c *gin.Context) {
	limit, offset := pagination(c)

	invitations, err := h.invService.ListByOrganization(c.Request.Context(), currentOrgID(c), int32(limit), int32(offset))
	if err != nil {
		respondError(c, err, "list invitations")
		return
	}
	c.JSON(http.StatusOK, newList(dto.ToInvitationResponses(invitations), limit, offset))
}

func (h *InvitationHandler) ListPending(c *gin.Context) {
	invitations, err := h.invService.ListPendingByOrganization(c.Request.Context(), currentOrgID(c))
	if err != nil {
		respondError(c, err, "list invitations")
		return
	}
	c.JSON(http.StatusOK, gin.H{"invitations": dto.ToInvitationResponses(invitations)})
}

func (h *InvitationHandler) Revoke(c *gin.Context) {
	id, ok := pathID(c, "invitation_id")
	if !ok {
		return
	}
	orgID := currentOrgID(c)

	inv, err := h.invService.Revoke(c.Request.Context(), &orgID, id)
	if err != nil {
		respondError(c, err, "revoke invitation")
		return
	}
	c.JSON(http.StatusOK, dto.ToInvitationResponse(inv, ""))
}

type validateTokenResponse struct {
	Email     string    `json:"email"`
	ExpiresAt time.Time `json:"expires_at"`
	Valid     bool      `json:"valid"`
}

// Validate validates an invitation token (public endpoint)
func (h *InvitationHandler) Validate(c *gin.Context) {
	ctx := c.Request.Context()

	token := c.Query("token")
	if token == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "token is required"})
		return
	}

	inv, err := h.invService.ValidateToken(ctx, token)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInviteNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "invitation not found", "code": "not_found"})
		case errors.Is(err, service.ErrInviteExpired):
			c.JSON(http.StatusGone, gin.H{"error": "invitation has expired", "code": "expired"})
		case errors.Is(err, service.ErrInviteAlreadyUsed):
			c.JSON(http.StatusGone, gin.H{"error": "invitation has already been used", "code": "already_used"})
		case errors.Is(err, service.ErrInviteRevoked):
			c.JSON(http.StatusGone, gin.H{"error": "invitation has been revoked", "code": "revoked"})
		default:
			slog.ErrorContext(ctx, "failed to validate invitation", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to validate invitation"})
		}
		return
	}

	c.JSON(http.StatusOK, validateTokenResponse{
		Email:     inv.Email,
		ExpiresAt: inv.ExpiresAt,
		Valid:     true,
	})
}

// AdminCreate invites into any organization (admin only)
func (h *InvitationHandler) AdminCreate(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.AdminCreateInvitationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: organization_id and email are required"})
		return
	}

	inv, inviteURL, err := h.invService.Create(ctx, req.OrganizationID, req.Email, req.Role, actorID(c))
	if err != nil {
		respondError(c, err, "create invitation")
		return
	}

	slog.InfoContext(ctx, "invitation created via admin API",
		"invitation_id", inv.ID,
		"organization_id", inv.OrganizationID,
	)
	c.JSON(http.StatusCreated, dto.ToInvitationResponse(inv, inviteURL))
}

// AdminList lists all invitations (admin only)
func (h *InvitationHandler) AdminList(c *gin.Context) {
	limit, offset := pagination(c)

	invitations, err := h.invService.List(c.Request.Context(), int32(limit), int32(offset))
	if err != nil {
		respondError(c, err, "list invitations")
		return
	}
	c.JSON(http.StatusOK, gin.H{"invitations": dto.ToInvitationResponses(invitations)})
}

// AdminListPending lists pending invitations (admin only)
func (h *InvitationHandler) AdminListPending(c *gin.Context) {
	invitations, err := h.invService.ListPending(c.Request.Context())
	if err != nil {
		respondError(c, err, "list invitations")
		return
	}
	c.JSON(http.StatusOK, gin.H{"invitations": dto.ToInvitationResponses(invitations)})
}

// AdminRevoke revokes an invitation in any organization (admin only)
func (h *InvitationHandler) AdminRevoke(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.RevokeInvitationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: id is required"})
		return
	}

	inv, err := h.invService.Revoke(ctx, nil, req.ID)
	if err != nil {
		if errors.Is(err, service.ErrInviteNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "invitation not found or already processed"})
			return
		}
		respondError(c, err, "revoke invitation")
		return
	}

	slog.InfoContext(ctx, "invitation revoked via admin API", "invitation_id", inv.ID)
	c.JSON(http.StatusOK, dto.ToInvitationResponse(inv, ""))
}
