package handler

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"switchyard.app/platform/internal/http/dto"
	"switchyard.app/platform/internal/http/middleware"
	"switchyard.app/platform/internal/service"
)

const sessionMaxAgeHours = 7 * 24

type AuthHandler struct {
	authService       service.AuthService
	invitationService service.InvitationService
	dashboardURL      string
}

func NewAuthHandler(
	authService service.AuthService,
	invitationService service.InvitationService,
	dashboardURL string,
) *AuthHandler {
	return &AuthHandler{
		authService:       authService,
		invitationService: invitationService,
		dashboardURL:      dashboardURL,
	}
}

type GetAuthURLResponse struct {
	AuthorizationURL string `json:"authorization_url"`
	State            string `json:"state"`
}

func (h *AuthHandler) GetAuthURL(c *gin.Context) {
	state, err := generateState()
	if err != nil {
		slog.ErrorContext(c.Request.Context(), "failed to generate state", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate state"})
		return
	}

	var opts []service.AuthURLOption
	if loginHint := c.Query("login_hint"); loginHint != "" {
		opts = append(opts, service.WithLoginHint(loginHint))
	}

	authURL, err := h.authService.GetAuthorizationURL(state, opts...)
	if err != nil {
		slog.ErrorContext(c.Request.Context(), "failed to get authorization URL", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get authorization URL"})
		return
	}

	c.JSON(http.StatusOK, GetAuthURLResponse{
		AuthorizationURL: authURL,
		State:            state,
	})
}

// Exchange trades an authorization code for a session. With an invite token
// the invitation is accepted in the same call.
func (h *AuthHandler) Exchange(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.ExchangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "code is required"})
		return
	}

	result, err := h.authService.HandleCallback(ctx, req.Code)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCode) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid authorization code"})
			return
		}
		slog.ErrorContext(ctx, "failed to exchange code", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to exchange code"})
		return
	}

	if req.InviteToken != nil && *req.InviteToken != "" {
		if !h.acceptInvite(c, *req.InviteToken, result) {
			return
		}
	}

	slog.InfoContext(ctx, "user authenticated via exchange", "user_id", result.User.ID)

	c.JSON(http.StatusOK, dto.ExchangeResponse{
		User:      dto.ToUserResponse(result.User),
		SessionID: strconv.FormatInt(result.Session.ID, 10),
		ExpiresIn: sessionMaxAgeHours,
	})
}

func (h *AuthHandler) acceptInvite(c *gin.Context, token string, result *service.CallbackResult) bool {
	ctx := c.Request.Context()

	inv, err := h.invitationService.Accept(ctx, token, result.User)
	if err == nil {
		slog.InfoContext(ctx, "invitation accepted during auth exchange",
			"user_id", result.User.ID,
			"organization_id", inv.OrganizationID,
		)
		return true
	}

	slog.WarnContext(ctx, "failed to accept invitation", "error", err, "user_id", result.User.ID)

	if errors.Is(err, service.ErrEmailMismatch) {
		// The session is kept so the dashboard can run the full logout flow.
		c.JSON(http.StatusForbidden, gin.H{
			"error":      "The email you signed in with doesn't match the invitation",
			"code":       "email_mismatch",
			"session_id": strconv.FormatInt(result.Session.ID, 10),
		})
		return false
	}

	if delErr := h.authService.Logout(ctx, result.Session.ID); delErr != nil {
		slog.WarnContext(ctx, "failed to delete session after invite failure",
			"error", delErr,
			"session_id", result.Session.ID,
		)
	}

	switch {
	case errors.Is(err, service.ErrInviteExpired):
		c.JSON(http.StatusGone, gin.H{"error": "This invitation has expired", "code": "invite_expired"})
	case errors.Is(err, service.ErrInviteAlreadyUsed):
		c.JSON(http.StatusGone, gin.H{"error": "This invitation has already been used", "code": "invite_used"})
	case errors.Is(err, service.ErrInviteRevoked):
		c.JSON(http.StatusGone, gin.H{"error": "This invitation has been revoked", "code": "invite_revoked"})
	case errors.Is(err, service.ErrInviteNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Invitation not found", "code": "invite_not_found"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to process invitation"})
	}
	return false
}

func (h *AuthHandler) ValidateSession(c *gin.Context) {
	ctx := c.Request.Context()

	sessionID, err := strconv.ParseInt(c.GetHeader(middleware.SessionIDHeader), 10, 64)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "session ID required"})
		return
	}

	user, userCtx, err := h.authService.ValidateSession(ctx, sessionID)
	if err != nil {
		if errors.Is(err, service.ErrSessionExpired) || errors.Is(err, service.ErrUserNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "session expired"})
			return
		}
		slog.ErrorContext(ctx, "failed to validate session", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to validate session"})
		return
	}

	c.JSON(http.StatusOK, dto.SessionResponse{
		User:            dto.ToUserResponse(user),
		Organizations:   dto.ToOrganizationBriefs(userCtx.Organizations),
		HasOrganization: userCtx.HasOrganization,
		IsPlatformAdmin: userCtx.IsPlatformAdmin,
	})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.LogoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "session_id is required"})
		return
	}

	sessionID, err := strconv.ParseInt(req.SessionID, 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid session ID"})
		return
	}

	// Fetched before deletion so the WorkOS logout URL can still be built.
	session, err := h.authService.GetSessionByID(ctx, sessionID)
	if err != nil {
		slog.DebugContext(ctx, "session not found for logout URL", "error", err, "session_id", sessionID)
	}

	if err := h.authService.Logout(ctx, sessionID); err != nil {
		slog.WarnContext(ctx, "failed to delete session", "error", err, "session_id", sessionID)
	}

	resp := dto.LogoutResponse{Message: "logged out"}
	if session != nil && session.WorkOSSessionID != nil && *session.WorkOSSessionID != "" {
		returnTo := req.ReturnTo
		if returnTo == "" {
			returnTo = h.dashboardURL
		}
		resp.LogoutURL = h.authService.GetLogoutURL(*session.WorkOSSessionID, returnTo)
	}

	c.JSON(http.StatusOK, resp)
}

func generateState() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(b), nil
}
