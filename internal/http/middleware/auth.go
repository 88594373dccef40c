package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"switchyard.app/platform/common/logger"
	"switchyard.app/platform/internal/model"
	"switchyard.app/platform/internal/service"
)

const (
	SessionIDHeader   = "X-Session-ID"
	SessionCookieName = "switchyard_session"
)

// SessionValidator resolves a session id to its user.
type SessionValidator interface {
	ValidateSession(ctx context.Context, sessionID int64) (*model.User, *service.UserContext, error)
}

func RequireAuth(sessions SessionValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID, ok := sessionIDFrom(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
			return
		}

		user, err := validate(c, sessions, sessionID)
		if err != nil {
			if errors.Is(err, service.ErrSessionExpired) || errors.Is(err, service.ErrUserNotFound) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "session expired"})
				return
			}
			slog.ErrorContext(c.Request.Context(), "failed to validate session", "error", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "failed to validate session"})
			return
		}

		attachUser(c, user, sessionID)
		c.Next()
	}
}

// OptionalAuth attaches the user to context if a valid session exists, but never aborts.
func OptionalAuth(sessions SessionValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID, ok := sessionIDFrom(c)
		if !ok {
			c.Next()
			return
		}

		user, err := validate(c, sessions, sessionID)
		if err != nil {
			c.Next()
			return
		}

		attachUser(c, user, sessionID)
		c.Next()
	}
}

func validate(c *gin.Context, sessions SessionValidator, sessionID int64) (*model.User, error) {
	user, _, err := sessions.ValidateSession(c.Request.Context(), sessionID)
	return user, err
}

func attachUser(c *gin.Context, user *model.User, sessionID int64) {
	ctx := context.WithValue(c.Request.Context(), userContextKey, user)
	ctx = context.WithValue(ctx, sessionIDContextKey, sessionID)
	ctx = logger.WithLogFields(ctx, logger.LogFields{UserID: &user.ID})
	c.Request = c.Request.WithContext(ctx)
}

// sessionIDFrom reads the session header the dashboard sends, falling back to the cookie.
func sessionIDFrom(c *gin.Context) (int64, bool) {
	raw := c.GetHeader(SessionIDHeader)
	if raw == "" {
		cookie, err := c.Cookie(SessionCookieName)
		if err != nil {
			return 0, false
		}
		raw = cookie
	}
	sessionID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || sessionID <= 0 {
		return 0, false
	}
	return sessionID, true
}
