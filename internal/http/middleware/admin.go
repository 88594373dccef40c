package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const AdminAPIKeyHeader = "X-Admin-API-Key"

// RequireAdmin admits platform admins with a session, or callers presenting
// the admin API key. Key callers have no user in context.
func RequireAdmin(sessions SessionValidator, adminAPIKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if key := presentedAPIKey(c); key != "" {
			if adminAPIKey == "" {
				c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "admin API not configured"})
				return
			}
			if subtle.ConstantTimeCompare([]byte(key), []byte(adminAPIKey)) != 1 {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or missing API key"})
				return
			}
			c.Next()
			return
		}

		sessionID, ok := sessionIDFrom(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or missing API key"})
			return
		}
		user, err := validate(c, sessions, sessionID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "session expired"})
			return
		}
		if !user.IsPlatformAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "platform admin required"})
			return
		}

		attachUser(c, user, sessionID)
		c.Next()
	}
}

func presentedAPIKey(c *gin.Context) string {
	if key := c.GetHeader(AdminAPIKeyHeader); key != "" {
		return key
	}
	if auth := c.GetHeader("Authorization"); strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimPrefix(auth, "Bearer ")
	}
	return ""
}
