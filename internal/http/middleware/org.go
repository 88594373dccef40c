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

type OrganizationGetter interface {
	Get(ctx context.Context, orgID int64) (*model.Organization, error)
}

type MembershipGetter interface {
	Get(ctx context.Context, orgID, userID int64) (*model.Membership, error)
}

// RequireOrgMember resolves :org_id and rejects callers who are not members.
// Platform admins act as owners of every organization. Suspended organizations
// are closed to everyone. Must run after RequireAuth.
func RequireOrgMember(orgs OrganizationGetter, members MembershipGetter) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		orgID, err := strconv.ParseInt(c.Param("org_id"), 10, 64)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid organization id"})
			return
		}

		user := GetUser(ctx)
		if user == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
			return
		}

		org, err := orgs.Get(ctx, orgID)
		if err != nil {
			if errors.Is(err, service.ErrOrganizationNotFound) {
				c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "organization not found"})
				return
			}
			slog.ErrorContext(ctx, "failed to load organization", "error", err, "organization_id", orgID)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "failed to load organization"})
			return
		}

		var role model.Role
		membership, err := members.Get(ctx, orgID, user.ID)
		switch {
		case err == nil:
			role = membership.Role
		case errors.Is(err, service.ErrMemberNotFound) && user.IsPlatformAdmin:
			role = model.RoleOwner
		case errors.Is(err, service.ErrMemberNotFound):
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "not a member of this organization"})
			return
		default:
			slog.ErrorContext(ctx, "failed to load membership", "error", err, "organization_id", orgID)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "failed to load membership"})
			return
		}

		if org.IsSuspended() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": "organization is suspended",
				"code":  "organization_suspended",
			})
			return
		}

		ctx = WithOrganization(ctx, org, role)
		ctx = logger.WithLogFields(ctx, logger.LogFields{OrganizationID: &org.ID})
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// RequireRole rejects members below min. Must run after RequireOrgMember.
func RequireRole(min model.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !GetRole(c.Request.Context()).AtLeast(min) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "insufficient role"})
			return
		}
		c.Next()
	}
}
