package middleware

import (
	"context"

	"switchyard.app/platform/internal/model"
)

type contextKey string

const (
	userContextKey         contextKey = "user"
	sessionIDContextKey    contextKey = "session_id"
	organizationContextKey contextKey = "organization"
	roleContextKey         contextKey = "role"
)

func GetUser(ctx context.Context) *model.User {
	user, _ := ctx.Value(userContextKey).(*model.User)
	return user
}

func GetSessionID(ctx context.Context) int64 {
	sessionID, _ := ctx.Value(sessionIDContextKey).(int64)
	return sessionID
}

// GetOrganization returns the tenant resolved by RequireOrgMember.
func GetOrganization(ctx context.Context) *model.Organization {
	org, _ := ctx.Value(organizationContextKey).(*model.Organization)
	return org
}

func GetRole(ctx context.Context) model.Role {
	role, _ := ctx.Value(roleContextKey).(model.Role)
	return role
}

// WithUser is used by tests and by the admin guard.
func WithUser(ctx context.Context, user *model.User) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}

func WithOrganization(ctx context.Context, org *model.Organization, role model.Role) context.Context {
	ctx = context.WithValue(ctx, organizationContextKey, org)
	return context.WithValue(ctx, roleContextKey, role)
}
