package router

import (
	"github.com/gin-gonic/gin"

	"switchyard.app/platform/internal/http/handler"
	"switchyard.app/platform/internal/http/middleware"
	"switchyard.app/platform/internal/model"
)

// OrganizationRouter mounts settings, members and invitations under an org.
// Reads need membership; changes need admin.
func OrganizationRouter(rg *gin.RouterGroup, orgs *handler.OrganizationHandler, invites *handler.InvitationHandler) {
	admin := middleware.RequireRole(model.RoleAdmin)

	rg.GET("", orgs.Get)
	rg.PATCH("", admin, orgs.Update)

	members := rg.Group("/members")
	{
		members.GET("", orgs.ListMembers)
		members.PATCH("/:user_id", admin, orgs.UpdateMember)
		members.DELETE("/:user_id", admin, orgs.RemoveMember)
	}

	invitations := rg.Group("/invitations", admin)
	{
		invitations.POST("", invites.Create)
		invitations.GET("", invites.List)
		invitations.GET("/pending", invites.ListPending)
		invitations.DELETE("/:invitation_id", invites.Revoke)
	}
}

// AdminInvitationRouter keeps the API-key invitation endpoints for
// provisioning organizations from outside the dashboard.
func AdminInvitationRouter(rg *gin.RouterGroup, h *handler.InvitationHandler) {
	rg.POST("", h.AdminCreate)
	rg.GET("", h.AdminList)
	rg.GET("/pending", h.AdminListPending)
	rg.POST("/revoke", h.AdminRevoke)
}
