package router

import (
	"github.com/gin-gonic/gin"

	"switchyard.app/platform/internal/http/handler"
	"switchyard.app/platform/internal/service"
)

func AdminRouter(rg *gin.RouterGroup, services *service.Services, invites *handler.InvitationHandler) {
	admin := handler.NewAdminHandler(services.Admin())
	support := handler.NewSupportHandler(services.Support())

	rg.GET("/stats", admin.Stats)
	rg.GET("/audit-logs", admin.AuditLogs)
	rg.POST("/users/grant", admin.GrantAdmin)
	rg.POST("/billing/run-cycle", admin.RunBillingCycle)

	orgs := rg.Group("/orgs")
	{
		orgs.GET("", admin.ListOrganizations)
		orgs.POST("/:org_id/suspend", admin.Suspend)
		orgs.POST("/:org_id/reactivate", admin.Reactivate)
	}

	AdminInvitationRouter(rg.Group("/invites"), invites)

	tickets := rg.Group("/tickets")
	{
		tickets.GET("", support.AdminList)
		tickets.GET("/:ticket_id", support.AdminGet)
		tickets.PATCH("/:ticket_id", support.AdminUpdate)
		tickets.POST("/:ticket_id/comments", support.AdminComment)
	}
}
