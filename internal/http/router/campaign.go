package router

import (
	"github.com/gin-gonic/gin"

	"switchyard.app/platform/internal/http/handler"
	"switchyard.app/platform/internal/http/middleware"
	"switchyard.app/platform/internal/model"
	"switchyard.app/platform/internal/service"
)

func CampaignRouter(rg *gin.RouterGroup, services *service.Services) {
	write := middleware.RequireRole(model.RoleMember)

	campaigns := handler.NewCampaignHandler(services.Campaigns())
	c := rg.Group("/campaigns")
	{
		c.GET("", campaigns.List)
		c.POST("", write, campaigns.Create)
		c.GET("/:campaign_id", campaigns.Get)
		c.PUT("/:campaign_id", write, campaigns.Update)
		c.DELETE("/:campaign_id", write, campaigns.Delete)
		c.POST("/:campaign_id/enroll", write, campaigns.Enroll)
		c.POST("/:campaign_id/start", write, campaigns.Start)
		c.POST("/:campaign_id/pause", write, campaigns.Pause)
		c.POST("/:campaign_id/resume", write, campaigns.Resume)
		c.GET("/:campaign_id/stats", campaigns.Stats)
		c.GET("/:campaign_id/contacts", campaigns.ListEnrollments)
		c.GET("/:campaign_id/calls", campaigns.ListCalls)
	}

	calls := handler.NewCallHandler(services.Calls())
	rg.GET("/calls", calls.List)
	rg.GET("/calls/:call_id", calls.Get)

	assistant := handler.NewAssistantHandler(services.Assistant())
	rg.POST("/assistant/call-script", write, assistant.CallScript)
}
