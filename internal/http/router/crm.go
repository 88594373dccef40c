package router

import (
	"github.com/gin-gonic/gin"

	"switchyard.app/platform/internal/http/handler"
	"switchyard.app/platform/internal/http/middleware"
	"switchyard.app/platform/internal/model"
	"switchyard.app/platform/internal/service"
)

// CRMRouter mounts contacts, deals, projects, templates and automations.
// Viewers read; members write.
func CRMRouter(rg *gin.RouterGroup, services *service.Services) {
	write := middleware.RequireRole(model.RoleMember)

	contacts := handler.NewContactHandler(services.Contacts())
	c := rg.Group("/contacts")
	{
		c.GET("", contacts.List)
		c.POST("", write, contacts.Create)
		c.GET("/search", contacts.Search)
		c.POST("/import", write, contacts.Import)
		c.GET("/:contact_id", contacts.Get)
		c.PATCH("/:contact_id", write, contacts.Update)
		c.DELETE("/:contact_id", write, contacts.Delete)
		c.POST("/:contact_id/tags", write, contacts.UpdateTags)
	}

	deals := handler.NewDealHandler(services.Deals(), services.Projects())
	d := rg.Group("/deals")
	{
		d.GET("", deals.List)
		d.POST("", write, deals.Create)
		d.GET("/pipeline", deals.Pipeline)
		d.GET("/:deal_id", deals.Get)
		d.PATCH("/:deal_id", write, deals.Update)
		d.DELETE("/:deal_id", write, deals.Delete)
		d.POST("/:deal_id/stage", write, deals.MoveStage)
	}

	p := rg.Group("/projects")
	{
		p.GET("", deals.ListProjects)
		p.POST("", write, deals.CreateProject)
		p.GET("/:project_id", deals.GetProject)
		p.PUT("/:project_id", write, deals.UpdateProject)
		p.DELETE("/:project_id", write, deals.DeleteProject)
		p.POST("/:project_id/status", write, deals.SetProjectStatus)
	}

	templates := handler.NewTemplateHandler(services.Templates())
	t := rg.Group("/templates")
	{
		t.GET("", templates.List)
		t.POST("", write, templates.Create)
		t.GET("/:template_id", templates.Get)
		t.PUT("/:template_id", write, templates.Update)
		t.DELETE("/:template_id", write, templates.Delete)
		t.POST("/:template_id/preview", templates.Preview)
	}

	automations := handler.NewAutomationHandler(services.Automations())
	a := rg.Group("/automations")
	{
		a.GET("", automations.List)
		a.POST("/test", automations.Test)
		a.POST("", middleware.RequireRole(model.RoleAdmin), automations.Create)
		a.GET("/:automation_id", automations.Get)
		a.PUT("/:automation_id", middleware.RequireRole(model.RoleAdmin), automations.Update)
		a.DELETE("/:automation_id", middleware.RequireRole(model.RoleAdmin), automations.Delete)
	}
}
