package router

import (
	"github.com/gin-gonic/gin"

	"switchyard.app/platform/internal/http/handler"
	"switchyard.app/platform/internal/http/middleware"
	"switchyard.app/platform/internal/model"
)

func BillingRouter(rg *gin.RouterGroup, h *handler.BillingHandler) {
	rg.GET("/plans", h.Plans)
	rg.POST("/quote", h.Quote)
	rg.GET("/subscription", h.Subscription)
	rg.GET("/invoices", h.Invoices)
	rg.POST("/checkout", middleware.RequireRole(model.RoleAdmin), h.Checkout)
	rg.POST("/cancel", middleware.RequireRole(model.RoleOwner), h.Cancel)
}
