package router

import (
	"github.com/gin-gonic/gin"

	"switchyard.app/platform/internal/http/handler"
)

func SupportRouter(rg *gin.RouterGroup, h *handler.SupportHandler) {
	rg.GET("", h.List)
	rg.POST("", h.Create)
	rg.GET("/:ticket_id", h.Get)
	rg.POST("/:ticket_id/comments", h.Comment)
}
