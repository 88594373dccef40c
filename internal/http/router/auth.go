package router

import (
	"github.com/gin-gonic/gin"

	"switchyard.app/platform/internal/http/handler"
)

func AuthRouter(rg *gin.RouterGroup, h *handler.AuthHandler) {
	rg.GET("/url", h.GetAuthURL)
	rg.POST("/exchange", h.Exchange)
	rg.GET("/session", h.ValidateSession)
	rg.POST("/logout", h.Logout)
}
