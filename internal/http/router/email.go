package router

import (
	"github.com/gin-gonic/gin"

	"switchyard.app/platform/internal/http/handler"
	"switchyard.app/platform/internal/http/middleware"
	"switchyard.app/platform/internal/model"
)

// EmailRouter serves the caller's own mailboxes.
func EmailRouter(rg *gin.RouterGroup, h *handler.EmailHandler) {
	rg.Use(middleware.RequireRole(model.RoleMember))

	rg.GET("/connect", h.Connect)
	rg.POST("/callback", h.Callback)
	rg.GET("/accounts", h.Accounts)

	rg.GET("/messages", h.ListMessages)
	rg.GET("/messages/:message_id", h.GetMessage)
	rg.PATCH("/messages/:message_id", h.UpdateFlags)
	rg.POST("/messages/:message_id/draft-reply", h.DraftReply)
	rg.POST("/send", h.Send)

	rg.GET("/screener", h.Screener)
	rg.POST("/screener", h.Decide)
}
