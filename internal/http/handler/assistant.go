package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"switchyard.app/platform/internal/http/dto"
	"switchyard.app/platform/internal/service"
)

type AssistantHandler struct {
	assistant service.Assistant
}

func NewAssistantHandler(assistant service.Assistant) *AssistantHandler {
	return &AssistantHandler{assistant: assistant}
}

// CallScript drafts a campaign call script. The result's template field can
// be saved as a call_script template.
func (h *AssistantHandler) CallScript(c *gin.Context) {
	var req dto.CallScriptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	script, err := h.assistant.GenerateCallScript(c.Request.Context(), req.Goal, req.Product)
	if err != nil {
		respondError(c, err, "generate call script")
		return
	}
	c.JSON(http.StatusOK, script)
}
