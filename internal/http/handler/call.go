package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"switchyard.app/platform/internal/service"
)

type CallHandler struct {
	calls service.CallService
}

func NewCallHandler(calls service.CallService) *CallHandler {
	return &CallHandler{calls: calls}
}

func (h *CallHandler) List(c *gin.Context) {
	limit, offset := pagination(c)
	contactID, ok := queryID(c, "contact_id")
	if !ok {
		return
	}
	calls, err := h.calls.List(c.Request.Context(), currentOrgID(c), contactID, limit, offset)
	if err != nil {
		respondError(c, err, "list calls")
		return
	}
	c.JSON(http.StatusOK, newList(calls, limit, offset))
}

func (h *CallHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "call_id")
	if !ok {
		return
	}
	call, err := h.calls.Get(c.Request.Context(), currentOrgID(c), id)
	if err != nil {
		respondError(c, err, "get call")
		return
	}
	c.JSON(http.StatusOK, call)
}
