package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"switchyard.app/platform/internal/http/dto"
	"switchyard.app/platform/internal/model"
	"switchyard.app/platform/internal/service"
)

type AutomationHandler struct {
	automations service.AutomationService
}

func NewAutomationHandler(automations service.AutomationService) *AutomationHandler {
	return &AutomationHandler{automations: automations}
}

func (h *AutomationHandler) Create(c *gin.Context) {
	var req dto.AutomationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	a, err := h.automations.Create(c.Request.Context(), currentOrgID(c), req.ToInput())
	if err != nil {
		respondError(c, err, "create automation")
		return
	}
	c.JSON(http.StatusCreated, a)
}

func (h *AutomationHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "automation_id")
	if !ok {
		return
	}
	a, err := h.automations.Get(c.Request.Context(), currentOrgID(c), id)
	if err != nil {
		respondError(c, err, "get automation")
		return
	}
	c.JSON(http.StatusOK, a)
}

func (h *AutomationHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "automation_id")
	if !ok {
		return
	}
	var req dto.AutomationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	a, err := h.automations.Update(c.Request.Context(), currentOrgID(c), id, req.ToInput())
	if err != nil {
		respondError(c, err, "update automation")
		return
	}
	c.JSON(http.StatusOK, a)
}

func (h *AutomationHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "automation_id")
	if !ok {
		return
	}
	if err := h.automations.Delete(c.Request.Context(), currentOrgID(c), id); err != nil {
		respondError(c, err, "delete automation")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *AutomationHandler) List(c *gin.Context) {
	automations, err := h.automations.List(c.Request.Context(), currentOrgID(c))
	if err != nil {
		respondError(c, err, "list automations")
		return
	}
	if automations == nil {
		automations = []model.Automation{}
	}
	c.JSON(http.StatusOK, gin.H{"automations": automations})
}

// Test dry-runs a condition tree against a sample document.
func (h *AutomationHandler) Test(c *gin.Context) {
	var req dto.AutomationTestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	matched, err := h.automations.Test(req.Conditions, req.Document)
	if err != nil {
		badRequest(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"matched": matched})
}
