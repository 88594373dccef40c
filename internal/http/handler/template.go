package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"switchyard.app/platform/internal/http/dto"
	"switchyard.app/platform/internal/model"
	"switchyard.app/platform/internal/service"
)

type TemplateHandler struct {
	templates service.TemplateService
}

func NewTemplateHandler(templates service.TemplateService) *TemplateHandler {
	return &TemplateHandler{templates: templates}
}

func (h *TemplateHandler) Create(c *gin.Context) {
	var req dto.TemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	tpl, err := h.templates.Create(c.Request.Context(), currentOrgID(c), req.ToInput())
	if err != nil {
		respondError(c, err, "create template")
		return
	}
	c.JSON(http.StatusCreated, tpl)
}

func (h *TemplateHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "template_id")
	if !ok {
		return
	}
	tpl, err := h.templates.Get(c.Request.Context(), currentOrgID(c), id)
	if err != nil {
		respondError(c, err, "get template")
		return
	}
	c.JSON(http.StatusOK, tpl)
}

func (h *TemplateHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "template_id")
	if !ok {
		return
	}
	var req dto.TemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	tpl, err := h.templates.Update(c.Request.Context(), currentOrgID(c), id, req.ToInput())
	if err != nil {
		respondError(c, err, "update template")
		return
	}
	c.JSON(http.StatusOK, tpl)
}

func (h *TemplateHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "template_id")
	if !ok {
		return
	}
	if err := h.templates.Delete(c.Request.Context(), currentOrgID(c), id); err != nil {
		respondError(c, err, "delete template")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *TemplateHandler) List(c *gin.Context) {
	var kind *model.TemplateKind
	if k := c.Query("kind"); k != "" {
		tk := model.TemplateKind(k)
		if !tk.Valid() {
			respondError(c, service.ErrInvalidTemplate, "list templates")
			return
		}
		kind = &tk
	}
	templates, err := h.templates.List(c.Request.Context(), currentOrgID(c), kind)
	if err != nil {
		respondError(c, err, "list templates")
		return
	}
	if templates == nil {
		templates = []model.Template{}
	}
	c.JSON(http.StatusOK, gin.H{"templates": templates})
}

func (h *TemplateHandler) Preview(c *gin.Context) {
	id, ok := pathID(c, "template_id")
	if !ok {
		return
	}
	var req dto.PreviewRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err)
			return
		}
	}
	rendered, err := h.templates.Preview(c.Request.Context(), currentOrgID(c), id, req.ContactID)
	if err != nil {
		respondError(c, err, "preview template")
		return
	}
	c.JSON(http.StatusOK, rendered)
}
