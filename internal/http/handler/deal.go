package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"switchyard.app/platform/internal/http/dto"
	"switchyard.app/platform/internal/model"
	"switchyard.app/platform/internal/service"
)

type DealHandler struct {
	deals    service.DealService
	projects service.ProjectService
}

func NewDealHandler(deals service.DealService, projects service.ProjectService) *DealHandler {
	return &DealHandler{deals: deals, projects: projects}
}

func (h *DealHandler) Create(c *gin.Context) {
	var req dto.DealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	deal, err := h.deals.Create(c.Request.Context(), currentOrgID(c), req.ToInput())
	if err != nil {
		respondError(c, err, "create deal")
		return
	}
	c.JSON(http.StatusCreated, deal)
}

func (h *DealHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "deal_id")
	if !ok {
		return
	}
	deal, err := h.deals.Get(c.Request.Context(), currentOrgID(c), id)
	if err != nil {
		respondError(c, err, "get deal")
		return
	}
	c.JSON(http.StatusOK, deal)
}

func (h *DealHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "deal_id")
	if !ok {
		return
	}
	var req dto.DealPatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	deal, err := h.deals.Update(c.Request.Context(), currentOrgID(c), id, req.ToPatch())
	if err != nil {
		respondError(c, err, "update deal")
		return
	}
	c.JSON(http.StatusOK, deal)
}

func (h *DealHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "deal_id")
	if !ok {
		return
	}
	if err := h.deals.Delete(c.Request.Context(), currentOrgID(c), id); err != nil {
		respondError(c, err, "delete deal")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *DealHandler) List(c *gin.Context) {
	limit, offset := pagination(c)

	var stage *model.DealStage
	if s := c.Query("stage"); s != "" {
		st := model.DealStage(s)
		if !st.Valid() {
			respondError(c, service.ErrInvalidStage, "list deals")
			return
		}
		stage = &st
	}
	contactID, ok := queryID(c, "contact_id")
	if !ok {
		return
	}

	deals, err := h.deals.List(c.Request.Context(), currentOrgID(c), stage, contactID, limit, offset)
	if err != nil {
		respondError(c, err, "list deals")
		return
	}
	c.JSON(http.StatusOK, newList(deals, limit, offset))
}

func (h *DealHandler) MoveStage(c *gin.Context) {
	id, ok := pathID(c, "deal_id")
	if !ok {
		return
	}
	var req dto.StageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	deal, err := h.deals.MoveStage(c.Request.Context(), currentOrgID(c), id, req.Stage)
	if err != nil {
		respondError(c, err, "move deal")
		return
	}
	c.JSON(http.StatusOK, deal)
}

func (h *DealHandler) Pipeline(c *gin.Context) {
	summary, err := h.deals.PipelineSummary(c.Request.Context(), currentOrgID(c))
	if err != nil {
		respondError(c, err, "summarize pipeline")
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (h *DealHandler) CreateProject(c *gin.Context) {
	var req dto.ProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	project, err := h.projects.Create(c.Request.Context(), currentOrgID(c), req.ToInput())
	if err != nil {
		respondError(c, err, "create project")
		return
	}
	c.JSON(http.StatusCreated, project)
}

func (h *DealHandler) GetProject(c *gin.Context) {
	id, ok := pathID(c, "project_id")
	if !ok {
		return
	}
	project, err := h.projects.Get(c.Request.Context(), currentOrgID(c), id)
	if err != nil {
		respondError(c, err, "get project")
		return
	}
	c.JSON(http.StatusOK, project)
}

func (h *DealHandler) UpdateProject(c *gin.Context) {
	id, ok := pathID(c, "project_id")
	if !ok {
		return
	}
	var req dto.ProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	project, err := h.projects.Update(c.Request.Context(), currentOrgID(c), id, req.ToInput())
	if err != nil {
		respondError(c, err, "update project")
		return
	}
	c.JSON(http.StatusOK, project)
}

func (h *DealHandler) DeleteProject(c *gin.Context) {
	id, ok := pathID(c, "project_id")
	if !ok {
		return
	}
	if err := h.projects.Delete(c.Request.Context(), currentOrgID(c), id); err != nil {
		respondError(c, err, "delete project")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *DealHandler) ListProjects(c *gin.Context) {
	limit, offset := pagination(c)

	var status *model.ProjectStatus
	if s := c.Query("status"); s != "" {
		st := model.ProjectStatus(s)
		if !st.Valid() {
			respondError(c, service.ErrProjectStatus, "list projects")
			return
		}
		status = &st
	}

	projects, err := h.projects.List(c.Request.Context(), currentOrgID(c), status, limit, offset)
	if err != nil {
		respondError(c, err, "list projects")
		return
	}
	c.JSON(http.StatusOK, newList(projects, limit, offset))
}

func (h *DealHandler) SetProjectStatus(c *gin.Context) {
	id, ok := pathID(c, "project_id")
	if !ok {
		return
	}
	var req dto.ProjectStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	project, err := h.projects.SetStatus(c.Request.Context(), currentOrgID(c), id, req.Status)
	if err != nil {
		respondError(c, err, "update project status")
		return
	}
	c.JSON(http.StatusOK, project)
}
