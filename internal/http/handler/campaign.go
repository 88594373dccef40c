package handler

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"switchyard.app/platform/internal/http/dto"
	"switchyard.app/platform/internal/model"
	"switchyard.app/platform/internal/service"
)

type CampaignHandler struct {
	campaigns service.CampaignService
}

func NewCampaignHandler(campaigns service.CampaignService) *CampaignHandler {
	return &CampaignHandler{campaigns: campaigns}
}

func (h *CampaignHandler) Create(c *gin.Context) {
	var req dto.CampaignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	campaign, err := h.campaigns.Create(c.Request.Context(), currentOrgID(c), req.ToInput())
	if err != nil {
		respondError(c, err, "create campaign")
		return
	}
	c.JSON(http.StatusCreated, campaign)
}

func (h *CampaignHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "campaign_id")
	if !ok {
		return
	}
	campaign, err := h.campaigns.Get(c.Request.Context(), currentOrgID(c), id)
	if err != nil {
		respondError(c, err, "get campaign")
		return
	}
	c.JSON(http.StatusOK, campaign)
}

func (h *CampaignHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "campaign_id")
	if !ok {
		return
	}
	var req dto.CampaignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	campaign, err := h.campaigns.Update(c.Request.Context(), currentOrgID(c), id, req.ToInput())
	if err != nil {
		respondError(c, err, "update campaign")
		return
	}
	c.JSON(http.StatusOK, campaign)
}

func (h *CampaignHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "campaign_id")
	if !ok {
		return
	}
	if err := h.campaigns.Delete(c.Request.Context(), currentOrgID(c), id); err != nil {
		respondError(c, err, "delete campaign")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *CampaignHandler) List(c *gin.Context) {
	limit, offset := pagination(c)

	var status *model.CampaignStatus
	if s := c.Query("status"); s != "" {
		st := model.CampaignStatus(s)
		if !st.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status"})
			return
		}
		status = &st
	}

	campaigns, err := h.campaigns.List(c.Request.Context(), currentOrgID(c), status, limit, offset)
	if err != nil {
		respondError(c, err, "list campaigns")
		return
	}
	c.JSON(http.StatusOK, newList(campaigns, limit, offset))
}

func (h *CampaignHandler) Enroll(c *gin.Context) {
	id, ok := pathID(c, "campaign_id")
	if !ok {
		return
	}
	var req dto.EnrollRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	ids, err := parseIDs(req.ContactIDs)
	if err != nil {
		badRequest(c, err)
		return
	}

	res, err := h.campaigns.Enroll(c.Request.Context(), currentOrgID(c), id, service.EnrollRequest{
		ContactIDs: ids,
		Conditions: req.Conditions,
	})
	if err != nil {
		respondError(c, err, "enroll contacts")
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *CampaignHandler) Start(c *gin.Context) {
	h.transition(c, "start campaign", h.campaigns.Start)
}

func (h *CampaignHandler) Pause(c *gin.Context) {
	h.transition(c, "pause campaign", h.campaigns.Pause)
}

func (h *CampaignHandler) Resume(c *gin.Context) {
	h.transition(c, "resume campaign", h.campaigns.Resume)
}

type campaignTransition func(ctx context.Context, orgID, id int64) (*model.Campaign, error)

func (h *CampaignHandler) transition(c *gin.Context, action string, fn campaignTransition) {
	id, ok := pathID(c, "campaign_id")
	if !ok {
		return
	}
	campaign, err := fn(c.Request.Context(), currentOrgID(c), id)
	if err != nil {
		respondError(c, err, action)
		return
	}
	c.JSON(http.StatusOK, campaign)
}

func (h *CampaignHandler) Stats(c *gin.Context) {
	id, ok := pathID(c, "campaign_id")
	if !ok {
		return
	}
	stats, err := h.campaigns.Stats(c.Request.Context(), currentOrgID(c), id)
	if err != nil {
		respondError(c, err, "get campaign stats")
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (h *CampaignHandler) ListEnrollments(c *gin.Context) {
	id, ok := pathID(c, "campaign_id")
	if !ok {
		return
	}
	limit, offset := pagination(c)
	enrollments, err := h.campaigns.ListEnrollments(c.Request.Context(), currentOrgID(c), id, limit, offset)
	if err != nil {
		respondError(c, err, "list enrollments")
		return
	}
	c.JSON(http.StatusOK, newList(enrollments, limit, offset))
}

func (h *CampaignHandler) ListCalls(c *gin.Context) {
	id, ok := pathID(c, "campaign_id")
	if !ok {
		return
	}
	limit, offset := pagination(c)
	calls, err := h.campaigns.ListCalls(c.Request.Context(), currentOrgID(c), id, limit, offset)
	if err != nil {
		respondError(c, err, "list campaign calls")
		return
	}
	c.JSON(http.StatusOK, newList(calls, limit, offset))
}

func parseIDs(raw []string) ([]int64, error) {
	ids := make([]int64, 0, len(raw))
	for _, s := range raw {
		id, err := strconv.ParseInt(s, 10, 64)
		if err != nil || id <= 0 {
			return nil, fmt.Errorf("invalid contact id %q", s)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
