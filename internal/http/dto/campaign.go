package dto

import (
	"encoding/json"
	"time"

	"switchyard.app/platform/internal/model"
	"switchyard.app/platform/internal/service"
)

type CampaignRequest struct {
	Name                 string              `json:"name" binding:"required,max=255"`
	Provider             model.VoiceProvider `json:"provider" binding:"required"`
	AssistantID          string              `json:"assistant_id" binding:"required"`
	FromNumber           string              `json:"from_number" binding:"required"`
	ScriptTemplateID     *int64              `json:"script_template_id,string,omitempty"`
	WindowStartMinute    int32               `json:"window_start_minute" binding:"min=0,max=1439"`
	WindowEndMinute      int32               `json:"window_end_minute" binding:"min=0,max=1439"`
	CallDays             []int32             `json:"call_days,omitempty" binding:"dive,min=0,max=6"`
	MaxAttempts          int32               `json:"max_attempts,omitempty"`
	RetryIntervalMinutes int32               `json:"retry_interval_minutes,omitempty"`
	MaxConcurrent        int32               `json:"max_concurrent,omitempty"`
	StartAt              *time.Time          `json:"start_at,omitempty"`
}

func (r CampaignRequest) ToInput() service.CampaignInput {
	return service.CampaignInput{
		Name:                 r.Name,
		Provider:             r.Provider,
		AssistantID:          r.AssistantID,
		FromNumber:           r.FromNumber,
		ScriptTemplateID:     r.ScriptTemplateID,
		WindowStartMinute:    r.WindowStartMinute,
		WindowEndMinute:      r.WindowEndMinute,
		CallDays:             r.CallDays,
		MaxAttempts:          r.MaxAttempts,
		RetryIntervalMinutes: r.RetryIntervalMinutes,
		MaxConcurrent:        r.MaxConcurrent,
		StartAt:              r.StartAt,
	}
}

// EnrollRequest targets explicit contacts, a condition tree, or both.
type EnrollRequest struct {
	ContactIDs []string        `json:"contact_ids,omitempty"`
	Conditions json.RawMessage `json:"conditions,omitempty"`
}

type AutomationRequest struct {
	Name       string          `json:"name" binding:"required,max=255"`
	Trigger    model.Trigger   `json:"trigger" binding:"required"`
	Conditions json.RawMessage `json:"conditions,omitempty"`
	Actions    []model.Action  `json:"actions" binding:"required,min=1"`
	Enabled    *bool           `json:"enabled,omitempty"`
}

func (r AutomationRequest) ToInput() service.AutomationInput {
	return service.AutomationInput{
		Name:       r.Name,
		Trigger:    r.Trigger,
		Conditions: r.Conditions,
		Actions:    r.Actions,
		Enabled:    r.Enabled,
	}
}

type AutomationTestRequest struct {
	Conditions json.RawMessage `json:"conditions"`
	Document   json.RawMessage `json:"document" binding:"required"`
}

type CallScriptRequest struct {
	Goal    string `json:"goal" binding:"required"`
	Product string `json:"product" binding:"required"`
}
