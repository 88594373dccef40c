package model

import (
	"encoding/json"
	"time"
)

type Trigger string

const (
	TriggerContactCreated   Trigger = "contact_created"
	TriggerContactUpdated   Trigger = "contact_updated"
	TriggerDealStageChanged Trigger = "deal_stage_changed"
	TriggerCallCompleted    Trigger = "call_completed"
	TriggerEmailReceived    Trigger = "email_received"
)

func (t Trigger) Valid() bool {
	switch t {
	case TriggerContactCreated, TriggerContactUpdated, TriggerDealStageChanged, TriggerCallCompleted, TriggerEmailReceived:
		return true
	}
	return false
}

type ActionType string

const (
	ActionAddTag           ActionType = "add_tag"
	ActionRemoveTag        ActionType = "remove_tag"
	ActionSetContactStatus ActionType = "set_contact_status"
	ActionAssignOwner      ActionType = "assign_owner"
	ActionEnrollInCampaign ActionType = "enroll_in_campaign"
)

func (a ActionType) Valid() bool {
	switch a {
	case ActionAddTag, ActionRemoveTag, ActionSetContactStatus, ActionAssignOwner, ActionEnrollInCampaign:
		return true
	}
	return false
}

type Action struct {
	Type  ActionType `json:"type"`
	Value string     `json:"value"`
}

type Automation struct {
	ID             int64           `json:"id,string"`
	OrganizationID int64           `json:"organization_id,string"`
	Name           string          `json:"name"`
	Trigger        Trigger         `json:"trigger"`
	Conditions     json.RawMessage `json:"conditions"`
	Actions        []Action        `json:"actions"`
	Enabled        bool            `json:"enabled"`
	RunCount       int64           `json:"run_count"`
	LastRunAt      *time.Time      `json:"last_run_at,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}
