package model

import "time"

type CampaignStatus string

const (
	CampaignStatusDraft     CampaignStatus = "draft"
	CampaignStatusScheduled CampaignStatus = "scheduled"
	CampaignStatusRunning   CampaignStatus = "running"
	CampaignStatusPaused    CampaignStatus = "paused"
	CampaignStatusCompleted CampaignStatus = "completed"
)

func (s CampaignStatus) Valid() bool {
	switch s {
	case CampaignStatusDraft, CampaignStatusScheduled, CampaignStatusRunning, CampaignStatusPaused, CampaignStatusCompleted:
		return true
	}
	return false
}

// CanStart reports whether Start may be called from s.
func (s CampaignStatus) CanStart() bool {
	return s == CampaignStatusDraft || s == CampaignStatusScheduled || s == CampaignStatusPaused
}

type VoiceProvider string

const (
	VoiceProviderVapi   VoiceProvider = "vapi"
	VoiceProviderRetell VoiceProvider = "retell"
)

func (p VoiceProvider) Valid() bool {
	return p == VoiceProviderVapi || p == VoiceProviderRetell
}

type Campaign struct {
	ID                   int64          `json:"id,string"`
	OrganizationID       int64          `json:"organization_id,string"`
	Name                 string         `json:"name"`
	Status               CampaignStatus `json:"status"`
	Provider             VoiceProvider  `json:"provider"`
	AssistantID          string         `json:"assistant_id"`
	FromNumber           string         `json:"from_number"`
	ScriptTemplateID     *int64         `json:"script_template_id,string,omitempty"`
	WindowStartMinute    int32          `json:"window_start_minute"`
	WindowEndMinute      int32          `json:"window_end_minute"`
	CallDays             []int32        `json:"call_days"`
	MaxAttempts          int32          `json:"max_attempts"`
	RetryIntervalMinutes int32          `json:"retry_interval_minutes"`
	MaxConcurrent        int32          `json:"max_concurrent"`
	StartAt              *time.Time     `json:"start_at,omitempty"`
	CreatedAt            time.Time      `json:"created_at"`
	UpdatedAt            time.Time      `json:"updated_at"`
}

// AllowsDay reports whether calls may be placed on the given weekday.
// An empty CallDays means every day.
func (c *Campaign) AllowsDay(d time.Weekday) bool {
	if len(c.CallDays) == 0 {
		return true
	}
	for _, day := range c.CallDays {
		if time.Weekday(day) == d {
			return true
		}
	}
	return false
}

type CampaignContactStatus string

const (
	CampaignContactStatusPending    CampaignContactStatus = "pending"
	CampaignContactStatusInProgress CampaignContactStatus = "in_progress"
	CampaignContactStatusCompleted  CampaignContactStatus = "completed"
	CampaignContactStatusFailed     CampaignContactStatus = "failed"
	CampaignContactStatusSkipped    CampaignContactStatus = "skipped"
)

type CampaignContact struct {
	ID             int64                 `json:"id,string"`
	CampaignID     int64                 `json:"campaign_id,string"`
	OrganizationID int64                 `json:"organization_id,string"`
	ContactID      int64                 `json:"contact_id,string"`
	Status         CampaignContactStatus `json:"status"`
	Attempts       int32                 `json:"attempts"`
	LastAttemptAt  *time.Time            `json:"last_attempt_at,omitempty"`
	NextAttemptAt  *time.Time            `json:"next_attempt_at,omitempty"`
	LastOutcome    *string               `json:"last_outcome,omitempty"`
	CreatedAt      time.Time             `json:"created_at"`
	UpdatedAt      time.Time             `json:"updated_at"`
}

type CampaignStats struct {
	Total           int64 `json:"total"`
	Pending         int64 `json:"pending"`
	InProgress      int64 `json:"in_progress"`
	Completed       int64 `json:"completed"`
	Failed          int64 `json:"failed"`
	Skipped         int64 `json:"skipped"`
	Calls           int64 `json:"calls"`
	DurationSeconds int64 `json:"duration_seconds"`
}
