package model

import "time"

type CallStatus string

const (
	CallStatusQueued     CallStatus = "queued"
	CallStatusInProgress CallStatus = "in_progress"
	CallStatusCompleted  CallStatus = "completed"
	CallStatusNoAnswer   CallStatus = "no_answer"
	CallStatusBusy       CallStatus = "busy"
	CallStatusVoicemail  CallStatus = "voicemail"
	CallStatusFailed     CallStatus = "failed"
)

func (s CallStatus) IsTerminal() bool {
	switch s {
	case CallStatusCompleted, CallStatusNoAnswer, CallStatusBusy, CallStatusVoicemail, CallStatusFailed:
		return true
	}
	return false
}

// NeedsRetry reports whether the enrollment should be attempted again.
func (s CallStatus) NeedsRetry() bool {
	switch s {
	case CallStatusNoAnswer, CallStatusBusy, CallStatusVoicemail, CallStatusFailed:
		return true
	}
	return false
}

type CallRecord struct {
	ID                int64         `json:"id,string"`
	OrganizationID    int64         `json:"organization_id,string"`
	CampaignID        *int64        `json:"campaign_id,string,omitempty"`
	CampaignContactID *int64        `json:"campaign_contact_id,string,omitempty"`
	ContactID         int64         `json:"contact_id,string"`
	Provider          VoiceProvider `json:"provider"`
	ProviderCallID    *string       `json:"provider_call_id,omitempty"`
	Status            CallStatus    `json:"status"`
	DurationSeconds   int32         `json:"duration_seconds"`
	RecordingURL      *string       `json:"recording_url,omitempty"`
	Transcript        *string       `json:"transcript,omitempty"`
	Summary           *string       `json:"summary,omitempty"`
	Outcome           *string       `json:"outcome,omitempty"`
	CostCents         int64         `json:"cost_cents"`
	StartedAt         *time.Time    `json:"started_at,omitempty"`
	EndedAt           *time.Time    `json:"ended_at,omitempty"`
	CreatedAt         time.Time     `json:"created_at"`
	UpdatedAt         time.Time     `json:"updated_at"`
}

// BilledMinutes rounds the call duration up to whole minutes.
func (c *CallRecord) BilledMinutes() int32 {
	if c.DurationSeconds <= 0 {
		return 0
	}
	return (c.DurationSeconds + 59) / 60
}
