package model

import (
	"encoding/json"
	"time"
)

type EventSource string

const (
	EventSourceStripe EventSource = "stripe"
	EventSourceSquare EventSource = "square"
	EventSourceNylas  EventSource = "nylas"
	EventSourceVapi   EventSource = "vapi"
	EventSourceRetell EventSource = "retell"
)

type EventLog struct {
	ID              int64           `json:"id,string"`
	OrganizationID  *int64          `json:"organization_id,string,omitempty"`
	Source          EventSource     `json:"source"`
	EventType       string          `json:"event_type"`
	ExternalID      *string         `json:"external_id,omitempty"`
	DedupeKey       string          `json:"dedupe_key"`
	Payload         json.RawMessage `json:"payload"`
	ProcessedAt     *time.Time      `json:"processed_at,omitempty"`
	ProcessingError *string         `json:"processing_error,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
}
