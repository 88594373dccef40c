package model

import (
	"encoding/json"
	"time"
)

type AuditLog struct {
	ID             int64           `json:"id,string"`
	OrganizationID *int64          `json:"organization_id,string,omitempty"`
	ActorUserID    *int64          `json:"actor_user_id,string,omitempty"`
	Action         string          `json:"action"`
	TargetType     string          `json:"target_type"`
	TargetID       string          `json:"target_id"`
	Metadata       json.RawMessage `json:"metadata,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
}

type PlatformStats struct {
	Organizations int64 `json:"organizations"`
	Users         int64 `json:"users"`
	Contacts      int64 `json:"contacts"`
	Calls         int64 `json:"calls"`
	MinutesUsed   int64 `json:"minutes_used"`
}
