package model

import "time"

type ProjectStatus string

const (
	ProjectStatusPlanned   ProjectStatus = "planned"
	ProjectStatusActive    ProjectStatus = "active"
	ProjectStatusOnHold    ProjectStatus = "on_hold"
	ProjectStatusCompleted ProjectStatus = "completed"
	ProjectStatusCancelled ProjectStatus = "cancelled"
)

var projectTransitions = map[ProjectStatus][]ProjectStatus{
	ProjectStatusPlanned: {ProjectStatusActive, ProjectStatusCancelled},
	ProjectStatusActive:  {ProjectStatusOnHold, ProjectStatusCompleted, ProjectStatusCancelled},
	ProjectStatusOnHold:  {ProjectStatusActive, ProjectStatusCancelled},
}

func (s ProjectStatus) Valid() bool {
	switch s {
	case ProjectStatusPlanned, ProjectStatusActive, ProjectStatusOnHold, ProjectStatusCompleted, ProjectStatusCancelled:
		return true
	}
	return false
}

func (s ProjectStatus) CanTransitionTo(next ProjectStatus) bool {
	for _, allowed := range projectTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

type Project struct {
	ID             int64         `json:"id,string"`
	OrganizationID int64         `json:"organization_id,string"`
	DealID         *int64        `json:"deal_id,string,omitempty"`
	Name           string        `json:"name"`
	Description    *string       `json:"description,omitempty"`
	Status         ProjectStatus `json:"status"`
	DueAt          *time.Time    `json:"due_at,omitempty"`
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`
}
