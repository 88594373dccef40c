package model

import "time"

type TemplateKind string

const (
	TemplateKindEmail      TemplateKind = "email"
	TemplateKindCallScript TemplateKind = "call_script"
)

func (k TemplateKind) Valid() bool {
	return k == TemplateKindEmail || k == TemplateKindCallScript
}

type Template struct {
	ID             int64        `json:"id,string"`
	OrganizationID int64        `json:"organization_id,string"`
	Kind           TemplateKind `json:"kind"`
	Name           string       `json:"name"`
	Subject        *string      `json:"subject,omitempty"`
	Body           string       `json:"body"`
	CreatedAt      time.Time    `json:"created_at"`
	UpdatedAt      time.Time    `json:"updated_at"`
}
