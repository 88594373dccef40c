package model

import "time"

type TicketStatus string

const (
	TicketStatusOpen     TicketStatus = "open"
	TicketStatusPending  TicketStatus = "pending"
	TicketStatusResolved TicketStatus = "resolved"
	TicketStatusClosed   TicketStatus = "closed"
)

func (s TicketStatus) Valid() bool {
	switch s {
	case TicketStatusOpen, TicketStatusPending, TicketStatusResolved, TicketStatusClosed:
		return true
	}
	return false
}

type TicketPriority string

const (
	TicketPriorityLow    TicketPriority = "low"
	TicketPriorityNormal TicketPriority = "normal"
	TicketPriorityHigh   TicketPriority = "high"
	TicketPriorityUrgent TicketPriority = "urgent"
)

func (p TicketPriority) Valid() bool {
	switch p {
	case TicketPriorityLow, TicketPriorityNormal, TicketPriorityHigh, TicketPriorityUrgent:
		return true
	}
	return false
}

type SupportTicket struct {
	ID              int64          `json:"id,string"`
	OrganizationID  int64          `json:"organization_id,string"`
	RequesterUserID int64          `json:"requester_user_id,string"`
	AssigneeUserID  *int64         `json:"assignee_user_id,string,omitempty"`
	Subject         string         `json:"subject"`
	Status          TicketStatus   `json:"status"`
	Priority        TicketPriority `json:"priority"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	ResolvedAt      *time.Time     `json:"resolved_at,omitempty"`
}

type TicketComment struct {
	ID           int64     `json:"id,string"`
	TicketID     int64     `json:"ticket_id,string"`
	AuthorUserID int64     `json:"author_user_id,string"`
	Body         string    `json:"body"`
	Internal     bool      `json:"internal"`
	CreatedAt    time.Time `json:"created_at"`
}
