package dto

import (
	"switchyard.app/platform/internal/model"
	"switchyard.app/platform/internal/service"
)

type TicketRequest struct {
	Subject  string               `json:"subject" binding:"required,max=255"`
	Body     string               `json:"body" binding:"required"`
	Priority model.TicketPriority `json:"priority,omitempty"`
}

func (r TicketRequest) ToInput() service.TicketInput {
	return service.TicketInput{
		Subject:  r.Subject,
		Body:     r.Body,
		Priority: r.Priority,
	}
}

type CommentRequest struct {
	Body     string `json:"body" binding:"required"`
	Internal bool   `json:"internal"`
}

// TicketUpdateRequest lets agents change status and assignment in one call.
// An assignee of "0" unassigns.
type TicketUpdateRequest struct {
	Status         *model.TicketStatus `json:"status,omitempty"`
	AssigneeUserID *int64              `json:"assignee_user_id,string,omitempty"`
}

type SuspendRequest struct {
	Reason string `json:"reason" binding:"required,max=500"`
}

type GrantAdminRequest struct {
	Email string `json:"email" binding:"required,email"`
	Admin *bool  `json:"admin,omitempty"`
}
