package dto

import (
	"switchyard.app/platform/internal/model"
	"switchyard.app/platform/internal/service"
)

type ConnectResponse struct {
	URL   string `json:"url"`
	State string `json:"state"`
}

type SendRequest struct {
	AccountID        *int64   `json:"account_id,string,omitempty"`
	To               []string `json:"to" binding:"required,min=1,dive,email"`
	Subject          string   `json:"subject" binding:"required,max=998"`
	Body             string   `json:"body" binding:"required"`
	ReplyToMessageID *int64   `json:"reply_to_message_id,string,omitempty"`
}

func (r SendRequest) ToInput() service.SendInput {
	return service.SendInput{
		AccountID:        r.AccountID,
		To:               r.To,
		Subject:          r.Subject,
		Body:             r.Body,
		ReplyToMessageID: r.ReplyToMessageID,
	}
}

type FlagsRequest struct {
	Unread  *bool `json:"unread,omitempty"`
	Starred *bool `json:"starred,omitempty"`
}

type DraftReplyRequest struct {
	Tone service.DraftTone `json:"tone,omitempty"`
}

type ScreenerDecisionRequest struct {
	AccountID *int64                   `json:"account_id,string,omitempty"`
	Sender    string                   `json:"sender" binding:"required,email"`
	Decision  model.SenderDecisionKind `json:"decision" binding:"required"`
}

type ConnectCallbackRequest struct {
	Code string `json:"code" binding:"required"`
}
