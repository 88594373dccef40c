package model

import "time"

type EmailAccountStatus string

const (
	EmailAccountStatusActive  EmailAccountStatus = "active"
	EmailAccountStatusExpired EmailAccountStatus = "expired"
)

type EmailAccount struct {
	ID             int64              `json:"id,string"`
	OrganizationID int64              `json:"organization_id,string"`
	UserID         int64              `json:"user_id,string"`
	GrantID        string             `json:"-"`
	EmailAddress   string             `json:"email_address"`
	Provider       string             `json:"provider"`
	Status         EmailAccountStatus `json:"status"`
	CreatedAt      time.Time          `json:"created_at"`
	UpdatedAt      time.Time          `json:"updated_at"`
}

type EmailView string

const (
	EmailViewImbox      EmailView = "imbox"
	EmailViewFeed       EmailView = "feed"
	EmailViewPaperTrail EmailView = "paper_trail"
	EmailViewScreener   EmailView = "screener"
)

func (v EmailView) Valid() bool {
	switch v {
	case EmailViewImbox, EmailViewFeed, EmailViewPaperTrail, EmailViewScreener:
		return true
	}
	return false
}

type EmailMessage struct {
	ID                int64     `json:"id,string"`
	OrganizationID    int64     `json:"organization_id,string"`
	AccountID         int64     `json:"account_id,string"`
	ProviderMessageID string    `json:"provider_message_id"`
	ThreadID          *string   `json:"thread_id,omitempty"`
	FromEmail         string    `json:"from_email"`
	FromName          *string   `json:"from_name,omitempty"`
	To                []string  `json:"to"`
	Subject           string    `json:"subject"`
	Snippet           string    `json:"snippet"`
	Body              *string   `json:"body,omitempty"`
	ReceivedAt        time.Time `json:"received_at"`
	Unread            bool      `json:"unread"`
	Starred           bool      `json:"starred"`
	View              EmailView `json:"view"`
	ContactID         *int64    `json:"contact_id,string,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

type SenderDecisionKind string

const (
	SenderDecisionImbox      SenderDecisionKind = "imbox"
	SenderDecisionFeed       SenderDecisionKind = "feed"
	SenderDecisionPaperTrail SenderDecisionKind = "paper_trail"
	SenderDecisionBlocked    SenderDecisionKind = "blocked"
)

func (d SenderDecisionKind) Valid() bool {
	switch d {
	case SenderDecisionImbox, SenderDecisionFeed, SenderDecisionPaperTrail, SenderDecisionBlocked:
		return true
	}
	return false
}

type SenderDecision struct {
	ID          int64              `json:"id,string"`
	AccountID   int64              `json:"account_id,string"`
	SenderEmail string             `json:"sender_email"`
	Decision    SenderDecisionKind `json:"decision"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
}

// ScreenerSender groups screener messages by sender for the screening queue.
type ScreenerSender struct {
	Email          string    `json:"email"`
	MessageCount   int64     `json:"message_count"`
	LastReceivedAt time.Time `json:"last_received_at"`
}
