package store

import (
	"context"
	"errors"
	"time"

	"switchyard.app/platform/internal/model"
)

// ErrNotFound is returned when a requested entity does not exist
var ErrNotFound = errors.New("not found")

// UserStore defines the contract for user data access
type UserStore interface {
	GetByID(ctx context.Context, id int64) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	UpsertByWorkOSID(ctx context.Context, user *model.User) error
	SetPlatformAdmin(ctx context.Context, id int64, admin bool) (*model.User, error)
	Count(ctx context.Context) (int64, error)
}

// OrganizationStore defines the contract for organization data access
type OrganizationStore interface {
	GetByID(ctx context.Context, id int64) (*model.Organization, error)
	GetBySlug(ctx context.Context, slug string) (*model.Organization, error)
	Create(ctx context.Context, org *model.Organization) error
	UpdateName(ctx context.Context, id int64, name string) (*model.Organization, error)
	SetStatus(ctx context.Context, id int64, status model.OrganizationStatus) (*model.Organization, error)
	Delete(ctx context.Context, id int64) error // soft delete
	ListForUser(ctx context.Context, userID int64) ([]model.Organization, error)
	List(ctx context.Context, status *model.OrganizationStatus, limit, offset int32) ([]model.Organization, error)
	Count(ctx context.Context) (int64, error)
}

type MembershipStore interface {
	Create(ctx context.Context, m *model.Membership) error
	Get(ctx context.Context, orgID, userID int64) (*model.Membership, error)
	ListMembers(ctx context.Context, orgID int64) ([]model.Member, error)
	UpdateRole(ctx context.Context, orgID, userID int64, role model.Role) (*model.Membership, error)
	Delete(ctx context.Context, orgID, userID int64) error
	CountOwners(ctx context.Context, orgID int64) (int64, error)
}

type InvitationStore interface {
	Create(ctx context.Context, inv *model.Invitation) error
	GetByID(ctx context.Context, id int64) (*model.Invitation, error)
	GetByToken(ctx context.Context, token string) (*model.Invitation, error)
	GetValidByToken(ctx context.Context, token string) (*model.Invitation, error)
	GetPendingByEmail(ctx context.Context, orgID int64, email string) (*model.Invitation, error)
	Accept(ctx context.Context, id, userID int64) (*model.Invitation, error)
	Revoke(ctx context.Context, id int64) (*model.Invitation, error)
	ListByOrganization(ctx context.Context, orgID int64, limit, offset int32) ([]model.Invitation, error)
	ListPendingByOrganization(ctx context.Context, orgID int64) ([]model.Invitation, error)
	List(ctx context.Context, limit, offset int32) ([]model.Invitation, error)
	ListPending(ctx context.Context) ([]model.Invitation, error)
	ExpireOld(ctx context.Context) (int64, error)
}

type SessionStore interface {
	Create(ctx context.Context, session *model.Session) error
	GetByID(ctx context.Context, id int64) (*model.Session, error)
	GetValid(ctx context.Context, id int64) (*model.Session, error)
	Delete(ctx context.Context, id int64) error
	DeleteByUser(ctx context.Context, userID int64) error
	DeleteExpired(ctx context.Context) (int64, error)
}

type ContactStore interface {
	Create(ctx context.Context, c *model.Contact) error
	GetByID(ctx context.Context, orgID, id int64) (*model.Contact, error)
	GetByEmail(ctx context.Context, orgID int64, email string) (*model.Contact, error)
	Update(ctx context.Context, c *model.Contact) error
	Delete(ctx context.Context, orgID, id int64) error
	List(ctx context.Context, orgID int64, filter model.ContactFilter) ([]model.Contact, error)
	Count(ctx context.Context, orgID int64, filter model.ContactFilter) (int64, error)
	ListByIDs(ctx context.Context, orgID int64, ids []int64) ([]model.Contact, error)
	ListAfter(ctx context.Context, orgID, afterID int64, limit int32) ([]model.Contact, error)
	ExistingEmails(ctx context.Context, orgID int64, emails []string) ([]string, error)
	SetTags(ctx context.Context, orgID, id int64, tags []string) (*model.Contact, error)
	SetStatus(ctx context.Context, orgID, id int64, status model.ContactStatus) (*model.Contact, error)
	SetOwner(ctx context.Context, orgID, id int64, ownerID *int64) (*model.Contact, error)
	CountAll(ctx context.Context) (int64, error)
}

type DealStore interface {
	Create(ctx context.Context, d *model.Deal) error
	GetByID(ctx context.Context, orgID, id int64) (*model.Deal, error)
	Update(ctx context.Context, d *model.Deal) error
	UpdateStage(ctx context.Context, orgID, id int64, stage model.DealStage, closedAt *time.Time) (*model.Deal, error)
	Delete(ctx context.Context, orgID, id int64) error
	List(ctx context.Context, orgID int64, stage *model.DealStage, contactID *int64, limit, offset int32) ([]model.Deal, error)
	StageTotals(ctx context.Context, orgID int64) ([]model.PipelineStageSummary, error)
}

type ProjectStore interface {
	Create(ctx context.Context, p *model.Project) error
	GetByID(ctx context.Context, orgID, id int64) (*model.Project, error)
	Update(ctx context.Context, p *model.Project) error
	SetStatus(ctx context.Context, orgID, id int64, status model.ProjectStatus) (*model.Project, error)
	Delete(ctx context.Context, orgID, id int64) error
	List(ctx context.Context, orgID int64, status *model.ProjectStatus, limit, offset int32) ([]model.Project, error)
}

type TemplateStore interface {
	Create(ctx context.Context, t *model.Template) error
	GetByID(ctx context.Context, orgID, id int64) (*model.Template, error)
	Update(ctx context.Context, t *model.Template) error
	Delete(ctx context.Context, orgID, id int64) error
	List(ctx context.Context, orgID int64, kind *model.TemplateKind) ([]model.Template, error)
}

type CampaignStore interface {
	Create(ctx context.Context, c *model.Campaign) error
	GetByID(ctx context.Context, orgID, id int64) (*model.Campaign, error)
	Get(ctx context.Context, id int64) (*model.Campaign, error)
	Update(ctx context.Context, c *model.Campaign) error
	SetStatus(ctx context.Context, id int64, status model.CampaignStatus) (*model.Campaign, error)
	Delete(ctx context.Context, orgID, id int64) error
	List(ctx context.Context, orgID int64, status *model.CampaignStatus, limit, offset int32) ([]model.Campaign, error)
	ListRunning(ctx context.Context) ([]model.Campaign, error)
	PromoteScheduled(ctx context.Context, now time.Time) ([]model.Campaign, error)
}

type CampaignContactStore interface {
	// Enroll reports false when the contact was already enrolled.
	Enroll(ctx context.Context, cc *model.CampaignContact) (bool, error)
	GetByID(ctx context.Context, id int64) (*model.CampaignContact, error)
	ListDue(ctx context.Context, campaignID int64, maxAttempts int32, now time.Time, limit int32) ([]model.CampaignContact, error)
	CountInProgress(ctx context.Context, campaignID int64) (int64, error)
	CountOpen(ctx context.Context, campaignID int64) (int64, error)
	// MarkDispatched claims a pending enrollment. It returns ErrNotFound when the row is no longer pending.
	MarkDispatched(ctx context.Context, id int64) (*model.CampaignContact, error)
	SetOutcome(ctx context.Context, id int64, status model.CampaignContactStatus, nextAttemptAt *time.Time, outcome *string) (*model.CampaignContact, error)
	Stats(ctx context.Context, campaignID int64) (model.CampaignStats, error)
	List(ctx context.Context, campaignID int64, limit, offset int32) ([]model.CampaignContact, error)
}

type CallRecordStore interface {
	Create(ctx context.Context, c *model.CallRecord) error
	GetByID(ctx context.Context, id int64) (*model.CallRecord, error)
	GetForOrganization(ctx context.Context, orgID, id int64) (*model.CallRecord, error)
	GetByProviderCallID(ctx context.Context, provider model.VoiceProvider, callID string) (*model.CallRecord, error)
	SetProviderCallID(ctx context.Context, id int64, callID string) error
	UpdateStatus(ctx context.Context, id int64, status model.CallStatus, startedAt *time.Time) (*model.CallRecord, error)
	Complete(ctx context.Context, c *model.CallRecord) error
	SetSummary(ctx context.Context, id int64, summary string, outcome *string) (*model.CallRecord, error)
	ListByCampaign(ctx context.Context, orgID, campaignID int64, limit, offset int32) ([]model.CallRecord, error)
	List(ctx context.Context, orgID int64, contactID *int64, limit, offset int32) ([]model.CallRecord, error)
	CampaignTotals(ctx context.Context, campaignID int64) (calls int64, seconds int64, err error)
	Count(ctx context.Context) (int64, error)
}

type EmailAccountStore interface {
	Upsert(ctx context.Context, a *model.EmailAccount) error
	GetByID(ctx context.Context, orgID, id int64) (*model.EmailAccount, error)
	Get(ctx context.Context, id int64) (*model.EmailAccount, error)
	GetByGrantID(ctx context.Context, grantID string) (*model.EmailAccount, error)
	ListByUser(ctx context.Context, orgID, userID int64) ([]model.EmailAccount, error)
	SetStatusByGrant(ctx context.Context, grantID string, status model.EmailAccountStatus) error
}

type EmailMessageStore interface {
	Upsert(ctx context.Context, m *model.EmailMessage) error
	GetByID(ctx context.Context, orgID, id int64) (*model.EmailMessage, error)
	Get(ctx context.Context, id int64) (*model.EmailMessage, error)
	ListByView(ctx context.Context, accountID int64, view model.EmailView, limit, offset int32) ([]model.EmailMessage, error)
	CountByView(ctx context.Context, accountID int64) (map[model.EmailView]int64, error)
	UpdateFlags(ctx context.Context, orgID, id int64, unread, starred bool) (*model.EmailMessage, error)
	SyncFlags(ctx context.Context, accountID int64, providerMessageID string, unread, starred bool) error
	SetBody(ctx context.Context, id int64, body string) error
	MoveSender(ctx context.Context, accountID int64, sender string, view model.EmailView) (int64, error)
	DeleteBySender(ctx context.Context, accountID int64, sender string) (int64, error)
	ListScreenerSenders(ctx context.Context, accountID int64) ([]model.ScreenerSender, error)
}

type SenderDecisionStore interface {
	Upsert(ctx context.Context, d *model.SenderDecision) error
	Get(ctx context.Context, accountID int64, sender string) (*model.SenderDecision, error)
	List(ctx context.Context, accountID int64) ([]model.SenderDecision, error)
}

type SubscriptionStore interface {
	Create(ctx context.Context, s *model.Subscription) error
	GetByID(ctx context.Context, id int64) (*model.Subscription, error)
	GetByOrganization(ctx context.Context, orgID int64) (*model.Subscription, error)
	GetByProviderID(ctx context.Context, providerSubscriptionID string) (*model.Subscription, error)
	// Lock selects the row FOR UPDATE; only meaningful inside a transaction.
	Lock(ctx context.Context, id int64) (*model.Subscription, error)
	UpdatePlan(ctx context.Context, s *model.Subscription) error
	SetStatus(ctx context.Context, id int64, status model.SubscriptionStatus) (*model.Subscription, error)
	SetCancelAtPeriodEnd(ctx context.Context, id int64, cancel bool) (*model.Subscription, error)
	AddMinutes(ctx context.Context, orgID int64, minutes int32) error
	ListDue(ctx context.Context, now time.Time, limit int32) ([]model.Subscription, error)
	Advance(ctx context.Context, id int64, status model.SubscriptionStatus, start, end time.Time) (*model.Subscription, error)
	SumMinutesUsed(ctx context.Context) (int64, error)
}

type InvoiceStore interface {
	// CreateIfAbsent reports false when an invoice with the same idempotency key exists.
	CreateIfAbsent(ctx context.Context, inv *model.Invoice) (bool, error)
	GetByIdempotencyKey(ctx context.Context, key string) (*model.Invoice, error)
	ListByOrganization(ctx context.Context, orgID int64, limit, offset int32) ([]model.Invoice, error)
	SetLatestOpenStatus(ctx context.Context, subscriptionID int64, status model.InvoiceStatus, providerInvoiceID *string) (int64, error)
}

type SupportTicketStore interface {
	Create(ctx context.Context, t *model.SupportTicket) error
	GetByID(ctx context.Context, id int64) (*model.SupportTicket, error)
	ListByOrganization(ctx context.Context, orgID int64, status *model.TicketStatus, limit, offset int32) ([]model.SupportTicket, error)
	List(ctx context.Context, status *model.TicketStatus, limit, offset int32) ([]model.SupportTicket, error)
	UpdateStatus(ctx context.Context, id int64, status model.TicketStatus, resolvedAt *time.Time) (*model.SupportTicket, error)
	Assign(ctx context.Context, id int64, assigneeID *int64) (*model.SupportTicket, error)
	Touch(ctx context.Context, id int64) error
	AddComment(ctx context.Context, c *model.TicketComment) error
	ListComments(ctx context.Context, ticketID int64, includeInternal bool) ([]model.TicketComment, error)
}

type AutomationStore interface {
	Create(ctx context.Context, a *model.Automation) error
	GetByID(ctx context.Context, orgID, id int64) (*model.Automation, error)
	Update(ctx context.Context, a *model.Automation) error
	Delete(ctx context.Context, orgID, id int64) error
	List(ctx context.Context, orgID int64) ([]model.Automation, error)
	ListEnabledByTrigger(ctx context.Context, orgID int64, trigger model.Trigger) ([]model.Automation, error)
	RecordRun(ctx context.Context, id int64) error
}

// EventLogStore persists inbound webhook events.
type EventLogStore interface {
	// CreateOrGet inserts a new event or returns the existing row for the dedupe key.
	// The bool reports whether a new row was created.
	CreateOrGet(ctx context.Context, log *model.EventLog) (*model.EventLog, bool, error)
	GetByID(ctx context.Context, id int64) (*model.EventLog, error)
	MarkProcessed(ctx context.Context, id int64) error
	MarkFailed(ctx context.Context, id int64, errMsg string) error
}

type AuditLogStore interface {
	Create(ctx context.Context, log *model.AuditLog) error
	List(ctx context.Context, orgID *int64, limit, offset int32) ([]model.AuditLog, error)
}
