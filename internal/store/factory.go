package store

import (
	"switchyard.app/platform/core/db/sqlc"
)

type Stores struct {
	queries *sqlc.Queries
}

func NewStores(queries *sqlc.Queries) *Stores {
	return &Stores{queries: queries}
}

func (s *Stores) Users() UserStore {
	return newUserStore(s.queries)
}

func (s *Stores) Organizations() OrganizationStore {
	return newOrganizationStore(s.queries)
}

func (s *Stores) Memberships() MembershipStore {
	return newMembershipStore(s.queries)
}

func (s *Stores) Invitations() InvitationStore {
	return newInvitationStore(s.queries)
}

func (s *Stores) Sessions() SessionStore {
	return newSessionStore(s.queries)
}

func (s *Stores) Contacts() ContactStore {
	return newContactStore(s.queries)
}

func (s *Stores) Deals() DealStore {
	return newDealStore(s.queries)
}

func (s *Stores) Projects() ProjectStore {
	return newProjectStore(s.queries)
}

func (s *Stores) Templates() TemplateStore {
	return newTemplateStore(s.queries)
}

func (s *Stores) Campaigns() CampaignStore {
	return newCampaignStore(s.queries)
}

func (s *Stores) CampaignContacts() CampaignContactStore {
	return newCampaignContactStore(s.queries)
}

func (s *Stores) CallRecords() CallRecordStore {
	return newCallRecordStore(s.queries)
}

func (s *Stores) EmailAccounts() EmailAccountStore {
	return newEmailAccountStore(s.queries)
}

func (s *Stores) EmailMessages() EmailMessageStore {
	return newEmailMessageStore(s.queries)
}

func (s *Stores) SenderDecisions() SenderDecisionStore {
	return newSenderDecisionStore(s.queries)
}

func (s *Stores) Subscriptions() SubscriptionStore {
	return newSubscriptionStore(s.queries)
}

func (s *Stores) Invoices() InvoiceStore {
	return newInvoiceStore(s.queries)
}

func (s *Stores) SupportTickets() SupportTicketStore {
	return newSupportTicketStore(s.queries)
}

func (s *Stores) Automations() AutomationStore {
	return newAutomationStore(s.queries)
}

func (s *Stores) EventLogs() EventLogStore {
	return newEventLogStore(s.queries)
}

func (s *Stores) AuditLogs() AuditLogStore {
	return newAuditLogStore(s.queries)
}
