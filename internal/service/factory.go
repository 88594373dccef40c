package service

import (
	"switchyard.app/platform/common/llm"
	"switchyard.app/platform/internal/billing"
	"switchyard.app/platform/internal/integration/notify"
	"switchyard.app/platform/internal/queue"
	"switchyard.app/platform/internal/search"
	"switchyard.app/platform/internal/store"
)

// Deps are the collaborators shared by every service. Index, LLM and
// Bodies may be nil.
type Deps struct {
	Catalog      *billing.Catalog
	Producer     queue.Producer
	Identity     IdentityProvider
	Mail         MailProvider
	Checkouts    Checkouts
	Notifier     notify.Sender
	Voice        VoiceProviders
	Signer       CallTokenSigner
	Index        search.ContactIndex
	LLM          llm.Client
	Bodies       BodyQueue
	DashboardURL string
}

type Services struct {
	stores   *store.Stores
	txRunner TxRunner
	deps     Deps
}

func NewServices(stores *store.Stores, txRunner TxRunner, deps Deps) *Services {
	return &Services{
		stores:   stores,
		txRunner: txRunner,
		deps:     deps,
	}
}

// SetBodyQueue attaches the email body prefetcher. The prefetcher itself
// needs Email(), so it is wired after construction.
func (s *Services) SetBodyQueue(bodies BodyQueue) {
	s.deps.Bodies = bodies
}

func (s *Services) Users() UserService {
	return NewUserService(s.stores.Users())
}

func (s *Services) Organizations() OrganizationService {
	return NewOrganizationService(s.txRunner, s.stores.Organizations(), s.deps.Catalog)
}

func (s *Services) Members() MemberService {
	return NewMemberService(s.txRunner, s.stores.Memberships())
}

func (s *Services) Invitations() InvitationService {
	return NewInvitationService(
		s.stores.Invitations(),
		s.stores.Organizations(),
		s.txRunner,
		s.deps.Notifier,
		s.deps.DashboardURL,
	)
}

func (s *Services) Auth() AuthService {
	return NewAuthService(
		s.stores.Users(),
		s.stores.Sessions(),
		s.stores.Organizations(),
		s.deps.Identity,
	)
}

func (s *Services) Triggers() TriggerEmitter {
	return NewTriggerEmitter(s.deps.Producer)
}

func (s *Services) Contacts() ContactService {
	return NewContactService(
		s.stores.Contacts(),
		s.txRunner,
		s.deps.Index,
		s.Triggers(),
		s.Billing(),
	)
}

func (s *Services) Deals() DealService {
	return NewDealService(s.stores.Deals(), s.stores.Contacts(), s.Triggers())
}

func (s *Services) Projects() ProjectService {
	return NewProjectService(s.stores.Projects(), s.stores.Deals())
}

func (s *Services) Templates() TemplateService {
	return NewTemplateService(s.stores.Templates(), s.stores.Contacts(), s.stores.Organizations())
}

func (s *Services) Campaigns() CampaignService {
	return NewCampaignService(
		s.stores.Campaigns(),
		s.stores.CampaignContacts(),
		s.stores.Contacts(),
		s.stores.CallRecords(),
		s.stores.Templates(),
	)
}

func (s *Services) CallScheduler() CallScheduler {
	return NewCallScheduler(
		s.stores.Campaigns(),
		s.stores.CampaignContacts(),
		s.stores.Contacts(),
		s.stores.CallRecords(),
		s.stores.Organizations(),
		s.deps.Voice,
		s.deps.Signer,
	)
}

func (s *Services) Assistant() Assistant {
	return NewAssistant(s.deps.LLM)
}

func (s *Services) Calls() CallService {
	return NewCallService(
		s.stores.CallRecords(),
		s.stores.Campaigns(),
		s.txRunner,
		s.deps.Signer,
		s.Assistant(),
		s.deps.Producer,
		s.Triggers(),
	)
}

func (s *Services) Email() EmailService {
	return NewEmailService(
		s.stores.EmailAccounts(),
		s.stores.EmailMessages(),
		s.stores.SenderDecisions(),
		s.stores.Contacts(),
		s.stores.Organizations(),
		s.deps.Mail,
		s.deps.Bodies,
		s.Assistant(),
		s.Triggers(),
	)
}

func (s *Services) Billing() BillingService {
	return NewBillingService(
		s.deps.Catalog,
		s.stores.Subscriptions(),
		s.stores.Invoices(),
		s.stores.Organizations(),
		s.stores.Users(),
		s.txRunner,
		s.deps.Checkouts,
		s.deps.Notifier,
	)
}

func (s *Services) Support() SupportService {
	return NewSupportService(s.stores.SupportTickets(), s.txRunner)
}

func (s *Services) Automations() AutomationService {
	return NewAutomationService(
		s.stores.Automations(),
		s.stores.Contacts(),
		s.stores.Deals(),
		s.stores.CallRecords(),
		s.stores.EmailMessages(),
		s.stores.Campaigns(),
		s.stores.CampaignContacts(),
		s.stores.Memberships(),
	)
}

func (s *Services) Admin() AdminService {
	return NewAdminService(
		s.stores.Organizations(),
		s.stores.Users(),
		s.stores.Contacts(),
		s.stores.CallRecords(),
		s.stores.Subscriptions(),
		s.stores.AuditLogs(),
		s.txRunner,
		s.Billing(),
		s.Users(),
	)
}

func (s *Services) WebhookIngest() WebhookIngestService {
	return NewWebhookIngestService(s.stores.EventLogs(), s.deps.Producer)
}

func (s *Services) WebhookProcessor() WebhookProcessor {
	return NewWebhookProcessor(
		s.stores.EventLogs(),
		s.Billing(),
		s.Email(),
		s.Calls(),
		s.deps.Voice,
	)
}
