package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"switchyard.app/platform/common/id"
	"switchyard.app/platform/internal/integration/nylas"
	"switchyard.app/platform/internal/model"
	"switchyard.app/platform/internal/render"
	"switchyard.app/platform/internal/store"
	"switchyard.app/platform/internal/triage"
)

var (
	ErrEmailAccountNotFound = errors.New("email account not found")
	ErrEmailMessageNotFound = errors.New("email message not found")
	ErrInvalidView          = errors.New("invalid email view")
	ErrInvalidDecision      = errors.New("invalid sender decision")
	ErrEmailAccountExpired  = errors.New("email account needs to be reconnected")
	ErrInvalidSend          = errors.New("send needs recipients, a subject and a body")
)

// MailProvider is the hosted mailbox API.
type MailProvider interface {
	AuthURL(state string) (string, error)
	ExchangeCode(ctx context.Context, code string) (*nylas.Grant, error)
	GetMessage(ctx context.Context, grantID, messageID string) (*nylas.Message, error)
	Send(ctx context.Context, grantID string, req nylas.SendRequest) (*nylas.Message, error)
}

// BodyQueue accepts message ids whose bodies should be fetched in the background.
type BodyQueue interface {
	Enqueue(messageID int64) bool
}

type MessagePage struct {
	Items  []model.EmailMessage      `json:"items"`
	Counts map[model.EmailView]int64 `json:"counts"`
	Limit  int                       `json:"limit"`
	Offset int                       `json:"offset"`
}

type SendInput struct {
	AccountID        *int64
	To               []string
	Subject          string
	Body             string
	ReplyToMessageID *int64
}

type EmailService interface {
	ConnectURL(state string) (string, error)
	Connect(ctx context.Context, orgID, userID int64, code string) (*model.EmailAccount, error)
	Accounts(ctx context.Context, orgID, userID int64) ([]model.EmailAccount, error)
	HandleWebhook(ctx context.Context, ev *nylas.WebhookEvent) error
	ListMessages(ctx context.Context, orgID, userID int64, accountID *int64, view model.EmailView, limit, offset int) (*MessagePage, error)
	GetMessage(ctx context.Context, orgID, id int64) (*model.EmailMessage, error)
	UpdateFlags(ctx context.Context, orgID, id int64, unread, starred *bool) (*model.EmailMessage, error)
	Send(ctx context.Context, orgID, userID int64, in SendInput) error
	DraftReply(ctx context.Context, orgID, messageID int64, tone DraftTone) (*DraftReply, error)
	ScreenerSenders(ctx context.Context, orgID, userID int64, accountID *int64) ([]model.ScreenerSender, error)
	// DecideSender stores a screener decision and re-files the sender's stored mail.
	DecideSender(ctx context.Context, orgID, userID int64, accountID *int64, sender string, decision model.SenderDecisionKind) (int64, error)
	FetchBody(ctx context.Context, messageID int64) error
}

type emailService struct {
	accounts  store.EmailAccountStore
	messages  store.EmailMessageStore
	decisions store.SenderDecisionStore
	contacts  store.ContactStore
	orgs      store.OrganizationStore
	mail      MailProvider
	bodies    BodyQueue
	assistant Assistant
	triggers  TriggerEmitter
	now       func() time.Time
}

// NewEmailService builds the service. bodies may be nil outside the worker.
func NewEmailService(
	accounts store.EmailAccountStore,
	messages store.EmailMessageStore,
	decisions store.SenderDecisionStore,
	contacts store.ContactStore,
	orgs store.OrganizationStore,
	mail MailProvider,
	bodies BodyQueue,
	assistant Assistant,
	triggers TriggerEmitter,
) EmailService {
	return &emailService{
		accounts:  accounts,
		messages:  messages,
		decisions: decisions,
		contacts:  contacts,
		orgs:      orgs,
		mail:      mail,
		bodies:    bodies,
		assistant: assistant,
		triggers:  triggers,
		now:       time.Now,
	}
}

func (s *emailService) ConnectURL(state string) (string, error) {
	return s.mail.AuthURL(state)
}

func (s *emailService) Connect(ctx context.Context, orgID, userID int64, code string) (*model.EmailAccount, error) {
	grant, err := s.mail.ExchangeCode(ctx, code)
	if err != nil {
		return nil, err
	}

	account := &model.EmailAccount{
		ID:             id.New(),
		OrganizationID: orgID,
		UserID:         userID,
		GrantID:        grant.GrantID,
		EmailAddress:   normalizeEmail(grant.Email),
		Provider:       grant.Provider,
		Status:         model.EmailAccountStatusActive,
	}
	if err := s.accounts.Upsert(ctx, account); err != nil {
		return nil, fmt.Errorf("storing email account: %w", err)
	}

	slog.InfoContext(ctx, "email account connected",
		"account_id", account.ID,
		"provider", account.Provider)
	return account, nil
}

func (s *emailService) Accounts(ctx context.Context, orgID, userID int64) ([]model.EmailAccount, error) {
	accounts, err := s.accounts.ListByUser(ctx, orgID, userID)
	if err != nil {
		return nil, fmt.Errorf("listing email accounts: %w", err)
	}
	return accounts, nil
}

func (s *emailService) HandleWebhook(ctx context.Context, ev *nylas.WebhookEvent) error {
	switch ev.Type {
	case nylas.EventMessageCreated:
		return s.ingestMessage(ctx, ev)
	case nylas.EventMessageUpdated:
		return s.syncFlags(ctx, ev)
	case nylas.EventGrantExpired:
		if err := s.accounts.SetStatusByGrant(ctx, ev.GrantID, model.EmailAccountStatusExpired); err != nil {
			return fmt.Errorf("expiring email account: %w", err)
		}
		slog.InfoContext(ctx, "email grant expired", "grant_id", ev.GrantID)
		return nil
	default:
		slog.DebugContext(ctx, "ignoring nylas event", "type", ev.Type)
		return nil
	}
}

func (s *emailService) ingestMessage(ctx context.Context, ev *nylas.WebhookEvent) error {
	account, ok, err := s.accountForGrant(ctx, ev.GrantID)
	if err != nil || !ok {
		return err
	}
	msg := ev.Message
	from := msg.Sender()
	sender := normalizeEmail(from.Email)

	decision, err := s.decisions.Get(ctx, account.ID, sender)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("getting sender decision: %w", err)
	}
	var decisionKind *model.SenderDecisionKind
	if decision != nil {
		decisionKind = &decision.Decision
	}

	var contactID *int64
	if sender != "" {
		contact, err := s.contacts.GetByEmail(ctx, account.OrganizationID, sender)
		switch {
		case err == nil:
			contactID = &contact.ID
		case !errors.Is(err, store.ErrNotFound):
			return fmt.Errorf("looking up contact: %w", err)
		}
	}

	verdict := triage.Classify(triage.Input{
		FromEmail:       sender,
		Subject:         msg.Subject,
		ListUnsubscribe: ev.ListUnsubscribe != "",
		IsContact:       contactID != nil,
		Decision:        decisionKind,
	})
	if verdict.Drop {
		slog.InfoContext(ctx, "dropping email from blocked sender", "account_id", account.ID)
		return nil
	}

	stored := &model.EmailMessage{
		ID:                id.New(),
		OrganizationID:    account.OrganizationID,
		AccountID:         account.ID,
		ProviderMessageID: msg.ID,
		ThreadID:          ptrOrNil(msg.ThreadID),
		FromEmail:         sender,
		FromName:          ptrOrNil(from.Name),
		To:                msg.Recipients(),
		Subject:           msg.Subject,
		Snippet:           msg.Snippet,
		ReceivedAt:        msg.Timestamp(s.now()),
		Unread:            msg.Unread,
		Starred:           msg.Starred,
		View:              verdict.View,
		ContactID:         contactID,
	}
	if err := s.messages.Upsert(ctx, stored); err != nil {
		return fmt.Errorf("storing email message: %w", err)
	}

	slog.InfoContext(ctx, "email triaged",
		"message_id", stored.ID,
		"view", stored.View,
		"reason", verdict.Reason)

	switch {
	case msg.Body != "":
		if err := s.messages.SetBody(ctx, stored.ID, msg.Body); err != nil {
			return fmt.Errorf("storing email body: %w", err)
		}
	case s.bodies != nil:
		if !s.bodies.Enqueue(stored.ID) {
			slog.DebugContext(ctx, "body prefetch not queued", "message_id", stored.ID)
		}
	}

	if s.triggers != nil {
		s.triggers.Emit(ctx, account.OrganizationID, model.TriggerEmailReceived, stored.ID)
	}
	return nil
}

func (s *emailService) syncFlags(ctx context.Context, ev *nylas.WebhookEvent) error {
	account, ok, err := s.accountForGrant(ctx, ev.GrantID)
	if err != nil || !ok {
		return err
	}
	if err := s.messages.SyncFlags(ctx, account.ID, ev.Message.ID, ev.Message.Unread, ev.Message.Starred); err != nil {
		return fmt.Errorf("syncing email flags: %w", err)
	}
	return nil
}

// accountForGrant reports ok=false for grants that are not connected here.
func (s *emailService) accountForGrant(ctx context.Context, grantID string) (*model.EmailAccount, bool, error) {
	account, err := s.accounts.GetByGrantID(ctx, grantID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			slog.WarnContext(ctx, "nylas event for unknown grant", "grant_id", grantID)
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("getting email account: %w", err)
	}
	return account, true, nil
}

func (s *emailService) ListMessages(ctx context.Context, orgID, userID int64, accountID *int64, view model.EmailView, limit, offset int) (*MessagePage, error) {
	if view == "" {
		view = model.EmailViewImbox
	}
	if !view.Valid() {
		return nil, ErrInvalidView
	}
	account, err := s.resolveAccount(ctx, orgID, userID, accountID)
	if err != nil {
		return nil, err
	}

	l, o := pageBounds(limit, offset)
	items, err := s.messages.ListByView(ctx, account.ID, view, l, o)
	if err != nil {
		return nil, fmt.Errorf("listing messages: %w", err)
	}
	counts, err := s.messages.CountByView(ctx, account.ID)
	if err != nil {
		return nil, fmt.Errorf("counting messages: %w", err)
	}
	return &MessagePage{Items: items, Counts: counts, Limit: int(l), Offset: int(o)}, nil
}

func (s *emailService) GetMessage(ctx context.Context, orgID, id int64) (*model.EmailMessage, error) {
	m, err := s.messages.GetByID(ctx, orgID, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrEmailMessageNotFound
		}
		return nil, fmt.Errorf("getting message: %w", err)
	}
	return m, nil
}

func (s *emailService) UpdateFlags(ctx context.Context, orgID, id int64, unread, starred *bool) (*model.EmailMessage, error) {
	m, err := s.GetMessage(ctx, orgID, id)
	if err != nil {
		return nil, err
	}
	if unread != nil {
		m.Unread = *unread
	}
	if starred != nil {
		m.Starred = *starred
	}
	updated, err := s.messages.UpdateFlags(ctx, orgID, id, m.Unread, m.Starred)
	if err != nil {
		return nil, fmt.Errorf("updating flags: %w", err)
	}
	return updated, nil
}

func (s *emailService) Send(ctx context.Context, orgID, userID int64, in SendInput) error {
	if len(in.To) == 0 || strings.TrimSpace(in.Subject) == "" || strings.TrimSpace(in.Body) == "" {
		return ErrInvalidSend
	}
	account, err := s.resolveAccount(ctx, orgID, userID, in.AccountID)
	if err != nil {
		return err
	}
	if account.Status != model.EmailAccountStatusActive {
		return ErrEmailAccountExpired
	}

	req := nylas.SendRequest{Subject: in.Subject}
	for _, to := range in.To {
		email := normalizeEmail(to)
		if email == "" {
			return ErrInvalidSend
		}
		req.To = append(req.To, nylas.Participant{Email: email})
	}

	html, err := render.Markdown(in.Body)
	if err != nil {
		return err
	}
	req.Body = html

	if in.ReplyToMessageID != nil {
		original, err := s.GetMessage(ctx, orgID, *in.ReplyToMessageID)
		if err != nil {
			return err
		}
		req.ReplyToMessageID = original.ProviderMessageID
	}

	if _, err := s.mail.Send(ctx, account.GrantID, req); err != nil {
		return err
	}
	slog.InfoContext(ctx, "email sent", "account_id", account.ID, "recipients", len(req.To))
	return nil
}

func (s *emailService) DraftReply(ctx context.Context, orgID, messageID int64, tone DraftTone) (*DraftReply, error) {
	m, err := s.GetMessage(ctx, orgID, messageID)
	if err != nil {
		return nil, err
	}
	org, err := s.orgs.GetByID(ctx, orgID)
	if err != nil {
		return nil, fmt.Errorf("getting organization: %w", err)
	}

	body := m.Snippet
	if m.Body != nil {
		body = *m.Body
	}
	in := DraftInput{
		FromEmail: m.FromEmail,
		Subject:   m.Subject,
		Body:      body,
		Tone:      tone,
		SenderOrg: org.Name,
	}
	if m.FromName != nil {
		in.FromName = *m.FromName
	}
	return s.assistant.DraftReply(ctx, in)
}

func (s *emailService) ScreenerSenders(ctx context.Context, orgID, userID int64, accountID *int64) ([]model.ScreenerSender, error) {
	account, err := s.resolveAccount(ctx, orgID, userID, accountID)
	if err != nil {
		return nil, err
	}
	senders, err := s.messages.ListScreenerSenders(ctx, account.ID)
	if err != nil {
		return nil, fmt.Errorf("listing screener senders: %w", err)
	}
	return senders, nil
}

func (s *emailService) DecideSender(ctx context.Context, orgID, userID int64, accountID *int64, sender string, decision model.SenderDecisionKind) (int64, error) {
	if !decision.Valid() {
		return 0, ErrInvalidDecision
	}
	sender = normalizeEmail(sender)
	if sender == "" {
		return 0, ErrInvalidEmail
	}
	account, err := s.resolveAccount(ctx, orgID, userID, accountID)
	if err != nil {
		return 0, err
	}

	if err := s.decisions.Upsert(ctx, &model.SenderDecision{
		ID:          id.New(),
		AccountID:   account.ID,
		SenderEmail: sender,
		Decision:    decision,
	}); err != nil {
		return 0, fmt.Errorf("storing sender decision: %w", err)
	}

	var moved int64
	if view, ok := triage.ViewForDecision(decision); ok {
		moved, err = s.messages.MoveSender(ctx, account.ID, sender, view)
	} else {
		moved, err = s.messages.DeleteBySender(ctx, account.ID, sender)
	}
	if err != nil {
		return 0, fmt.Errorf("re-filing sender messages: %w", err)
	}

	slog.InfoContext(ctx, "sender decided",
		"account_id", account.ID,
		"decision", decision,
		"messages", moved)
	return moved, nil
}

// FetchBody loads a message body from the provider and stores it.
func (s *emailService) FetchBody(ctx context.Context, messageID int64) error {
	m, err := s.messages.Get(ctx, messageID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("getting message: %w", err)
	}
	if m.Body != nil {
		return nil
	}
	account, err := s.accounts.Get(ctx, m.AccountID)
	if err != nil {
		return fmt.Errorf("getting email account: %w", err)
	}
	if account.Status != model.EmailAccountStatusActive {
		return nil
	}

	remote, err := s.mail.GetMessage(ctx, account.GrantID, m.ProviderMessageID)
	if err != nil {
		return err
	}
	if err := s.messages.SetBody(ctx, m.ID, remote.Body); err != nil {
		return fmt.Errorf("storing email body: %w", err)
	}
	return nil
}

// resolveAccount returns the requested account, or the user's first account
// when accountID is nil. Accounts belong to one user.
func (s *emailService) resolveAccount(ctx context.Context, orgID, userID int64, accountID *int64) (*model.EmailAccount, error) {
	if accountID != nil {
		account, err := s.accounts.GetByID(ctx, orgID, *accountID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return nil, ErrEmailAccountNotFound
			}
			return nil, fmt.Errorf("getting email account: %w", err)
		}
		if account.UserID != userID {
			return nil, ErrEmailAccountNotFound
		}
		return account, nil
	}

	accounts, err := s.accounts.ListByUser(ctx, orgID, userID)
	if err != nil {
		return nil, fmt.Errorf("listing email accounts: %w", err)
	}
	if len(accounts) == 0 {
		return nil, ErrEmailAccountNotFound
	}
	return &accounts[0], nil
}
