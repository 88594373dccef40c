package service_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"switchyard.app/platform/internal/integration/nylas"
	"switchyard.app/platform/internal/model"
	"switchyard.app/platform/internal/service"
	"switchyard.app/platform/internal/store"
)

type mockEmailAccountStore struct {
	store.EmailAccountStore
	account *model.EmailAccount
	expired []string
}

func (m *mockEmailAccountStore) GetByGrantID(_ context.Context, grantID string) (*model.EmailAccount, error) {
	if m.account == nil || m.account.GrantID != grantID {
		return nil, store.ErrNotFound
	}
	return m.account, nil
}

func (m *mockEmailAccountStore) GetByID(_ context.Context, orgID, id int64) (*model.EmailAccount, error) {
	if m.account == nil || m.account.ID != id || m.account.OrganizationID != orgID {
		return nil, store.ErrNotFound
	}
	return m.account, nil
}

func (m *mockEmailAccountStore) ListByUser(_ context.Context, orgID, userID int64) ([]model.EmailAccount, error) {
	if m.account == nil || m.account.OrganizationID != orgID || m.account.UserID != userID {
		return nil, nil
	}
	return []model.EmailAccount{*m.account}, nil
}

func (m *mockEmailAccountStore) SetStatusByGrant(_ context.Context, grantID string, _ model.EmailAccountStatus) error {
	m.expired = append(m.expired, grantID)
	return nil
}

type mockEmailMessageStore struct {
	store.EmailMessageStore
	stored  []*model.EmailMessage
	bodies  map[int64]string
	moved   map[string]model.EmailView
	deleted []string
	synced  []string
	count   int64
}

func (m *mockEmailMessageStore) Upsert(_ context.Context, msg *model.EmailMessage) error {
	m.stored = append(m.stored, msg)
	return nil
}

func (m *mockEmailMessageStore) SetBody(_ context.Context, id int64, body string) error {
	if m.bodies == nil {
		m.bodies = map[int64]string{}
	}
	m.bodies[id] = body
	return nil
}

func (m *mockEmailMessageStore) SyncFlags(_ context.Context, _ int64, providerMessageID string, _, _ bool) error {
	m.synced = append(m.synced, providerMessageID)
	return nil
}

func (m *mockEmailMessageStore) MoveSender(_ context.Context, _ int64, sender string, view model.EmailView) (int64, error) {
	if m.moved == nil {
		m.moved = map[string]model.EmailView{}
	}
	m.moved[sender] = view
	return m.count, nil
}

func (m *mockEmailMessageStore) DeleteBySender(_ context.Context, _ int64, sender string) (int64, error) {
	m.deleted = append(m.deleted, sender)
	return m.count, nil
}

type mockSenderDecisionStore struct {
	store.SenderDecisionStore
	decisions map[string]model.SenderDecisionKind
	upserted  []*model.SenderDecision
}

func (m *mockSenderDecisionStore) Get(_ context.Context, accountID int64, sender string) (*model.SenderDecision, error) {
	d, ok := m.decisions[sender]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &model.SenderDecision{AccountID: accountID, SenderEmail: sender, Decision: d}, nil
}

func (m *mockSenderDecisionStore) Upsert(_ context.Context, d *model.SenderDecision) error {
	m.upserted = append(m.upserted, d)
	return nil
}

var _ = Describe("EmailService", func() {
	var (
		svc       service.EmailService
		accounts  *mockEmailAccountStore
		messages  *mockEmailMessageStore
		decisions *mockSenderDecisionStore
		contacts  *mockContactStore
		triggers  *mockTriggers
		ctx       context.Context
	)

	BeforeEach(func() {
		ctx = context.Background()
		accounts = &mockEmailAccountStore{account: &model.EmailAccount{
			ID:             40,
			OrganizationID: 7,
			UserID:         3,
			GrantID:        "grant_1",
			Status:         model.EmailAccountStatusActive,
		}}
		messages = &mockEmailMessageStore{}
		decisions = &mockSenderDecisionStore{decisions: map[string]model.SenderDecisionKind{}}
		contacts = &mockContactStore{}
		triggers = &mockTriggers{}
		svc = service.NewEmailService(accounts, messages, decisions, contacts, &mockOrganizationStore{}, nil, nil, nil, triggers)
	})

	created := func(from, subject string) *nylas.WebhookEvent {
		return &nylas.WebhookEvent{
			ID:      "n_1",
			Type:    nylas.EventMessageCreated,
			GrantID: "grant_1",
			Message: &nylas.Message{
				ID:      "m_1",
				GrantID: "grant_1",
				Subject: subject,
				Body:    "<p>Hello</p>",
				From:    []nylas.Participant{{Name: "Sender", Email: from}},
				To:      []nylas.Participant{{Email: "ada@example.com"}},
				Unread:  true,
			},
		}
	}

	Describe("HandleWebhook", func() {
		It("drops mail from a blocked sender", func() {
			decisions.decisions["spam@example.com"] = model.SenderDecisionBlocked

			Expect(svc.HandleWebhook(ctx, created("Spam@Example.com", "Deal"))).To(Succeed())
			Expect(messages.stored).To(BeEmpty())
			Expect(triggers.events).To(BeEmpty())
		})

		It("screens a first-time sender and stores the body", func() {
			Expect(svc.HandleWebhook(ctx, created("stranger@example.com", "Hello"))).To(Succeed())

			Expect(messages.stored).To(HaveLen(1))
			msg := messages.stored[0]
			Expect(msg.View).To(Equal(model.EmailViewScreener))
			Expect(msg.AccountID).To(Equal(int64(40)))
			Expect(msg.ProviderMessageID).To(Equal("m_1"))
			Expect(msg.ContactID).To(BeNil())
			Expect(messages.bodies).To(HaveKeyWithValue(msg.ID, "<p>Hello</p>"))
			Expect(triggers.events).To(ConsistOf(emitted{orgID: 7, trigger: model.TriggerEmailReceived, subjectID: msg.ID}))
		})

		It("files mail by the sender decision", func() {
			decisions.decisions["news@shop.com"] = model.SenderDecisionPaperTrail

			Expect(svc.HandleWebhook(ctx, created("news@shop.com", "Weekly picks"))).To(Succeed())
			Expect(messages.stored[0].View).To(Equal(model.EmailViewPaperTrail))
		})

		It("links mail from a known contact and files it in the imbox", func() {
			contacts.getByEmailFn = func(_ context.Context, _ int64, email string) (*model.Contact, error) {
				return &model.Contact{ID: 100, Email: &email}, nil
			}

			Expect(svc.HandleWebhook(ctx, created("ada@acme.com", "Lunch?"))).To(Succeed())
			Expect(messages.stored[0].View).To(Equal(model.EmailViewImbox))
			Expect(*messages.stored[0].ContactID).To(Equal(int64(100)))
		})

		It("ignores grants that are not connected", func() {
			ev := created("stranger@example.com", "Hello")
			ev.GrantID = "grant_other"

			Expect(svc.HandleWebhook(ctx, ev)).To(Succeed())
			Expect(messages.stored).To(BeEmpty())
		})

		It("syncs flags on message updates", func() {
			ev := created("stranger@example.com", "Hello")
			ev.Type = nylas.EventMessageUpdated

			Expect(svc.HandleWebhook(ctx, ev)).To(Succeed())
			Expect(messages.synced).To(ConsistOf("m_1"))
			Expect(messages.stored).To(BeEmpty())
		})

		It("expires the account when the grant expires", func() {
			Expect(svc.HandleWebhook(ctx, &nylas.WebhookEvent{Type: nylas.EventGrantExpired, GrantID: "grant_1"})).To(Succeed())
			Expect(accounts.expired).To(ConsistOf("grant_1"))
		})
	})

	Describe("DecideSender", func() {
		It("stores the decision and moves the sender's stored mail", func() {
			messages.count = 4

			moved, err := svc.DecideSender(ctx, 7, 3, nil, " News@Shop.com ", model.SenderDecisionFeed)
			Expect(err).NotTo(HaveOccurred())
			Expect(moved).To(Equal(int64(4)))
			Expect(messages.moved).To(HaveKeyWithValue("news@shop.com", model.EmailViewFeed))
			Expect(decisions.upserted).To(HaveLen(1))
			Expect(decisions.upserted[0].AccountID).To(Equal(int64(40)))
			Expect(decisions.upserted[0].Decision).To(Equal(model.SenderDecisionFeed))
		})

		It("deletes stored mail when the sender is blocked", func() {
			messages.count = 2

			moved, err := svc.DecideSender(ctx, 7, 3, nil, "spam@example.com", model.SenderDecisionBlocked)
			Expect(err).NotTo(HaveOccurred())
			Expect(moved).To(Equal(int64(2)))
			Expect(messages.deleted).To(ConsistOf("spam@example.com"))
			Expect(messages.moved).To(BeEmpty())
		})

		It("rejects unknown decisions", func() {
			_, err := svc.DecideSender(ctx, 7, 3, nil, "a@b.com", "archive")
			Expect(err).To(MatchError(service.ErrInvalidDecision))
		})

		It("does not decide on another user's account", func() {
			_, err := svc.DecideSender(ctx, 7, 4, int64Ptr(40), "a@b.com", model.SenderDecisionImbox)
			Expect(err).To(MatchError(service.ErrEmailAccountNotFound))
		})
	})
})
