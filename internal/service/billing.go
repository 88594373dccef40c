package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"switchyard.app/platform/common/id"
	"switchyard.app/platform/internal/billing"
	"switchyard.app/platform/internal/integration/notify"
	"switchyard.app/platform/internal/integration/square"
	"switchyard.app/platform/internal/integration/stripe"
	"switchyard.app/platform/internal/model"
	"switchyard.app/platform/internal/store"
)

const cycleBatchSize = 100

var (
	ErrSubscriptionNotFound = errors.New("subscription not found")
	ErrPlanNotPurchasable   = errors.New("plan cannot be purchased online")
	ErrInvalidUsage         = errors.New("usage minutes must be positive")
)

// Checkouts creates hosted payment pages.
type Checkouts interface {
	CreateCheckout(ctx context.Context, req stripe.CheckoutRequest) (*stripe.CheckoutSession, error)
}

type CycleSummary struct {
	Processed int `json:"processed"`
	Activated int `json:"activated"`
	Renewed   int `json:"renewed"`
	Canceled  int `json:"canceled"`
	Invoices  int `json:"invoices"`
	Failed    int `json:"failed"`
}

type QuoteInput struct {
	PlanCode         string
	Seats            int32
	EstimatedMinutes int32
	Interval         model.BillingInterval
	DiscountPercent  decimal.Decimal
}

type BillingService interface {
	Plans() []billing.Plan
	Quote(in QuoteInput) (billing.Quote, error)
	Current(ctx context.Context, orgID int64) (*model.Subscription, error)
	Checkout(ctx context.Context, orgID int64, planCode string, seats int32, customerEmail string) (*stripe.CheckoutSession, error)
	Cancel(ctx context.Context, orgID int64) (*model.Subscription, error)
	RecordUsage(ctx context.Context, orgID int64, minutes int32) error
	Invoices(ctx context.Context, orgID int64, limit, offset int) ([]model.Invoice, error)
	// RunCycle closes every subscription period that ended before now.
	RunCycle(ctx context.Context) (*CycleSummary, error)
	HandleStripeEvent(ctx context.Context, payload []byte) error
	HandleSquareEvent(ctx context.Context, payload []byte) error
	MaxContacts(ctx context.Context, orgID int64) (int64, error)
}

type billingService struct {
	catalog       *billing.Catalog
	subscriptions store.SubscriptionStore
	invoices      store.InvoiceStore
	orgs          store.OrganizationStore
	users         store.UserStore
	txRunner      TxRunner
	checkouts     Checkouts
	notifier      notify.Sender
	now           func() time.Time
}

func NewBillingService(
	catalog *billing.Catalog,
	subscriptions store.SubscriptionStore,
	invoices store.InvoiceStore,
	orgs store.OrganizationStore,
	users store.UserStore,
	txRunner TxRunner,
	checkouts Checkouts,
	notifier notify.Sender,
) BillingService {
	return &billingService{
		catalog:       catalog,
		subscriptions: subscriptions,
		invoices:      invoices,
		orgs:          orgs,
		users:         users,
		txRunner:      txRunner,
		checkouts:     checkouts,
		notifier:      notifier,
		now:           time.Now,
	}
}

func (s *billingService) Plans() []billing.Plan {
	return s.catalog.List()
}

func (s *billingService) Quote(in QuoteInput) (billing.Quote, error) {
	plan, err := s.catalog.Get(in.PlanCode)
	if err != nil {
		return billing.Quote{}, err
	}
	return billing.CalculateQuote(billing.QuoteRequest{
		Plan:             plan,
		Seats:            in.Seats,
		EstimatedMinutes: in.EstimatedMinutes,
		Interval:         in.Interval,
		DiscountPercent:  in.DiscountPercent,
	})
}

func (s *billingService) Current(ctx context.Context, orgID int64) (*model.Subscription, error) {
	sub, err := s.subscriptions.GetByOrganization(ctx, orgID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrSubscriptionNotFound
		}
		return nil, fmt.Errorf("getting subscription: %w", err)
	}
	return sub, nil
}

func (s *billingService) Checkout(ctx context.Context, orgID int64, planCode string, seats int32, customerEmail string) (*stripe.CheckoutSession, error) {
	plan, err := s.catalog.Get(planCode)
	if err != nil {
		return nil, err
	}
	if plan.StripePriceID == "" {
		return nil, ErrPlanNotPurchasable
	}
	if seats < 1 {
		seats = max(plan.IncludedSeats, 1)
	}

	session, err := s.checkouts.CreateCheckout(ctx, stripe.CheckoutRequest{
		OrganizationID: orgID,
		PriceID:        plan.StripePriceID,
		PlanCode:       plan.Code,
		Seats:          seats,
		CustomerEmail:  customerEmail,
	})
	if err != nil {
		return nil, err
	}
	slog.InfoContext(ctx, "checkout session created", "plan", plan.Code, "seats", seats)
	return session, nil
}

func (s *billingService) Cancel(ctx context.Context, orgID int64) (*model.Subscription, error) {
	sub, err := s.Current(ctx, orgID)
	if err != nil {
		return nil, err
	}
	if !sub.IsBillable() {
		return sub, nil
	}
	updated, err := s.subscriptions.SetCancelAtPeriodEnd(ctx, sub.ID, true)
	if err != nil {
		return nil, fmt.Errorf("canceling subscription: %w", err)
	}
	slog.InfoContext(ctx, "subscription set to cancel at period end", "subscription_id", sub.ID)
	return updated, nil
}

func (s *billingService) RecordUsage(ctx context.Context, orgID int64, minutes int32) error {
	if minutes <= 0 {
		return ErrInvalidUsage
	}
	if err := s.subscriptions.AddMinutes(ctx, orgID, minutes); err != nil {
		return fmt.Errorf("recording usage: %w", err)
	}
	return nil
}

func (s *billingService) Invoices(ctx context.Context, orgID int64, limit, offset int) ([]model.Invoice, error) {
	l, o := pageBounds(limit, offset)
	invoices, err := s.invoices.ListByOrganization(ctx, orgID, l, o)
	if err != nil {
		return nil, fmt.Errorf("listing invoices: %w", err)
	}
	return invoices, nil
}

func (s *billingService) MaxContacts(ctx context.Context, orgID int64) (int64, error) {
	sub, err := s.subscriptions.GetByOrganization(ctx, orgID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return 0, nil
		}
		return 0, fmt.Errorf("getting subscription: %w", err)
	}
	plan, err := s.catalog.Get(sub.PlanCode)
	if err != nil {
		return 0, nil
	}
	return plan.MaxContacts, nil
}

func (s *billingService) RunCycle(ctx context.Context) (*CycleSummary, error) {
	now := s.now()
	summary := &CycleSummary{}
	seen := map[int64]bool{}

	for {
		due, err := s.subscriptions.ListDue(ctx, now, cycleBatchSize)
		if err != nil {
			return summary, fmt.Errorf("listing due subscriptions: %w", err)
		}

		progressed := false
		for i := range due {
			sub := &due[i]
			if seen[sub.ID] {
				continue
			}
			seen[sub.ID] = true
			progressed = true

			result, invoice, err := s.closePeriod(ctx, sub.ID, now)
			if err != nil {
				summary.Failed++
				slog.ErrorContext(ctx, "billing cycle failed for subscription",
					"error", err,
					"subscription_id", sub.ID,
					"organization_id", sub.OrganizationID)
				continue
			}
			if result == nil {
				continue
			}
			summary.Processed++
			switch result.Action {
			case billing.CycleActivate:
				summary.Activated++
			case billing.CycleRenew:
				summary.Renewed++
			case billing.CycleCancel:
				summary.Canceled++
			}
			if invoice != nil {
				summary.Invoices++
				s.notifyInvoice(ctx, invoice)
			}
		}

		if !progressed || len(due) < cycleBatchSize {
			break
		}
	}

	slog.InfoContext(ctx, "billing cycle finished",
		"processed", summary.Processed,
		"activated", summary.Activated,
		"renewed", summary.Renewed,
		"canceled", summary.Canceled,
		"invoices", summary.Invoices,
		"failed", summary.Failed)
	return summary, nil
}

// closePeriod locks the subscription and applies one cycle. A nil result means
// another run already moved the period on. The returned invoice is non-nil
// only when this call created it.
func (s *billingService) closePeriod(ctx context.Context, subID int64, now time.Time) (*billing.CycleResult, *model.Invoice, error) {
	var result *billing.CycleResult
	var created *model.Invoice

	err := s.txRunner.WithTx(ctx, func(sp StoreProvider) error {
		sub, err := sp.Subscriptions().Lock(ctx, subID)
		if err != nil {
			return fmt.Errorf("locking subscription: %w", err)
		}
		if sub.CurrentPeriodEnd.After(now) || !sub.IsBillable() {
			return nil
		}

		plan, err := s.catalog.Get(sub.PlanCode)
		if err != nil {
			return err
		}
		r := billing.ComputeCycle(sub, plan)

		if r.Invoice != nil {
			r.Invoice.ID = id.New()
			inserted, err := sp.Invoices().CreateIfAbsent(ctx, r.Invoice)
			if err != nil {
				return fmt.Errorf("creating invoice: %w", err)
			}
			if inserted {
				created = r.Invoice
			}
		}

		if r.Action == billing.CycleCancel {
			if _, err := sp.Subscriptions().SetStatus(ctx, sub.ID, r.Status); err != nil {
				return fmt.Errorf("canceling subscription: %w", err)
			}
		} else {
			if _, err := sp.Subscriptions().Advance(ctx, sub.ID, r.Status, r.PeriodStart, r.PeriodEnd); err != nil {
				return fmt.Errorf("advancing subscription: %w", err)
			}
		}
		result = &r
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return result, created, nil
}

func (s *billingService) notifyInvoice(ctx context.Context, inv *model.Invoice) {
	if s.notifier == nil {
		return
	}
	org, err := s.orgs.GetByID(ctx, inv.OrganizationID)
	if err != nil {
		slog.WarnContext(ctx, "invoice notice skipped", "error", err, "invoice_id", inv.ID)
		return
	}
	owner, err := s.users.GetByID(ctx, org.OwnerUserID)
	if err != nil {
		slog.WarnContext(ctx, "invoice notice skipped", "error", err, "invoice_id", inv.ID)
		return
	}

	amount := decimal.New(inv.TotalCents, -2).StringFixed(2)
	msg := notify.Message{
		To:      owner.Email,
		Subject: fmt.Sprintf("Your %s invoice for %s", org.Name, inv.PeriodEnd.Format("January 2006")),
		Text: fmt.Sprintf("Invoice total: %s %s\nPeriod: %s to %s\nOverage minutes: %d\n",
			amount, inv.Currency,
			inv.PeriodStart.Format(time.DateOnly), inv.PeriodEnd.Format(time.DateOnly),
			inv.OverageMinutes),
	}
	if err := s.notifier.Send(ctx, msg); err != nil {
		slog.WarnContext(ctx, "failed to send invoice notice", "error", err, "invoice_id", inv.ID)
	}
}

func (s *billingService) HandleStripeEvent(ctx context.Context, payload []byte) error {
	ev, err := stripe.ParseEvent(payload)
	if err != nil {
		return err
	}

	switch ev.Type {
	case stripe.EventCheckoutCompleted:
		return s.activateCheckout(ctx, ev)
	case stripe.EventSubscriptionUpdated, stripe.EventSubscriptionDeleted:
		sub, ok, err := s.byProviderID(ctx, ev.SubscriptionID)
		if err != nil || !ok {
			return err
		}
		status, known := stripe.SubscriptionStatus(ev.Status)
		if ev.Type == stripe.EventSubscriptionDeleted {
			status, known = model.SubscriptionStatusCanceled, true
		}
		if known && status != sub.Status {
			if _, err := s.subscriptions.SetStatus(ctx, sub.ID, status); err != nil {
				return fmt.Errorf("syncing subscription status: %w", err)
			}
		}
		if ev.CancelAtPeriodEnd != sub.CancelAtPeriodEnd && status != model.SubscriptionStatusCanceled {
			if _, err := s.subscriptions.SetCancelAtPeriodEnd(ctx, sub.ID, ev.CancelAtPeriodEnd); err != nil {
				return fmt.Errorf("syncing cancel flag: %w", err)
			}
		}
		return nil
	case stripe.EventInvoicePaid:
		return s.settleInvoice(ctx, ev.SubscriptionID, ev.InvoiceID, model.InvoiceStatusPaid, model.SubscriptionStatusActive)
	case stripe.EventInvoicePaymentFailed:
		return s.settleInvoice(ctx, ev.SubscriptionID, ev.InvoiceID, model.InvoiceStatusFailed, model.SubscriptionStatusPastDue)
	default:
		slog.DebugContext(ctx, "ignoring stripe event", "type", ev.Type)
		return nil
	}
}

func (s *billingService) activateCheckout(ctx context.Context, ev *stripe.Event) error {
	if ev.OrganizationID == 0 {
		return fmt.Errorf("checkout %s has no organization reference", ev.ID)
	}
	sub, err := s.Current(ctx, ev.OrganizationID)
	if err != nil {
		return err
	}

	if ev.PlanCode != "" {
		if _, err := s.catalog.Get(ev.PlanCode); err != nil {
			return err
		}
		sub.PlanCode = ev.PlanCode
	}
	if ev.Seats > 0 {
		sub.Seats = ev.Seats
	}
	sub.Status = model.SubscriptionStatusActive
	sub.Provider = model.BillingProviderStripe
	sub.ProviderCustomerID = ptrOrNil(ev.CustomerID)
	sub.ProviderSubscriptionID = ptrOrNil(ev.SubscriptionID)

	if err := s.subscriptions.UpdatePlan(ctx, sub); err != nil {
		return fmt.Errorf("activating subscription: %w", err)
	}
	slog.InfoContext(ctx, "subscription activated from checkout",
		"subscription_id", sub.ID,
		"plan", sub.PlanCode,
		"seats", sub.Seats)
	return nil
}

func (s *billingService) settleInvoice(ctx context.Context, providerSubID, providerInvoiceID string, invoiceStatus model.InvoiceStatus, subStatus model.SubscriptionStatus) error {
	sub, ok, err := s.byProviderID(ctx, providerSubID)
	if err != nil || !ok {
		return err
	}
	if _, err := s.invoices.SetLatestOpenStatus(ctx, sub.ID, invoiceStatus, ptrOrNil(providerInvoiceID)); err != nil {
		return fmt.Errorf("updating invoice status: %w", err)
	}
	if sub.Status != subStatus && sub.Status != model.SubscriptionStatusCanceled {
		if _, err := s.subscriptions.SetStatus(ctx, sub.ID, subStatus); err != nil {
			return fmt.Errorf("updating subscription status: %w", err)
		}
	}
	return nil
}

func (s *billingService) HandleSquareEvent(ctx context.Context, payload []byte) error {
	ev, err := square.ParseEvent(payload)
	if err != nil {
		return err
	}

	switch ev.Type {
	case square.EventSubscriptionUpdated:
		sub, ok, err := s.byProviderID(ctx, ev.SubscriptionID)
		if err != nil || !ok {
			return err
		}
		status, known := square.SubscriptionStatus(ev.Status)
		if !known || status == sub.Status {
			return nil
		}
		if _, err := s.subscriptions.SetStatus(ctx, sub.ID, status); err != nil {
			return fmt.Errorf("syncing subscription status: %w", err)
		}
		return nil
	case square.EventInvoicePaymentMade:
		return s.settleInvoice(ctx, ev.SubscriptionID, ev.InvoiceID, model.InvoiceStatusPaid, model.SubscriptionStatusActive)
	default:
		slog.DebugContext(ctx, "ignoring square event", "type", ev.Type)
		return nil
	}
}

// byProviderID reports ok=false for subscriptions this platform does not track.
func (s *billingService) byProviderID(ctx context.Context, providerSubID string) (*model.Subscription, bool, error) {
	if providerSubID == "" {
		return nil, false, nil
	}
	sub, err := s.subscriptions.GetByProviderID(ctx, providerSubID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			slog.WarnContext(ctx, "payment event for unknown subscription", "provider_subscription_id", providerSubID)
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("getting subscription: %w", err)
	}
	return sub, true, nil
}
