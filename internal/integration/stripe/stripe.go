// Package stripe creates Checkout sessions and decodes verified webhook events.
package stripe

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	stripeapi "github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/checkout/session"
	"github.com/stripe/stripe-go/v82/webhook"
	"github.com/tidwall/gjson"

	"switchyard.app/platform/core/config"
	"switchyard.app/platform/internal/model"
)

const (
	EventCheckoutCompleted    = "checkout.session.completed"
	EventSubscriptionUpdated  = "customer.subscription.updated"
	EventSubscriptionDeleted  = "customer.subscription.deleted"
	EventInvoicePaid          = "invoice.paid"
	EventInvoicePaymentFailed = "invoice.payment_failed"

	metadataOrganizationID = "organization_id"
	metadataPlanCode       = "plan_code"
	metadataSeats          = "seats"
)

var (
	ErrNotConfigured    = errors.New("stripe is not configured")
	ErrInvalidSignature = errors.New("invalid stripe signature")
)

type CheckoutRequest struct {
	OrganizationID int64
	PriceID        string
	PlanCode       string
	Seats          int32
	CustomerEmail  string
}

type CheckoutSession struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

type Client struct {
	sessions      session.Client
	webhookSecret string
	successURL    string
	cancelURL     string
	enabled       bool
}

func New(cfg config.StripeConfig) *Client {
	return &Client{
		sessions:      session.Client{B: stripeapi.GetBackend(stripeapi.APIBackend), Key: cfg.SecretKey},
		webhookSecret: cfg.WebhookSecret,
		successURL:    cfg.SuccessURL,
		cancelURL:     cfg.CancelURL,
		enabled:       cfg.Enabled(),
	}
}

func (c *Client) CreateCheckout(ctx context.Context, req CheckoutRequest) (*CheckoutSession, error) {
	if !c.enabled {
		return nil, ErrNotConfigured
	}
	orgID := strconv.FormatInt(req.OrganizationID, 10)
	params := &stripeapi.CheckoutSessionParams{
		Mode:              stripeapi.String(string(stripeapi.CheckoutSessionModeSubscription)),
		SuccessURL:        stripeapi.String(c.successURL),
		CancelURL:         stripeapi.String(c.cancelURL),
		ClientReferenceID: stripeapi.String(orgID),
		LineItems: []*stripeapi.CheckoutSessionLineItemParams{{
			Price:    stripeapi.String(req.PriceID),
			Quantity: stripeapi.Int64(1),
		}},
		SubscriptionData: &stripeapi.CheckoutSessionSubscriptionDataParams{
			Metadata: map[string]string{
				metadataOrganizationID: orgID,
				metadataPlanCode:       req.PlanCode,
				metadataSeats:          strconv.Itoa(int(req.Seats)),
			},
		},
	}
	if req.CustomerEmail != "" {
		params.CustomerEmail = stripeapi.String(req.CustomerEmail)
	}
	params.Context = ctx
	params.AddMetadata(metadataOrganizationID, orgID)
	params.AddMetadata(metadataPlanCode, req.PlanCode)
	params.AddMetadata(metadataSeats, strconv.Itoa(int(req.Seats)))

	s, err := c.sessions.New(params)
	if err != nil {
		return nil, fmt.Errorf("creating checkout session: %w", err)
	}
	return &CheckoutSession{ID: s.ID, URL: s.URL}, nil
}

// Verify checks the Stripe-Signature header and returns the event id and type.
func (c *Client) Verify(payload []byte, signature string) (id, eventType string, err error) {
	if c.webhookSecret == "" {
		return "", "", ErrNotConfigured
	}
	event, err := webhook.ConstructEventWithOptions(payload, signature, c.webhookSecret,
		webhook.ConstructEventOptions{IgnoreAPIVersionMismatch: true})
	if err != nil {
		return "", "", fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	}
	return event.ID, string(event.Type), nil
}

// Event is the subset of a Stripe event the billing service acts on.
type Event struct {
	ID                string
	Type              string
	OrganizationID    int64
	PlanCode          string
	Seats             int32
	CustomerID        string
	SubscriptionID    string
	InvoiceID         string
	Status            string
	CancelAtPeriodEnd bool
	PeriodStart       *time.Time
	PeriodEnd         *time.Time
}

// ParseEvent decodes a verified event body.
func ParseEvent(payload []byte) (*Event, error) {
	if !gjson.ValidBytes(payload) {
		return nil, fmt.Errorf("stripe event is not valid JSON")
	}
	root := gjson.ParseBytes(payload)
	obj := root.Get("data.object")
	ev := &Event{
		ID:   root.Get("id").String(),
		Type: root.Get("type").String(),
	}
	if ev.ID == "" || ev.Type == "" {
		return nil, fmt.Errorf("stripe event missing id or type")
	}

	meta := obj.Get("metadata")
	switch ev.Type {
	case EventCheckoutCompleted:
		ev.CustomerID = obj.Get("customer").String()
		ev.SubscriptionID = obj.Get("subscription").String()
		ev.OrganizationID = obj.Get("client_reference_id").Int()
	case EventSubscriptionUpdated, EventSubscriptionDeleted:
		ev.SubscriptionID = obj.Get("id").String()
		ev.CustomerID = obj.Get("customer").String()
		ev.Status = obj.Get("status").String()
		ev.CancelAtPeriodEnd = obj.Get("cancel_at_period_end").Bool()
		ev.PeriodStart = unixField(obj, "current_period_start", "items.data.0.current_period_start")
		ev.PeriodEnd = unixField(obj, "current_period_end", "items.data.0.current_period_end")
	case EventInvoicePaid, EventInvoicePaymentFailed:
		ev.InvoiceID = obj.Get("id").String()
		ev.CustomerID = obj.Get("customer").String()
		ev.SubscriptionID = firstString(obj, "subscription", "parent.subscription_details.subscription")
		meta = firstResult(obj, "parent.subscription_details.metadata", "subscription_details.metadata")
	}

	if ev.OrganizationID == 0 {
		ev.OrganizationID = meta.Get(metadataOrganizationID).Int()
	}
	ev.PlanCode = meta.Get(metadataPlanCode).String()
	ev.Seats = int32(meta.Get(metadataSeats).Int())
	return ev, nil
}

// SubscriptionStatus maps a Stripe subscription status onto ours.
func SubscriptionStatus(status string) (model.SubscriptionStatus, bool) {
	switch status {
	case "trialing":
		return model.SubscriptionStatusTrialing, true
	case "active":
		return model.SubscriptionStatusActive, true
	case "past_due", "unpaid", "incomplete":
		return model.SubscriptionStatusPastDue, true
	case "canceled", "incomplete_expired":
		return model.SubscriptionStatusCanceled, true
	}
	return "", false
}

func unixField(obj gjson.Result, paths ...string) *time.Time {
	for _, p := range paths {
		if v := obj.Get(p); v.Exists() && v.Int() > 0 {
			t := time.Unix(v.Int(), 0).UTC()
			return &t
		}
	}
	return nil
}

func firstString(obj gjson.Result, paths ...string) string {
	for _, p := range paths {
		if s := obj.Get(p).String(); s != "" {
			return s
		}
	}
	return ""
}

func firstResult(obj gjson.Result, paths ...string) gjson.Result {
	for _, p := range paths {
		if v := obj.Get(p); v.Exists() {
			return v
		}
	}
	return gjson.Result{}
}
