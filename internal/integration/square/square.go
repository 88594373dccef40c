// Package square verifies and decodes Square subscription webhooks.
package square

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"

	"github.com/tidwall/gjson"

	"switchyard.app/platform/core/config"
	"switchyard.app/platform/internal/model"
)

const (
	SignatureHeader = "X-Square-Hmacsha256-Signature"

	EventSubscriptionUpdated = "subscription.updated"
	EventInvoicePaymentMade  = "invoice.payment_made"
)

var ErrInvalidSignature = errors.New("invalid square signature")

type Verifier struct {
	key             string
	notificationURL string
}

func NewVerifier(cfg config.SquareConfig) *Verifier {
	return &Verifier{key: cfg.WebhookSignatureKey, notificationURL: cfg.NotificationURL}
}

// Verify checks the base64 HMAC-SHA256 of notification URL + body.
func (v *Verifier) Verify(body []byte, signature string) error {
	if v.key == "" || signature == "" {
		return ErrInvalidSignature
	}
	got, err := base64.StdEncoding.DecodeString(signature)
	if err != nil {
		return ErrInvalidSignature
	}
	mac := hmac.New(sha256.New, []byte(v.key))
	mac.Write([]byte(v.notificationURL))
	mac.Write(body)
	if !hmac.Equal(got, mac.Sum(nil)) {
		return ErrInvalidSignature
	}
	return nil
}

// Sign computes the header value Square would send for body.
func (v *Verifier) Sign(body []byte) string {
	mac := hmac.New(sha256.New, []byte(v.key))
	mac.Write([]byte(v.notificationURL))
	mac.Write(body)
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

type Event struct {
	ID             string
	Type           string
	SubscriptionID string
	Status         string
	InvoiceID      string
}

func ParseEvent(payload []byte) (*Event, error) {
	if !gjson.ValidBytes(payload) {
		return nil, fmt.Errorf("square event is not valid JSON")
	}
	root := gjson.ParseBytes(payload)
	ev := &Event{
		ID:   root.Get("event_id").String(),
		Type: root.Get("type").String(),
	}
	if ev.ID == "" || ev.Type == "" {
		return nil, fmt.Errorf("square event missing event_id or type")
	}
	obj := root.Get("data.object")
	switch ev.Type {
	case EventSubscriptionUpdated:
		ev.SubscriptionID = obj.Get("subscription.id").String()
		ev.Status = obj.Get("subscription.status").String()
	case EventInvoicePaymentMade:
		ev.InvoiceID = obj.Get("invoice.id").String()
		ev.SubscriptionID = obj.Get("invoice.subscription_id").String()
	}
	return ev, nil
}

// SubscriptionStatus maps Square's upper-case statuses onto ours.
func SubscriptionStatus(status string) (model.SubscriptionStatus, bool) {
	switch status {
	case "ACTIVE":
		return model.SubscriptionStatusActive, true
	case "PENDING":
		return model.SubscriptionStatusTrialing, true
	case "PAUSED", "DEACTIVATED":
		return model.SubscriptionStatusPastDue, true
	case "CANCELED":
		return model.SubscriptionStatusCanceled, true
	}
	return "", false
}
