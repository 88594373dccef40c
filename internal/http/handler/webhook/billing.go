package webhook

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"switchyard.app/platform/internal/integration/square"
	"switchyard.app/platform/internal/model"
	"switchyard.app/platform/internal/service"
)

const stripeSignatureHeader = "Stripe-Signature"

type StripeVerifier interface {
	Verify(payload []byte, signature string) (id, eventType string, err error)
}

type SquareVerifier interface {
	Verify(body []byte, signature string) error
}

type BillingWebhookHandler struct {
	stripe   StripeVerifier
	square   SquareVerifier
	ingester service.WebhookIngestService
}

func NewBillingWebhookHandler(stripe StripeVerifier, square SquareVerifier, ingester service.WebhookIngestService) *BillingWebhookHandler {
	return &BillingWebhookHandler{
		stripe:   stripe,
		square:   square,
		ingester: ingester,
	}
}

func (h *BillingWebhookHandler) Stripe(c *gin.Context) {
	body, ok := readBody(c)
	if !ok {
		return
	}

	id, eventType, err := h.stripe.Verify(body, c.GetHeader(stripeSignatureHeader))
	if err != nil {
		slog.WarnContext(c.Request.Context(), "rejected stripe webhook", "error", err)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid signature"})
		return
	}

	ingest(c, h.ingester, model.EventSourceStripe, eventType, id, body)
}

func (h *BillingWebhookHandler) Square(c *gin.Context) {
	body, ok := readBody(c)
	if !ok {
		return
	}

	if err := h.square.Verify(body, c.GetHeader(square.SignatureHeader)); err != nil {
		slog.WarnContext(c.Request.Context(), "rejected square webhook", "error", err)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid signature"})
		return
	}

	ev, err := square.ParseEvent(body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ingest(c, h.ingester, model.EventSourceSquare, ev.Type, ev.ID, body)
}
