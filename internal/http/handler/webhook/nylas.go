package webhook

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"switchyard.app/platform/internal/integration/nylas"
	"switchyard.app/platform/internal/model"
	"switchyard.app/platform/internal/service"
)

type NylasVerifier interface {
	VerifySignature(body []byte, signature string) bool
}

type NylasWebhookHandler struct {
	verifier NylasVerifier
	ingester service.WebhookIngestService
}

func NewNylasWebhookHandler(verifier NylasVerifier, ingester service.WebhookIngestService) *NylasWebhookHandler {
	return &NylasWebhookHandler{verifier: verifier, ingester: ingester}
}

// Challenge answers the subscription handshake by echoing the challenge.
func (h *NylasWebhookHandler) Challenge(c *gin.Context) {
	challenge := c.Query("challenge")
	if challenge == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "challenge is required"})
		return
	}
	c.String(http.StatusOK, challenge)
}

func (h *NylasWebhookHandler) HandleEvent(c *gin.Context) {
	body, ok := readBody(c)
	if !ok {
		return
	}

	if !h.verifier.VerifySignature(body, c.GetHeader(nylas.SignatureHeader)) {
		slog.WarnContext(c.Request.Context(), "rejected nylas webhook")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid signature"})
		return
	}

	ev, err := nylas.ParseEnvelope(body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ingest(c, h.ingester, model.EventSourceNylas, ev.Type, ev.ID, body)
}
