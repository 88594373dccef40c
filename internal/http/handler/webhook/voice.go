package webhook

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"switchyard.app/platform/internal/integration/voice"
	"switchyard.app/platform/internal/model"
	"switchyard.app/platform/internal/service"
)

type VoiceProviders interface {
	Get(name model.VoiceProvider) (voice.Provider, error)
}

type VoiceWebhookHandler struct {
	providers VoiceProviders
	ingester  service.WebhookIngestService
}

func NewVoiceWebhookHandler(providers VoiceProviders, ingester service.WebhookIngestService) *VoiceWebhookHandler {
	return &VoiceWebhookHandler{providers: providers, ingester: ingester}
}

func (h *VoiceWebhookHandler) HandleEvent(c *gin.Context) {
	ctx := c.Request.Context()

	name := model.VoiceProvider(c.Param("provider"))
	provider, err := h.providers.Get(name)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown provider"})
		return
	}

	body, ok := readBody(c)
	if !ok {
		return
	}

	if err := provider.Authenticate(c.Request.Header, body); err != nil {
		slog.WarnContext(ctx, "rejected voice webhook", "provider", name, "error", err)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid signature"})
		return
	}

	ev, err := provider.ParseEvent(body)
	if errors.Is(err, voice.ErrIgnoredEvent) {
		c.JSON(http.StatusOK, gin.H{"status": "ignored"})
		return
	}
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ingest(c, h.ingester, model.EventSource(name), string(ev.Kind), ev.ExternalID(), body)
}
