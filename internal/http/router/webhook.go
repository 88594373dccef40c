package router

import (
	"github.com/gin-gonic/gin"

	"switchyard.app/platform/internal/http/handler/webhook"
	"switchyard.app/platform/internal/service"
)

// WebhookRouter mounts provider callbacks. Each handler authenticates its
// own payloads, so no session middleware applies.
func WebhookRouter(rg *gin.RouterGroup, ingester service.WebhookIngestService, cfg RouterConfig) {
	billing := webhook.NewBillingWebhookHandler(cfg.Stripe, cfg.Square, ingester)
	rg.POST("/stripe", billing.Stripe)
	rg.POST("/square", billing.Square)

	nylas := webhook.NewNylasWebhookHandler(cfg.Nylas, ingester)
	rg.GET("/nylas", nylas.Challenge)
	rg.POST("/nylas", nylas.HandleEvent)

	voice := webhook.NewVoiceWebhookHandler(cfg.Voice, ingester)
	rg.POST("/voice/:provider", voice.HandleEvent)
}
