// Package bootstrap builds the integration clients shared by the server,
// the worker and platformctl.
package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"switchyard.app/platform/common/llm"
	"switchyard.app/platform/core/config"
	"switchyard.app/platform/internal/billing"
	"switchyard.app/platform/internal/calltoken"
	"switchyard.app/platform/internal/integration/notify"
	"switchyard.app/platform/internal/integration/nylas"
	"switchyard.app/platform/internal/integration/square"
	"switchyard.app/platform/internal/integration/stripe"
	"switchyard.app/platform/internal/integration/voice"
	"switchyard.app/platform/internal/queue"
	"switchyard.app/platform/internal/search"
	"switchyard.app/platform/internal/service"
)

// Integrations holds the concrete provider clients. Webhook handlers need
// the concrete verifiers too, so they are kept alongside the service deps.
type Integrations struct {
	Catalog *billing.Catalog
	Stripe  *stripe.Client
	Square  *square.Verifier
	Nylas   *nylas.Client
	Voice   *voice.Registry
	Signer  *calltoken.Signer
	Index   search.ContactIndex
	LLM     llm.Client
}

func NewIntegrations(ctx context.Context, cfg config.Config) (*Integrations, error) {
	catalog, err := billing.DefaultCatalog()
	if err != nil {
		return nil, fmt.Errorf("loading plan catalog: %w", err)
	}

	in := &Integrations{
		Catalog: catalog,
		Stripe:  stripe.New(cfg.Stripe),
		Square:  square.NewVerifier(cfg.Square),
		Nylas:   nylas.New(cfg.Nylas),
		Voice:   voice.NewRegistry(voice.NewVapi(cfg.Vapi), voice.NewRetell(cfg.Retell)),
		Signer:  calltoken.NewSigner(cfg.CallToken.Secret, cfg.CallToken.TTL),
	}

	if cfg.Typesense.URL != "" {
		in.Index = search.NewTypesenseIndex(cfg.Typesense.URL, cfg.Typesense.APIKey, cfg.Typesense.Collection)
	} else {
		slog.InfoContext(ctx, "contact search index disabled (no typesense url configured)")
	}

	if cfg.AssistantLLM.APIKey != "" {
		client, err := llm.New(ctx, llm.Config{
			Provider:  cfg.AssistantLLM.Provider,
			APIKey:    cfg.AssistantLLM.APIKey,
			BaseURL:   cfg.AssistantLLM.BaseURL,
			Model:     cfg.AssistantLLM.Model,
			MaxTokens: cfg.AssistantLLM.MaxTokens,
		})
		if err != nil {
			return nil, fmt.Errorf("creating assistant llm client: %w", err)
		}
		in.LLM = client
	} else {
		slog.InfoContext(ctx, "assistant disabled (no llm api key configured)")
	}

	return in, nil
}

// Deps assembles service dependencies. Bodies is attached later by the
// worker through Services.SetBodyQueue.
func (in *Integrations) Deps(cfg config.Config, producer queue.Producer) service.Deps {
	return service.Deps{
		Catalog:      in.Catalog,
		Producer:     producer,
		Identity:     service.NewWorkOSProvider(cfg.WorkOS),
		Mail:         in.Nylas,
		Checkouts:    in.Stripe,
		Notifier:     notify.New(cfg.Resend),
		Voice:        in.Voice,
		Signer:       in.Signer,
		Index:        in.Index,
		LLM:          in.LLM,
		DashboardURL: cfg.DashboardURL,
	}
}
