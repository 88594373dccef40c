package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"switchyard.app/platform/internal/calltoken"
	"switchyard.app/platform/internal/integration/nylas"
	"switchyard.app/platform/internal/integration/voice"
	"switchyard.app/platform/internal/model"
	"switchyard.app/platform/internal/store"
)

// WebhookProcessor applies stored webhook events. It runs in the worker.
type WebhookProcessor interface {
	ProcessEvent(ctx context.Context, eventLogID int64) error
}

type webhookProcessor struct {
	eventLogs store.EventLogStore
	billing   BillingService
	email     EmailService
	calls     CallService
	providers VoiceProviders
}

func NewWebhookProcessor(eventLogs store.EventLogStore, billing BillingService, email EmailService, calls CallService, providers VoiceProviders) WebhookProcessor {
	return &webhookProcessor{
		eventLogs: eventLogs,
		billing:   billing,
		email:     email,
		calls:     calls,
		providers: providers,
	}
}

func (p *webhookProcessor) ProcessEvent(ctx context.Context, eventLogID int64) error {
	ev, err := p.eventLogs.GetByID(ctx, eventLogID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			slog.WarnContext(ctx, "event log not found", "event_log_id", eventLogID)
			return nil
		}
		return fmt.Errorf("getting event log: %w", err)
	}
	if ev.ProcessedAt != nil {
		slog.DebugContext(ctx, "event already processed", "event_log_id", ev.ID)
		return nil
	}

	err = p.dispatch(ctx, ev)
	switch {
	case err == nil:
		if err := p.eventLogs.MarkProcessed(ctx, ev.ID); err != nil {
			return fmt.Errorf("marking event processed: %w", err)
		}
		slog.InfoContext(ctx, "webhook event processed",
			"event_log_id", ev.ID,
			"source", ev.Source,
			"event_type", ev.EventType)
		return nil
	case isPermanent(err):
		slog.WarnContext(ctx, "webhook event rejected",
			"error", err,
			"event_log_id", ev.ID,
			"source", ev.Source)
		if markErr := p.eventLogs.MarkFailed(ctx, ev.ID, err.Error()); markErr != nil {
			return fmt.Errorf("marking event failed: %w", markErr)
		}
		return nil
	default:
		if markErr := p.eventLogs.MarkFailed(ctx, ev.ID, err.Error()); markErr != nil {
			slog.ErrorContext(ctx, "failed to record event error", "error", markErr, "event_log_id", ev.ID)
		}
		return err
	}
}

func (p *webhookProcessor) dispatch(ctx context.Context, ev *model.EventLog) error {
	switch ev.Source {
	case model.EventSourceStripe:
		return p.billing.HandleStripeEvent(ctx, ev.Payload)
	case model.EventSourceSquare:
		return p.billing.HandleSquareEvent(ctx, ev.Payload)
	case model.EventSourceNylas:
		parsed, err := nylas.ParseWebhook(ev.Payload)
		if err != nil {
			return permanent(err)
		}
		return p.email.HandleWebhook(ctx, parsed)
	case model.EventSourceVapi, model.EventSourceRetell:
		provider, err := p.providers.Get(model.VoiceProvider(ev.Source))
		if err != nil {
			return permanent(err)
		}
		callEvent, err := provider.ParseEvent(ev.Payload)
		if err != nil {
			if errors.Is(err, voice.ErrIgnoredEvent) {
				return nil
			}
			return permanent(err)
		}
		return p.calls.HandleEvent(ctx, callEvent)
	default:
		return permanent(fmt.Errorf("unknown event source %q", ev.Source))
	}
}

type permanentError struct{ err error }

func (e permanentError) Error() string { return e.err.Error() }
func (e permanentError) Unwrap() error { return e.err }

func permanent(err error) error { return permanentError{err: err} }

// isPermanent reports errors that retrying cannot fix.
func isPermanent(err error) bool {
	var p permanentError
	return errors.As(err, &p) ||
		errors.Is(err, calltoken.ErrInvalidToken) ||
		errors.Is(err, ErrCallNotFound)
}
