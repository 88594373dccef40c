package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"switchyard.app/platform/common/logger"
	"switchyard.app/platform/internal/integration/voice"
	"switchyard.app/platform/internal/model"
	"switchyard.app/platform/internal/queue"
	"switchyard.app/platform/internal/scheduler"
	"switchyard.app/platform/internal/store"
)

var ErrCallNotFound = errors.New("call not found")

type CallService interface {
	Get(ctx context.Context, orgID, id int64) (*model.CallRecord, error)
	List(ctx context.Context, orgID int64, contactID *int64, limit, offset int) ([]model.CallRecord, error)
	// HandleEvent applies a normalised provider event to its call record.
	HandleEvent(ctx context.Context, ev *voice.CallEvent) error
	Summarize(ctx context.Context, callID int64) error
}

type callService struct {
	calls     store.CallRecordStore
	campaigns store.CampaignStore
	txRunner  TxRunner
	signer    CallTokenSigner
	assistant Assistant
	producer  queue.Producer
	triggers  TriggerEmitter
	now       func() time.Time
}

func NewCallService(
	calls store.CallRecordStore,
	campaigns store.CampaignStore,
	txRunner TxRunner,
	signer CallTokenSigner,
	assistant Assistant,
	producer queue.Producer,
	triggers TriggerEmitter,
) CallService {
	return &callService{
		calls:     calls,
		campaigns: campaigns,
		txRunner:  txRunner,
		signer:    signer,
		assistant: assistant,
		producer:  producer,
		triggers:  triggers,
		now:       time.Now,
	}
}

func (s *callService) Get(ctx context.Context, orgID, id int64) (*model.CallRecord, error) {
	c, err := s.calls.GetForOrganization(ctx, orgID, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrCallNotFound
		}
		return nil, fmt.Errorf("getting call: %w", err)
	}
	return c, nil
}

func (s *callService) List(ctx context.Context, orgID int64, contactID *int64, limit, offset int) ([]model.CallRecord, error) {
	l, o := pageBounds(limit, offset)
	calls, err := s.calls.List(ctx, orgID, contactID, l, o)
	if err != nil {
		return nil, fmt.Errorf("listing calls: %w", err)
	}
	return calls, nil
}

func (s *callService) HandleEvent(ctx context.Context, ev *voice.CallEvent) error {
	call, err := s.resolve(ctx, ev)
	if err != nil {
		return err
	}
	ctx = logger.WithLogFields(ctx, logger.LogFields{
		OrganizationID: &call.OrganizationID,
		CampaignID:     call.CampaignID,
	})

	if call.Status.IsTerminal() {
		if ev.Summary != "" && call.Summary == nil {
			return s.mergeSummary(ctx, call, ev)
		}
		slog.DebugContext(ctx, "ignoring event for finished call", "call_id", call.ID, "kind", ev.Kind)
		return nil
	}

	if call.ProviderCallID == nil && ev.ProviderCallID != "" {
		if err := s.calls.SetProviderCallID(ctx, call.ID, ev.ProviderCallID); err != nil {
			return fmt.Errorf("storing provider call id: %w", err)
		}
	}

	if ev.Kind == voice.EventEnded || ev.Status.IsTerminal() {
		return s.complete(ctx, call, ev)
	}

	if ev.Status == model.CallStatusInProgress && call.Status != model.CallStatusInProgress {
		startedAt := ev.StartedAt
		if startedAt == nil {
			now := s.now()
			startedAt = &now
		}
		if _, err := s.calls.UpdateStatus(ctx, call.ID, model.CallStatusInProgress, startedAt); err != nil {
			return fmt.Errorf("updating call status: %w", err)
		}
		slog.InfoContext(ctx, "call in progress", "call_id", call.ID)
	}
	return nil
}

// resolve finds the call an event belongs to, preferring the signed call token.
func (s *callService) resolve(ctx context.Context, ev *voice.CallEvent) (*model.CallRecord, error) {
	if ev.CallToken != "" {
		binding, err := s.signer.Verify(ev.CallToken)
		if err != nil {
			return nil, err
		}
		call, err := s.calls.GetByID(ctx, binding.CallID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return nil, ErrCallNotFound
			}
			return nil, fmt.Errorf("getting call: %w", err)
		}
		if call.OrganizationID != binding.OrganizationID {
			return nil, ErrCallNotFound
		}
		return call, nil
	}

	if ev.ProviderCallID == "" {
		return nil, ErrCallNotFound
	}
	call, err := s.calls.GetByProviderCallID(ctx, ev.Provider, ev.ProviderCallID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrCallNotFound
		}
		return nil, fmt.Errorf("getting call by provider id: %w", err)
	}
	return call, nil
}

// complete records the end of a call, settles its enrollment and books the
// billed minutes in one transaction.
func (s *callService) complete(ctx context.Context, call *model.CallRecord, ev *voice.CallEvent) error {
	now := s.now()
	status := ev.Status
	if !status.IsTerminal() {
		status = model.CallStatusCompleted
	}

	call.Status = status
	call.DurationSeconds = max(ev.DurationSeconds, 0)
	call.CostCents = ev.CostCents
	call.RecordingURL = ptrOrNil(ev.RecordingURL)
	call.Transcript = ptrOrNil(ev.Transcript)
	call.Summary = ptrOrNil(ev.Summary)
	call.Outcome = ptrOrNil(ev.Outcome)
	if ev.StartedAt != nil {
		call.StartedAt = ev.StartedAt
	}
	call.EndedAt = ev.EndedAt
	if call.EndedAt == nil {
		call.EndedAt = &now
	}

	var campaign *model.Campaign
	if call.CampaignID != nil {
		c, err := s.campaigns.Get(ctx, *call.CampaignID)
		if err != nil && !errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("getting campaign: %w", err)
		}
		campaign = c
	}

	err := s.txRunner.WithTx(ctx, func(sp StoreProvider) error {
		if err := sp.CallRecords().Complete(ctx, call); err != nil {
			return fmt.Errorf("completing call: %w", err)
		}

		if campaign != nil && call.CampaignContactID != nil {
			enrollment, err := sp.CampaignContacts().GetByID(ctx, *call.CampaignContactID)
			if err != nil {
				return fmt.Errorf("getting enrollment: %w", err)
			}
			next := scheduler.AfterCall(campaign, enrollment.Attempts, status, now)
			outcome := string(status)
			if call.Outcome != nil {
				outcome = *call.Outcome
			}
			if _, err := sp.CampaignContacts().SetOutcome(ctx, enrollment.ID, next.Status, next.NextAttemptAt, &outcome); err != nil {
				return fmt.Errorf("updating enrollment: %w", err)
			}
		}

		if minutes := call.BilledMinutes(); minutes > 0 {
			err := sp.Subscriptions().AddMinutes(ctx, call.OrganizationID, minutes)
			if err != nil && !errors.Is(err, store.ErrNotFound) {
				return fmt.Errorf("recording call minutes: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	slog.InfoContext(ctx, "call completed",
		"call_id", call.ID,
		"status", status,
		"duration_seconds", call.DurationSeconds,
		"billed_minutes", call.BilledMinutes())

	if call.Transcript != nil && call.Summary == nil && s.producer != nil {
		if err := s.producer.Enqueue(ctx, queue.CallSummaryTask(call.OrganizationID, call.ID)); err != nil {
			slog.WarnContext(ctx, "failed to enqueue call summary", "error", err, "call_id", call.ID)
		}
	}
	if s.triggers != nil {
		s.triggers.Emit(ctx, call.OrganizationID, model.TriggerCallCompleted, call.ID)
	}
	return nil
}

// mergeSummary stores a provider summary that arrives after the call ended.
func (s *callService) mergeSummary(ctx context.Context, call *model.CallRecord, ev *voice.CallEvent) error {
	outcome := call.Outcome
	if outcome == nil {
		outcome = ptrOrNil(ev.Outcome)
	}
	if _, err := s.calls.SetSummary(ctx, call.ID, ev.Summary, outcome); err != nil {
		return fmt.Errorf("storing call summary: %w", err)
	}
	slog.InfoContext(ctx, "late call summary stored", "call_id", call.ID, "event", ev.Name)
	return nil
}

func (s *callService) Summarize(ctx context.Context, callID int64) error {
	call, err := s.calls.GetByID(ctx, callID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			slog.WarnContext(ctx, "call for summary not found", "call_id", callID)
			return nil
		}
		return fmt.Errorf("getting call: %w", err)
	}
	if call.Transcript == nil || call.Summary != nil {
		return nil
	}

	summary, err := s.assistant.SummarizeCall(ctx, *call.Transcript)
	if err != nil {
		if errors.Is(err, ErrAssistantDisabled) {
			return nil
		}
		return err
	}

	outcome := call.Outcome
	if outcome == nil {
		outcome = ptrOrNil(summary.Outcome)
	}
	if _, err := s.calls.SetSummary(ctx, call.ID, summary.Summary, outcome); err != nil {
		return fmt.Errorf("storing call summary: %w", err)
	}

	slog.InfoContext(ctx, "call summarized",
		"call_id", call.ID,
		"sentiment", summary.Sentiment)
	return nil
}
