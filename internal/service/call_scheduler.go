package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"switchyard.app/platform/common/id"
	"switchyard.app/platform/common/logger"
	"switchyard.app/platform/internal/calltoken"
	"switchyard.app/platform/internal/integration/voice"
	"switchyard.app/platform/internal/model"
	"switchyard.app/platform/internal/render"
	"switchyard.app/platform/internal/scheduler"
	"switchyard.app/platform/internal/store"
)

// dueBatchFactor bounds how many due enrollments are inspected per free slot,
// so contacts outside their window do not starve the ones inside it.
const dueBatchFactor = 5

// errAlreadyClaimed marks an enrollment another scheduler dispatched first.
var errAlreadyClaimed = errors.New("enrollment already claimed")

type VoiceProviders interface {
	Get(name model.VoiceProvider) (voice.Provider, error)
}

type CallTokenSigner interface {
	Sign(b calltoken.Binding) (string, error)
	Verify(token string) (*calltoken.Binding, error)
}

type TickResult struct {
	Promoted   int `json:"promoted"`
	Dispatched int `json:"dispatched"`
	Failed     int `json:"failed"`
	Skipped    int `json:"skipped"`
	Deferred   int `json:"deferred"`
	Completed  int `json:"completed"`
}

// CallScheduler places outbound calls for running campaigns.
type CallScheduler interface {
	Tick(ctx context.Context) (*TickResult, error)
}

type callScheduler struct {
	campaigns   store.CampaignStore
	enrollments store.CampaignContactStore
	contacts    store.ContactStore
	calls       store.CallRecordStore
	orgs        store.OrganizationStore
	providers   VoiceProviders
	signer      CallTokenSigner
	now         func() time.Time
}

func NewCallScheduler(
	campaigns store.CampaignStore,
	enrollments store.CampaignContactStore,
	contacts store.ContactStore,
	calls store.CallRecordStore,
	orgs store.OrganizationStore,
	providers VoiceProviders,
	signer CallTokenSigner,
) CallScheduler {
	return &callScheduler{
		campaigns:   campaigns,
		enrollments: enrollments,
		contacts:    contacts,
		calls:       calls,
		orgs:        orgs,
		providers:   providers,
		signer:      signer,
		now:         time.Now,
	}
}

func (s *callScheduler) Tick(ctx context.Context) (*TickResult, error) {
	now := s.now()
	result := &TickResult{}

	promoted, err := s.campaigns.PromoteScheduled(ctx, now)
	if err != nil {
		return nil, fmt.Errorf("promoting scheduled campaigns: %w", err)
	}
	result.Promoted = len(promoted)

	running, err := s.campaigns.ListRunning(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing running campaigns: %w", err)
	}

	for i := range running {
		c := &running[i]
		if err := s.tickCampaign(ctx, c, now, result); err != nil {
			// One broken campaign must not stall the others.
			slog.ErrorContext(ctx, "campaign tick failed",
				"error", err,
				"campaign_id", c.ID,
				"organization_id", c.OrganizationID)
		}
	}

	if result.Dispatched > 0 || result.Promoted > 0 || result.Completed > 0 {
		slog.InfoContext(ctx, "call scheduler tick",
			"promoted", result.Promoted,
			"dispatched", result.Dispatched,
			"failed", result.Failed,
			"skipped", result.Skipped,
			"deferred", result.Deferred,
			"completed", result.Completed)
	}
	return result, nil
}

func (s *callScheduler) tickCampaign(ctx context.Context, c *model.Campaign, now time.Time, result *TickResult) error {
	ctx = logger.WithLogFields(ctx, logger.LogFields{
		OrganizationID: &c.OrganizationID,
		CampaignID:     &c.ID,
	})

	inProgress, err := s.enrollments.CountInProgress(ctx, c.ID)
	if err != nil {
		return fmt.Errorf("counting in-progress calls: %w", err)
	}

	if slots := scheduler.FreeSlots(c, inProgress); slots > 0 {
		if err := s.dispatchDue(ctx, c, slots, now, result); err != nil {
			return err
		}
	}

	open, err := s.enrollments.CountOpen(ctx, c.ID)
	if err != nil {
		return fmt.Errorf("counting open enrollments: %w", err)
	}
	if open == 0 {
		if _, err := s.campaigns.SetStatus(ctx, c.ID, model.CampaignStatusCompleted); err != nil {
			return fmt.Errorf("completing campaign: %w", err)
		}
		result.Completed++
		slog.InfoContext(ctx, "campaign completed")
	}
	return nil
}

func (s *callScheduler) dispatchDue(ctx context.Context, c *model.Campaign, slots int, now time.Time, result *TickResult) error {
	due, err := s.enrollments.ListDue(ctx, c.ID, c.MaxAttempts, now, int32(slots*dueBatchFactor))
	if err != nil {
		return fmt.Errorf("listing due enrollments: %w", err)
	}
	if len(due) == 0 {
		return nil
	}

	contactIDs := make([]int64, len(due))
	for i, e := range due {
		contactIDs[i] = e.ContactID
	}
	contacts, err := s.contacts.ListByIDs(ctx, c.OrganizationID, contactIDs)
	if err != nil {
		return fmt.Errorf("loading contacts: %w", err)
	}
	byID := make(map[int64]*model.Contact, len(contacts))
	for i := range contacts {
		byID[contacts[i].ID] = &contacts[i]
	}

	candidates := make([]scheduler.Candidate, len(due))
	for i, e := range due {
		candidates[i] = scheduler.Candidate{Enrollment: e, Contact: byID[e.ContactID]}
	}

	plan := scheduler.Build(c, candidates, slots, now)
	result.Deferred += plan.Deferred

	for _, skip := range plan.Skip {
		reason := string(skip.Reason)
		if _, err := s.enrollments.SetOutcome(ctx, skip.Enrollment.ID, model.CampaignContactStatusSkipped, nil, &reason); err != nil {
			return fmt.Errorf("skipping enrollment %d: %w", skip.Enrollment.ID, err)
		}
		result.Skipped++
	}

	if len(plan.Dispatch) == 0 {
		return nil
	}

	provider, err := s.providers.Get(c.Provider)
	if err != nil {
		return err
	}
	org, err := s.orgs.GetByID(ctx, c.OrganizationID)
	if err != nil {
		return fmt.Errorf("getting organization: %w", err)
	}

	outcomes := make([]error, len(plan.Dispatch))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(slots)
	for i, cand := range plan.Dispatch {
		g.Go(func() error {
			outcomes[i] = s.dispatch(gctx, c, org, provider, cand, now)
			return nil
		})
	}
	_ = g.Wait()

	for i, err := range outcomes {
		if errors.Is(err, errAlreadyClaimed) {
			slog.DebugContext(ctx, "enrollment claimed elsewhere",
				"enrollment_id", plan.Dispatch[i].Enrollment.ID)
			continue
		}
		if err != nil {
			result.Failed++
			slog.WarnContext(ctx, "call dispatch failed",
				"error", err,
				"enrollment_id", plan.Dispatch[i].Enrollment.ID)
			continue
		}
		result.Dispatched++
	}
	return nil
}

// dispatch claims the enrollment, records a queued call and asks the provider to
// place it. A provider failure counts as an attempt and reschedules or fails the enrollment.
func (s *callScheduler) dispatch(ctx context.Context, c *model.Campaign, org *model.Organization, provider voice.Provider, cand scheduler.Candidate, now time.Time) error {
	enrollment, err := s.enrollments.MarkDispatched(ctx, cand.Enrollment.ID)
	if errors.Is(err, store.ErrNotFound) {
		return errAlreadyClaimed
	}
	if err != nil {
		return fmt.Errorf("claiming enrollment: %w", err)
	}

	call := &model.CallRecord{
		ID:                id.New(),
		OrganizationID:    c.OrganizationID,
		CampaignID:        &c.ID,
		CampaignContactID: &enrollment.ID,
		ContactID:         cand.Contact.ID,
		Provider:          c.Provider,
		Status:            model.CallStatusQueued,
	}
	if err := s.calls.Create(ctx, call); err != nil {
		return s.failDispatch(ctx, c, enrollment, nil, fmt.Errorf("creating call record: %w", err), now)
	}

	token, err := s.signer.Sign(calltoken.Binding{
		OrganizationID: c.OrganizationID,
		CampaignID:     c.ID,
		ContactID:      cand.Contact.ID,
		CallID:         call.ID,
	})
	if err != nil {
		return s.failDispatch(ctx, c, enrollment, call, fmt.Errorf("signing call token: %w", err), now)
	}

	providerCallID, err := provider.PlaceCall(ctx, voice.CallRequest{
		AssistantID: c.AssistantID,
		FromNumber:  c.FromNumber,
		ToNumber:    *cand.Contact.Phone,
		CallToken:   token,
		Variables:   render.ContactVars(cand.Contact, org),
	})
	if err != nil {
		return s.failDispatch(ctx, c, enrollment, call, fmt.Errorf("placing call: %w", err), now)
	}

	if err := s.calls.SetProviderCallID(ctx, call.ID, providerCallID); err != nil {
		// The call is live; webhooks still resolve it through the call token.
		slog.WarnContext(ctx, "failed to store provider call id",
			"error", err,
			"call_id", call.ID,
			"provider_call_id", providerCallID)
	}

	slog.InfoContext(ctx, "call dispatched",
		"call_id", call.ID,
		"contact_id", cand.Contact.ID,
		"attempt", enrollment.Attempts,
		"provider_call_id", providerCallID)
	return nil
}

func (s *callScheduler) failDispatch(ctx context.Context, c *model.Campaign, enrollment *model.CampaignContact, call *model.CallRecord, cause error, now time.Time) error {
	next := scheduler.AfterDispatchFailure(c, enrollment.Attempts, now)
	outcome := "dispatch_failed"
	var errs []error
	errs = append(errs, cause)

	if _, err := s.enrollments.SetOutcome(ctx, enrollment.ID, next.Status, next.NextAttemptAt, &outcome); err != nil {
		errs = append(errs, fmt.Errorf("updating enrollment: %w", err))
	}
	if call != nil {
		if _, err := s.calls.UpdateStatus(ctx, call.ID, model.CallStatusFailed, nil); err != nil {
			errs = append(errs, fmt.Errorf("marking call failed: %w", err))
		}
	}
	return errors.Join(errs...)
}
