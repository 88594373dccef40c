package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"switchyard.app/platform/common/id"
	"switchyard.app/platform/internal/model"
	"switchyard.app/platform/internal/store"
)

var (
	ErrDealNotFound        = errors.New("deal not found")
	ErrInvalidDeal         = errors.New("deal needs a title and a non-negative amount")
	ErrInvalidStage        = errors.New("invalid deal stage")
	ErrStageTransition     = errors.New("deal stage transition not allowed")
	ErrDealContactMismatch = errors.New("contact does not belong to organization")
)

type DealInput struct {
	ContactID       *int64
	OwnerUserID     *int64
	Title           string
	Stage           model.DealStage
	AmountCents     int64
	Currency        string
	ExpectedCloseAt *time.Time
}

type DealPatch struct {
	ContactID       *int64
	OwnerUserID     *int64
	Title           *string
	AmountCents     *int64
	Currency        *string
	ExpectedCloseAt *time.Time
}

type DealService interface {
	Create(ctx context.Context, orgID int64, in DealInput) (*model.Deal, error)
	Get(ctx context.Context, orgID, id int64) (*model.Deal, error)
	Update(ctx context.Context, orgID, id int64, patch DealPatch) (*model.Deal, error)
	Delete(ctx context.Context, orgID, id int64) error
	List(ctx context.Context, orgID int64, stage *model.DealStage, contactID *int64, limit, offset int) ([]model.Deal, error)
	MoveStage(ctx context.Context, orgID, id int64, stage model.DealStage) (*model.Deal, error)
	PipelineSummary(ctx context.Context, orgID int64) (*model.PipelineSummary, error)
}

type dealService struct {
	deals    store.DealStore
	contacts store.ContactStore
	triggers TriggerEmitter
	now      func() time.Time
}

func NewDealService(deals store.DealStore, contacts store.ContactStore, triggers TriggerEmitter) DealService {
	return &dealService{deals: deals, contacts: contacts, triggers: triggers, now: time.Now}
}

func (s *dealService) Create(ctx context.Context, orgID int64, in DealInput) (*model.Deal, error) {
	d := &model.Deal{
		ID:              id.New(),
		OrganizationID:  orgID,
		ContactID:       in.ContactID,
		OwnerUserID:     in.OwnerUserID,
		Title:           strings.TrimSpace(in.Title),
		Stage:           in.Stage,
		AmountCents:     in.AmountCents,
		Currency:        strings.ToUpper(strings.TrimSpace(in.Currency)),
		ExpectedCloseAt: in.ExpectedCloseAt,
	}
	if d.Stage == "" {
		d.Stage = model.DealStageLead
	}
	if d.Currency == "" {
		d.Currency = "USD"
	}
	if !d.Stage.Valid() {
		return nil, ErrInvalidStage
	}
	if d.Title == "" || d.AmountCents < 0 {
		return nil, ErrInvalidDeal
	}
	if d.Stage.IsClosed() {
		now := s.now()
		d.ClosedAt = &now
	}
	if err := s.checkContact(ctx, orgID, d.ContactID); err != nil {
		return nil, err
	}

	if err := s.deals.Create(ctx, d); err != nil {
		return nil, fmt.Errorf("creating deal: %w", err)
	}
	slog.InfoContext(ctx, "deal created", "deal_id", d.ID, "stage", d.Stage)
	return d, nil
}

func (s *dealService) Get(ctx context.Context, orgID, id int64) (*model.Deal, error) {
	d, err := s.deals.GetByID(ctx, orgID, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrDealNotFound
		}
		return nil, fmt.Errorf("getting deal: %w", err)
	}
	return d, nil
}

func (s *dealService) Update(ctx context.Context, orgID, id int64, patch DealPatch) (*model.Deal, error) {
	d, err := s.Get(ctx, orgID, id)
	if err != nil {
		return nil, err
	}
	if patch.ContactID != nil {
		if err := s.checkContact(ctx, orgID, patch.ContactID); err != nil {
			return nil, err
		}
		d.ContactID = patch.ContactID
	}
	if patch.OwnerUserID != nil {
		d.OwnerUserID = patch.OwnerUserID
	}
	if patch.Title != nil {
		d.Title = strings.TrimSpace(*patch.Title)
	}
	if patch.AmountCents != nil {
		d.AmountCents = *patch.AmountCents
	}
	if patch.Currency != nil {
		d.Currency = strings.ToUpper(strings.TrimSpace(*patch.Currency))
	}
	if patch.ExpectedCloseAt != nil {
		d.ExpectedCloseAt = patch.ExpectedCloseAt
	}
	if d.Title == "" || d.AmountCents < 0 {
		return nil, ErrInvalidDeal
	}

	if err := s.deals.Update(ctx, d); err != nil {
		return nil, fmt.Errorf("updating deal: %w", err)
	}
	return d, nil
}

func (s *dealService) Delete(ctx context.Context, orgID, id int64) error {
	if err := s.deals.Delete(ctx, orgID, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrDealNotFound
		}
		return fmt.Errorf("deleting deal: %w", err)
	}
	return nil
}

func (s *dealService) List(ctx context.Context, orgID int64, stage *model.DealStage, contactID *int64, limit, offset int) ([]model.Deal, error) {
	if stage != nil && !stage.Valid() {
		return nil, ErrInvalidStage
	}
	l, o := pageBounds(limit, offset)
	deals, err := s.deals.List(ctx, orgID, stage, contactID, l, o)
	if err != nil {
		return nil, fmt.Errorf("listing deals: %w", err)
	}
	return deals, nil
}

// MoveStage applies a stage transition. Closing stamps ClosedAt, reopening clears it.
func (s *dealService) MoveStage(ctx context.Context, orgID, id int64, stage model.DealStage) (*model.Deal, error) {
	if !stage.Valid() {
		return nil, ErrInvalidStage
	}
	d, err := s.Get(ctx, orgID, id)
	if err != nil {
		return nil, err
	}
	if !d.Stage.CanTransitionTo(stage) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrStageTransition, d.Stage, stage)
	}

	var closedAt *time.Time
	if stage.IsClosed() {
		now := s.now()
		closedAt = &now
	}

	updated, err := s.deals.UpdateStage(ctx, orgID, id, stage, closedAt)
	if err != nil {
		return nil, fmt.Errorf("updating deal stage: %w", err)
	}

	slog.InfoContext(ctx, "deal stage changed",
		"deal_id", id,
		"from", d.Stage,
		"to", stage)
	if s.triggers != nil {
		s.triggers.Emit(ctx, orgID, model.TriggerDealStageChanged, id)
	}
	return updated, nil
}

// PipelineSummary returns one row per stage in pipeline order, including empty stages.
func (s *dealService) PipelineSummary(ctx context.Context, orgID int64) (*model.PipelineSummary, error) {
	totals, err := s.deals.StageTotals(ctx, orgID)
	if err != nil {
		return nil, fmt.Errorf("loading stage totals: %w", err)
	}
	return summarizePipeline(totals), nil
}

func summarizePipeline(totals []model.PipelineStageSummary) *model.PipelineSummary {
	byStage := make(map[model.DealStage]model.PipelineStageSummary, len(totals))
	for _, t := range totals {
		byStage[t.Stage] = t
	}

	summary := &model.PipelineSummary{Stages: make([]model.PipelineStageSummary, 0, len(model.DealStages))}
	for _, stage := range model.DealStages {
		row := byStage[stage]
		row.Stage = stage
		row.WeightedCents = row.AmountCents * stage.Probability() / 100
		summary.Stages = append(summary.Stages, row)

		switch {
		case stage == model.DealStageWon:
			summary.WonCents += row.AmountCents
		case !stage.IsClosed():
			summary.OpenCents += row.AmountCents
			summary.ForecastCents += row.WeightedCents
		}
	}
	return summary
}

func (s *dealService) checkContact(ctx context.Context, orgID int64, contactID *int64) error {
	if contactID == nil {
		return nil
	}
	if _, err := s.contacts.GetByID(ctx, orgID, *contactID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrDealContactMismatch
		}
		return fmt.Errorf("checking contact: %w", err)
	}
	return nil
}
