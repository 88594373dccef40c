package store

import (
	"context"
	"time"

	"switchyard.app/platform/core/db/sqlc"
	"switchyard.app/platform/internal/model"
)

type dealStore struct {
	queries *sqlc.Queries
}

func newDealStore(queries *sqlc.Queries) DealStore {
	return &dealStore{queries: queries}
}

func (s *dealStore) Create(ctx context.Context, d *model.Deal) error {
	row, err := s.queries.CreateDeal(ctx, sqlc.CreateDealParams{
		ID:              d.ID,
		OrganizationID:  d.OrganizationID,
		ContactID:       d.ContactID,
		OwnerUserID:     d.OwnerUserID,
		Title:           d.Title,
		Stage:           string(d.Stage),
		AmountCents:     d.AmountCents,
		Currency:        d.Currency,
		ExpectedCloseAt: nullTimestamptz(d.ExpectedCloseAt),
	})
	if err != nil {
		return err
	}
	*d = *toDealModel(row)
	return nil
}

func (s *dealStore) GetByID(ctx context.Context, orgID, id int64) (*model.Deal, error) {
	row, err := s.queries.GetDeal(ctx, sqlc.GetDealParams{ID: id, OrganizationID: orgID})
	if err != nil {
		return nil, mapNotFound(err)
	}
	return toDealModel(row), nil
}

func (s *dealStore) Update(ctx context.Context, d *model.Deal) error {
	row, err := s.queries.UpdateDeal(ctx, sqlc.UpdateDealParams{
		ContactID:       d.ContactID,
		OwnerUserID:     d.OwnerUserID,
		Title:           d.Title,
		AmountCents:     d.AmountCents,
		Currency:        d.Currency,
		ExpectedCloseAt: nullTimestamptz(d.ExpectedCloseAt),
		ID:              d.ID,
		OrganizationID:  d.OrganizationID,
	})
	if err != nil {
		return mapNotFound(err)
	}
	*d = *toDealModel(row)
	return nil
}

func (s *dealStore) UpdateStage(ctx context.Context, orgID, id int64, stage model.DealStage, closedAt *time.Time) (*model.Deal, error) {
	row, err := s.queries.UpdateDealStage(ctx, sqlc.UpdateDealStageParams{
		Stage:          string(stage),
		ClosedAt:       nullTimestamptz(closedAt),
		ID:             id,
		OrganizationID: orgID,
	})
	if err != nil {
		return nil, mapNotFound(err)
	}
	return toDealModel(row), nil
}

func (s *dealStore) Delete(ctx context.Context, orgID, id int64) error {
	n, err := s.queries.DeleteDeal(ctx, sqlc.DeleteDealParams{ID: id, OrganizationID: orgID})
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *dealStore) List(ctx context.Context, orgID int64, stage *model.DealStage, contactID *int64, limit, offset int32) ([]model.Deal, error) {
	rows, err := s.queries.ListDeals(ctx, sqlc.ListDealsParams{
		OrganizationID: orgID,
		Stage:          stringPtr(stage),
		ContactID:      contactID,
		Limit:          limit,
		Offset:         offset,
	})
	if err != nil {
		return nil, err
	}
	result := make([]model.Deal, len(rows))
	for i, row := range rows {
		result[i] = *toDealModel(row)
	}
	return result, nil
}

func (s *dealStore) StageTotals(ctx context.Context, orgID int64) ([]model.PipelineStageSummary, error) {
	rows, err := s.queries.SummarizePipeline(ctx, orgID)
	if err != nil {
		return nil, err
	}
	result := make([]model.PipelineStageSummary, len(rows))
	for i, row := range rows {
		result[i] = model.PipelineStageSummary{
			Stage:       model.DealStage(row.Stage),
			Count:       row.DealCount,
			AmountCents: row.AmountCents,
		}
	}
	return result, nil
}

func toDealModel(row sqlc.Deal) *model.Deal {
	return &model.Deal{
		ID:              row.ID,
		OrganizationID:  row.OrganizationID,
		ContactID:       row.ContactID,
		OwnerUserID:     row.OwnerUserID,
		Title:           row.Title,
		Stage:           model.DealStage(row.Stage),
		AmountCents:     row.AmountCents,
		Currency:        row.Currency,
		ExpectedCloseAt: timePtr(row.ExpectedCloseAt),
		ClosedAt:        timePtr(row.ClosedAt),
		CreatedAt:       row.CreatedAt.Time,
		UpdatedAt:       row.UpdatedAt.Time,
	}
}
