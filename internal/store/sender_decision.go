package store

import (
	"context"

	"switchyard.app/platform/core/db/sqlc"
	"switchyard.app/platform/internal/model"
)

type senderDecisionStore struct {
	queries *sqlc.Queries
}

func newSenderDecisionStore(queries *sqlc.Queries) SenderDecisionStore {
	return &senderDecisionStore{queries: queries}
}

func (s *senderDecisionStore) Upsert(ctx context.Context, d *model.SenderDecision) error {
	row, err := s.queries.UpsertSenderDecision(ctx, sqlc.UpsertSenderDecisionParams{
		ID:          d.ID,
		AccountID:   d.AccountID,
		SenderEmail: d.SenderEmail,
		Decision:    string(d.Decision),
	})
	if err != nil {
		return err
	}
	*d = *toSenderDecisionModel(row)
	return nil
}

func (s *senderDecisionStore) Get(ctx context.Context, accountID int64, sender string) (*model.SenderDecision, error) {
	row, err := s.queries.GetSenderDecision(ctx, sqlc.GetSenderDecisionParams{
		AccountID:   accountID,
		SenderEmail: sender,
	})
	if err != nil {
		return nil, mapNotFound(err)
	}
	return toSenderDecisionModel(row), nil
}

func (s *senderDecisionStore) List(ctx context.Context, accountID int64) ([]model.SenderDecision, error) {
	rows, err := s.queries.ListSenderDecisions(ctx, accountID)
	if err != nil {
		return nil, err
	}
	result := make([]model.SenderDecision, len(rows))
	for i, row := range rows {
		result[i] = *toSenderDecisionModel(row)
	}
	return result, nil
}

func toSenderDecisionModel(row sqlc.SenderDecision) *model.SenderDecision {
	return &model.SenderDecision{
		ID:          row.ID,
		AccountID:   row.AccountID,
		SenderEmail: row.SenderEmail,
		Decision:    model.SenderDecisionKind(row.Decision),
		CreatedAt:   row.CreatedAt.Time,
		UpdatedAt:   row.UpdatedAt.Time,
	}
}
