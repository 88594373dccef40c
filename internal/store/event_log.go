package store

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/jackc/pgx/v5"

	"switchyard.app/platform/core/db/sqlc"
	"switchyard.app/platform/internal/model"
)

type eventLogStore struct {
	queries *sqlc.Queries
}

func newEventLogStore(queries *sqlc.Queries) EventLogStore {
	return &eventLogStore{queries: queries}
}

func (s *eventLogStore) CreateOrGet(ctx context.Context, log *model.EventLog) (*model.EventLog, bool, error) {
	payload := []byte(log.Payload)
	if len(payload) == 0 {
		payload = []byte("{}")
	}
	row, err := s.queries.UpsertEventLog(ctx, sqlc.UpsertEventLogParams{
		ID:             log.ID,
		OrganizationID: log.OrganizationID,
		Source:         string(log.Source),
		EventType:      log.EventType,
		ExternalID:     log.ExternalID,
		DedupeKey:      log.DedupeKey,
		Payload:        payload,
	})
	if err != nil {
		return nil, false, err
	}
	created := row.ID == log.ID
	return toEventLogModel(row), created, nil
}

func (s *eventLogStore) GetByID(ctx context.Context, id int64) (*model.EventLog, error) {
	row, err := s.queries.GetEventLog(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return toEventLogModel(row), nil
}

func (s *eventLogStore) MarkProcessed(ctx context.Context, id int64) error {
	return s.queries.MarkEventLogProcessed(ctx, id)
}

func (s *eventLogStore) MarkFailed(ctx context.Context, id int64, errMsg string) error {
	return s.queries.MarkEventLogFailed(ctx, sqlc.MarkEventLogFailedParams{
		ProcessingError: &errMsg,
		ID:              id,
	})
}

func toEventLogModel(row sqlc.EventLog) *model.EventLog {
	return &model.EventLog{
		ID:              row.ID,
		OrganizationID:  row.OrganizationID,
		Source:          model.EventSource(row.Source),
		EventType:       row.EventType,
		ExternalID:      row.ExternalID,
		DedupeKey:       row.DedupeKey,
		Payload:         json.RawMessage(row.Payload),
		ProcessedAt:     timePtr(row.ProcessedAt),
		ProcessingError: row.ProcessingError,
		CreatedAt:       row.CreatedAt.Time,
	}
}
