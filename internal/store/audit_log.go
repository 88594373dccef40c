package store

import (
	"context"
	"encoding/json"

	"switchyard.app/platform/core/db/sqlc"
	"switchyard.app/platform/internal/model"
)

type auditLogStore struct {
	queries *sqlc.Queries
}

func newAuditLogStore(queries *sqlc.Queries) AuditLogStore {
	return &auditLogStore{queries: queries}
}

func (s *auditLogStore) Create(ctx context.Context, log *model.AuditLog) error {
	metadata := []byte(log.Metadata)
	if len(metadata) == 0 {
		metadata = []byte("{}")
	}
	return s.queries.CreateAuditLog(ctx, sqlc.CreateAuditLogParams{
		ID:             log.ID,
		OrganizationID: log.OrganizationID,
		ActorUserID:    log.ActorUserID,
		Action:         log.Action,
		TargetType:     log.TargetType,
		TargetID:       log.TargetID,
		Metadata:       metadata,
	})
}

func (s *auditLogStore) List(ctx context.Context, orgID *int64, limit, offset int32) ([]model.AuditLog, error) {
	rows, err := s.queries.ListAuditLogs(ctx, sqlc.ListAuditLogsParams{
		OrganizationID: orgID,
		Limit:          limit,
		Offset:         offset,
	})
	if err != nil {
		return nil, err
	}
	result := make([]model.AuditLog, len(rows))
	for i, row := range rows {
		result[i] = model.AuditLog{
			ID:             row.ID,
			OrganizationID: row.OrganizationID,
			ActorUserID:    row.ActorUserID,
			Action:         row.Action,
			TargetType:     row.TargetType,
			TargetID:       row.TargetID,
			Metadata:       json.RawMessage(row.Metadata),
			CreatedAt:      row.CreatedAt.Time,
		}
	}
	return result, nil
}
