package store

import (
	"context"
	"encoding/json"
	"fmt"

	"switchyard.app/platform/core/db/sqlc"
	"switchyard.app/platform/internal/model"
)

type automationStore struct {
	queries *sqlc.Queries
}

func newAutomationStore(queries *sqlc.Queries) AutomationStore {
	return &automationStore{queries: queries}
}

func (s *automationStore) Create(ctx context.Context, a *model.Automation) error {
	actions, err := marshalActions(a.Actions)
	if err != nil {
		return err
	}
	row, err := s.queries.CreateAutomation(ctx, sqlc.CreateAutomationParams{
		ID:             a.ID,
		OrganizationID: a.OrganizationID,
		Name:           a.Name,
		Trigger:        string(a.Trigger),
		Conditions:     conditionsBytes(a.Conditions),
		Actions:        actions,
		Enabled:        a.Enabled,
	})
	if err != nil {
		return err
	}
	m, err := toAutomationModel(row)
	if err != nil {
		return err
	}
	*a = *m
	return nil
}

func (s *automationStore) GetByID(ctx context.Context, orgID, id int64) (*model.Automation, error) {
	row, err := s.queries.GetAutomation(ctx, sqlc.GetAutomationParams{ID: id, OrganizationID: orgID})
	if err != nil {
		return nil, mapNotFound(err)
	}
	return toAutomationModel(row)
}

func (s *automationStore) Update(ctx context.Context, a *model.Automation) error {
	actions, err := marshalActions(a.Actions)
	if err != nil {
		return err
	}
	row, err := s.queries.UpdateAutomation(ctx, sqlc.UpdateAutomationParams{
		Name:           a.Name,
		Trigger:        string(a.Trigger),
		Conditions:     conditionsBytes(a.Conditions),
		Actions:        actions,
		Enabled:        a.Enabled,
		ID:             a.ID,
		OrganizationID: a.OrganizationID,
	})
	if err != nil {
		return mapNotFound(err)
	}
	m, err := toAutomationModel(row)
	if err != nil {
		return err
	}
	*a = *m
	return nil
}

func (s *automationStore) Delete(ctx context.Context, orgID, id int64) error {
	n, err := s.queries.DeleteAutomation(ctx, sqlc.DeleteAutomationParams{ID: id, OrganizationID: orgID})
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *automationStore) List(ctx context.Context, orgID int64) ([]model.Automation, error) {
	rows, err := s.queries.ListAutomations(ctx, orgID)
	if err != nil {
		return nil, err
	}
	return toAutomationModels(rows)
}

func (s *automationStore) ListEnabledByTrigger(ctx context.Context, orgID int64, trigger model.Trigger) ([]model.Automation, error) {
	rows, err := s.queries.ListEnabledAutomationsByTrigger(ctx, sqlc.ListEnabledAutomationsByTriggerParams{
		OrganizationID: orgID,
		Trigger:        string(trigger),
	})
	if err != nil {
		return nil, err
	}
	return toAutomationModels(rows)
}

func (s *automationStore) RecordRun(ctx context.Context, id int64) error {
	return s.queries.RecordAutomationRun(ctx, id)
}

func marshalActions(actions []model.Action) ([]byte, error) {
	if actions == nil {
		actions = []model.Action{}
	}
	data, err := json.Marshal(actions)
	if err != nil {
		return nil, fmt.Errorf("marshal actions: %w", err)
	}
	return data, nil
}

// conditionsBytes stores an absent condition tree as JSON null, which matches everything.
func conditionsBytes(raw json.RawMessage) []byte {
	if len(raw) == 0 {
		return []byte("null")
	}
	return raw
}

func toAutomationModel(row sqlc.Automation) (*model.Automation, error) {
	var actions []model.Action
	if len(row.Actions) > 0 {
		if err := json.Unmarshal(row.Actions, &actions); err != nil {
			return nil, fmt.Errorf("unmarshal actions for automation %d: %w", row.ID, err)
		}
	}
	return &model.Automation{
		ID:             row.ID,
		OrganizationID: row.OrganizationID,
		Name:           row.Name,
		Trigger:        model.Trigger(row.Trigger),
		Conditions:     json.RawMessage(row.Conditions),
		Actions:        actions,
		Enabled:        row.Enabled,
		RunCount:       row.RunCount,
		LastRunAt:      timePtr(row.LastRunAt),
		CreatedAt:      row.CreatedAt.Time,
		UpdatedAt:      row.UpdatedAt.Time,
	}, nil
}

func toAutomationModels(rows []sqlc.Automation) ([]model.Automation, error) {
	result := make([]model.Automation, 0, len(rows))
	for _, row := range rows {
		m, err := toAutomationModel(row)
		if err != nil {
			return nil, err
		}
		result = append(result, *m)
	}
	return result, nil
}
