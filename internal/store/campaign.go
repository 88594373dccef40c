package store

import (
	"context"
	"time"

	"switchyard.app/platform/core/db/sqlc"
	"switchyard.app/platform/internal/model"
)

type campaignStore struct {
	queries *sqlc.Queries
}

func newCampaignStore(queries *sqlc.Queries) CampaignStore {
	return &campaignStore{queries: queries}
}

func (s *campaignStore) Create(ctx context.Context, c *model.Campaign) error {
	row, err := s.queries.CreateCampaign(ctx, sqlc.CreateCampaignParams{
		ID:                   c.ID,
		OrganizationID:       c.OrganizationID,
		Name:                 c.Name,
		Status:               string(c.Status),
		Provider:             string(c.Provider),
		AssistantID:          c.AssistantID,
		FromNumber:           c.FromNumber,
		ScriptTemplateID:     c.ScriptTemplateID,
		WindowStartMinute:    c.WindowStartMinute,
		WindowEndMinute:      c.WindowEndMinute,
		CallDays:             nonNilDays(c.CallDays),
		MaxAttempts:          c.MaxAttempts,
		RetryIntervalMinutes: c.RetryIntervalMinutes,
		MaxConcurrent:        c.MaxConcurrent,
		StartAt:              nullTimestamptz(c.StartAt),
	})
	if err != nil {
		return err
	}
	*c = *toCampaignModel(row)
	return nil
}

func (s *campaignStore) GetByID(ctx context.Context, orgID, id int64) (*model.Campaign, error) {
	row, err := s.queries.GetCampaign(ctx, sqlc.GetCampaignParams{ID: id, OrganizationID: orgID})
	if err != nil {
		return nil, mapNotFound(err)
	}
	return toCampaignModel(row), nil
}

func (s *campaignStore) Get(ctx context.Context, id int64) (*model.Campaign, error) {
	row, err := s.queries.GetCampaignByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err)
	}
	return toCampaignModel(row), nil
}

func (s *campaignStore) Update(ctx context.Context, c *model.Campaign) error {
	row, err := s.queries.UpdateCampaign(ctx, sqlc.UpdateCampaignParams{
		Name:                 c.Name,
		Provider:             string(c.Provider),
		AssistantID:          c.AssistantID,
		FromNumber:           c.FromNumber,
		ScriptTemplateID:     c.ScriptTemplateID,
		WindowStartMinute:    c.WindowStartMinute,
		WindowEndMinute:      c.WindowEndMinute,
		CallDays:             nonNilDays(c.CallDays),
		MaxAttempts:          c.MaxAttempts,
		RetryIntervalMinutes: c.RetryIntervalMinutes,
		MaxConcurrent:        c.MaxConcurrent,
		StartAt:              nullTimestamptz(c.StartAt),
		ID:                   c.ID,
		OrganizationID:       c.OrganizationID,
	})
	if err != nil {
		return mapNotFound(err)
	}
	*c = *toCampaignModel(row)
	return nil
}

func (s *campaignStore) SetStatus(ctx context.Context, id int64, status model.CampaignStatus) (*model.Campaign, error) {
	row, err := s.queries.SetCampaignStatus(ctx, sqlc.SetCampaignStatusParams{Status: string(status), ID: id})
	if err != nil {
		return nil, mapNotFound(err)
	}
	return toCampaignModel(row), nil
}

func (s *campaignStore) Delete(ctx context.Context, orgID, id int64) error {
	n, err := s.queries.DeleteCampaign(ctx, sqlc.DeleteCampaignParams{ID: id, OrganizationID: orgID})
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *campaignStore) List(ctx context.Context, orgID int64, status *model.CampaignStatus, limit, offset int32) ([]model.Campaign, error) {
	rows, err := s.queries.ListCampaigns(ctx, sqlc.ListCampaignsParams{
		OrganizationID: orgID,
		Status:         stringPtr(status),
		Limit:          limit,
		Offset:         offset,
	})
	if err != nil {
		return nil, err
	}
	return toCampaignModels(rows), nil
}

func (s *campaignStore) ListRunning(ctx context.Context) ([]model.Campaign, error) {
	rows, err := s.queries.ListRunningCampaigns(ctx)
	if err != nil {
		return nil, err
	}
	return toCampaignModels(rows), nil
}

func (s *campaignStore) PromoteScheduled(ctx context.Context, now time.Time) ([]model.Campaign, error) {
	rows, err := s.queries.PromoteScheduledCampaigns(ctx, timestamptz(now))
	if err != nil {
		return nil, err
	}
	return toCampaignModels(rows), nil
}

func nonNilDays(days []int32) []int32 {
	if days == nil {
		return []int32{}
	}
	return days
}

func toCampaignModel(row sqlc.Campaign) *model.Campaign {
	return &model.Campaign{
		ID:                   row.ID,
		OrganizationID:       row.OrganizationID,
		Name:                 row.Name,
		Status:               model.CampaignStatus(row.Status),
		Provider:             model.VoiceProvider(row.Provider),
		AssistantID:          row.AssistantID,
		FromNumber:           row.FromNumber,
		ScriptTemplateID:     row.ScriptTemplateID,
		WindowStartMinute:    row.WindowStartMinute,
		WindowEndMinute:      row.WindowEndMinute,
		CallDays:             row.CallDays,
		MaxAttempts:          row.MaxAttempts,
		RetryIntervalMinutes: row.RetryIntervalMinutes,
		MaxConcurrent:        row.MaxConcurrent,
		StartAt:              timePtr(row.StartAt),
		CreatedAt:            row.CreatedAt.Time,
		UpdatedAt:            row.UpdatedAt.Time,
	}
}

func toCampaignModels(rows []sqlc.Campaign) []model.Campaign {
	result := make([]model.Campaign, len(rows))
	for i, row := range rows {
		result[i] = *toCampaignModel(row)
	}
	return result
}
