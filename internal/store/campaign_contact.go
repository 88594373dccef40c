package store

import (
	"context"
	"time"

	"switchyard.app/platform/core/db/sqlc"
	"switchyard.app/platform/internal/model"
)

type campaignContactStore struct {
	queries *sqlc.Queries
}

func newCampaignContactStore(queries *sqlc.Queries) CampaignContactStore {
	return &campaignContactStore{queries: queries}
}

func (s *campaignContactStore) Enroll(ctx context.Context, cc *model.CampaignContact) (bool, error) {
	n, err := s.queries.EnrollCampaignContact(ctx, sqlc.EnrollCampaignContactParams{
		ID:             cc.ID,
		CampaignID:     cc.CampaignID,
		OrganizationID: cc.OrganizationID,
		ContactID:      cc.ContactID,
	})
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *campaignContactStore) GetByID(ctx context.Context, id int64) (*model.CampaignContact, error) {
	row, err := s.queries.GetCampaignContact(ctx, id)
	if err != nil {
		return nil, mapNotFound(err)
	}
	return toCampaignContactModel(row), nil
}

func (s *campaignContactStore) ListDue(ctx context.Context, campaignID int64, maxAttempts int32, now time.Time, limit int32) ([]model.CampaignContact, error) {
	rows, err := s.queries.ListDueCampaignContacts(ctx, sqlc.ListDueCampaignContactsParams{
		CampaignID:  campaignID,
		MaxAttempts: maxAttempts,
		Now:         timestamptz(now),
		Limit:       limit,
	})
	if err != nil {
		return nil, err
	}
	return toCampaignContactModels(rows), nil
}

func (s *campaignContactStore) CountInProgress(ctx context.Context, campaignID int64) (int64, error) {
	return s.queries.CountInProgressCampaignContacts(ctx, campaignID)
}

func (s *campaignContactStore) CountOpen(ctx context.Context, campaignID int64) (int64, error) {
	return s.queries.CountOpenCampaignContacts(ctx, campaignID)
}

func (s *campaignContactStore) MarkDispatched(ctx context.Context, id int64) (*model.CampaignContact, error) {
	row, err := s.queries.MarkCampaignContactDispatched(ctx, id)
	if err != nil {
		return nil, mapNotFound(err)
	}
	return toCampaignContactModel(row), nil
}

func (s *campaignContactStore) SetOutcome(ctx context.Context, id int64, status model.CampaignContactStatus, nextAttemptAt *time.Time, outcome *string) (*model.CampaignContact, error) {
	row, err := s.queries.SetCampaignContactOutcome(ctx, sqlc.SetCampaignContactOutcomeParams{
		Status:        string(status),
		NextAttemptAt: nullTimestamptz(nextAttemptAt),
		LastOutcome:   outcome,
		ID:            id,
	})
	if err != nil {
		return nil, mapNotFound(err)
	}
	return toCampaignContactModel(row), nil
}

func (s *campaignContactStore) Stats(ctx context.Context, campaignID int64) (model.CampaignStats, error) {
	rows, err := s.queries.SummarizeCampaignContacts(ctx, campaignID)
	if err != nil {
		return model.CampaignStats{}, err
	}
	var stats model.CampaignStats
	for _, row := range rows {
		stats.Total += row.ContactCount
		switch model.CampaignContactStatus(row.Status) {
		case model.CampaignContactStatusPending:
			stats.Pending = row.ContactCount
		case model.CampaignContactStatusInProgress:
			stats.InProgress = row.ContactCount
		case model.CampaignContactStatusCompleted:
			stats.Completed = row.ContactCount
		case model.CampaignContactStatusFailed:
			stats.Failed = row.ContactCount
		case model.CampaignContactStatusSkipped:
			stats.Skipped = row.ContactCount
		}
	}
	return stats, nil
}

func (s *campaignContactStore) List(ctx context.Context, campaignID int64, limit, offset int32) ([]model.CampaignContact, error) {
	rows, err := s.queries.ListCampaignContacts(ctx, sqlc.ListCampaignContactsParams{
		CampaignID: campaignID,
		Limit:      limit,
		Offset:     offset,
	})
	if err != nil {
		return nil, err
	}
	return toCampaignContactModels(rows), nil
}

func toCampaignContactModel(row sqlc.CampaignContact) *model.CampaignContact {
	return &model.CampaignContact{
		ID:             row.ID,
		CampaignID:     row.CampaignID,
		OrganizationID: row.OrganizationID,
		ContactID:      row.ContactID,
		Status:         model.CampaignContactStatus(row.Status),
		Attempts:       row.Attempts,
		LastAttemptAt:  timePtr(row.LastAttemptAt),
		NextAttemptAt:  timePtr(row.NextAttemptAt),
		LastOutcome:    row.LastOutcome,
		CreatedAt:      row.CreatedAt.Time,
		UpdatedAt:      row.UpdatedAt.Time,
	}
}

func toCampaignContactModels(rows []sqlc.CampaignContact) []model.CampaignContact {
	result := make([]model.CampaignContact, len(rows))
	for i, row := range rows {
		result[i] = *toCampaignContactModel(row)
	}
	return result
}
