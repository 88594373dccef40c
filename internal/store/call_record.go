package store

import (
	"context"
	"time"

	"switchyard.app/platform/core/db/sqlc"
	"switchyard.app/platform/internal/model"
)

type callRecordStore struct {
	queries *sqlc.Queries
}

func newCallRecordStore(queries *sqlc.Queries) CallRecordStore {
	return &callRecordStore{queries: queries}
}

func (s *callRecordStore) Create(ctx context.Context, c *model.CallRecord) error {
	row, err := s.queries.CreateCallRecord(ctx, sqlc.CreateCallRecordParams{
		ID:                c.ID,
		OrganizationID:    c.OrganizationID,
		CampaignID:        c.CampaignID,
		CampaignContactID: c.CampaignContactID,
		ContactID:         c.ContactID,
		Provider:          string(c.Provider),
		Status:            string(c.Status),
	})
	if err != nil {
		return err
	}
	*c = *toCallRecordModel(row)
	return nil
}

func (s *callRecordStore) GetByID(ctx context.Context, id int64) (*model.CallRecord, error) {
	row, err := s.queries.GetCallRecord(ctx, id)
	if err != nil {
		return nil, mapNotFound(err)
	}
	return toCallRecordModel(row), nil
}

func (s *callRecordStore) GetForOrganization(ctx context.Context, orgID, id int64) (*model.CallRecord, error) {
	row, err := s.queries.GetCallRecordForOrganization(ctx, sqlc.GetCallRecordForOrganizationParams{
		ID:             id,
		OrganizationID: orgID,
	})
	if err != nil {
		return nil, mapNotFound(err)
	}
	return toCallRecordModel(row), nil
}

func (s *callRecordStore) GetByProviderCallID(ctx context.Context, provider model.VoiceProvider, callID string) (*model.CallRecord, error) {
	row, err := s.queries.GetCallRecordByProviderCallID(ctx, sqlc.GetCallRecordByProviderCallIDParams{
		Provider:       string(provider),
		ProviderCallID: callID,
	})
	if err != nil {
		return nil, mapNotFound(err)
	}
	return toCallRecordModel(row), nil
}

func (s *callRecordStore) SetProviderCallID(ctx context.Context, id int64, callID string) error {
	return s.queries.SetCallProviderID(ctx, sqlc.SetCallProviderIDParams{
		ProviderCallID: &callID,
		ID:             id,
	})
}

func (s *callRecordStore) UpdateStatus(ctx context.Context, id int64, status model.CallStatus, startedAt *time.Time) (*model.CallRecord, error) {
	row, err := s.queries.UpdateCallStatus(ctx, sqlc.UpdateCallStatusParams{
		Status:    string(status),
		StartedAt: nullTimestamptz(startedAt),
		ID:        id,
	})
	if err != nil {
		return nil, mapNotFound(err)
	}
	return toCallRecordModel(row), nil
}

// Complete persists the end-of-call fields of c and refreshes c from the row.
func (s *callRecordStore) Complete(ctx context.Context, c *model.CallRecord) error {
	row, err := s.queries.CompleteCallRecord(ctx, sqlc.CompleteCallRecordParams{
		Status:          string(c.Status),
		DurationSeconds: c.DurationSeconds,
		RecordingUrl:    c.RecordingURL,
		Transcript:      c.Transcript,
		Outcome:         c.Outcome,
		CostCents:       c.CostCents,
		StartedAt:       nullTimestamptz(c.StartedAt),
		EndedAt:         nullTimestamptz(c.EndedAt),
		ID:              c.ID,
	})
	if err != nil {
		return mapNotFound(err)
	}
	*c = *toCallRecordModel(row)
	return nil
}

func (s *callRecordStore) SetSummary(ctx context.Context, id int64, summary string, outcome *string) (*model.CallRecord, error) {
	row, err := s.queries.SetCallSummary(ctx, sqlc.SetCallSummaryParams{
		Summary: &summary,
		Outcome: outcome,
		ID:      id,
	})
	if err != nil {
		return nil, mapNotFound(err)
	}
	return toCallRecordModel(row), nil
}

func (s *callRecordStore) ListByCampaign(ctx context.Context, orgID, campaignID int64, limit, offset int32) ([]model.CallRecord, error) {
	rows, err := s.queries.ListCallRecordsByCampaign(ctx, sqlc.ListCallRecordsByCampaignParams{
		OrganizationID: orgID,
		CampaignID:     campaignID,
		Limit:          limit,
		Offset:         offset,
	})
	if err != nil {
		return nil, err
	}
	return toCallRecordModels(rows), nil
}

func (s *callRecordStore) List(ctx context.Context, orgID int64, contactID *int64, limit, offset int32) ([]model.CallRecord, error) {
	rows, err := s.queries.ListCallRecords(ctx, sqlc.ListCallRecordsParams{
		OrganizationID: orgID,
		ContactID:      contactID,
		Limit:          limit,
		Offset:         offset,
	})
	if err != nil {
		return nil, err
	}
	return toCallRecordModels(rows), nil
}

func (s *callRecordStore) CampaignTotals(ctx context.Context, campaignID int64) (int64, int64, error) {
	row, err := s.queries.SummarizeCampaignCalls(ctx, campaignID)
	if err != nil {
		return 0, 0, err
	}
	return row.CallCount, row.DurationSeconds, nil
}

func (s *callRecordStore) Count(ctx context.Context) (int64, error) {
	return s.queries.CountCallRecords(ctx)
}

func toCallRecordModel(row sqlc.CallRecord) *model.CallRecord {
	return &model.CallRecord{
		ID:                row.ID,
		OrganizationID:    row.OrganizationID,
		CampaignID:        row.CampaignID,
		CampaignContactID: row.CampaignContactID,
		ContactID:         row.ContactID,
		Provider:          model.VoiceProvider(row.Provider),
		ProviderCallID:    row.ProviderCallID,
		Status:            model.CallStatus(row.Status),
		DurationSeconds:   row.DurationSeconds,
		RecordingURL:      row.RecordingUrl,
		Transcript:        row.Transcript,
		Summary:           row.Summary,
		Outcome:           row.Outcome,
		CostCents:         row.CostCents,
		StartedAt:         timePtr(row.StartedAt),
		EndedAt:           timePtr(row.EndedAt),
		CreatedAt:         row.CreatedAt.Time,
		UpdatedAt:         row.UpdatedAt.Time,
	}
}

func toCallRecordModels(rows []sqlc.CallRecord) []model.CallRecord {
	result := make([]model.CallRecord, len(rows))
	for i, row := range rows {
		result[i] = *toCallRecordModel(row)
	}
	return result
}
