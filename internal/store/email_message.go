package store

import (
	"context"

	"switchyard.app/platform/core/db/sqlc"
	"switchyard.app/platform/internal/model"
)

type emailMessageStore struct {
	queries *sqlc.Queries
}

func newEmailMessageStore(queries *sqlc.Queries) EmailMessageStore {
	return &emailMessageStore{queries: queries}
}

// Upsert keys on (account, provider message id). On conflict only the
// unread and starred flags are refreshed so a triaged view is never reset.
func (s *emailMessageStore) Upsert(ctx context.Context, m *model.EmailMessage) error {
	to := m.To
	if to == nil {
		to = []string{}
	}
	row, err := s.queries.UpsertEmailMessage(ctx, sqlc.UpsertEmailMessageParams{
		ID:                m.ID,
		OrganizationID:    m.OrganizationID,
		AccountID:         m.AccountID,
		ProviderMessageID: m.ProviderMessageID,
		ThreadID:          m.ThreadID,
		FromEmail:         m.FromEmail,
		FromName:          m.FromName,
		ToEmails:          to,
		Subject:           m.Subject,
		Snippet:           m.Snippet,
		ReceivedAt:        timestamptz(m.ReceivedAt),
		Unread:            m.Unread,
		Starred:           m.Starred,
		View:              string(m.View),
		ContactID:         m.ContactID,
	})
	if err != nil {
		return err
	}
	*m = *toEmailMessageModel(row)
	return nil
}

func (s *emailMessageStore) GetByID(ctx context.Context, orgID, id int64) (*model.EmailMessage, error) {
	row, err := s.queries.GetEmailMessage(ctx, sqlc.GetEmailMessageParams{ID: id, OrganizationID: orgID})
	if err != nil {
		return nil, mapNotFound(err)
	}
	return toEmailMessageModel(row), nil
}

func (s *emailMessageStore) Get(ctx context.Context, id int64) (*model.EmailMessage, error) {
	row, err := s.queries.GetEmailMessageByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err)
	}
	return toEmailMessageModel(row), nil
}

func (s *emailMessageStore) ListByView(ctx context.Context, accountID int64, view model.EmailView, limit, offset int32) ([]model.EmailMessage, error) {
	rows, err := s.queries.ListEmailMessagesByView(ctx, sqlc.ListEmailMessagesByViewParams{
		AccountID: accountID,
		View:      string(view),
		Limit:     limit,
		Offset:    offset,
	})
	if err != nil {
		return nil, err
	}
	result := make([]model.EmailMessage, len(rows))
	for i, row := range rows {
		result[i] = *toEmailMessageModel(row)
	}
	return result, nil
}

func (s *emailMessageStore) CountByView(ctx context.Context, accountID int64) (map[model.EmailView]int64, error) {
	rows, err := s.queries.CountEmailMessagesByView(ctx, accountID)
	if err != nil {
		return nil, err
	}
	counts := map[model.EmailView]int64{
		model.EmailViewImbox:      0,
		model.EmailViewFeed:       0,
		model.EmailViewPaperTrail: 0,
		model.EmailViewScreener:   0,
	}
	for _, row := range rows {
		counts[model.EmailView(row.View)] = row.MessageCount
	}
	return counts, nil
}

func (s *emailMessageStore) UpdateFlags(ctx context.Context, orgID, id int64, unread, starred bool) (*model.EmailMessage, error) {
	row, err := s.queries.UpdateEmailMessageFlags(ctx, sqlc.UpdateEmailMessageFlagsParams{
		Unread:         unread,
		Starred:        starred,
		ID:             id,
		OrganizationID: orgID,
	})
	if err != nil {
		return nil, mapNotFound(err)
	}
	return toEmailMessageModel(row), nil
}

func (s *emailMessageStore) SyncFlags(ctx context.Context, accountID int64, providerMessageID string, unread, starred bool) error {
	n, err := s.queries.SyncEmailMessageFlags(ctx, sqlc.SyncEmailMessageFlagsParams{
		Unread:            unread,
		Starred:           starred,
		AccountID:         accountID,
		ProviderMessageID: providerMessageID,
	})
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *emailMessageStore) SetBody(ctx context.Context, id int64, body string) error {
	return s.queries.SetEmailMessageBody(ctx, sqlc.SetEmailMessageBodyParams{Body: &body, ID: id})
}

func (s *emailMessageStore) MoveSender(ctx context.Context, accountID int64, sender string, view model.EmailView) (int64, error) {
	return s.queries.SetEmailMessagesViewBySender(ctx, sqlc.SetEmailMessagesViewBySenderParams{
		View:        string(view),
		AccountID:   accountID,
		SenderEmail: sender,
	})
}

func (s *emailMessageStore) DeleteBySender(ctx context.Context, accountID int64, sender string) (int64, error) {
	return s.queries.DeleteEmailMessagesBySender(ctx, sqlc.DeleteEmailMessagesBySenderParams{
		AccountID:   accountID,
		SenderEmail: sender,
	})
}

func (s *emailMessageStore) ListScreenerSenders(ctx context.Context, accountID int64) ([]model.ScreenerSender, error) {
	rows, err := s.queries.ListScreenerSenders(ctx, accountID)
	if err != nil {
		return nil, err
	}
	result := make([]model.ScreenerSender, len(rows))
	for i, row := range rows {
		result[i] = model.ScreenerSender{
			Email:          row.FromEmail,
			MessageCount:   row.MessageCount,
			LastReceivedAt: row.LastReceivedAt.Time,
		}
	}
	return result, nil
}

func toEmailMessageModel(row sqlc.EmailMessage) *model.EmailMessage {
	return &model.EmailMessage{
		ID:                row.ID,
		OrganizationID:    row.OrganizationID,
		AccountID:         row.AccountID,
		ProviderMessageID: row.ProviderMessageID,
		ThreadID:          row.ThreadID,
		FromEmail:         row.FromEmail,
		FromName:          row.FromName,
		To:                row.ToEmails,
		Subject:           row.Subject,
		Snippet:           row.Snippet,
		Body:              row.Body,
		ReceivedAt:        row.ReceivedAt.Time,
		Unread:            row.Unread,
		Starred:           row.Starred,
		View:              model.EmailView(row.View),
		ContactID:         row.ContactID,
		CreatedAt:         row.CreatedAt.Time,
		UpdatedAt:         row.UpdatedAt.Time,
	}
}
