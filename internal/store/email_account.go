package store

import (
	"context"

	"switchyard.app/platform/core/db/sqlc"
	"switchyard.app/platform/internal/model"
)

type emailAccountStore struct {
	queries *sqlc.Queries
}

func newEmailAccountStore(queries *sqlc.Queries) EmailAccountStore {
	return &emailAccountStore{queries: queries}
}

// Upsert keys on grant id; reconnecting a mailbox reactivates the existing row.
func (s *emailAccountStore) Upsert(ctx context.Context, a *model.EmailAccount) error {
	row, err := s.queries.UpsertEmailAccount(ctx, sqlc.UpsertEmailAccountParams{
		ID:             a.ID,
		OrganizationID: a.OrganizationID,
		UserID:         a.UserID,
		GrantID:        a.GrantID,
		EmailAddress:   a.EmailAddress,
		Provider:       a.Provider,
	})
	if err != nil {
		return err
	}
	*a = *toEmailAccountModel(row)
	return nil
}

func (s *emailAccountStore) GetByID(ctx context.Context, orgID, id int64) (*model.EmailAccount, error) {
	row, err := s.queries.GetEmailAccount(ctx, sqlc.GetEmailAccountParams{ID: id, OrganizationID: orgID})
	if err != nil {
		return nil, mapNotFound(err)
	}
	return toEmailAccountModel(row), nil
}

func (s *emailAccountStore) Get(ctx context.Context, id int64) (*model.EmailAccount, error) {
	row, err := s.queries.GetEmailAccountByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err)
	}
	return toEmailAccountModel(row), nil
}

func (s *emailAccountStore) GetByGrantID(ctx context.Context, grantID string) (*model.EmailAccount, error) {
	row, err := s.queries.GetEmailAccountByGrantID(ctx, grantID)
	if err != nil {
		return nil, mapNotFound(err)
	}
	return toEmailAccountModel(row), nil
}

func (s *emailAccountStore) ListByUser(ctx context.Context, orgID, userID int64) ([]model.EmailAccount, error) {
	rows, err := s.queries.ListEmailAccountsByUser(ctx, sqlc.ListEmailAccountsByUserParams{
		OrganizationID: orgID,
		UserID:         userID,
	})
	if err != nil {
		return nil, err
	}
	result := make([]model.EmailAccount, len(rows))
	for i, row := range rows {
		result[i] = *toEmailAccountModel(row)
	}
	return result, nil
}

func (s *emailAccountStore) SetStatusByGrant(ctx context.Context, grantID string, status model.EmailAccountStatus) error {
	n, err := s.queries.SetEmailAccountStatusByGrant(ctx, sqlc.SetEmailAccountStatusByGrantParams{
		Status:  string(status),
		GrantID: grantID,
	})
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func toEmailAccountModel(row sqlc.EmailAccount) *model.EmailAccount {
	return &model.EmailAccount{
		ID:             row.ID,
		OrganizationID: row.OrganizationID,
		UserID:         row.UserID,
		GrantID:        row.GrantID,
		EmailAddress:   row.EmailAddress,
		Provider:       row.Provider,
		Status:         model.EmailAccountStatus(row.Status),
		CreatedAt:      row.CreatedAt.Time,
		UpdatedAt:      row.UpdatedAt.Time,
	}
}
