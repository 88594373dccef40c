package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"switchyard.app/platform/core/db/sqlc"
	"switchyard.app/platform/internal/model"
)

type invitationStore struct {
	queries *sqlc.Queries
}

func newInvitationStore(queries *sqlc.Queries) InvitationStore {
	return &invitationStore{queries: queries}
}

func (s *invitationStore) Create(ctx context.Context, inv *model.Invitation) error {
	row, err := s.queries.CreateInvitation(ctx, sqlc.CreateInvitationParams{
		ID:             inv.ID,
		OrganizationID: inv.OrganizationID,
		Email:          inv.Email,
		Role:           string(inv.Role),
		Token:          inv.Token,
		InvitedBy:      inv.InvitedBy,
		ExpiresAt:      timestamptz(inv.ExpiresAt),
	})
	if err != nil {
		return err
	}
	*inv = *toInvitationModel(row)
	return nil
}

func (s *invitationStore) GetByID(ctx context.Context, id int64) (*model.Invitation, error) {
	row, err := s.queries.GetInvitation(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return toInvitationModel(row), nil
}

func (s *invitationStore) GetByToken(ctx context.Context, token string) (*model.Invitation, error) {
	row, err := s.queries.GetInvitationByToken(ctx, token)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return toInvitationModel(row), nil
}

func (s *invitationStore) GetValidByToken(ctx context.Context, token string) (*model.Invitation, error) {
	row, err := s.queries.GetValidInvitationByToken(ctx, token)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return toInvitationModel(row), nil
}

func (s *invitationStore) GetPendingByEmail(ctx context.Context, orgID int64, email string) (*model.Invitation, error) {
	row, err := s.queries.GetPendingInvitationByEmail(ctx, sqlc.GetPendingInvitationByEmailParams{
		OrganizationID: orgID,
		Email:          email,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return toInvitationModel(row), nil
}

func (s *invitationStore) Accept(ctx context.Context, id, userID int64) (*model.Invitation, error) {
	row, err := s.queries.AcceptInvitation(ctx, sqlc.AcceptInvitationParams{
		AcceptedBy: &userID,
		ID:         id,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return toInvitationModel(row), nil
}

func (s *invitationStore) Revoke(ctx context.Context, id int64) (*model.Invitation, error) {
	row, err := s.queries.RevokeInvitation(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return toInvitationModel(row), nil
}

func (s *invitationStore) ListByOrganization(ctx context.Context, orgID int64, limit, offset int32) ([]model.Invitation, error) {
	rows, err := s.queries.ListInvitationsByOrganization(ctx, sqlc.ListInvitationsByOrganizationParams{
		OrganizationID: orgID,
		Limit:          limit,
		Offset:         offset,
	})
	if err != nil {
		return nil, err
	}
	return toInvitationModels(rows), nil
}

func (s *invitationStore) ListPendingByOrganization(ctx context.Context, orgID int64) ([]model.Invitation, error) {
	rows, err := s.queries.ListPendingInvitationsByOrganization(ctx, orgID)
	if err != nil {
		return nil, err
	}
	return toInvitationModels(rows), nil
}

func (s *invitationStore) List(ctx context.Context, limit, offset int32) ([]model.Invitation, error) {
	rows, err := s.queries.ListInvitations(ctx, sqlc.ListInvitationsParams{
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		return nil, err
	}
	return toInvitationModels(rows), nil
}

func (s *invitationStore) ListPending(ctx context.Context) ([]model.Invitation, error) {
	rows, err := s.queries.ListPendingInvitations(ctx)
	if err != nil {
		return nil, err
	}
	return toInvitationModels(rows), nil
}

func (s *invitationStore) ExpireOld(ctx context.Context) (int64, error) {
	return s.queries.ExpireOldInvitations(ctx)
}

func toInvitationModel(row sqlc.Invitation) *model.Invitation {
	return &model.Invitation{
		ID:             row.ID,
		OrganizationID: row.OrganizationID,
		Email:          row.Email,
		Role:           model.Role(row.Role),
		Token:          row.Token,
		Status:         model.InvitationStatus(row.Status),
		InvitedBy:      row.InvitedBy,
		AcceptedBy:     row.AcceptedBy,
		ExpiresAt:      row.ExpiresAt.Time,
		CreatedAt:      row.CreatedAt.Time,
		AcceptedAt:     timePtr(row.AcceptedAt),
	}
}

func toInvitationModels(rows []sqlc.Invitation) []model.Invitation {
	result := make([]model.Invitation, len(rows))
	for i, row := range rows {
		result[i] = *toInvitationModel(row)
	}
	return result
}
