package store

import (
	"context"

	"switchyard.app/platform/core/db/sqlc"
	"switchyard.app/platform/internal/model"
)

type membershipStore struct {
	queries *sqlc.Queries
}

func newMembershipStore(queries *sqlc.Queries) MembershipStore {
	return &membershipStore{queries: queries}
}

func (s *membershipStore) Create(ctx context.Context, m *model.Membership) error {
	row, err := s.queries.CreateMembership(ctx, sqlc.CreateMembershipParams{
		ID:             m.ID,
		OrganizationID: m.OrganizationID,
		UserID:         m.UserID,
		Role:           string(m.Role),
	})
	if err != nil {
		return err
	}
	*m = *toMembershipModel(row)
	return nil
}

func (s *membershipStore) Get(ctx context.Context, orgID, userID int64) (*model.Membership, error) {
	row, err := s.queries.GetMembership(ctx, sqlc.GetMembershipParams{
		OrganizationID: orgID,
		UserID:         userID,
	})
	if err != nil {
		return nil, mapNotFound(err)
	}
	return toMembershipModel(row), nil
}

func (s *membershipStore) ListMembers(ctx context.Context, orgID int64) ([]model.Member, error) {
	rows, err := s.queries.ListMembersByOrganization(ctx, orgID)
	if err != nil {
		return nil, err
	}
	result := make([]model.Member, len(rows))
	for i, row := range rows {
		result[i] = model.Member{
			UserID:    row.UserID,
			Name:      row.Name,
			Email:     row.Email,
			AvatarURL: row.AvatarUrl,
			Role:      model.Role(row.Role),
			JoinedAt:  row.CreatedAt.Time,
		}
	}
	return result, nil
}

func (s *membershipStore) UpdateRole(ctx context.Context, orgID, userID int64, role model.Role) (*model.Membership, error) {
	row, err := s.queries.UpdateMembershipRole(ctx, sqlc.UpdateMembershipRoleParams{
		Role:           string(role),
		OrganizationID: orgID,
		UserID:         userID,
	})
	if err != nil {
		return nil, mapNotFound(err)
	}
	return toMembershipModel(row), nil
}

func (s *membershipStore) Delete(ctx context.Context, orgID, userID int64) error {
	n, err := s.queries.DeleteMembership(ctx, sqlc.DeleteMembershipParams{
		OrganizationID: orgID,
		UserID:         userID,
	})
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *membershipStore) CountOwners(ctx context.Context, orgID int64) (int64, error) {
	return s.queries.CountOwners(ctx, orgID)
}

func toMembershipModel(row sqlc.Membership) *model.Membership {
	return &model.Membership{
		ID:             row.ID,
		OrganizationID: row.OrganizationID,
		UserID:         row.UserID,
		Role:           model.Role(row.Role),
		CreatedAt:      row.CreatedAt.Time,
	}
}
