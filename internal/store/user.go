package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"switchyard.app/platform/core/db/sqlc"
	"switchyard.app/platform/internal/model"
)

type userStore struct {
	queries *sqlc.Queries
}

func newUserStore(queries *sqlc.Queries) UserStore {
	return &userStore{queries: queries}
}

func (s *userStore) GetByID(ctx context.Context, id int64) (*model.User, error) {
	row, err := s.queries.GetUser(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return toUserModel(row), nil
}

func (s *userStore) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	row, err := s.queries.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return toUserModel(row), nil
}

// UpsertByWorkOSID creates the user or refreshes its profile; user is
// overwritten with the stored row, so user.ID may change to the existing id.
func (s *userStore) UpsertByWorkOSID(ctx context.Context, user *model.User) error {
	row, err := s.queries.UpsertUserByWorkOSID(ctx, sqlc.UpsertUserByWorkOSIDParams{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		AvatarUrl: user.AvatarURL,
		WorkosID:  user.WorkOSID,
	})
	if err != nil {
		return err
	}
	*user = *toUserModel(row)
	return nil
}

func (s *userStore) SetPlatformAdmin(ctx context.Context, id int64, admin bool) (*model.User, error) {
	row, err := s.queries.SetUserPlatformAdmin(ctx, sqlc.SetUserPlatformAdminParams{
		IsPlatformAdmin: admin,
		ID:              id,
	})
	if err != nil {
		return nil, mapNotFound(err)
	}
	return toUserModel(row), nil
}

func (s *userStore) Count(ctx context.Context) (int64, error) {
	return s.queries.CountUsers(ctx)
}

func toUserModel(row sqlc.User) *model.User {
	return &model.User{
		ID:              row.ID,
		Name:            row.Name,
		Email:           row.Email,
		AvatarURL:       row.AvatarUrl,
		WorkOSID:        row.WorkosID,
		IsPlatformAdmin: row.IsPlatformAdmin,
		CreatedAt:       row.CreatedAt.Time,
		UpdatedAt:       row.UpdatedAt.Time,
	}
}
