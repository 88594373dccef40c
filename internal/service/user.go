package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"switchyard.app/platform/internal/model"
	"switchyard.app/platform/internal/store"
)

type UserService interface {
	Get(ctx context.Context, id int64) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	SetPlatformAdmin(ctx context.Context, email string, admin bool) (*model.User, error)
}

type userService struct {
	userStore store.UserStore
}

func NewUserService(userStore store.UserStore) UserService {
	return &userService{userStore: userStore}
}

func (s *userService) Get(ctx context.Context, id int64) (*model.User, error) {
	user, err := s.userStore.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("getting user: %w", err)
	}
	return user, nil
}

func (s *userService) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	user, err := s.userStore.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("getting user: %w", err)
	}
	return user, nil
}

// SetPlatformAdmin requires the user to have signed in at least once.
func (s *userService) SetPlatformAdmin(ctx context.Context, email string, admin bool) (*model.User, error) {
	user, err := s.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	updated, err := s.userStore.SetPlatformAdmin(ctx, user.ID, admin)
	if err != nil {
		slog.ErrorContext(ctx, "failed to update platform admin flag",
			"error", err,
			"user_id", user.ID,
		)
		return nil, fmt.Errorf("updating user: %w", err)
	}

	slog.InfoContext(ctx, "platform admin flag updated", "user_id", user.ID, "is_platform_admin", admin)
	return updated, nil
}
