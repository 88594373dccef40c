package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"switchyard.app/platform/internal/model"
	"switchyard.app/platform/internal/store"
)

var (
	ErrMemberNotFound = errors.New("member not found")
	ErrLastOwner      = errors.New("organization must keep at least one owner")
)

type MemberService interface {
	List(ctx context.Context, orgID int64) ([]model.Member, error)
	Get(ctx context.Context, orgID, userID int64) (*model.Membership, error)
	UpdateRole(ctx context.Context, orgID, userID int64, role model.Role) (*model.Membership, error)
	Remove(ctx context.Context, orgID, userID int64) error
}

type memberService struct {
	txRunner        TxRunner
	membershipStore store.MembershipStore
}

func NewMemberService(txRunner TxRunner, membershipStore store.MembershipStore) MemberService {
	return &memberService{txRunner: txRunner, membershipStore: membershipStore}
}

func (s *memberService) List(ctx context.Context, orgID int64) ([]model.Member, error) {
	members, err := s.membershipStore.ListMembers(ctx, orgID)
	if err != nil {
		return nil, fmt.Errorf("listing members: %w", err)
	}
	return members, nil
}

func (s *memberService) Get(ctx context.Context, orgID, userID int64) (*model.Membership, error) {
	m, err := s.membershipStore.Get(ctx, orgID, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, fmt.Errorf("getting membership: %w", err)
	}
	return m, nil
}

func (s *memberService) UpdateRole(ctx context.Context, orgID, userID int64, role model.Role) (*model.Membership, error) {
	var updated *model.Membership
	err := s.txRunner.WithTx(ctx, func(sp StoreProvider) error {
		if err := guardLastOwner(ctx, sp.Memberships(), orgID, userID, role); err != nil {
			return err
		}
		var err error
		updated, err = sp.Memberships().UpdateRole(ctx, orgID, userID, role)
		if err != nil {
			return fmt.Errorf("updating role: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "member role updated",
		"organization_id", orgID,
		"user_id", userID,
		"role", role)
	return updated, nil
}

func (s *memberService) Remove(ctx context.Context, orgID, userID int64) error {
	err := s.txRunner.WithTx(ctx, func(sp StoreProvider) error {
		if err := guardLastOwner(ctx, sp.Memberships(), orgID, userID, ""); err != nil {
			return err
		}
		if err := sp.Memberships().Delete(ctx, orgID, userID); err != nil {
			return fmt.Errorf("removing member: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	slog.InfoContext(ctx, "member removed", "organization_id", orgID, "user_id", userID)
	return nil
}

// guardLastOwner rejects changes that would leave the organization without
// an owner. next is the member's new role, empty when the member is removed.
func guardLastOwner(ctx context.Context, memberships store.MembershipStore, orgID, userID int64, next model.Role) error {
	current, err := memberships.Get(ctx, orgID, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrMemberNotFound
		}
		return fmt.Errorf("getting membership: %w", err)
	}
	if current.Role != model.RoleOwner || next == model.RoleOwner {
		return nil
	}

	owners, err := memberships.CountOwners(ctx, orgID)
	if err != nil {
		return fmt.Errorf("counting owners: %w", err)
	}
	if owners <= 1 {
		return ErrLastOwner
	}
	return nil
}
