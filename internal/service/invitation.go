package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"switchyard.app/platform/common/id"
	"switchyard.app/platform/internal/integration/notify"
	"switchyard.app/platform/internal/model"
	"switchyard.app/platform/internal/store"
)

const (
	InviteTokenLength = 32
	InviteExpiryDays  = 7
)

var (
	ErrInviteNotFound      = errors.New("invitation not found")
	ErrInviteExpired       = errors.New("invitation has expired")
	ErrInviteAlreadyUsed   = errors.New("invitation has already been used")
	ErrInviteRevoked       = errors.New("invitation has been revoked")
	ErrEmailMismatch       = errors.New("authenticated email does not match invitation")
	ErrInvitePendingExists = errors.New("a pending invitation already exists for this email")
	ErrInvalidEmail        = errors.New("invalid email address")
)

type InvitationService interface {
	Create(ctx context.Context, orgID int64, email string, role model.Role, invitedBy *int64) (*model.Invitation, string, error)
	ValidateToken(ctx context.Context, token string) (*model.Invitation, error)
	GetByToken(ctx context.Context, token string) (*model.Invitation, error)
	Accept(ctx context.Context, token string, user *model.User) (*model.Invitation, error)
	Revoke(ctx context.Context, orgID *int64, id int64) (*model.Invitation, error)
	ListByOrganization(ctx context.Context, orgID int64, limit, offset int32) ([]model.Invitation, error)
	ListPendingByOrganization(ctx context.Context, orgID int64) ([]model.Invitation, error)
	List(ctx context.Context, limit, offset int32) ([]model.Invitation, error)
	ListPending(ctx context.Context) ([]model.Invitation, error)
	ExpireOld(ctx context.Context) (int64, error)
}

type invitationService struct {
	invStore     store.InvitationStore
	orgStore     store.OrganizationStore
	txRunner     TxRunner
	notifier     notify.Sender
	dashboardURL string
}

func NewInvitationService(
	invStore store.InvitationStore,
	orgStore store.OrganizationStore,
	txRunner TxRunner,
	notifier notify.Sender,
	dashboardURL string,
) InvitationService {
	return &invitationService{
		invStore:     invStore,
		orgStore:     orgStore,
		txRunner:     txRunner,
		notifier:     notifier,
		dashboardURL: dashboardURL,
	}
}

func (s *invitationService) Create(ctx context.Context, orgID int64, email string, role model.Role, invitedBy *int64) (*model.Invitation, string, error) {
	email = normalizeEmail(email)
	if !strings.Contains(email, "@") {
		return nil, "", ErrInvalidEmail
	}
	if role == "" {
		role = model.RoleMember
	}

	// Check if there's already a pending invitation for this email
	existing, err := s.invStore.GetPendingByEmail(ctx, orgID, email)
	if err == nil && existing != nil && existing.IsValid() {
		return nil, "", ErrInvitePendingExists
	}
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return nil, "", fmt.Errorf("checking pending invitations: %w", err)
	}

	token, err := generateSecureToken(InviteTokenLength)
	if err != nil {
		return nil, "", fmt.Errorf("generating token: %w", err)
	}

	inv := &model.Invitation{
		ID:             id.New(),
		OrganizationID: orgID,
		Email:          email,
		Role:           role,
		Token:          token,
		Status:         model.InvitationStatusPending,
		InvitedBy:      invitedBy,
		ExpiresAt:      time.Now().Add(InviteExpiryDays * 24 * time.Hour),
	}

	if err := s.invStore.Create(ctx, inv); err != nil {
		return nil, "", fmt.Errorf("creating invitation: %w", err)
	}

	inviteURL := fmt.Sprintf("%s/invite?token=%s", s.dashboardURL, url.QueryEscape(token))

	slog.InfoContext(ctx, "invitation created",
		"invitation_id", inv.ID,
		"organization_id", orgID,
		"email", email,
		"expires_at", inv.ExpiresAt,
	)

	s.sendInviteEmail(ctx, inv, inviteURL)
	return inv, inviteURL, nil
}

// sendInviteEmail is best-effort; the link is also returned to the inviter.
func (s *invitationService) sendInviteEmail(ctx context.Context, inv *model.Invitation, inviteURL string) {
	if s.notifier == nil {
		return
	}
	orgName := "your team"
	if s.orgStore != nil {
		if org, err := s.orgStore.GetByID(ctx, inv.OrganizationID); err == nil {
			orgName = org.Name
		}
	}
	err := s.notifier.Send(ctx, notify.Message{
		To:      inv.Email,
		Subject: fmt.Sprintf("You've been invited to join %s", orgName),
		Text:    fmt.Sprintf("Accept your invitation to %s: %s\n\nThis link expires in %d days.", orgName, inviteURL, InviteExpiryDays),
		HTML: fmt.Sprintf(`<p>You've been invited to join <strong>%s</strong>.</p><p><a href="%s">Accept invitation</a></p><p>This link expires in %d days.</p>`,
			orgName, inviteURL, InviteExpiryDays),
	})
	if err != nil {
		slog.WarnContext(ctx, "failed to send invitation email",
			"error", err,
			"invitation_id", inv.ID)
	}
}

func (s *invitationService) ValidateToken(ctx context.Context, token string) (*model.Invitation, error) {
	inv, err := s.invStore.GetValidByToken(ctx, token)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// Try to get by token to determine if expired/used/revoked
			inv, err := s.invStore.GetByToken(ctx, token)
			if err != nil {
				return nil, ErrInviteNotFound
			}
			switch inv.Status {
			case model.InvitationStatusAccepted:
				return nil, ErrInviteAlreadyUsed
			case model.InvitationStatusRevoked:
				return nil, ErrInviteRevoked
			case model.InvitationStatusExpired:
				return nil, ErrInviteExpired
			default:
				if time.Now().After(inv.ExpiresAt) {
					return nil, ErrInviteExpired
				}
				return nil, ErrInviteNotFound
			}
		}
		return nil, fmt.Errorf("getting invitation: %w", err)
	}

	return inv, nil
}

func (s *invitationService) GetByToken(ctx context.Context, token string) (*model.Invitation, error) {
	inv, err := s.invStore.GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrInviteNotFound
		}
		return nil, fmt.Errorf("getting invitation: %w", err)
	}
	return inv, nil
}

// Accept marks the invitation used and adds the user to the organization.
// A user who is already a member keeps their existing role.
func (s *invitationService) Accept(ctx context.Context, token string, user *model.User) (*model.Invitation, error) {
	inv, err := s.ValidateToken(ctx, token)
	if err != nil {
		return nil, err
	}

	// Check email matches
	if !strings.EqualFold(inv.Email, user.Email) {
		slog.WarnContext(ctx, "email mismatch on invitation acceptance",
			"invitation_email", inv.Email,
			"user_email", user.Email,
			"invitation_id", inv.ID,
		)
		return nil, ErrEmailMismatch
	}

	var accepted *model.Invitation
	err = s.txRunner.WithTx(ctx, func(sp StoreProvider) error {
		var err error
		accepted, err = sp.Invitations().Accept(ctx, inv.ID, user.ID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrInviteAlreadyUsed
			}
			return fmt.Errorf("accepting invitation: %w", err)
		}

		_, err = sp.Memberships().Get(ctx, inv.OrganizationID, user.ID)
		switch {
		case err == nil:
			return nil
		case !errors.Is(err, store.ErrNotFound):
			return fmt.Errorf("checking membership: %w", err)
		}

		if err := sp.Memberships().Create(ctx, &model.Membership{
			ID:             id.New(),
			OrganizationID: inv.OrganizationID,
			UserID:         user.ID,
			Role:           inv.Role,
		}); err != nil {
			return fmt.Errorf("creating membership: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "invitation accepted",
		"invitation_id", inv.ID,
		"organization_id", inv.OrganizationID,
		"user_id", user.ID,
		"email", user.Email,
	)

	return accepted, nil
}

// Revoke cancels a pending invitation. When orgID is set the invitation
// must belong to that organization.
func (s *invitationService) Revoke(ctx context.Context, orgID *int64, id int64) (*model.Invitation, error) {
	if orgID != nil {
		existing, err := s.invStore.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return nil, ErrInviteNotFound
			}
			return nil, fmt.Errorf("getting invitation: %w", err)
		}
		if existing.OrganizationID != *orgID {
			return nil, ErrInviteNotFound
		}
	}

	inv, err := s.invStore.Revoke(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrInviteNotFound
		}
		return nil, fmt.Errorf("revoking invitation: %w", err)
	}

	slog.InfoContext(ctx, "invitation revoked",
		"invitation_id", id,
		"email", inv.Email,
	)

	return inv, nil
}

func (s *invitationService) ListByOrganization(ctx context.Context, orgID int64, limit, offset int32) ([]model.Invitation, error) {
	return s.invStore.ListByOrganization(ctx, orgID, limit, offset)
}

func (s *invitationService) ListPendingByOrganization(ctx context.Context, orgID int64) ([]model.Invitation, error) {
	return s.invStore.ListPendingByOrganization(ctx, orgID)
}

func (s *invitationService) List(ctx context.Context, limit, offset int32) ([]model.Invitation, error) {
	return s.invStore.List(ctx, limit, offset)
}

func (s *invitationService) ListPending(ctx context.Context) ([]model.Invitation, error) {
	return s.invStore.ListPending(ctx)
}

func (s *invitationService) ExpireOld(ctx context.Context) (int64, error) {
	n, err := s.invStore.ExpireOld(ctx)
	if err != nil {
		return 0, fmt.Errorf("expiring invitations: %w", err)
	}
	if n > 0 {
		slog.InfoContext(ctx, "expired stale invitations", "count", n)
	}
	return n, nil
}

func generateSecureToken(length int) (string, error) {
	bytes := make([]byte, length)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(bytes), nil
}
