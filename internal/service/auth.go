package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/workos/workos-go/v6/pkg/usermanagement"

	"switchyard.app/platform/common/id"
	"switchyard.app/platform/core/config"
	"switchyard.app/platform/internal/model"
	"switchyard.app/platform/internal/store"
)

const SessionDuration = 7 * 24 * time.Hour

var (
	ErrInvalidCode    = errors.New("invalid authorization code")
	ErrUserNotFound   = errors.New("user not found")
	ErrSessionExpired = errors.New("session expired")
)

type AuthService interface {
	GetAuthorizationURL(state string, opts ...AuthURLOption) (string, error)
	HandleCallback(ctx context.Context, code string) (*CallbackResult, error)
	ValidateSession(ctx context.Context, sessionID int64) (*model.User, *UserContext, error)
	GetSessionByID(ctx context.Context, sessionID int64) (*model.Session, error)
	GetLogoutURL(workosSessionID, returnTo string) string
	Logout(ctx context.Context, sessionID int64) error
}

type CallbackResult struct {
	User    *model.User
	Session *model.Session
}

// UserContext summarises what the dashboard needs right after sign-in.
type UserContext struct {
	Organizations   []model.Organization
	HasOrganization bool
	IsPlatformAdmin bool
}

type authURLOptions struct {
	loginHint string
}

type AuthURLOption func(*authURLOptions)

func WithLoginHint(email string) AuthURLOption {
	return func(o *authURLOptions) { o.loginHint = email }
}

// IdentityProvider is the subset of WorkOS user management used for sign-in.
type IdentityProvider interface {
	AuthorizationURL(state, loginHint string) (string, error)
	Authenticate(ctx context.Context, code string) (*Identity, error)
	LogoutURL(sessionID, returnTo string) (string, error)
}

type Identity struct {
	WorkOSID  string
	Email     string
	FirstName string
	LastName  string
	AvatarURL string
	// SessionID is the WorkOS session, read from the access token's sid claim.
	SessionID string
}

type authService struct {
	userStore    store.UserStore
	sessionStore store.SessionStore
	orgStore     store.OrganizationStore
	idp          IdentityProvider
	now          func() time.Time
}

func NewAuthService(
	userStore store.UserStore,
	sessionStore store.SessionStore,
	orgStore store.OrganizationStore,
	idp IdentityProvider,
) AuthService {
	return &authService{
		userStore:    userStore,
		sessionStore: sessionStore,
		orgStore:     orgStore,
		idp:          idp,
		now:          time.Now,
	}
}

func (s *authService) GetAuthorizationURL(state string, opts ...AuthURLOption) (string, error) {
	var o authURLOptions
	for _, opt := range opts {
		opt(&o)
	}
	url, err := s.idp.AuthorizationURL(state, o.loginHint)
	if err != nil {
		return "", fmt.Errorf("generating authorization URL: %w", err)
	}
	return url, nil
}

func (s *authService) HandleCallback(ctx context.Context, code string) (*CallbackResult, error) {
	identity, err := s.idp.Authenticate(ctx, code)
	if err != nil {
		slog.ErrorContext(ctx, "failed to authenticate with code", "error", err)
		return nil, ErrInvalidCode
	}

	var avatarURL *string
	if identity.AvatarURL != "" {
		avatarURL = &identity.AvatarURL
	}

	user := &model.User{
		ID:        id.New(),
		Name:      buildUserName(identity),
		Email:     normalizeEmail(identity.Email),
		AvatarURL: avatarURL,
		WorkOSID:  &identity.WorkOSID,
	}

	if err := s.userStore.UpsertByWorkOSID(ctx, user); err != nil {
		slog.ErrorContext(ctx, "failed to upsert user",
			"error", err,
			"email", user.Email,
			"workos_id", identity.WorkOSID,
		)
		return nil, fmt.Errorf("upserting user: %w", err)
	}

	session := &model.Session{
		ID:        id.New(),
		UserID:    user.ID,
		ExpiresAt: s.now().Add(SessionDuration),
	}
	if identity.SessionID != "" {
		session.WorkOSSessionID = &identity.SessionID
	}

	if err := s.sessionStore.Create(ctx, session); err != nil {
		slog.ErrorContext(ctx, "failed to create session",
			"error", err,
			"user_id", user.ID,
		)
		return nil, fmt.Errorf("creating session: %w", err)
	}

	slog.InfoContext(ctx, "user authenticated",
		"user_id", user.ID,
		"email", user.Email,
		"session_id", session.ID,
	)

	return &CallbackResult{User: user, Session: session}, nil
}

func (s *authService) ValidateSession(ctx context.Context, sessionID int64) (*model.User, *UserContext, error) {
	session, err := s.sessionStore.GetValid(ctx, sessionID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, nil, ErrSessionExpired
		}
		return nil, nil, fmt.Errorf("getting session: %w", err)
	}

	user, err := s.userStore.GetByID(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, nil, ErrUserNotFound
		}
		return nil, nil, fmt.Errorf("getting user: %w", err)
	}

	orgs, err := s.orgStore.ListForUser(ctx, user.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("listing organizations: %w", err)
	}

	return user, &UserContext{
		Organizations:   orgs,
		HasOrganization: len(orgs) > 0,
		IsPlatformAdmin: user.IsPlatformAdmin,
	}, nil
}

func (s *authService) GetSessionByID(ctx context.Context, sessionID int64) (*model.Session, error) {
	session, err := s.sessionStore.GetByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrSessionExpired
		}
		return nil, fmt.Errorf("getting session: %w", err)
	}
	return session, nil
}

func (s *authService) GetLogoutURL(workosSessionID, returnTo string) string {
	url, err := s.idp.LogoutURL(workosSessionID, returnTo)
	if err != nil {
		slog.Warn("failed to build logout URL", "error", err)
		return ""
	}
	return url
}

func (s *authService) Logout(ctx context.Context, sessionID int64) error {
	if err := s.sessionStore.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("deleting session: %w", err)
	}
	return nil
}

func buildUserName(identity *Identity) string {
	if identity.FirstName != "" && identity.LastName != "" {
		return identity.FirstName + " " + identity.LastName
	}
	if identity.FirstName != "" {
		return identity.FirstName
	}
	if identity.LastName != "" {
		return identity.LastName
	}
	return identity.Email
}

type workOSProvider struct {
	cfg config.WorkOSConfig
}

// NewWorkOSProvider configures the WorkOS SDK's package-level client.
func NewWorkOSProvider(cfg config.WorkOSConfig) IdentityProvider {
	usermanagement.SetAPIKey(cfg.APIKey)
	return &workOSProvider{cfg: cfg}
}

func (p *workOSProvider) AuthorizationURL(state, loginHint string) (string, error) {
	url, err := usermanagement.GetAuthorizationURL(usermanagement.GetAuthorizationURLOpts{
		ClientID:    p.cfg.ClientID,
		RedirectURI: p.cfg.RedirectURI,
		State:       state,
		Provider:    "authkit",
		LoginHint:   loginHint,
	})
	if err != nil {
		return "", err
	}
	return url.String(), nil
}

func (p *workOSProvider) Authenticate(ctx context.Context, code string) (*Identity, error) {
	resp, err := usermanagement.AuthenticateWithCode(ctx, usermanagement.AuthenticateWithCodeOpts{
		ClientID: p.cfg.ClientID,
		Code:     code,
	})
	if err != nil {
		return nil, err
	}
	return &Identity{
		WorkOSID:  resp.User.ID,
		Email:     resp.User.Email,
		FirstName: resp.User.FirstName,
		LastName:  resp.User.LastName,
		AvatarURL: resp.User.ProfilePictureURL,
		SessionID: sessionIDFromAccessToken(resp.AccessToken),
	}, nil
}

func (p *workOSProvider) LogoutURL(sessionID, returnTo string) (string, error) {
	url, err := usermanagement.GetLogoutURL(usermanagement.GetLogoutURLOpts{
		SessionID: sessionID,
		ReturnTo:  returnTo,
	})
	if err != nil {
		return "", err
	}
	return url.String(), nil
}

// sessionIDFromAccessToken reads the sid claim without verifying the token;
// it came straight from WorkOS over TLS and is only used to build a logout URL.
func sessionIDFromAccessToken(token string) string {
	if token == "" {
		return ""
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return ""
	}
	sid, _ := claims["sid"].(string)
	return sid
}
