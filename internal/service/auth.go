package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	domainauth "github.com/nextgen-organics/portal-api/internal/domain/auth"
	"github.com/nextgen-organics/portal-api/internal/ports"
)

// ErrSessionExpired is returned when a session exists but has passed its expiry.
var ErrSessionExpired = errors.New("session expired")

// AuthServiceOptions groups dependencies for AuthService.
type AuthServiceOptions struct {
	Provider   ports.AuthProvider         // Optional: SSO flow (oauth/mock modes)
	Passwords  ports.PasswordAuthenticator // Optional: password flow
	Sessions   ports.SessionStore
	Profiles   ports.ProfileLookup
	SessionTTL time.Duration
}

// AuthService orchestrates login flows: it authenticates the caller through
// the configured provider, resolves the role from the profile store, and
// persists a server-side session.
type AuthService struct {
	provider   ports.AuthProvider
	passwords  ports.PasswordAuthenticator
	sessions   ports.SessionStore
	profiles   ports.ProfileLookup
	sessionTTL time.Duration
}

// NewAuthService constructs a new AuthService.
func NewAuthService(opts AuthServiceOptions) (*AuthService, error) {
	if opts.Sessions == nil {
		return nil, errors.New("SessionStore is required")
	}
	if opts.Profiles == nil {
		return nil, errors.New("ProfileLookup is required")
	}
	ttl := opts.SessionTTL
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}
	return &AuthService{
		provider:   opts.Provider,
		passwords:  opts.Passwords,
		sessions:   opts.Sessions,
		profiles:   opts.Profiles,
		sessionTTL: ttl,
	}, nil
}

// BeginLoginResult contains the result of beginning an SSO login flow.
type BeginLoginResult struct {
	AuthURL string
	State   string
	Nonce   string
}

// BeginLogin initiates the SSO flow and returns the provider auth URL with
// state and nonce for the handler to pin in short-lived cookies.
func (s *AuthService) BeginLogin(ctx context.Context, redirectURL string) (*BeginLoginResult, error) {
	if s.provider == nil {
		return nil, errors.New("SSO login is not configured")
	}
	if redirectURL == "" {
		return nil, errors.New("redirect URL is required")
	}

	authURL, state, nonce, err := s.provider.Begin(ctx, ports.BeginInput{RedirectURL: redirectURL})
	if err != nil {
		return nil, fmt.Errorf("begin auth flow: %w", err)
	}

	return &BeginLoginResult{AuthURL: authURL, State: state, Nonce: nonce}, nil
}

// CompleteLoginInput groups parameters for completing an SSO login flow.
type CompleteLoginInput struct {
	Code  string
	State string
	Nonce string
}

// CompleteLogin completes the SSO flow: exchanges the code for an identity,
// resolves the role from the profile store, and persists a session. Identities
// without a profile row get the customer role; they authenticate fine but the
// access rules keep them out of both portals.
func (s *AuthService) CompleteLogin(ctx context.Context, input CompleteLoginInput) (domainauth.Session, error) {
	if s.provider == nil {
		return domainauth.Session{}, errors.New("SSO login is not configured")
	}
	if input.Code == "" {
		return domainauth.Session{}, errors.New("authorization code is required")
	}
	if input.State == "" {
		return domainauth.Session{}, errors.New("state parameter is required")
	}
	if input.Nonce == "" {
		return domainauth.Session{}, errors.New("nonce parameter is required")
	}

	identity, err := s.provider.Exchange(ctx, ports.ExchangeInput{
		Code:  input.Code,
		State: input.State,
		Nonce: input.Nonce,
	})
	if err != nil {
		return domainauth.Session{}, fmt.Errorf("exchange authorization code: %w", err)
	}

	if identity.Role == "" {
		resolved, lookupErr := s.profiles.Lookup(ctx, identity.UserID)
		switch {
		case lookupErr == nil:
			identity.Role = resolved.Role
			if resolved.Name != "" {
				identity.Name = resolved.Name
			}
		case errors.Is(lookupErr, ports.ErrProfileNotFound):
			identity.Role = domainauth.RoleCustomer
		default:
			return domainauth.Session{}, fmt.Errorf("resolve profile: %w", lookupErr)
		}
	}

	return s.createSession(ctx, identity)
}

// PasswordLogin verifies email/password credentials and persists a session.
func (s *AuthService) PasswordLogin(ctx context.Context, email, password string) (domainauth.Session, error) {
	if s.passwords == nil {
		return domainauth.Session{}, errors.New("password login is not configured")
	}
	if email == "" || password == "" {
		return domainauth.Session{}, errors.New("email and password are required")
	}

	identity, err := s.passwords.Authenticate(ctx, email, password)
	if err != nil {
		return domainauth.Session{}, err
	}

	return s.createSession(ctx, identity)
}

func (s *AuthService) createSession(ctx context.Context, identity domainauth.Identity) (domainauth.Session, error) {
	session := domainauth.Session{
		ID:        uuid.NewString(),
		UserID:    identity.UserID,
		Email:     identity.Email,
		Name:      identity.Name,
		Role:      identity.Role,
		ExpiresAt: time.Now().Add(s.sessionTTL),
	}
	if err := s.sessions.Save(ctx, session); err != nil {
		return domainauth.Session{}, fmt.Errorf("save session: %w", err)
	}
	return session, nil
}

// GetSession retrieves a session by ID, deleting it when past expiry.
func (s *AuthService) GetSession(ctx context.Context, sessionID string) (*domainauth.Session, error) {
	if sessionID == "" {
		return nil, errors.New("session ID is required")
	}

	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}

	if time.Now().After(session.ExpiresAt) {
		if deleteErr := s.sessions.Delete(ctx, sessionID); deleteErr != nil {
			return nil, errors.Join(ErrSessionExpired, fmt.Errorf("delete session: %w", deleteErr))
		}
		return nil, ErrSessionExpired
	}

	return &session, nil
}

// Logout removes a session. A missing or empty session ID is not an error.
func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}
