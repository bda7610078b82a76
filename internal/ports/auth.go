package ports

// Package ports defines interfaces (hexagonal ports) for auth-related behavior.
// Implementations live in internal/adapters and internal/data; orchestration
// in internal/service.

import (
	"context"
	"errors"
	"io"

	domainauth "github.com/nextgen-organics/portal-api/internal/domain/auth"
)

// ErrProfileNotFound is returned by ProfileLookup when no profile row exists
// for the user. Callers treat this as the customer role (least privilege).
var ErrProfileNotFound = errors.New("profile not found")

// BeginInput carries inputs for initiating an auth flow.
type BeginInput struct {
	RedirectURL string
}

// ExchangeInput groups parameters for the code/token exchange.
type ExchangeInput struct {
	Code  string
	State string
	Nonce string
}

// AuthProvider initiates and completes an authentication flow against an IdP.
// Used for the SSO login mode; password logins go through PasswordAuthenticator.
type AuthProvider interface {
	// Begin starts the login flow and returns the provider auth URL, an opaque state, and a nonce.
	Begin(ctx context.Context, in BeginInput) (authURL, state, nonce string, err error)

	// Exchange completes the login flow, verifying state and nonce, and returns the authenticated identity.
	Exchange(ctx context.Context, in ExchangeInput) (domainauth.Identity, error)
}

// PasswordAuthenticator verifies email/password credentials against the
// profile store and returns the matching identity.
type PasswordAuthenticator interface {
	Authenticate(ctx context.Context, email, password string) (domainauth.Identity, error)
}

// SessionStore persists and retrieves user sessions.
type SessionStore interface {
	Save(ctx context.Context, sess domainauth.Session) error
	Get(ctx context.Context, id string) (domainauth.Session, error)
	Delete(ctx context.Context, id string) error
}

// ProfileLookup resolves a user ID to its role and, for vendors, the approval
// status. It is read-only and idempotent; the access-control path calls it on
// every guarded request. A missing profile must surface as ErrProfileNotFound
// so the caller can apply the customer fallback.
type ProfileLookup interface {
	Lookup(ctx context.Context, userID string) (domainauth.Identity, error)
}

// PutObjectInput groups parameters for ObjectStore.Put.
type PutObjectInput struct {
	Key         string
	ContentType string
	Body        io.Reader
}

// ObjectStore stores uploaded media (product and banner images) and returns
// publicly addressable URLs.
type ObjectStore interface {
	Put(ctx context.Context, in PutObjectInput) (url string, err error)
	Delete(ctx context.Context, key string) error
}
