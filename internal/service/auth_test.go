package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/nextgen-organics/portal-api/internal/domain/auth"
	mockauth "github.com/nextgen-organics/portal-api/internal/mocks/auth"
	"github.com/nextgen-organics/portal-api/internal/ports"
)

func newTestAuthService(t *testing.T, opts AuthServiceOptions) *AuthService {
	t.Helper()
	if opts.Sessions == nil {
		opts.Sessions = mockauth.NewMemorySessionStore()
	}
	if opts.Profiles == nil {
		opts.Profiles = &mockauth.StaticProfileLookup{}
	}
	svc, err := NewAuthService(opts)
	require.NoError(t, err)
	return svc
}

func TestNewAuthService_RequiresSessionStore(t *testing.T) {
	_, err := NewAuthService(AuthServiceOptions{Profiles: &mockauth.StaticProfileLookup{}})
	require.Error(t, err)
}

func TestAuthService_BeginLogin(t *testing.T) {
	provider := mockauth.NewMockAuthProvider()
	svc := newTestAuthService(t, AuthServiceOptions{Provider: provider})

	result, err := svc.BeginLogin(context.Background(), "https://portal.test/auth/callback")
	require.NoError(t, err)
	assert.Equal(t, "https://mock-idp/auth", result.AuthURL)
	assert.Equal(t, "state-1", result.State)
	assert.Equal(t, "nonce-1", result.Nonce)

	// Each flow gets fresh state and nonce.
	second, err := svc.BeginLogin(context.Background(), "https://portal.test/auth/callback")
	require.NoError(t, err)
	assert.NotEqual(t, result.State, second.State)
}

func TestAuthService_BeginLogin_NotConfigured(t *testing.T) {
	svc := newTestAuthService(t, AuthServiceOptions{})

	_, err := svc.BeginLogin(context.Background(), "https://portal.test/auth/callback")
	require.Error(t, err)
}

func TestAuthService_BeginLogin_RequiresRedirectURL(t *testing.T) {
	svc := newTestAuthService(t, AuthServiceOptions{Provider: mockauth.NewMockAuthProvider()})

	_, err := svc.BeginLogin(context.Background(), "")
	require.Error(t, err)
}

func TestAuthService_CompleteLogin_ResolvesRoleFromProfiles(t *testing.T) {
	provider := mockauth.NewMockAuthProvider()
	provider.DefaultUser = domainauth.Identity{UserID: "u-1", Email: "admin@example.com", Name: "SSO Name"}

	store := mockauth.NewMemorySessionStore()
	profiles := &mockauth.StaticProfileLookup{
		Identities: map[string]domainauth.Identity{
			"u-1": {UserID: "u-1", Email: "admin@example.com", Name: "Portal Admin", Role: domainauth.RoleAdmin},
		},
	}
	svc := newTestAuthService(t, AuthServiceOptions{Provider: provider, Sessions: store, Profiles: profiles})

	session, err := svc.CompleteLogin(context.Background(), CompleteLoginInput{
		Code: "code", State: "state-1", Nonce: "nonce-1",
	})
	require.NoError(t, err)
	assert.Equal(t, domainauth.RoleAdmin, session.Role)
	assert.Equal(t, "Portal Admin", session.Name)
	assert.NotEmpty(t, session.ID)
	assert.Equal(t, 1, store.Len())
}

func TestAuthService_CompleteLogin_UnknownProfileIsCustomer(t *testing.T) {
	provider := mockauth.NewMockAuthProvider()
	provider.DefaultUser = domainauth.Identity{UserID: "u-stranger", Email: "stranger@example.com"}

	svc := newTestAuthService(t, AuthServiceOptions{Provider: provider})

	session, err := svc.CompleteLogin(context.Background(), CompleteLoginInput{
		Code: "code", State: "s", Nonce: "n",
	})
	require.NoError(t, err)
	assert.Equal(t, domainauth.RoleCustomer, session.Role)
}

func TestAuthService_CompleteLogin_ProfileLookupFailure(t *testing.T) {
	provider := mockauth.NewMockAuthProvider()
	profiles := &mockauth.StaticProfileLookup{Err: errors.New("db down")}
	svc := newTestAuthService(t, AuthServiceOptions{Provider: provider, Profiles: profiles})

	_, err := svc.CompleteLogin(context.Background(), CompleteLoginInput{Code: "code", State: "s", Nonce: "n"})
	require.Error(t, err)
}

func TestAuthService_CompleteLogin_RequiresParams(t *testing.T) {
	svc := newTestAuthService(t, AuthServiceOptions{Provider: mockauth.NewMockAuthProvider()})

	tests := []CompleteLoginInput{
		{State: "s", Nonce: "n"},
		{Code: "c", Nonce: "n"},
		{Code: "c", State: "s"},
	}
	for _, input := range tests {
		_, err := svc.CompleteLogin(context.Background(), input)
		require.Error(t, err, "input %+v", input)
	}
}

func TestAuthService_CompleteLogin_ExchangeFailure(t *testing.T) {
	provider := mockauth.NewMockAuthProvider()
	provider.ExchangeFunc = func(_ context.Context, _ ports.ExchangeInput) (domainauth.Identity, error) {
		return domainauth.Identity{}, errors.New("state mismatch")
	}
	svc := newTestAuthService(t, AuthServiceOptions{Provider: provider})

	_, err := svc.CompleteLogin(context.Background(), CompleteLoginInput{Code: "c", State: "s", Nonce: "n"})
	require.Error(t, err)
}

func TestAuthService_PasswordLogin(t *testing.T) {
	passwords := &mockauth.MockPasswordAuthenticator{
		Passwords: map[string]string{"vendor@example.com": "hunter2hunter2"},
		Identities: map[string]domainauth.Identity{
			"vendor@example.com": {UserID: "u-v", Email: "vendor@example.com", Role: domainauth.RoleVendor},
		},
	}
	store := mockauth.NewMemorySessionStore()
	svc := newTestAuthService(t, AuthServiceOptions{Passwords: passwords, Sessions: store})

	session, err := svc.PasswordLogin(context.Background(), "vendor@example.com", "hunter2hunter2")
	require.NoError(t, err)
	assert.Equal(t, domainauth.RoleVendor, session.Role)
	assert.Equal(t, 1, store.Len())

	_, err = svc.PasswordLogin(context.Background(), "vendor@example.com", "wrong")
	require.Error(t, err)

	_, err = svc.PasswordLogin(context.Background(), "", "hunter2hunter2")
	require.Error(t, err)
}

func TestAuthService_PasswordLogin_NotConfigured(t *testing.T) {
	svc := newTestAuthService(t, AuthServiceOptions{})

	_, err := svc.PasswordLogin(context.Background(), "a@b.c", "pw")
	require.Error(t, err)
}

func TestAuthService_GetSession(t *testing.T) {
	store := mockauth.NewMemorySessionStore()
	svc := newTestAuthService(t, AuthServiceOptions{Sessions: store})

	require.NoError(t, store.Save(context.Background(), domainauth.Session{
		ID:        "sess-1",
		UserID:    "u-1",
		Role:      domainauth.RoleAdmin,
		ExpiresAt: time.Now().Add(time.Hour),
	}))

	session, err := svc.GetSession(context.Background(), "sess-1")
	require.NoError(t, err)
	assert.Equal(t, "u-1", session.UserID)

	_, err = svc.GetSession(context.Background(), "missing")
	require.Error(t, err)

	_, err = svc.GetSession(context.Background(), "")
	require.Error(t, err)
}

func TestAuthService_GetSession_ExpiredIsDeleted(t *testing.T) {
	store := mockauth.NewMemorySessionStore()
	svc := newTestAuthService(t, AuthServiceOptions{Sessions: store})

	require.NoError(t, store.Save(context.Background(), domainauth.Session{
		ID:        "sess-old",
		UserID:    "u-1",
		ExpiresAt: time.Now().Add(-time.Minute),
	}))

	_, err := svc.GetSession(context.Background(), "sess-old")
	require.ErrorIs(t, err, ErrSessionExpired)
	assert.Equal(t, 0, store.Len(), "expired session should be removed")
}

func TestAuthService_Logout(t *testing.T) {
	store := mockauth.NewMemorySessionStore()
	svc := newTestAuthService(t, AuthServiceOptions{Sessions: store})

	require.NoError(t, store.Save(context.Background(), domainauth.Session{
		ID: "sess-1", UserID: "u-1", ExpiresAt: time.Now().Add(time.Hour),
	}))

	require.NoError(t, svc.Logout(context.Background(), "sess-1"))
	assert.Equal(t, 0, store.Len())

	// Empty and unknown session IDs are not errors.
	require.NoError(t, svc.Logout(context.Background(), ""))
	require.NoError(t, svc.Logout(context.Background(), "unknown"))
}
