package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/nextgen-organics/portal-api/internal/domain/auth"
	"github.com/nextgen-organics/portal-api/internal/domain/authz"
	mockauth "github.com/nextgen-organics/portal-api/internal/mocks/auth"
)

func accessTestRoutes() authz.Routes {
	return authz.Routes{
		Public:          []string{"/admin/login", "/vendor/login", "/vendor/register", "/auth", "/healthz"},
		AdminPrefixes:   []string{"/admin"},
		VendorPrefixes:  []string{"/vendor"},
		AdminLogin:      "/admin/login",
		VendorLogin:     "/vendor/login",
		AdminDashboard:  "/admin/dashboard",
		VendorDashboard: "/vendor/dashboard",
		VendorPending:   "/vendor/pending",
	}
}

type accessFixture struct {
	svc      *AccessService
	store    *mockauth.MemorySessionStore
	profiles *mockauth.StaticProfileLookup
}

func newAccessFixture(t *testing.T) accessFixture {
	t.Helper()

	store := mockauth.NewMemorySessionStore()
	profiles := &mockauth.StaticProfileLookup{Identities: map[string]domainauth.Identity{}}

	sessions, err := NewAuthService(AuthServiceOptions{Sessions: store, Profiles: profiles})
	require.NoError(t, err)

	svc, err := NewAccessService(AccessServiceOptions{
		Engine:   authz.NewEngine(accessTestRoutes()),
		Sessions: sessions,
		Profiles: profiles,
	})
	require.NoError(t, err)

	return accessFixture{svc: svc, store: store, profiles: profiles}
}

func (f accessFixture) addSession(t *testing.T, id, userID string) {
	t.Helper()
	require.NoError(t, f.store.Save(context.Background(), domainauth.Session{
		ID:        id,
		UserID:    userID,
		Email:     userID + "@example.com",
		ExpiresAt: time.Now().Add(time.Hour),
	}))
}

func TestAccessService_Authorize_Anonymous(t *testing.T) {
	f := newAccessFixture(t)

	result := f.svc.Authorize(context.Background(), "", "/admin/dashboard")
	assert.Nil(t, result.Identity)
	assert.Equal(t, authz.VerdictRedirect, result.Decision.Verdict)
	assert.Equal(t, "/admin/login", result.Decision.Target)
}

func TestAccessService_Authorize_AdminAllowed(t *testing.T) {
	f := newAccessFixture(t)
	f.profiles.Identities["u-admin"] = domainauth.Identity{UserID: "u-admin", Role: domainauth.RoleAdmin}
	f.addSession(t, "sess-admin", "u-admin")

	result := f.svc.Authorize(context.Background(), "sess-admin", "/admin/dashboard")
	require.NotNil(t, result.Identity)
	assert.Equal(t, domainauth.RoleAdmin, result.Identity.Role)
	assert.Equal(t, authz.VerdictAllow, result.Decision.Verdict)
}

func TestAccessService_Authorize_UnknownSessionIsAnonymous(t *testing.T) {
	f := newAccessFixture(t)

	result := f.svc.Authorize(context.Background(), "no-such-session", "/vendor/dashboard")
	assert.Nil(t, result.Identity)
	assert.Equal(t, authz.VerdictRedirect, result.Decision.Verdict)
	assert.Equal(t, "/vendor/login", result.Decision.Target)
}

func TestAccessService_Authorize_ExpiredSessionIsAnonymous(t *testing.T) {
	f := newAccessFixture(t)
	require.NoError(t, f.store.Save(context.Background(), domainauth.Session{
		ID:        "sess-old",
		UserID:    "u-admin",
		ExpiresAt: time.Now().Add(-time.Minute),
	}))

	result := f.svc.Authorize(context.Background(), "sess-old", "/admin/dashboard")
	assert.Nil(t, result.Identity)
	assert.Equal(t, authz.VerdictRedirect, result.Decision.Verdict)
}

func TestAccessService_Authorize_MissingProfileDemotesToCustomer(t *testing.T) {
	f := newAccessFixture(t)
	// Session exists but the profile row is gone.
	f.addSession(t, "sess-ghost", "u-ghost")

	result := f.svc.Authorize(context.Background(), "sess-ghost", "/vendor/dashboard")
	require.NotNil(t, result.Identity)
	assert.Equal(t, domainauth.RoleCustomer, result.Identity.Role)
	assert.Equal(t, authz.VerdictDenyAndSignOut, result.Decision.Verdict)
}

func TestAccessService_Authorize_LookupErrorDemotesToCustomer(t *testing.T) {
	f := newAccessFixture(t)
	f.addSession(t, "sess-1", "u-1")
	f.profiles.Err = errors.New("profile store unavailable")

	result := f.svc.Authorize(context.Background(), "sess-1", "/admin/dashboard")
	require.NotNil(t, result.Identity)
	assert.Equal(t, domainauth.RoleCustomer, result.Identity.Role)
	assert.Equal(t, authz.VerdictDenyAndSignOut, result.Decision.Verdict)
}

// A vendor suspension must take effect on the very next request because the
// status is re-read from the profile store every time.
func TestAccessService_Authorize_StatusChangeTakesEffectImmediately(t *testing.T) {
	f := newAccessFixture(t)
	f.profiles.Identities["u-v"] = domainauth.Identity{
		UserID: "u-v", Role: domainauth.RoleVendor, VendorStatus: domainauth.VendorApproved,
	}
	f.addSession(t, "sess-v", "u-v")

	first := f.svc.Authorize(context.Background(), "sess-v", "/vendor/dashboard")
	assert.Equal(t, authz.VerdictAllow, first.Decision.Verdict)

	// Admin suspends the vendor; no re-login happens.
	f.profiles.Identities["u-v"] = domainauth.Identity{
		UserID: "u-v", Role: domainauth.RoleVendor, VendorStatus: domainauth.VendorSuspended,
	}

	second := f.svc.Authorize(context.Background(), "sess-v", "/vendor/dashboard")
	assert.Equal(t, authz.VerdictDenyAndSignOut, second.Decision.Verdict)
}

func TestAccessService_Authorize_PublicPathStaysPublicForAnonymous(t *testing.T) {
	f := newAccessFixture(t)

	for _, path := range []string{"/vendor/login", "/admin/login", "/healthz", "/auth/callback"} {
		result := f.svc.Authorize(context.Background(), "", path)
		assert.Equal(t, authz.VerdictAllow, result.Decision.Verdict, "path %s", path)
	}
}

func TestNewAccessService_Validation(t *testing.T) {
	sessions, err := NewAuthService(AuthServiceOptions{
		Sessions: mockauth.NewMemorySessionStore(),
		Profiles: &mockauth.StaticProfileLookup{},
	})
	require.NoError(t, err)

	_, err = NewAccessService(AccessServiceOptions{Sessions: sessions, Profiles: &mockauth.StaticProfileLookup{}})
	require.Error(t, err, "engine is required")

	_, err = NewAccessService(AccessServiceOptions{Engine: authz.NewEngine(accessTestRoutes()), Profiles: &mockauth.StaticProfileLookup{}})
	require.Error(t, err, "auth service is required")
}
