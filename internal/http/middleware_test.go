package httpx

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/nextgen-organics/portal-api/internal/domain/auth"
	"github.com/nextgen-organics/portal-api/internal/domain/authz"
	mockauth "github.com/nextgen-organics/portal-api/internal/mocks/auth"
	"github.com/nextgen-organics/portal-api/internal/service"
)

const testCookieName = "portal_session"

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type middlewareFixture struct {
	handler  http.Handler
	store    *mockauth.MemorySessionStore
	profiles *mockauth.StaticProfileLookup
	hits     *int
}

func newMiddlewareFixture(t *testing.T) middlewareFixture {
	t.Helper()

	store := mockauth.NewMemorySessionStore()
	profiles := &mockauth.StaticProfileLookup{Identities: map[string]domainauth.Identity{}}

	auth, err := service.NewAuthService(service.AuthServiceOptions{Sessions: store, Profiles: profiles})
	require.NoError(t, err)

	routes := authz.Routes{
		Public:          []string{"/admin/login", "/vendor/login", "/healthz"},
		AdminPrefixes:   []string{"/admin"},
		VendorPrefixes:  []string{"/vendor"},
		AdminLogin:      "/admin/login",
		VendorLogin:     "/vendor/login",
		AdminDashboard:  "/admin/dashboard",
		VendorDashboard: "/vendor/dashboard",
		VendorPending:   "/vendor/pending",
	}
	access, err := service.NewAccessService(service.AccessServiceOptions{
		Engine:   authz.NewEngine(routes),
		Sessions: auth,
		Profiles: profiles,
	})
	require.NoError(t, err)

	hits := 0
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		if identity, ok := GetIdentityFromContext(r.Context()); ok {
			w.Header().Set("X-Resolved-Role", string(identity.Role))
		}
		w.WriteHeader(http.StatusOK)
	})

	mw := AccessControl(AccessControlOptions{
		Access:     access,
		Auth:       auth,
		CookieName: testCookieName,
	})

	return middlewareFixture{handler: mw(inner), store: store, profiles: profiles, hits: &hits}
}

func (f middlewareFixture) login(t *testing.T, sessionID string, identity domainauth.Identity) {
	t.Helper()
	f.profiles.Identities[identity.UserID] = identity
	require.NoError(t, f.store.Save(context.Background(), domainauth.Session{
		ID:        sessionID,
		UserID:    identity.UserID,
		Role:      identity.Role,
		ExpiresAt: time.Now().Add(time.Hour),
	}))
}

func doRequest(handler http.Handler, path, sessionID string, header http.Header) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	if sessionID != "" {
		req.AddCookie(&http.Cookie{Name: testCookieName, Value: sessionID})
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestAccessControl_AnonymousRedirectsToLogin(t *testing.T) {
	f := newMiddlewareFixture(t)

	rec := doRequest(f.handler, "/admin/dashboard", "", nil)
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/admin/login", rec.Header().Get("Location"))
	assert.Equal(t, 0, *f.hits)
}

func TestAccessControl_AnonymousJSONClientGetsPayload(t *testing.T) {
	f := newMiddlewareFixture(t)

	header := http.Header{"Accept": []string{"application/json"}}
	rec := doRequest(f.handler, "/vendor/dashboard", "", header)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "access_redirect", body["error"])
	assert.Equal(t, "/vendor/login", body["redirect_to"])
}

func TestAccessControl_AllowedRequestCarriesIdentity(t *testing.T) {
	f := newMiddlewareFixture(t)
	f.login(t, "sess-admin", domainauth.Identity{UserID: "u-a", Role: domainauth.RoleAdmin})

	rec := doRequest(f.handler, "/admin/dashboard", "sess-admin", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "admin", rec.Header().Get("X-Resolved-Role"))
	assert.Equal(t, 1, *f.hits)
}

func TestAccessControl_PublicPathNeedsNoSession(t *testing.T) {
	f := newMiddlewareFixture(t)

	rec := doRequest(f.handler, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAccessControl_SignOutDestroysSessionAndClearsCookie(t *testing.T) {
	f := newMiddlewareFixture(t)
	f.login(t, "sess-rej", domainauth.Identity{
		UserID: "u-r", Role: domainauth.RoleVendor, VendorStatus: domainauth.VendorRejected,
	})

	rec := doRequest(f.handler, "/vendor/dashboard", "sess-rej", nil)
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/vendor/login?error=account_rejected", rec.Header().Get("Location"))
	assert.Equal(t, 0, *f.hits)

	// The session is gone from the store.
	assert.Equal(t, 0, f.store.Len())

	// And the cookie is expired on the response.
	var cleared bool
	for _, c := range rec.Result().Cookies() {
		if c.Name == testCookieName {
			cleared = c.MaxAge < 0
		}
	}
	assert.True(t, cleared, "session cookie should be cleared")
}

func TestAccessControl_SuspendedVendorIsSignedOut(t *testing.T) {
	f := newMiddlewareFixture(t)
	f.login(t, "sess-v", domainauth.Identity{
		UserID: "u-v", Role: domainauth.RoleVendor, VendorStatus: domainauth.VendorApproved,
	})

	rec := doRequest(f.handler, "/vendor/dashboard", "sess-v", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	// Suspension takes effect on the very next request.
	f.profiles.Identities["u-v"] = domainauth.Identity{
		UserID: "u-v", Role: domainauth.RoleVendor, VendorStatus: domainauth.VendorSuspended,
	}

	rec = doRequest(f.handler, "/vendor/dashboard", "sess-v", nil)
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/vendor/login?error=account_rejected", rec.Header().Get("Location"))
}

func TestRequireRole(t *testing.T) {
	inner := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := RequireRole(domainauth.RoleAdmin)(inner)

	t.Run("no identity is unauthorized", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin/settings", nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("wrong role is forbidden", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/admin/settings", nil)
		ctx := SetIdentityInContext(req.Context(), &domainauth.Identity{UserID: "u-v", Role: domainauth.RoleVendor})
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req.WithContext(ctx))
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("matching role passes", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/admin/settings", nil)
		ctx := SetIdentityInContext(req.Context(), &domainauth.Identity{UserID: "u-a", Role: domainauth.RoleAdmin})
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req.WithContext(ctx))
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestRecover_TurnsPanicInto500(t *testing.T) {
	logger := discardLogger()
	handler := Recover(logger)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
