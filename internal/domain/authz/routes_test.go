package authz

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func testRoutes() Routes {
	return Routes{
		Public:          []string{"/admin/login", "/vendor/login", "/vendor/register", "/auth", "/forgot-password", "/healthz"},
		AdminPrefixes:   []string{"/admin"},
		VendorPrefixes:  []string{"/vendor"},
		AdminLogin:      "/admin/login",
		VendorLogin:     "/vendor/login",
		AdminDashboard:  "/admin/dashboard",
		VendorDashboard: "/vendor/dashboard",
		VendorPending:   "/vendor/pending",
	}
}

func TestRoutes_Classify(t *testing.T) {
	routes := testRoutes()

	tests := []struct {
		name string
		path string
		want RouteClass
	}{
		{"admin login is public despite admin prefix", "/admin/login", RoutePublic},
		{"vendor login is public despite vendor prefix", "/vendor/login", RoutePublic},
		{"vendor register is public", "/vendor/register", RoutePublic},
		{"auth callback is public", "/auth/callback", RoutePublic},
		{"health check is public", "/healthz", RoutePublic},
		{"forgot password is public", "/forgot-password", RoutePublic},
		{"admin root", "/admin", RouteAdminZone},
		{"admin dashboard", "/admin/dashboard", RouteAdminZone},
		{"nested admin path", "/admin/api/vendors/123", RouteAdminZone},
		{"vendor dashboard", "/vendor/dashboard", RouteVendorZone},
		{"nested vendor path", "/vendor/api/products", RouteVendorZone},
		{"root path", "/", RouteUnclassified},
		{"marketing page", "/about", RouteUnclassified},
		{"static asset", "/assets/logo.svg", RouteUnclassified},
		{"prefix must match on segment boundary", "/administrator", RouteUnclassified},
		{"vendor prefix not fooled by lookalike", "/vendors", RouteUnclassified},
		{"trailing slash on zone root", "/admin/", RouteAdminZone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, routes.Classify(tt.path))
		})
	}
}

func TestRoutes_IsLoginEntryPoint(t *testing.T) {
	routes := testRoutes()

	assert.True(t, routes.IsLoginEntryPoint("/admin/login"))
	assert.True(t, routes.IsLoginEntryPoint("/vendor/login"))
	assert.True(t, routes.IsLoginEntryPoint("/vendor/login/"))
	assert.False(t, routes.IsLoginEntryPoint("/auth/callback"))
	assert.False(t, routes.IsLoginEntryPoint("/vendor/register"))
	assert.False(t, routes.IsLoginEntryPoint("/healthz"))
}

func TestHasPathPrefix(t *testing.T) {
	tests := []struct {
		path   string
		prefix string
		want   bool
	}{
		{"/admin", "/admin", true},
		{"/admin/", "/admin", true},
		{"/admin/vendors", "/admin", true},
		{"/administrator", "/admin", false},
		{"/admin", "/admin/", true},
		{"/anything", "", true},
		{"/vendor/api", "/vendor", true},
		{"/vend", "/vendor", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, hasPathPrefix(tt.path, tt.prefix),
			"hasPathPrefix(%q, %q)", tt.path, tt.prefix)
	}
}

func TestRouteClass_String(t *testing.T) {
	assert.Equal(t, "public", RoutePublic.String())
	assert.Equal(t, "admin_zone", RouteAdminZone.String())
	assert.Equal(t, "vendor_zone", RouteVendorZone.String())
	assert.Equal(t, "unclassified", RouteUnclassified.String())
}
