package config

import (
	"fmt"
	"strings"
)

// RoutesConfig describes the route zones and canonical redirect targets used
// by the access-control middleware. The zone lists are prefix-matched; the
// admin and vendor prefix sets must be disjoint, which Validate enforces
// before the server starts.
//
// Defaults follow the canonical /admin, /vendor path scheme.
type RoutesConfig struct {
	// PublicRoutes are served without authentication (checked first).
	PublicRoutes []string `env:"ROUTES_PUBLIC" envSeparator:"," envDefault:"/admin/login,/vendor/login,/vendor/register,/auth,/forgot-password,/healthz"`

	// AdminPrefixes and VendorPrefixes define the two protected zones.
	AdminPrefixes  []string `env:"ROUTES_ADMIN_PREFIXES"  envSeparator:"," envDefault:"/admin"`
	VendorPrefixes []string `env:"ROUTES_VENDOR_PREFIXES" envSeparator:"," envDefault:"/vendor"`

	// Canonical paths used as redirect targets.
	AdminLoginPath      string `env:"ROUTES_ADMIN_LOGIN"      envDefault:"/admin/login"`
	VendorLoginPath     string `env:"ROUTES_VENDOR_LOGIN"     envDefault:"/vendor/login"`
	AdminDashboardPath  string `env:"ROUTES_ADMIN_DASHBOARD"  envDefault:"/admin/dashboard"`
	VendorDashboardPath string `env:"ROUTES_VENDOR_DASHBOARD" envDefault:"/vendor/dashboard"`
	VendorPendingPath   string `env:"ROUTES_VENDOR_PENDING"   envDefault:"/vendor/pending"`
}

// Sanitize trims entries and drops empty ones.
func (r *RoutesConfig) Sanitize() {
	r.PublicRoutes = cleanPaths(r.PublicRoutes)
	r.AdminPrefixes = cleanPaths(r.AdminPrefixes)
	r.VendorPrefixes = cleanPaths(r.VendorPrefixes)
	r.AdminLoginPath = strings.TrimSpace(r.AdminLoginPath)
	r.VendorLoginPath = strings.TrimSpace(r.VendorLoginPath)
	r.AdminDashboardPath = strings.TrimSpace(r.AdminDashboardPath)
	r.VendorDashboardPath = strings.TrimSpace(r.VendorDashboardPath)
	r.VendorPendingPath = strings.TrimSpace(r.VendorPendingPath)
}

// Validate checks the invariants the access decision engine depends on:
// non-empty zone lists and canonical paths, and disjoint admin/vendor
// prefixes. A violation makes the engine's exhaustiveness guarantee unsound,
// so the process must refuse to start.
func (r *RoutesConfig) Validate() error {
	if len(r.AdminPrefixes) == 0 {
		return fmt.Errorf("routes config: at least one admin prefix is required")
	}
	if len(r.VendorPrefixes) == 0 {
		return fmt.Errorf("routes config: at least one vendor prefix is required")
	}
	for name, p := range map[string]string{
		"admin login":      r.AdminLoginPath,
		"vendor login":     r.VendorLoginPath,
		"admin dashboard":  r.AdminDashboardPath,
		"vendor dashboard": r.VendorDashboardPath,
		"vendor pending":   r.VendorPendingPath,
	} {
		if p == "" || !strings.HasPrefix(p, "/") {
			return fmt.Errorf("routes config: %s path must be a non-empty absolute path, got %q", name, p)
		}
	}
	for _, a := range r.AdminPrefixes {
		for _, v := range r.VendorPrefixes {
			if prefixesOverlap(a, v) {
				return fmt.Errorf("routes config: admin prefix %q and vendor prefix %q overlap", a, v)
			}
		}
	}
	return nil
}

// prefixesOverlap reports whether one zone prefix is a path-prefix of the
// other, which would let a single request path classify into both zones.
func prefixesOverlap(a, b string) bool {
	return pathHasPrefix(a, b) || pathHasPrefix(b, a)
}

// pathHasPrefix reports whether path falls under prefix on path-segment
// boundaries ("/admin" covers "/admin" and "/admin/x", not "/administrator").
func pathHasPrefix(path, prefix string) bool {
	prefix = strings.TrimSuffix(prefix, "/")
	if prefix == "" {
		return true
	}
	if !strings.HasPrefix(path, prefix) {
		return false
	}
	return len(path) == len(prefix) || path[len(prefix)] == '/'
}

func cleanPaths(in []string) []string {
	out := make([]string, 0, len(in))
	for _, p := range in {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
