package authz

// Package authz implements the pure route access-control decision logic for
// the portal: classify a request path into a zone, then combine the zone with
// the caller's role and vendor approval status into a single verdict. It has
// no I/O and no framework dependencies; resolving the caller's identity is
// the job of the service layer.

import "strings"

// RouteClass categorizes a request path.
type RouteClass int

const (
	// RoutePublic is served without authentication (login pages, auth callback).
	RoutePublic RouteClass = iota
	// RouteAdminZone is the admin portal surface.
	RouteAdminZone
	// RouteVendorZone is the vendor portal surface.
	RouteVendorZone
	// RouteUnclassified is anything outside the configured zones
	// (static assets, marketing pages).
	RouteUnclassified
)

// String returns the route class name for logs.
func (c RouteClass) String() string {
	switch c {
	case RoutePublic:
		return "public"
	case RouteAdminZone:
		return "admin_zone"
	case RouteVendorZone:
		return "vendor_zone"
	default:
		return "unclassified"
	}
}

// Routes carries the zone lists and canonical paths the engine decides with.
// It is built once at startup from config.RoutesConfig; the config layer has
// already validated that the admin and vendor prefixes are disjoint.
type Routes struct {
	Public         []string
	AdminPrefixes  []string
	VendorPrefixes []string

	AdminLogin      string
	VendorLogin     string
	AdminDashboard  string
	VendorDashboard string
	VendorPending   string
}

// Classify maps a request path to exactly one RouteClass.
// Checked in fixed priority order: public, admin zone, vendor zone; anything
// else is unclassified. Matching is prefix-based on path-segment boundaries
// and tolerates trailing slashes.
func (r Routes) Classify(path string) RouteClass {
	switch {
	case matchesAny(path, r.Public):
		return RoutePublic
	case matchesAny(path, r.AdminPrefixes):
		return RouteAdminZone
	case matchesAny(path, r.VendorPrefixes):
		return RouteVendorZone
	default:
		return RouteUnclassified
	}
}

// IsLoginEntryPoint reports whether path is one of the login forms, as
// opposed to other public paths such as the auth callback.
func (r Routes) IsLoginEntryPoint(path string) bool {
	return samePath(path, r.AdminLogin) || samePath(path, r.VendorLogin)
}

func matchesAny(path string, prefixes []string) bool {
	for _, p := range prefixes {
		if hasPathPrefix(path, p) {
			return true
		}
	}
	return false
}

// hasPathPrefix reports whether path falls under prefix on path-segment
// boundaries: "/admin" covers "/admin", "/admin/" and "/admin/vendors" but
// not "/administrator".
func hasPathPrefix(path, prefix string) bool {
	prefix = strings.TrimSuffix(prefix, "/")
	if prefix == "" {
		return true
	}
	if !strings.HasPrefix(path, prefix) {
		return false
	}
	return len(path) == len(prefix) || path[len(prefix)] == '/'
}

// samePath compares two paths ignoring a trailing slash.
func samePath(a, b string) bool {
	return strings.TrimSuffix(a, "/") == strings.TrimSuffix(b, "/")
}
