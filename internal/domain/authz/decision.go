package authz

import (
	domainauth "github.com/nextgen-organics/portal-api/internal/domain/auth"
)

// Verdict is the outcome kind of an access decision.
type Verdict int

const (
	// VerdictAllow serves the requested page.
	VerdictAllow Verdict = iota
	// VerdictRedirect sends the caller to Decision.Target.
	VerdictRedirect
	// VerdictDenyAndSignOut destroys the caller's session, then redirects to
	// Decision.Target.
	VerdictDenyAndSignOut
)

// String returns the verdict name for logs.
func (v Verdict) String() string {
	switch v {
	case VerdictAllow:
		return "allow"
	case VerdictRedirect:
		return "redirect"
	default:
		return "deny_and_sign_out"
	}
}

// Error codes carried on sign-out redirect targets so the login page can
// render the right message.
const (
	ErrCodeAccountRejected = "account_rejected"
	ErrCodeAccessDenied    = "access_denied"
)

// Decision is the result of evaluating one request. Never persisted.
type Decision struct {
	Verdict Verdict
	Target  string // redirect target; empty for allow
}

func allow() Decision {
	return Decision{Verdict: VerdictAllow}
}

func redirect(target string) Decision {
	return Decision{Verdict: VerdictRedirect, Target: target}
}

func signOut(target, errCode string) Decision {
	return Decision{Verdict: VerdictDenyAndSignOut, Target: target + "?error=" + errCode}
}

// Engine is the pure access decision function over (identity, route class,
// path). It holds only static route configuration and is safe for concurrent
// use; every call with the same inputs yields the same decision.
type Engine struct {
	routes Routes
}

// NewEngine constructs an Engine over validated route configuration.
func NewEngine(routes Routes) *Engine {
	return &Engine{routes: routes}
}

// Routes exposes the engine's route table (for classification by callers).
func (e *Engine) Routes() Routes { return e.routes }

// Decide evaluates the access rules in fixed order, first match wins. The
// ordering is part of the contract: the rules are not mutually exclusive in
// every case. It is total over well-formed inputs and never returns an error;
// any combination the explicit rules miss is denied fail-closed.
func (e *Engine) Decide(identity *domainauth.Identity, class RouteClass, path string) Decision {
	r := e.routes

	// Rule 1: public routes. Authenticated users re-visiting a login form are
	// bounced to their home instead of re-seeing it.
	if class == RoutePublic {
		if identity != nil && r.IsLoginEntryPoint(path) {
			return e.home(*identity)
		}
		return allow()
	}

	// Rule 2: unauthenticated callers on any non-public route go to the
	// zone-appropriate login; vendor login is the generic fallback.
	if identity == nil {
		if class == RouteAdminZone {
			return redirect(r.AdminLogin)
		}
		return redirect(r.VendorLogin)
	}

	status := identity.EffectiveVendorStatus()

	// Rule 3: admins have no business in the vendor zone.
	if identity.Role == domainauth.RoleAdmin && class == RouteVendorZone {
		return redirect(r.AdminDashboard)
	}

	// Rule 4: vendors in the admin zone are sent to their own home; rejected
	// vendors lose the session entirely.
	if identity.Role == domainauth.RoleVendor && class == RouteAdminZone {
		switch status {
		case domainauth.VendorApproved:
			return redirect(r.VendorDashboard)
		case domainauth.VendorRejected:
			return signOut(r.VendorLogin, ErrCodeAccountRejected)
		default:
			return redirect(r.VendorPending)
		}
	}

	// Rule 5: customers (and anything unrecognized, via the parse fallback)
	// have no portal; deny protected zones outright.
	if identity.Role == domainauth.RoleCustomer && (class == RouteAdminZone || class == RouteVendorZone) {
		return signOut(r.VendorLogin, ErrCodeAccessDenied)
	}

	// Rule 6: vendors inside the vendor zone are held at the pending screen
	// until approved, and kept off it afterwards.
	if identity.Role == domainauth.RoleVendor && class == RouteVendorZone {
		switch {
		case status == domainauth.VendorRejected:
			return signOut(r.VendorLogin, ErrCodeAccountRejected)
		case status == domainauth.VendorPending && !samePath(path, r.VendorPending):
			return redirect(r.VendorPending)
		case status == domainauth.VendorApproved && samePath(path, r.VendorPending):
			return redirect(r.VendorDashboard)
		default:
			return allow()
		}
	}

	// Rule 7: admins in the admin zone.
	if identity.Role == domainauth.RoleAdmin && class == RouteAdminZone {
		return allow()
	}

	// Rule 8: authenticated catch-all for unclassified routes (static assets
	// and other paths outside the access-controlled surface).
	if class == RouteUnclassified {
		return allow()
	}

	// Unreachable with a well-formed identity; deny fail-closed rather than
	// allow by default.
	return signOut(r.VendorLogin, ErrCodeAccessDenied)
}

// home resolves the canonical landing page for an identity: admins to the
// admin dashboard, approved vendors to theirs, pending vendors to the pending
// screen. Rejected vendors and customers have no home and are signed out.
func (e *Engine) home(identity domainauth.Identity) Decision {
	r := e.routes
	switch identity.Role {
	case domainauth.RoleAdmin:
		return redirect(r.AdminDashboard)
	case domainauth.RoleVendor:
		switch identity.EffectiveVendorStatus() {
		case domainauth.VendorApproved:
			return redirect(r.VendorDashboard)
		case domainauth.VendorPending:
			return redirect(r.VendorPending)
		default:
			return signOut(r.VendorLogin, ErrCodeAccountRejected)
		}
	default:
		return signOut(r.VendorLogin, ErrCodeAccessDenied)
	}
}
