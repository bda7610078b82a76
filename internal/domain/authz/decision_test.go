package authz

import (
	"testing"

	"github.com/stretchr/testify/assert"

	domainauth "github.com/nextgen-organics/portal-api/internal/domain/auth"
)

func testEngine() *Engine {
	return NewEngine(testRoutes())
}

func admin() *domainauth.Identity {
	return &domainauth.Identity{UserID: "u-admin", Role: domainauth.RoleAdmin}
}

func vendor(status domainauth.VendorStatus) *domainauth.Identity {
	return &domainauth.Identity{UserID: "u-vendor", Role: domainauth.RoleVendor, VendorStatus: status}
}

func customer() *domainauth.Identity {
	return &domainauth.Identity{UserID: "u-customer", Role: domainauth.RoleCustomer}
}

func TestEngine_Decide_PublicRoutes(t *testing.T) {
	e := testEngine()

	t.Run("anonymous callers are served", func(t *testing.T) {
		d := e.Decide(nil, RoutePublic, "/vendor/login")
		assert.Equal(t, VerdictAllow, d.Verdict)
	})

	t.Run("admin revisiting admin login is bounced home", func(t *testing.T) {
		d := e.Decide(admin(), RoutePublic, "/admin/login")
		assert.Equal(t, VerdictRedirect, d.Verdict)
		assert.Equal(t, "/admin/dashboard", d.Target)
	})

	t.Run("approved vendor revisiting vendor login is bounced home", func(t *testing.T) {
		d := e.Decide(vendor(domainauth.VendorApproved), RoutePublic, "/vendor/login")
		assert.Equal(t, VerdictRedirect, d.Verdict)
		assert.Equal(t, "/vendor/dashboard", d.Target)
	})

	t.Run("pending vendor revisiting a login form lands on pending screen", func(t *testing.T) {
		d := e.Decide(vendor(domainauth.VendorPending), RoutePublic, "/vendor/login")
		assert.Equal(t, VerdictRedirect, d.Verdict)
		assert.Equal(t, "/vendor/pending", d.Target)
	})

	t.Run("rejected vendor revisiting a login form is signed out", func(t *testing.T) {
		d := e.Decide(vendor(domainauth.VendorRejected), RoutePublic, "/vendor/login")
		assert.Equal(t, VerdictDenyAndSignOut, d.Verdict)
		assert.Equal(t, "/vendor/login?error="+ErrCodeAccountRejected, d.Target)
	})

	t.Run("authenticated users on non-login public paths are served", func(t *testing.T) {
		d := e.Decide(admin(), RoutePublic, "/auth/callback")
		assert.Equal(t, VerdictAllow, d.Verdict)
	})

	t.Run("customer revisiting a login form is signed out", func(t *testing.T) {
		d := e.Decide(customer(), RoutePublic, "/admin/login")
		assert.Equal(t, VerdictDenyAndSignOut, d.Verdict)
		assert.Equal(t, "/vendor/login?error="+ErrCodeAccessDenied, d.Target)
	})
}

func TestEngine_Decide_Anonymous(t *testing.T) {
	e := testEngine()

	t.Run("admin zone redirects to admin login", func(t *testing.T) {
		d := e.Decide(nil, RouteAdminZone, "/admin/dashboard")
		assert.Equal(t, VerdictRedirect, d.Verdict)
		assert.Equal(t, "/admin/login", d.Target)
	})

	t.Run("vendor zone redirects to vendor login", func(t *testing.T) {
		d := e.Decide(nil, RouteVendorZone, "/vendor/dashboard")
		assert.Equal(t, VerdictRedirect, d.Verdict)
		assert.Equal(t, "/vendor/login", d.Target)
	})

	t.Run("unclassified routes fall back to vendor login", func(t *testing.T) {
		d := e.Decide(nil, RouteUnclassified, "/profile")
		assert.Equal(t, VerdictRedirect, d.Verdict)
		assert.Equal(t, "/vendor/login", d.Target)
	})
}

func TestEngine_Decide_AdminCrossZone(t *testing.T) {
	e := testEngine()

	d := e.Decide(admin(), RouteVendorZone, "/vendor/dashboard")
	assert.Equal(t, VerdictRedirect, d.Verdict)
	assert.Equal(t, "/admin/dashboard", d.Target)
}

func TestEngine_Decide_VendorInAdminZone(t *testing.T) {
	e := testEngine()

	tests := []struct {
		name    string
		status  domainauth.VendorStatus
		verdict Verdict
		target  string
	}{
		{"approved vendor goes to own dashboard", domainauth.VendorApproved, VerdictRedirect, "/vendor/dashboard"},
		{"pending vendor goes to pending screen", domainauth.VendorPending, VerdictRedirect, "/vendor/pending"},
		{"rejected vendor is signed out", domainauth.VendorRejected, VerdictDenyAndSignOut, "/vendor/login?error=" + ErrCodeAccountRejected},
		{"suspended vendor is treated as rejected", domainauth.VendorSuspended, VerdictDenyAndSignOut, "/vendor/login?error=" + ErrCodeAccountRejected},
		{"empty status defaults to pending", "", VerdictRedirect, "/vendor/pending"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := e.Decide(vendor(tt.status), RouteAdminZone, "/admin/vendors")
			assert.Equal(t, tt.verdict, d.Verdict)
			assert.Equal(t, tt.target, d.Target)
		})
	}
}

func TestEngine_Decide_CustomerDeniedEverywhere(t *testing.T) {
	e := testEngine()
	want := "/vendor/login?error=" + ErrCodeAccessDenied

	for _, class := range []RouteClass{RouteAdminZone, RouteVendorZone} {
		d := e.Decide(customer(), class, "/whatever")
		assert.Equal(t, VerdictDenyAndSignOut, d.Verdict, "class %s", class)
		assert.Equal(t, want, d.Target, "class %s", class)
	}
}

func TestEngine_Decide_VendorInVendorZone(t *testing.T) {
	e := testEngine()

	t.Run("approved vendor is served", func(t *testing.T) {
		d := e.Decide(vendor(domainauth.VendorApproved), RouteVendorZone, "/vendor/dashboard")
		assert.Equal(t, VerdictAllow, d.Verdict)
	})

	t.Run("approved vendor is kept off the pending screen", func(t *testing.T) {
		d := e.Decide(vendor(domainauth.VendorApproved), RouteVendorZone, "/vendor/pending")
		assert.Equal(t, VerdictRedirect, d.Verdict)
		assert.Equal(t, "/vendor/dashboard", d.Target)
	})

	t.Run("pending vendor is held at the pending screen", func(t *testing.T) {
		d := e.Decide(vendor(domainauth.VendorPending), RouteVendorZone, "/vendor/dashboard")
		assert.Equal(t, VerdictRedirect, d.Verdict)
		assert.Equal(t, "/vendor/pending", d.Target)
	})

	t.Run("pending vendor may view the pending screen", func(t *testing.T) {
		d := e.Decide(vendor(domainauth.VendorPending), RouteVendorZone, "/vendor/pending")
		assert.Equal(t, VerdictAllow, d.Verdict)
	})

	t.Run("pending screen matches with trailing slash", func(t *testing.T) {
		d := e.Decide(vendor(domainauth.VendorPending), RouteVendorZone, "/vendor/pending/")
		assert.Equal(t, VerdictAllow, d.Verdict)
	})

	t.Run("rejected vendor is signed out", func(t *testing.T) {
		d := e.Decide(vendor(domainauth.VendorRejected), RouteVendorZone, "/vendor/dashboard")
		assert.Equal(t, VerdictDenyAndSignOut, d.Verdict)
		assert.Equal(t, "/vendor/login?error="+ErrCodeAccountRejected, d.Target)
	})

	t.Run("suspended vendor is signed out like rejected", func(t *testing.T) {
		d := e.Decide(vendor(domainauth.VendorSuspended), RouteVendorZone, "/vendor/products")
		assert.Equal(t, VerdictDenyAndSignOut, d.Verdict)
		assert.Equal(t, "/vendor/login?error="+ErrCodeAccountRejected, d.Target)
	})
}

func TestEngine_Decide_AdminInAdminZone(t *testing.T) {
	e := testEngine()

	d := e.Decide(admin(), RouteAdminZone, "/admin/api/vendors")
	assert.Equal(t, VerdictAllow, d.Verdict)
}

func TestEngine_Decide_UnclassifiedAuthenticated(t *testing.T) {
	e := testEngine()

	for name, identity := range map[string]*domainauth.Identity{
		"admin":           admin(),
		"approved vendor": vendor(domainauth.VendorApproved),
		"pending vendor":  vendor(domainauth.VendorPending),
		"customer":        customer(),
	} {
		t.Run(name, func(t *testing.T) {
			d := e.Decide(identity, RouteUnclassified, "/assets/logo.svg")
			assert.Equal(t, VerdictAllow, d.Verdict)
		})
	}
}

// Decisions must be deterministic: same inputs, same outcome, every time.
func TestEngine_Decide_Deterministic(t *testing.T) {
	e := testEngine()
	id := vendor(domainauth.VendorPending)

	first := e.Decide(id, RouteVendorZone, "/vendor/orders")
	for i := 0; i < 100; i++ {
		assert.Equal(t, first, e.Decide(id, RouteVendorZone, "/vendor/orders"))
	}
}

func TestVerdict_String(t *testing.T) {
	assert.Equal(t, "allow", VerdictAllow.String())
	assert.Equal(t, "redirect", VerdictRedirect.String())
	assert.Equal(t, "deny_and_sign_out", VerdictDenyAndSignOut.String())
}
