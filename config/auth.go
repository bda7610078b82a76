package config

import (
	"fmt"
	"strings"
	"time"
)

// AuthMode represents the authentication mode for the application.
type AuthMode string

const (
	// AuthModeOAuth uses OAuth/OIDC for authentication (admin SSO).
	AuthModeOAuth AuthMode = "oauth"
	// AuthModePassword uses email/password credentials stored in the profiles table.
	AuthModePassword AuthMode = "password"
	// AuthModeMock uses mock/dev authentication (for development only).
	AuthModeMock AuthMode = "mock"
)

// UnmarshalText implements encoding.TextUnmarshaler for AuthMode.
func (a *AuthMode) UnmarshalText(text []byte) error {
	v := strings.ToLower(string(text))
	switch v {
	case "oauth", "password", "mock":
		*a = AuthMode(v)
		return nil
	default:
		return fmt.Errorf("invalid AuthMode: %q (valid options: oauth, password, mock)", v)
	}
}

// OAuthConfig contains OAuth/OIDC configuration.
type OAuthConfig struct {
	ClientID     string `env:"CLIENT_ID"     envDefault:"nextgen-portal"`
	ClientSecret string `env:"CLIENT_SECRET" envDefault:"nextgen-portal"`
	RedirectURL  string `env:"REDIRECT_URL"  envDefault:"http://localhost:8080/auth/callback"`
	Scope        string `env:"SCOPE"         envDefault:"openid profile email groups"`
	DiscoveryURL string `env:"DISCOVERY_URL"`
	LogoutURL    string `env:"LOGOUT_URL"`
}

// DevAuthConfig controls mock/dev authentication identity.
// Used when AUTH_MODE=mock for development and testing.
type DevAuthConfig struct {
	UserID string `env:"USER_ID" envDefault:"dev-admin"`
	Email  string `env:"EMAIL"   envDefault:"dev@nextgenorganics.example"`
	Name   string `env:"NAME"    envDefault:"Dev Admin"`
	Role   string `env:"ROLE"    envDefault:"admin"`
}

// AuthConfig groups all authentication-related configuration.
type AuthConfig struct {
	// Mode determines which authentication provider to use.
	Mode AuthMode `env:"AUTH_MODE" envDefault:"password"`

	// OAuth configuration (used when Mode=oauth).
	OAuth OAuthConfig `envPrefix:"OAUTH_"`

	// DevAuth configuration (used when Mode=mock).
	DevAuth DevAuthConfig `envPrefix:"DEV_AUTH_"`

	// SessionTTL is the lifetime of a portal session.
	SessionTTL time.Duration `env:"SESSION_TTL" envDefault:"12h"`

	// SessionCookie is the name of the session cookie.
	SessionCookie string `env:"SESSION_COOKIE" envDefault:"ngo_session"`

	// ProfileLookupTimeout bounds the role/status lookup performed on every
	// guarded request. On timeout the caller falls back to the customer role.
	ProfileLookupTimeout time.Duration `env:"PROFILE_LOOKUP_TIMEOUT" envDefault:"2s"`
}

// Sanitize applies guardrails to auth configuration values.
func (a *AuthConfig) Sanitize() {
	if a.SessionTTL <= 0 {
		a.SessionTTL = 12 * time.Hour
	}
	a.SessionCookie = strings.TrimSpace(a.SessionCookie)
	if a.SessionCookie == "" {
		a.SessionCookie = "ngo_session"
	}
	if a.ProfileLookupTimeout <= 0 {
		a.ProfileLookupTimeout = 2 * time.Second
	}
}
