package httpx

import (
	"context"

	domainauth "github.com/nextgen-organics/portal-api/internal/domain/auth"
)

// identityKey is an unexported context key type to avoid collisions across
// packages. The access-control middleware stores the resolved identity here.
type identityKey struct{}

// sessionIDKey carries the raw session cookie value for handlers that need to
// invalidate the session (logout).
type sessionIDKey struct{}

// SetIdentityInContext returns a child context carrying the resolved identity.
// A nil identity returns ctx unchanged.
func SetIdentityInContext(ctx context.Context, identity *domainauth.Identity) context.Context {
	if identity == nil {
		return ctx
	}
	return context.WithValue(ctx, identityKey{}, identity)
}

// GetIdentityFromContext returns the resolved identity and whether one is present.
func GetIdentityFromContext(ctx context.Context) (*domainauth.Identity, bool) {
	if id, ok := ctx.Value(identityKey{}).(*domainauth.Identity); ok && id != nil {
		return id, true
	}
	return nil, false
}

// SetSessionIDInContext returns a child context carrying the session cookie value.
func SetSessionIDInContext(ctx context.Context, sessionID string) context.Context {
	if sessionID == "" {
		return ctx
	}
	return context.WithValue(ctx, sessionIDKey{}, sessionID)
}

// GetSessionIDFromContext returns the session cookie value, or "".
func GetSessionIDFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(sessionIDKey{}).(string); ok {
		return v
	}
	return ""
}
