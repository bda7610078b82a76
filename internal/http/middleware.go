package httpx

import (
	"errors"
	"log/slog"
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	domainauth "github.com/nextgen-organics/portal-api/internal/domain/auth"
	"github.com/nextgen-organics/portal-api/internal/domain/authz"
	"github.com/nextgen-organics/portal-api/internal/service"
)

// Logging returns a middleware that logs HTTP requests and responses.
func Logging(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			const defaultHTTPStatus = 200
			ww := &respWriter{ResponseWriter: w, status: defaultHTTPStatus}
			next.ServeHTTP(ww, r)
			logger.Info("http",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", ww.status),
				slog.Duration("duration", time.Since(start)),
			)
		})
	}
}

type respWriter struct {
	http.ResponseWriter
	status int
}

func (w *respWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

// Recover returns a middleware that recovers from panics and logs them.
func Recover(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					logger.Error("panic",
						slog.Any("error", err),
						slog.String("path", r.URL.Path),
						slog.String("method", r.Method),
						slog.String("stack", string(debug.Stack())))
					http.Error(w, "Internal Server Error", http.StatusInternalServerError)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// AccessControlOptions groups dependencies for the AccessControl middleware.
type AccessControlOptions struct {
	Access       *service.AccessService
	Auth         *service.AuthService
	CookieName   string
	CookieDomain string
}

// AccessControl returns the middleware that runs every request through the
// access decision engine. Allowed requests continue with the resolved
// identity in context; redirects and sign-outs are handled here so handlers
// never see a request they are not entitled to.
func AccessControl(opts AccessControlOptions) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sessionID := ""
			if c, err := r.Cookie(opts.CookieName); err == nil {
				sessionID = c.Value
			}

			result := opts.Access.Authorize(r.Context(), sessionID, r.URL.Path)

			switch result.Decision.Verdict {
			case authz.VerdictAllow:
				ctx := SetIdentityInContext(r.Context(), result.Identity)
				ctx = SetSessionIDInContext(ctx, sessionID)
				next.ServeHTTP(w, r.WithContext(ctx))

			case authz.VerdictRedirect:
				redirectDecision(w, r, result.Decision.Target)

			case authz.VerdictDenyAndSignOut:
				// Destroy the session before redirecting; the cookie is cleared
				// even if the store delete fails.
				if sessionID != "" {
					_ = opts.Auth.Logout(r.Context(), sessionID)
				}
				clearCookie(w, r, opts.CookieName, opts.CookieDomain)
				redirectDecision(w, r, result.Decision.Target)
			}
		})
	}
}

// redirectDecision sends the caller to target: a 302 for browser navigation,
// a JSON payload with the target for API clients that cannot follow page
// redirects usefully.
func redirectDecision(w http.ResponseWriter, r *http.Request, target string) {
	if wantsJSON(r) {
		WriteJSON(w, http.StatusForbidden, map[string]string{
			"error":       "access_redirect",
			"redirect_to": target,
		})
		return
	}
	http.Redirect(w, r, target, http.StatusFound)
}

func wantsJSON(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "application/json") ||
		strings.EqualFold(r.Header.Get("X-Requested-With"), "XMLHttpRequest")
}

// RequireRole returns a middleware that requires the resolved identity to
// have the given role. The access-control zones already separate admins from
// vendors; this is a second check for mounts where the zone alone is not
// enough (e.g. shared upload endpoints).
func RequireRole(role domainauth.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, ok := GetIdentityFromContext(r.Context())
			if !ok {
				WriteError(w, ErrorParams{
					Code:    http.StatusUnauthorized,
					ErrCode: "authentication_required",
					Err:     errors.New("authentication required"),
				})
				return
			}
			if identity.Role != role {
				WriteError(w, ErrorParams{
					Code:    http.StatusForbidden,
					ErrCode: "insufficient_permissions",
					Err:     errors.New("insufficient permissions"),
				})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// clearCookie clears a cookie by setting it to expire immediately. It mirrors
// the attributes used when setting cookies so deletion works across browsers.
func clearCookie(w http.ResponseWriter, r *http.Request, name, domain string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		Domain:   domain,
		HttpOnly: true,
		Secure:   isSecureRequest(r),
		MaxAge:   -1,
		Expires:  time.Unix(0, 0).UTC(),
		SameSite: http.SameSiteLaxMode,
	})
}

func isSecureRequest(r *http.Request) bool {
	return r.TLS != nil || strings.EqualFold(r.Header.Get("X-Forwarded-Proto"), "https")
}
