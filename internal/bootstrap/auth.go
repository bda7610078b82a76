package bootstrap

import (
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/nextgen-organics/portal-api/config"
	"github.com/nextgen-organics/portal-api/internal/adapters/devauth"
	"github.com/nextgen-organics/portal-api/internal/adapters/oidc"
	redisadapter "github.com/nextgen-organics/portal-api/internal/adapters/redis"
	"github.com/nextgen-organics/portal-api/internal/data"
	"github.com/nextgen-organics/portal-api/internal/ports"
	"github.com/nextgen-organics/portal-api/internal/service"
)

// AuthDeps contains dependencies for building the auth stack.
type AuthDeps struct {
	Auth        config.AuthConfig
	DB          *sql.DB
	RedisClient redis.UniversalClient
	Logger      *slog.Logger
}

// BuildAuthService wires the auth stack for the configured mode. Sessions
// always live in Redis and roles always come from the profiles table; the
// mode only selects how the caller proves who they are.
func BuildAuthService(deps AuthDeps) (*service.AuthService, error) {
	if deps.RedisClient == nil {
		return nil, fmt.Errorf("auth requires a redis client for the session store")
	}
	if deps.DB == nil {
		return nil, fmt.Errorf("auth requires a database for profile lookups")
	}

	sessionStore := redisadapter.NewSessionStoreWithPrefix(deps.RedisClient, "session:")
	profiles := data.NewIdentityRepo(deps.DB)

	opts := service.AuthServiceOptions{
		Sessions:   sessionStore,
		Profiles:   profiles,
		SessionTTL: deps.Auth.SessionTTL,
	}

	switch deps.Auth.Mode {
	case config.AuthModeOAuth:
		provider, err := buildOIDCProvider(deps.Auth.OAuth)
		if err != nil {
			return nil, err
		}
		opts.Provider = provider
		// Password login stays available alongside SSO for vendor accounts.
		passwords, err := service.NewPasswordVerifier(data.NewProfileRepo(deps.DB))
		if err != nil {
			return nil, fmt.Errorf("wire password verifier: %w", err)
		}
		opts.Passwords = passwords

	case config.AuthModeMock:
		provider, err := devauth.NewProvider(devauth.Config{
			UserID: deps.Auth.DevAuth.UserID,
			Email:  deps.Auth.DevAuth.Email,
			Name:   deps.Auth.DevAuth.Name,
			Role:   deps.Auth.DevAuth.Role,
		})
		if err != nil {
			return nil, fmt.Errorf("wire dev auth provider: %w", err)
		}
		opts.Provider = provider

	case config.AuthModePassword:
		passwords, err := service.NewPasswordVerifier(data.NewProfileRepo(deps.DB))
		if err != nil {
			return nil, fmt.Errorf("wire password verifier: %w", err)
		}
		opts.Passwords = passwords

	default:
		return nil, fmt.Errorf("unknown auth mode %q", deps.Auth.Mode)
	}

	return service.NewAuthService(opts)
}

func buildOIDCProvider(cfg config.OAuthConfig) (ports.AuthProvider, error) {
	if cfg.DiscoveryURL == "" || cfg.ClientID == "" || cfg.ClientSecret == "" {
		return nil, fmt.Errorf(
			"oauth mode requires discovery URL, client ID, and client secret (discovery_url_empty=%t client_id_empty=%t client_secret_empty=%t)",
			cfg.DiscoveryURL == "", cfg.ClientID == "", cfg.ClientSecret == "")
	}

	provider, err := oidc.NewProvider(oidc.ProviderConfig{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		RedirectURL:  cfg.RedirectURL,
		Scope:        cfg.Scope,
		DiscoveryURL: cfg.DiscoveryURL,
		LogoutURL:    cfg.LogoutURL,
	})
	if err != nil {
		return nil, fmt.Errorf("wire oidc provider: %w", err)
	}
	return provider, nil
}
