package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	domainauth "github.com/nextgen-organics/portal-api/internal/domain/auth"
	"github.com/nextgen-organics/portal-api/internal/domain/authz"
	"github.com/nextgen-organics/portal-api/internal/ports"
)

// AccessServiceOptions groups dependencies for AccessService.
type AccessServiceOptions struct {
	Engine   *authz.Engine
	Sessions *AuthService
	Profiles ports.ProfileLookup
	// LookupTimeout bounds the per-request role/status lookup. Zero means 2s.
	LookupTimeout time.Duration
	Logger        *slog.Logger
}

// AccessService resolves the caller's identity for a request and runs it
// through the access decision engine. It sits in front of every page request;
// everything here must stay cheap and must never fail open.
type AccessService struct {
	engine        *authz.Engine
	sessions      *AuthService
	profiles      ports.ProfileLookup
	lookupTimeout time.Duration
	logger        *slog.Logger
}

// NewAccessService constructs a new AccessService.
func NewAccessService(opts AccessServiceOptions) (*AccessService, error) {
	if opts.Engine == nil {
		return nil, errors.New("decision engine is required")
	}
	if opts.Sessions == nil {
		return nil, errors.New("AuthService is required")
	}
	if opts.Profiles == nil {
		return nil, errors.New("ProfileLookup is required")
	}
	timeout := opts.LookupTimeout
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &AccessService{
		engine:        opts.Engine,
		sessions:      opts.Sessions,
		profiles:      opts.Profiles,
		lookupTimeout: timeout,
		logger:        logger.With("component", "access_service"),
	}, nil
}

// AccessResult carries the decision plus the resolved identity (nil when the
// caller is anonymous) for handlers further down the chain.
type AccessResult struct {
	Decision authz.Decision
	Class    authz.RouteClass
	Identity *domainauth.Identity
}

// Authorize evaluates one request: session cookie value (may be empty) plus
// the request path. It never returns an error; every failure mode degrades to
// a deterministic decision instead.
func (s *AccessService) Authorize(ctx context.Context, sessionID, path string) AccessResult {
	class := s.engine.Routes().Classify(path)

	identity := s.resolveIdentity(ctx, sessionID)
	decision := s.engine.Decide(identity, class, path)

	if decision.Verdict != authz.VerdictAllow {
		s.logger.InfoContext(ctx, "access decision",
			"path", path,
			"class", class.String(),
			"verdict", decision.Verdict.String(),
			"target", decision.Target,
			"authenticated", identity != nil,
		)
	}
	return AccessResult{Decision: decision, Class: class, Identity: identity}
}

// resolveIdentity turns a session cookie into an identity, or nil for
// anonymous. The role and vendor status are re-read from the profile store on
// every call so revocations (vendor suspended, role changed) take effect on
// the next request, not at next login.
func (s *AccessService) resolveIdentity(ctx context.Context, sessionID string) *domainauth.Identity {
	if sessionID == "" {
		return nil
	}

	session, err := s.sessions.GetSession(ctx, sessionID)
	if err != nil {
		// Missing, expired, or unreadable sessions are all anonymous.
		return nil
	}

	lookupCtx, cancel := context.WithTimeout(ctx, s.lookupTimeout)
	defer cancel()

	identity, err := s.profiles.Lookup(lookupCtx, session.UserID)
	if err != nil {
		if !errors.Is(err, ports.ErrProfileNotFound) {
			s.logger.WarnContext(ctx, "profile lookup failed, demoting to customer",
				"user_id", session.UserID, "err", err)
		}
		// Least privilege: an unknown or unreadable profile is a customer,
		// which the decision rules keep out of both portals.
		return &domainauth.Identity{
			UserID: session.UserID,
			Email:  session.Email,
			Name:   session.Name,
			Role:   domainauth.RoleCustomer,
		}
	}

	return &identity
}
