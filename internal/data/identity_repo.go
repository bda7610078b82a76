package data

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/nextgen-organics/portal-api/internal/data/pgxutil"
	domainauth "github.com/nextgen-organics/portal-api/internal/domain/auth"
	apperrors "github.com/nextgen-organics/portal-api/internal/errors"
	"github.com/nextgen-organics/portal-api/internal/ports"
)

// IdentityRepo implements ports.ProfileLookup with a single query joining the
// profile to its vendor row. The access-control path runs this on every
// guarded request, so it stays one round trip.
type IdentityRepo struct {
	DB *sql.DB
}

// NewIdentityRepo creates a new IdentityRepo.
func NewIdentityRepo(db *sql.DB) *IdentityRepo {
	return &IdentityRepo{DB: db}
}

// Lookup resolves the user's role and, for vendors, the approval status.
// A missing profile surfaces as ports.ErrProfileNotFound.
func (r *IdentityRepo) Lookup(ctx context.Context, userID string) (domainauth.Identity, error) {
	var (
		email, name, role string
		vendorStatus      *string
	)
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		return conn.QueryRow(ctx, `
			SELECT p.email, p.full_name, p.role, v.status
			FROM profiles p
			LEFT JOIN vendors v ON v.user_id = p.id
			WHERE p.id = $1`, userID,
		).Scan(&email, &name, &role, &vendorStatus)
	}); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domainauth.Identity{}, ports.ErrProfileNotFound
		}
		return domainauth.Identity{}, apperrors.MapDBError(err)
	}

	id := domainauth.Identity{
		UserID: userID,
		Email:  email,
		Name:   name,
		Role:   domainauth.ParseRole(role),
	}
	if id.Role == domainauth.RoleVendor {
		// A vendor profile without a vendors row is held at pending.
		if vendorStatus != nil {
			id.VendorStatus = domainauth.ParseVendorStatus(*vendorStatus)
		} else {
			id.VendorStatus = domainauth.VendorPending
		}
	}
	return id, nil
}
