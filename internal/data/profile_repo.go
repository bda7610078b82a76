package data

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/nextgen-organics/portal-api/internal/data/pgxutil"
	domainauth "github.com/nextgen-organics/portal-api/internal/domain/auth"
	"github.com/nextgen-organics/portal-api/internal/domain/model"
	apperrors "github.com/nextgen-organics/portal-api/internal/errors"
)

// ErrProfileNotFound is returned when a profile row is missing.
var ErrProfileNotFound = errors.New("profile not found")

const profileColumns = `id, email, full_name, phone, role, password_hash, created_at, updated_at`

// ProfileRepo provides database operations for user profiles.
type ProfileRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewProfileRepo creates a new ProfileRepo with real time provider.
func NewProfileRepo(db *sql.DB) *ProfileRepo {
	return &ProfileRepo{DB: db, timeProvider: &RealTimeProvider{}}
}

// Create inserts a new profile with the given bcrypt password hash.
func (r *ProfileRepo) Create(
	ctx context.Context,
	req *model.CreateProfileRequest,
	passwordHash []byte,
) (*model.Profile, error) {
	if req == nil {
		return nil, errors.New("create profile request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	now := r.timeProvider.Now().UTC()
	var out model.Profile
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			INSERT INTO profiles (email, full_name, phone, role, password_hash, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $6)
			RETURNING `+profileColumns,
			strings.ToLower(strings.TrimSpace(req.Email)),
			strings.TrimSpace(req.FullName),
			req.Phone,
			string(req.Role),
			passwordHash,
			now,
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Profile])
		return err
	}); err != nil {
		return nil, apperrors.MapDBError(err)
	}
	out.Role = domainauth.ParseRole(string(out.Role))
	return &out, nil
}

// GetByID retrieves a profile by ID.
func (r *ProfileRepo) GetByID(ctx context.Context, id string) (*model.Profile, error) {
	return r.getByQuery(ctx, `SELECT `+profileColumns+` FROM profiles WHERE id = $1`, id)
}

// GetByEmail retrieves a profile by email (case-insensitive).
func (r *ProfileRepo) GetByEmail(ctx context.Context, email string) (*model.Profile, error) {
	return r.getByQuery(ctx,
		`SELECT `+profileColumns+` FROM profiles WHERE lower(email) = lower($1)`,
		strings.TrimSpace(email),
	)
}

func (r *ProfileRepo) getByQuery(ctx context.Context, query, arg string) (*model.Profile, error) {
	var out model.Profile
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, arg)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Profile])
		return err
	}); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProfileNotFound
		}
		return nil, apperrors.MapDBError(err)
	}
	// Normalize the stored role string exactly once, at the data boundary.
	out.Role = domainauth.ParseRole(string(out.Role))
	return &out, nil
}
