package data

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/nextgen-organics/portal-api/internal/data/pgxutil"
	domainauth "github.com/nextgen-organics/portal-api/internal/domain/auth"
	"github.com/nextgen-organics/portal-api/internal/domain/model"
	apperrors "github.com/nextgen-organics/portal-api/internal/errors"
)

// ErrVendorNotFound is returned when a vendor is not found.
var ErrVendorNotFound = errors.New("vendor not found")

const vendorColumns = `id, user_id, shop_name, phone, address, status, created_at, updated_at`

// VendorRepo provides database operations for vendors.
type VendorRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewVendorRepo creates a new VendorRepo with real time provider.
func NewVendorRepo(db *sql.DB) *VendorRepo {
	return &VendorRepo{DB: db, timeProvider: &RealTimeProvider{}}
}

// NewVendorRepoWithTimeProvider creates a new VendorRepo with a custom time provider (useful for tests).
func NewVendorRepoWithTimeProvider(db *sql.DB, tp TimeProvider) *VendorRepo {
	return &VendorRepo{DB: db, timeProvider: tp}
}

// Create inserts a new vendor row. New vendors always start pending.
func (r *VendorRepo) Create(ctx context.Context, req *model.CreateVendorRequest) (*model.Vendor, error) {
	if req == nil {
		return nil, errors.New("create vendor request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	now := r.timeProvider.Now().UTC()
	var out model.Vendor
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			INSERT INTO vendors (user_id, shop_name, phone, address, status, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $6)
			RETURNING `+vendorColumns,
			req.UserID,
			strings.TrimSpace(req.ShopName),
			strings.TrimSpace(req.Phone),
			strings.TrimSpace(req.Address),
			string(domainauth.VendorPending),
			now,
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Vendor])
		return err
	}); err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return &out, nil
}

// GetByID retrieves a vendor by ID.
func (r *VendorRepo) GetByID(ctx context.Context, id string) (*model.Vendor, error) {
	return r.getByQuery(ctx, `SELECT `+vendorColumns+` FROM vendors WHERE id = $1`, id)
}

// GetByUserID retrieves a vendor by the owning user's ID.
func (r *VendorRepo) GetByUserID(ctx context.Context, userID string) (*model.Vendor, error) {
	return r.getByQuery(ctx, `SELECT `+vendorColumns+` FROM vendors WHERE user_id = $1`, userID)
}

// ListWithOwners retrieves vendors joined with their owner profile, newest first.
func (r *VendorRepo) ListWithOwners(
	ctx context.Context,
	opts model.VendorsListOptions,
) ([]*model.VendorWithOwner, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = 50
	}
	offset := max(opts.Offset, 0)

	query := `
		SELECT v.id, v.user_id, v.shop_name, v.phone, v.address, v.status,
		       v.created_at, v.updated_at,
		       p.full_name AS owner_name, p.email AS owner_email
		FROM vendors v
		JOIN profiles p ON p.id = v.user_id`
	args := []any{}
	var where []string
	if opts.Status != nil {
		args = append(args, string(*opts.Status))
		where = append(where, "v.status = $"+strconv.Itoa(len(args)))
	}
	if opts.Q != nil && strings.TrimSpace(*opts.Q) != "" {
		args = append(args, "%"+strings.TrimSpace(*opts.Q)+"%")
		where = append(where, "v.shop_name ILIKE $"+strconv.Itoa(len(args)))
	}
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	args = append(args, limit, offset)
	query += " ORDER BY v.created_at DESC LIMIT $" + strconv.Itoa(len(args)-1) + " OFFSET $" + strconv.Itoa(len(args))

	var rowsOut []model.VendorWithOwner
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.VendorWithOwner])
		return err
	}); err != nil {
		return nil, apperrors.MapDBError(err)
	}

	res := make([]*model.VendorWithOwner, len(rowsOut))
	for i := range rowsOut {
		res[i] = &rowsOut[i]
	}
	return res, nil
}

// UpdateStatus sets a vendor's approval status.
func (r *VendorRepo) UpdateStatus(
	ctx context.Context,
	id string,
	status domainauth.VendorStatus,
) (*model.Vendor, error) {
	now := r.timeProvider.Now().UTC()
	var out model.Vendor
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			UPDATE vendors SET status = $2, updated_at = $3
			WHERE id = $1
			RETURNING `+vendorColumns,
			id, string(status), now,
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Vendor])
		return err
	}); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrVendorNotFound
		}
		return nil, apperrors.MapDBError(err)
	}
	return &out, nil
}

func (r *VendorRepo) getByQuery(ctx context.Context, query, arg string) (*model.Vendor, error) {
	var out model.Vendor
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, arg)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Vendor])
		return err
	}); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrVendorNotFound
		}
		return nil, apperrors.MapDBError(err)
	}
	return &out, nil
}
