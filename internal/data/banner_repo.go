package data

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/nextgen-organics/portal-api/internal/data/pgxutil"
	"github.com/nextgen-organics/portal-api/internal/domain/model"
	apperrors "github.com/nextgen-organics/portal-api/internal/errors"
)

// ErrBannerNotFound is returned when a banner is not found.
var ErrBannerNotFound = errors.New("banner not found")

const bannerColumns = `id, title, subtitle, color_start, color_end, image_url, active, position, created_at`

// BannerRepo provides database operations for home-screen banners.
type BannerRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewBannerRepo creates a new BannerRepo with real time provider.
func NewBannerRepo(db *sql.DB) *BannerRepo {
	return &BannerRepo{DB: db, timeProvider: &RealTimeProvider{}}
}

// Create inserts a new banner.
func (r *BannerRepo) Create(ctx context.Context, req *model.CreateBannerRequest) (*model.Banner, error) {
	if req == nil {
		return nil, errors.New("create banner request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}

	var out model.Banner
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			INSERT INTO banners (title, subtitle, color_start, color_end, image_url, active, position, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			RETURNING `+bannerColumns,
			strings.TrimSpace(req.Title),
			req.Subtitle,
			strings.ToLower(req.ColorStart),
			strings.ToLower(req.ColorEnd),
			req.ImageURL,
			active,
			req.Position,
			r.timeProvider.Now().UTC(),
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Banner])
		return err
	}); err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return &out, nil
}

// GetByID retrieves a banner by ID.
func (r *BannerRepo) GetByID(ctx context.Context, id string) (*model.Banner, error) {
	var out model.Banner
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `SELECT `+bannerColumns+` FROM banners WHERE id = $1`, id)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Banner])
		return err
	}); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrBannerNotFound
		}
		return nil, apperrors.MapDBError(err)
	}
	return &out, nil
}

// List retrieves banners in display order.
func (r *BannerRepo) List(ctx context.Context, activeOnly bool) ([]*model.Banner, error) {
	query := `SELECT ` + bannerColumns + ` FROM banners`
	if activeOnly {
		query += ` WHERE active = true`
	}
	query += ` ORDER BY position ASC, created_at DESC`

	var rowsOut []model.Banner
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query)
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.Banner])
		return err
	}); err != nil {
		return nil, apperrors.MapDBError(err)
	}

	res := make([]*model.Banner, len(rowsOut))
	for i := range rowsOut {
		res[i] = &rowsOut[i]
	}
	return res, nil
}

// Update updates fields of a banner.
func (r *BannerRepo) Update(
	ctx context.Context,
	id string,
	req model.UpdateBannerRequest,
) (*model.Banner, error) {
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	var out model.Banner
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			UPDATE banners SET
				title       = COALESCE($2, title),
				subtitle    = COALESCE($3, subtitle),
				color_start = COALESCE($4, color_start),
				color_end   = COALESCE($5, color_end),
				image_url   = COALESCE($6, image_url),
				active      = COALESCE($7, active),
				position    = COALESCE($8, position)
			WHERE id = $1
			RETURNING `+bannerColumns,
			id,
			trimmedOrNil(req.Title),
			req.Subtitle,
			loweredOrNil(req.ColorStart),
			loweredOrNil(req.ColorEnd),
			req.ImageURL,
			req.Active,
			req.Position,
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Banner])
		return err
	}); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrBannerNotFound
		}
		return nil, apperrors.MapDBError(err)
	}
	return &out, nil
}

// Delete removes a banner.
func (r *BannerRepo) Delete(ctx context.Context, id string) error {
	var affected int64
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		res, err := conn.Exec(ctx, `DELETE FROM banners WHERE id = $1`, id)
		if err != nil {
			return err
		}
		affected = res.RowsAffected()
		return nil
	}); err != nil {
		return apperrors.MapDBError(err)
	}
	if affected == 0 {
		return ErrBannerNotFound
	}
	return nil
}

func loweredOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.ToLower(*s)
	return &t
}
