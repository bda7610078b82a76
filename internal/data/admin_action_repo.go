package data

import (
	"context"
	"database/sql"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/nextgen-organics/portal-api/internal/data/pgxutil"
	"github.com/nextgen-organics/portal-api/internal/domain/model"
	apperrors "github.com/nextgen-organics/portal-api/internal/errors"
)

// AdminActionRepo provides database operations for the append-only audit log.
type AdminActionRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewAdminActionRepo creates a new AdminActionRepo with real time provider.
func NewAdminActionRepo(db *sql.DB) *AdminActionRepo {
	return &AdminActionRepo{DB: db, timeProvider: &RealTimeProvider{}}
}

// Insert appends an audit entry.
func (r *AdminActionRepo) Insert(ctx context.Context, action model.AdminAction) error {
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		_, err := conn.Exec(ctx, `
			INSERT INTO admin_actions (admin_id, action, target_type, target_id, note, created_at)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			action.AdminID,
			action.Action,
			action.TargetType,
			action.TargetID,
			action.Note,
			r.timeProvider.Now().UTC(),
		)
		return err
	}); err != nil {
		return apperrors.MapDBError(err)
	}
	return nil
}

// List retrieves audit entries, newest first.
func (r *AdminActionRepo) List(
	ctx context.Context,
	opts model.AdminActionsListOptions,
) ([]*model.AdminAction, error) {
	query := `SELECT id, admin_id, action, target_type, target_id, note, created_at FROM admin_actions`
	var where []string
	var args []any
	if opts.AdminID != nil {
		args = append(args, *opts.AdminID)
		where = append(where, "admin_id = $"+strconv.Itoa(len(args)))
	}
	if opts.TargetType != nil {
		args = append(args, *opts.TargetType)
		where = append(where, "target_type = $"+strconv.Itoa(len(args)))
	}
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	args = append(args, listLimit(opts.Limit), max(opts.Offset, 0))
	query += " ORDER BY created_at DESC LIMIT $" + strconv.Itoa(len(args)-1) + " OFFSET $" + strconv.Itoa(len(args))

	var rowsOut []model.AdminAction
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.AdminAction])
		return err
	}); err != nil {
		return nil, apperrors.MapDBError(err)
	}

	res := make([]*model.AdminAction, len(rowsOut))
	for i := range rowsOut {
		res[i] = &rowsOut[i]
	}
	return res, nil
}
