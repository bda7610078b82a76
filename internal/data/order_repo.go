package data

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/nextgen-organics/portal-api/internal/core"
	"github.com/nextgen-organics/portal-api/internal/data/pgxutil"
	"github.com/nextgen-organics/portal-api/internal/domain/model"
	apperrors "github.com/nextgen-organics/portal-api/internal/errors"
)

var (
	// ErrOrderNotFound is returned when an order is not found.
	ErrOrderNotFound = errors.New("order not found")
	// ErrOrderStatusChanged is returned when the compare-and-set transition
	// loses to a concurrent update.
	ErrOrderStatusChanged = errors.New("order status changed concurrently")
)

const orderColumns = `id, customer_id, vendor_id, status, subtotal, delivery_fee, total, created_at, updated_at`

// OrderRepo provides database operations for orders.
type OrderRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewOrderRepo creates a new OrderRepo with real time provider.
func NewOrderRepo(db *sql.DB) *OrderRepo {
	return &OrderRepo{DB: db, timeProvider: &RealTimeProvider{}}
}

// NewOrderRepoWithTimeProvider creates a new OrderRepo with a custom time provider (useful for tests).
func NewOrderRepoWithTimeProvider(db *sql.DB, tp TimeProvider) *OrderRepo {
	return &OrderRepo{DB: db, timeProvider: tp}
}

// GetByID retrieves an order with its line items and status history.
func (r *OrderRepo) GetByID(ctx context.Context, id string) (*model.OrderWithItems, error) {
	var out model.OrderWithItems
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id)
		if err != nil {
			return err
		}
		order, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Order])
		if err != nil {
			return err
		}
		out.Order = order

		itemRows, err := conn.Query(ctx, `
			SELECT id, order_id, product_id, name, quantity, unit_price
			FROM order_items WHERE order_id = $1 ORDER BY id`, id)
		if err != nil {
			return err
		}
		out.Items, err = pgx.CollectRows(itemRows, pgx.RowToStructByName[model.OrderItem])
		if err != nil {
			return err
		}

		histRows, err := conn.Query(ctx, `
			SELECT id, order_id, status, changed_by, created_at
			FROM order_status_history WHERE order_id = $1 ORDER BY created_at ASC`, id)
		if err != nil {
			return err
		}
		out.History, err = pgx.CollectRows(histRows, pgx.RowToStructByName[model.OrderStatusHistory])
		return err
	}); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrOrderNotFound
		}
		return nil, apperrors.MapDBError(err)
	}
	return &out, nil
}

// List retrieves orders with pagination and filters, newest first.
func (r *OrderRepo) List(ctx context.Context, opts model.OrdersListOptions) ([]*model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders`
	var where []string
	var args []any
	if opts.VendorID != nil {
		args = append(args, *opts.VendorID)
		where = append(where, "vendor_id = $"+strconv.Itoa(len(args)))
	}
	if opts.Status != nil {
		args = append(args, string(*opts.Status))
		where = append(where, "status = $"+strconv.Itoa(len(args)))
	}
	if opts.Since != nil {
		args = append(args, *opts.Since)
		where = append(where, "created_at >= $"+strconv.Itoa(len(args)))
	}
	if opts.Until != nil {
		args = append(args, *opts.Until)
		where = append(where, "created_at < $"+strconv.Itoa(len(args)))
	}
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	args = append(args, listLimit(opts.Limit), max(opts.Offset, 0))
	query += " ORDER BY created_at DESC LIMIT $" + strconv.Itoa(len(args)-1) + " OFFSET $" + strconv.Itoa(len(args))

	var rowsOut []model.Order
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.Order])
		return err
	}); err != nil {
		return nil, apperrors.MapDBError(err)
	}

	res := make([]*model.Order, len(rowsOut))
	for i := range rowsOut {
		res[i] = &rowsOut[i]
	}
	return res, nil
}

// TransitionStatus moves an order's status with a compare-and-set on the
// expected current status and records the transition in the history table,
// both inside one transaction.
func (r *OrderRepo) TransitionStatus(ctx context.Context, params core.TransitionParams) (*model.Order, error) {
	now := r.timeProvider.Now().UTC()
	var out model.Order
	err := pgxutil.WithPgxTx(ctx, r.DB, pgxutil.TxConfig{Fn: func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx, `
			UPDATE orders SET status = $3, updated_at = $4
			WHERE id = $1 AND status = $2
			RETURNING `+orderColumns,
			params.OrderID, string(params.From), string(params.To), now,
		)
		if err != nil {
			return err
		}
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Order])
		if err != nil {
			return err
		}

		_, err = tx.Exec(ctx, `
			INSERT INTO order_status_history (order_id, status, changed_by, created_at)
			VALUES ($1, $2, $3, $4)`,
			params.OrderID, string(params.To), params.ChangedBy, now,
		)
		return err
	}})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Either the order is gone or its status moved under us.
			if _, getErr := r.GetByID(ctx, params.OrderID); getErr != nil {
				return nil, getErr
			}
			return nil, ErrOrderStatusChanged
		}
		return nil, apperrors.MapDBError(err)
	}
	return &out, nil
}

// CancelStalePending cancels pending orders older than the cutoff, appending
// history rows for each, and returns the number cancelled. Batched so a
// backlog cannot produce an unbounded transaction.
func (r *OrderRepo) CancelStalePending(ctx context.Context, params core.CancelStaleParams) (int64, error) {
	now := r.timeProvider.Now().UTC()
	cutoff := now.Add(-params.OlderThan)
	batch := params.BatchSize
	if batch <= 0 {
		batch = 100
	}

	var cancelled int64
	err := pgxutil.WithPgxTx(ctx, r.DB, pgxutil.TxConfig{Fn: func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx, `
			UPDATE orders SET status = $1, updated_at = $2
			WHERE id IN (
				SELECT id FROM orders
				WHERE status = $3 AND created_at < $4
				ORDER BY created_at ASC
				LIMIT $5
				FOR UPDATE SKIP LOCKED
			)
			RETURNING id`,
			string(model.OrderCancelled), now, string(model.OrderPending), cutoff, batch,
		)
		if err != nil {
			return err
		}
		ids, err := pgx.CollectRows(rows, pgx.RowTo[string])
		if err != nil {
			return err
		}
		cancelled = int64(len(ids))

		for _, id := range ids {
			if _, err = tx.Exec(ctx, `
				INSERT INTO order_status_history (order_id, status, changed_by, created_at)
				VALUES ($1, $2, $3, $4)`,
				id, string(model.OrderCancelled), params.ChangedBy, now,
			); err != nil {
				return err
			}
		}
		return nil
	}})
	if err != nil {
		return 0, apperrors.MapDBError(err)
	}
	return cancelled, nil
}
