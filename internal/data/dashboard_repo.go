package data

import (
	"context"
	"database/sql"

	"github.com/jackc/pgx/v5"

	"github.com/nextgen-organics/portal-api/internal/data/pgxutil"
	"github.com/nextgen-organics/portal-api/internal/domain/model"
	apperrors "github.com/nextgen-organics/portal-api/internal/errors"
)

const (
	topProductsLimit = 5
	lowStockCutoff   = 5
)

// DashboardRepo computes the read-only aggregations behind the admin and
// vendor dashboards. Revenue only counts delivered orders.
type DashboardRepo struct {
	DB *sql.DB
}

// NewDashboardRepo creates a new DashboardRepo.
func NewDashboardRepo(db *sql.DB) *DashboardRepo {
	return &DashboardRepo{DB: db}
}

// AdminMetrics computes the marketplace-wide dashboard summary.
func (r *DashboardRepo) AdminMetrics(ctx context.Context) (*model.AdminMetrics, error) {
	out := &model.AdminMetrics{
		VendorsByStatus: map[string]int{},
		OrdersByStatus:  map[string]int{},
	}
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `SELECT status, count(*) FROM vendors GROUP BY status`)
		if err != nil {
			return err
		}
		if err := collectStatusCounts(rows, out.VendorsByStatus); err != nil {
			return err
		}
		for _, n := range out.VendorsByStatus {
			out.TotalVendors += n
		}

		if err := conn.QueryRow(ctx, `SELECT count(*) FROM products`).Scan(&out.TotalProducts); err != nil {
			return err
		}

		rows, err = conn.Query(ctx, `SELECT status, count(*) FROM orders GROUP BY status`)
		if err != nil {
			return err
		}
		if err := collectStatusCounts(rows, out.OrdersByStatus); err != nil {
			return err
		}

		if err := conn.QueryRow(ctx, `
			SELECT COALESCE(sum(total), 0) FROM orders WHERE status = 'delivered'`,
		).Scan(&out.TotalRevenue); err != nil {
			return err
		}

		rows, err = conn.Query(ctx, `
			SELECT oi.product_id, oi.name,
			       sum(oi.quantity)::int AS sold,
			       sum(oi.quantity * oi.unit_price) AS revenue
			FROM order_items oi
			JOIN orders o ON o.id = oi.order_id
			WHERE o.status = 'delivered'
			GROUP BY oi.product_id, oi.name
			ORDER BY sold DESC
			LIMIT $1`, topProductsLimit)
		if err != nil {
			return err
		}
		out.TopProducts, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.TopProduct])
		if err != nil {
			return err
		}

		rows, err = conn.Query(ctx, `
			SELECT c.id AS category_id, c.name,
			       COALESCE(sum(oi.quantity * oi.unit_price), 0) AS revenue
			FROM categories c
			JOIN products p ON p.category_id = c.id
			JOIN order_items oi ON oi.product_id = p.id
			JOIN orders o ON o.id = oi.order_id
			WHERE o.status = 'delivered'
			GROUP BY c.id, c.name
			ORDER BY revenue DESC`)
		if err != nil {
			return err
		}
		out.CategoryShares, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.CategorySales])
		return err
	}); err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return out, nil
}

// VendorMetrics computes the dashboard summary scoped to one vendor.
func (r *DashboardRepo) VendorMetrics(ctx context.Context, vendorID string) (*model.VendorMetrics, error) {
	out := &model.VendorMetrics{
		OrdersByStatus: map[string]int{},
	}
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		if err := conn.QueryRow(ctx, `
			SELECT COALESCE(sum(total), 0) FROM orders
			WHERE vendor_id = $1 AND status = 'delivered'`, vendorID,
		).Scan(&out.Revenue); err != nil {
			return err
		}

		rows, err := conn.Query(ctx, `
			SELECT status, count(*) FROM orders WHERE vendor_id = $1 GROUP BY status`, vendorID)
		if err != nil {
			return err
		}
		if err := collectStatusCounts(rows, out.OrdersByStatus); err != nil {
			return err
		}

		if err := conn.QueryRow(ctx, `
			SELECT count(*) FROM products
			WHERE vendor_id = $1 AND is_active = true`, vendorID,
		).Scan(&out.ActiveProducts); err != nil {
			return err
		}

		rows, err = conn.Query(ctx, `
			SELECT `+productColumns+` FROM products
			WHERE vendor_id = $1 AND is_active = true AND stock <= $2
			ORDER BY stock ASC, name ASC`, vendorID, lowStockCutoff)
		if err != nil {
			return err
		}
		out.LowStock, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.Product])
		return err
	}); err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return out, nil
}

func collectStatusCounts(rows pgx.Rows, dst map[string]int) error {
	defer rows.Close()
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return err
		}
		dst[status] = n
	}
	return rows.Err()
}
