package data

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/nextgen-organics/portal-api/internal/data/pgxutil"
	"github.com/nextgen-organics/portal-api/internal/domain/model"
	apperrors "github.com/nextgen-organics/portal-api/internal/errors"
)

var (
	// ErrProductNotFound is returned when a product is not found.
	ErrProductNotFound = errors.New("product not found")
	// ErrInsufficientStock is returned when a stock adjustment would go negative.
	ErrInsufficientStock = errors.New("insufficient stock")
)

const productColumns = `id, vendor_id, category_id, name, description, price, stock, is_active, image_url, created_at, updated_at`

// ProductRepo provides database operations for products.
type ProductRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewProductRepo creates a new ProductRepo with real time provider.
func NewProductRepo(db *sql.DB) *ProductRepo {
	return &ProductRepo{DB: db, timeProvider: &RealTimeProvider{}}
}

// NewProductRepoWithTimeProvider creates a new ProductRepo with a custom time provider (useful for tests).
func NewProductRepoWithTimeProvider(db *sql.DB, tp TimeProvider) *ProductRepo {
	return &ProductRepo{DB: db, timeProvider: tp}
}

// Create inserts a new product.
func (r *ProductRepo) Create(ctx context.Context, req *model.CreateProductRequest) (*model.Product, error) {
	if req == nil {
		return nil, errors.New("create product request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	// Default is_active to true if not specified (matches DB default)
	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}

	now := r.timeProvider.Now().UTC()
	var out model.Product
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			INSERT INTO products (vendor_id, category_id, name, description, price, stock, is_active, image_url, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $9)
			RETURNING `+productColumns,
			req.VendorID,
			req.CategoryID,
			strings.TrimSpace(req.Name),
			req.Description,
			req.Price,
			req.Stock,
			active,
			req.ImageURL,
			now,
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Product])
		return err
	}); err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return &out, nil
}

// GetByID retrieves a product by ID.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*model.Product, error) {
	var out model.Product
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Product])
		return err
	}); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		return nil, apperrors.MapDBError(err)
	}
	return &out, nil
}

// List retrieves products with optional filters, ordered by name.
func (r *ProductRepo) List(ctx context.Context, opts model.ProductsListOptions) ([]*model.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products`
	where, args := productFilters(opts, "")
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	args = append(args, listLimit(opts.Limit), max(opts.Offset, 0))
	query += " ORDER BY name ASC LIMIT $" + strconv.Itoa(len(args)-1) + " OFFSET $" + strconv.Itoa(len(args))

	var rowsOut []model.Product
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.Product])
		return err
	}); err != nil {
		return nil, apperrors.MapDBError(err)
	}

	res := make([]*model.Product, len(rowsOut))
	for i := range rowsOut {
		res[i] = &rowsOut[i]
	}
	return res, nil
}

// ListWithRefs retrieves products joined with category and vendor names, for
// the admin oversight screen.
func (r *ProductRepo) ListWithRefs(
	ctx context.Context,
	opts model.ProductsListOptions,
) ([]*model.ProductWithRefs, error) {
	query := `
		SELECT p.id, p.vendor_id, p.category_id, p.name, p.description, p.price,
		       p.stock, p.is_active, p.image_url, p.created_at, p.updated_at,
		       c.name AS category_name, v.shop_name AS shop_name
		FROM products p
		JOIN categories c ON c.id = p.category_id
		JOIN vendors v ON v.id = p.vendor_id`
	where, args := productFilters(opts, "p.")
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	args = append(args, listLimit(opts.Limit), max(opts.Offset, 0))
	query += " ORDER BY p.name ASC LIMIT $" + strconv.Itoa(len(args)-1) + " OFFSET $" + strconv.Itoa(len(args))

	var rowsOut []model.ProductWithRefs
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.ProductWithRefs])
		return err
	}); err != nil {
		return nil, apperrors.MapDBError(err)
	}

	res := make([]*model.ProductWithRefs, len(rowsOut))
	for i := range rowsOut {
		res[i] = &rowsOut[i]
	}
	return res, nil
}

// Update updates fields of a product.
func (r *ProductRepo) Update(
	ctx context.Context,
	id string,
	req model.UpdateProductRequest,
) (*model.Product, error) {
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	var out model.Product
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			UPDATE products SET
				category_id = COALESCE($2, category_id),
				name        = COALESCE($3, name),
				description = COALESCE($4, description),
				price       = COALESCE($5, price),
				is_active   = COALESCE($6, is_active),
				image_url   = COALESCE($7, image_url),
				updated_at  = $8
			WHERE id = $1
			RETURNING `+productColumns,
			id,
			req.CategoryID,
			trimmedOrNil(req.Name),
			req.Description,
			req.Price,
			req.IsActive,
			req.ImageURL,
			r.timeProvider.Now().UTC(),
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Product])
		return err
	}); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		return nil, apperrors.MapDBError(err)
	}
	return &out, nil
}

// Delete removes a product.
func (r *ProductRepo) Delete(ctx context.Context, id string) error {
	var affected int64
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		res, err := conn.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
		if err != nil {
			return err
		}
		affected = res.RowsAffected()
		return nil
	}); err != nil {
		return apperrors.MapDBError(err)
	}
	if affected == 0 {
		return ErrProductNotFound
	}
	return nil
}

// AdjustStock applies delta to the stock level in a single atomic statement.
// The WHERE guard keeps stock from going negative without a read-modify-write
// round trip in the application.
func (r *ProductRepo) AdjustStock(ctx context.Context, id string, delta int) (*model.Product, error) {
	var out model.Product
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			UPDATE products
			SET stock = stock + $2, updated_at = $3
			WHERE id = $1 AND stock + $2 >= 0
			RETURNING `+productColumns,
			id, delta, r.timeProvider.Now().UTC(),
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Product])
		return err
	}); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Distinguish a missing product from a guard rejection.
			if _, getErr := r.GetByID(ctx, id); getErr != nil {
				return nil, getErr
			}
			return nil, ErrInsufficientStock
		}
		return nil, apperrors.MapDBError(err)
	}
	return &out, nil
}

// productFilters builds WHERE clauses for the product list options.
// prefix qualifies column names for joined queries ("p.").
func productFilters(opts model.ProductsListOptions, prefix string) ([]string, []any) {
	var where []string
	var args []any
	if opts.VendorID != nil {
		args = append(args, *opts.VendorID)
		where = append(where, prefix+"vendor_id = $"+strconv.Itoa(len(args)))
	}
	if opts.CategoryID != nil {
		args = append(args, *opts.CategoryID)
		where = append(where, prefix+"category_id = $"+strconv.Itoa(len(args)))
	}
	if opts.ActiveOnly {
		where = append(where, prefix+"is_active = true")
	}
	if opts.Q != nil && strings.TrimSpace(*opts.Q) != "" {
		args = append(args, "%"+strings.TrimSpace(*opts.Q)+"%")
		where = append(where, prefix+"name ILIKE $"+strconv.Itoa(len(args)))
	}
	if opts.MaxStock != nil {
		args = append(args, *opts.MaxStock)
		where = append(where, prefix+"stock <= $"+strconv.Itoa(len(args)))
	}
	return where, args
}

func listLimit(limit int) int {
	if limit <= 0 {
		return 50
	}
	return limit
}
