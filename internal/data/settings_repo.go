package data

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/nextgen-organics/portal-api/internal/data/pgxutil"
	"github.com/nextgen-organics/portal-api/internal/domain/model"
	apperrors "github.com/nextgen-organics/portal-api/internal/errors"
)

const settingsColumns = `id, platform_commission, tax_percentage, delivery_fee_base, delivery_fee_per_km,
	free_delivery_threshold, max_delivery_radius_km, min_order_amount, order_auto_cancel_hours, updated_at`

// SettingsRepo provides database operations for the platform settings
// singleton row (id = 1).
type SettingsRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewSettingsRepo creates a new SettingsRepo with real time provider.
func NewSettingsRepo(db *sql.DB) *SettingsRepo {
	return &SettingsRepo{DB: db, timeProvider: &RealTimeProvider{}}
}

// Get returns the settings row, falling back to defaults when it has never
// been written.
func (r *SettingsRepo) Get(ctx context.Context) (*model.PlatformSettings, error) {
	var out model.PlatformSettings
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `SELECT `+settingsColumns+` FROM platform_settings WHERE id = 1`)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.PlatformSettings])
		return err
	}); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			defaults := model.DefaultPlatformSettings()
			return &defaults, nil
		}
		return nil, apperrors.MapDBError(err)
	}
	return &out, nil
}

// Upsert writes the full settings row, creating it on first use.
func (r *SettingsRepo) Upsert(ctx context.Context, s model.PlatformSettings) (*model.PlatformSettings, error) {
	if err := s.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	var out model.PlatformSettings
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			INSERT INTO platform_settings (
				id, platform_commission, tax_percentage, delivery_fee_base, delivery_fee_per_km,
				free_delivery_threshold, max_delivery_radius_km, min_order_amount,
				order_auto_cancel_hours, updated_at
			) VALUES (1, $1, $2, $3, $4, $5, $6, $7, $8, $9)
			ON CONFLICT (id) DO UPDATE SET
				platform_commission     = EXCLUDED.platform_commission,
				tax_percentage          = EXCLUDED.tax_percentage,
				delivery_fee_base       = EXCLUDED.delivery_fee_base,
				delivery_fee_per_km     = EXCLUDED.delivery_fee_per_km,
				free_delivery_threshold = EXCLUDED.free_delivery_threshold,
				max_delivery_radius_km  = EXCLUDED.max_delivery_radius_km,
				min_order_amount        = EXCLUDED.min_order_amount,
				order_auto_cancel_hours = EXCLUDED.order_auto_cancel_hours,
				updated_at              = EXCLUDED.updated_at
			RETURNING `+settingsColumns,
			s.PlatformCommission,
			s.TaxPercentage,
			s.DeliveryFeeBase,
			s.DeliveryFeePerKM,
			s.FreeDeliveryThreshold,
			s.MaxDeliveryRadiusKM,
			s.MinOrderAmount,
			s.OrderAutoCancelHours,
			r.timeProvider.Now().UTC(),
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.PlatformSettings])
		return err
	}); err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return &out, nil
}
