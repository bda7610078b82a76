package data

import (
	"context"
	"database/sql"

	"github.com/nextgen-organics/portal-api/internal/migrate"
)

// RunMigrations sets up the marketplace schema by delegating to the migrate package.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	return migrate.Run(ctx, db)
}
