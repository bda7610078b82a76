// Package reaper provides the adapter for running the order reaper loop.
package reaper

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/nextgen-organics/portal-api/config"
	"github.com/nextgen-organics/portal-api/internal/core"
	"github.com/nextgen-organics/portal-api/internal/data"
	"github.com/nextgen-organics/portal-api/internal/service"
)

// Runner constructs the reaper service over the database and runs its loop.
type Runner struct {
	reaper *service.ReaperService
	logger *slog.Logger
}

// RunnerOptions holds the dependencies for creating a Runner.
type RunnerOptions struct {
	DB     *sql.DB
	Config config.ReaperConfig
	Logger *slog.Logger

	// Optional dependency injection for testing/decoupling
	Orders   core.OrderRepository
	Settings core.SettingsRepository
}

// NewRunner creates a new reaper runner with the given options.
func NewRunner(opts RunnerOptions) (*Runner, error) {
	if opts.DB == nil && (opts.Orders == nil || opts.Settings == nil) {
		return nil, errors.New("database connection is required")
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	orders := opts.Orders
	if orders == nil {
		orders = data.NewOrderRepo(opts.DB)
	}
	settings := opts.Settings
	if settings == nil {
		settings = data.NewSettingsRepo(opts.DB)
	}

	reaper, err := service.NewReaperService(service.ReaperServiceOptions{
		Orders:   orders,
		Settings: settings,
		Config:   opts.Config,
		Logger:   opts.Logger,
	})
	if err != nil {
		return nil, fmt.Errorf("wire reaper service: %w", err)
	}

	return &Runner{reaper: reaper, logger: opts.Logger}, nil
}

// Run starts the reaper loop and runs until the context is cancelled.
func (r *Runner) Run(ctx context.Context) error {
	r.logger.InfoContext(ctx, "starting reaper runner")
	return r.reaper.Run(ctx)
}
