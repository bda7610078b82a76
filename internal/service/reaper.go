package service

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"errors"
	"log/slog"
	"time"

	"github.com/nextgen-organics/portal-api/config"
	"github.com/nextgen-organics/portal-api/internal/core"
)

// reaperActor is the changed_by value stamped on auto-cancel history rows.
const reaperActor = "system:reaper"

// ReaperServiceOptions groups dependencies for ReaperService.
type ReaperServiceOptions struct {
	Orders   core.OrderRepository    // Required: order repository
	Settings core.SettingsRepository // Required: source of the auto-cancel window
	Config   config.ReaperConfig
	Logger   *slog.Logger
}

// ReaperService cancels orders that sat in pending longer than the platform's
// auto-cancel window. The window is re-read from platform settings on every
// sweep so admins can tune it without restarting the reaper.
type ReaperService struct {
	orders   core.OrderRepository
	settings core.SettingsRepository
	config   config.ReaperConfig
	logger   *slog.Logger
}

// NewReaperService constructs a new ReaperService.
func NewReaperService(opts ReaperServiceOptions) (*ReaperService, error) {
	if opts.Orders == nil {
		return nil, errors.New("OrderRepository is required")
	}
	if opts.Settings == nil {
		return nil, errors.New("SettingsRepository is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &ReaperService{
		orders:   opts.Orders,
		settings: opts.Settings,
		config:   opts.Config,
		logger:   logger.With("component", "order_reaper"),
	}, nil
}

// Run starts the reaper loop and runs until the context is cancelled.
// Returns nil on graceful shutdown (context.Canceled), error otherwise.
func (s *ReaperService) Run(ctx context.Context) error {
	s.logger.InfoContext(ctx, "starting order reaper", "interval", s.config.Interval)

	// Jitter the first sweep so multiple instances starting together do not
	// hammer the orders table at the same moment.
	s.waitWithJitter(ctx)

	ticker := time.NewTicker(s.config.Interval)
	defer ticker.Stop()

	if err := s.sweep(ctx); err != nil && !isContextCancellation(err) {
		s.logger.ErrorContext(ctx, "initial sweep failed", "err", err)
	}

	for {
		select {
		case <-ctx.Done():
			s.logger.InfoContext(ctx, "order reaper stopping", "reason", ctx.Err())
			if errors.Is(ctx.Err(), context.Canceled) {
				return nil
			}
			return ctx.Err()

		case <-ticker.C:
			if err := s.sweep(ctx); err != nil && !isContextCancellation(err) {
				// Keep running despite errors; the next tick retries.
				s.logger.ErrorContext(ctx, "sweep failed", "err", err)
			}
		}
	}
}

// sweep runs one auto-cancel pass.
func (s *ReaperService) sweep(ctx context.Context) error {
	settings, err := s.settings.Get(ctx)
	if err != nil {
		return err
	}

	window := time.Duration(settings.OrderAutoCancelHours) * time.Hour
	start := time.Now()
	cancelled, err := s.orders.CancelStalePending(ctx, core.CancelStaleParams{
		OlderThan: window,
		BatchSize: s.config.BatchSize,
		ChangedBy: reaperActor,
	})
	if err != nil {
		return err
	}

	if cancelled > 0 {
		s.logger.InfoContext(ctx, "auto-cancelled stale orders",
			"cancelled", cancelled,
			"window", window,
			"duration", time.Since(start),
		)
	}
	return nil
}

// waitWithJitter delays up to 10% of the interval.
func (s *ReaperService) waitWithJitter(ctx context.Context) {
	maxJitter := int64(s.config.Interval / 10)
	if maxJitter <= 0 {
		return
	}

	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		// If crypto/rand fails, skip jitter rather than failing startup.
		s.logger.WarnContext(ctx, "failed to generate jitter, skipping", "err", err)
		return
	}

	jitterNanos := binary.BigEndian.Uint64(buf[:]) % uint64(maxJitter)
	jitter := time.Duration(int64(jitterNanos)) // #nosec G115 - bounded by maxJitter which is int64

	select {
	case <-time.After(jitter):
	case <-ctx.Done():
	}
}

func isContextCancellation(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
