package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/nextgen-organics/portal-api/internal/core"
	"github.com/nextgen-organics/portal-api/internal/domain/model"
)

// SettingsServiceOptions groups dependencies for SettingsService.
type SettingsServiceOptions struct {
	Settings core.SettingsRepository
	Audit    core.AdminActionRepository
	Logger   *slog.Logger
}

// SettingsService manages the platform settings singleton.
type SettingsService struct {
	settings core.SettingsRepository
	audit    core.AdminActionRepository
	logger   *slog.Logger
}

// NewSettingsService constructs a new SettingsService.
func NewSettingsService(opts SettingsServiceOptions) (*SettingsService, error) {
	if opts.Settings == nil {
		return nil, errors.New("SettingsRepository is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &SettingsService{
		settings: opts.Settings,
		audit:    opts.Audit,
		logger:   logger.With("component", "settings_service"),
	}, nil
}

// Get returns the platform settings.
func (s *SettingsService) Get(ctx context.Context) (*model.PlatformSettings, error) {
	return s.settings.Get(ctx)
}

// Update writes the full settings row and records the change in the audit log.
func (s *SettingsService) Update(
	ctx context.Context,
	adminID string,
	settings model.PlatformSettings,
) (*model.PlatformSettings, error) {
	updated, err := s.settings.Upsert(ctx, settings)
	if err != nil {
		return nil, err
	}

	if s.audit != nil && adminID != "" {
		if err := s.audit.Insert(ctx, model.AdminAction{
			AdminID:    adminID,
			Action:     "settings_updated",
			TargetType: "platform_settings",
			TargetID:   "1",
		}); err != nil {
			s.logger.ErrorContext(ctx, "failed to record admin action",
				"action", "settings_updated", "err", err)
		}
	}

	s.logger.InfoContext(ctx, "platform settings updated", "admin_id", adminID)
	return updated, nil
}
