package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/nextgen-organics/portal-api/internal/core"
	"github.com/nextgen-organics/portal-api/internal/domain/model"
)

// BannerServiceOptions groups dependencies for BannerService.
type BannerServiceOptions struct {
	Banners core.BannerRepository
	Audit   core.AdminActionRepository
	Logger  *slog.Logger
}

// BannerService manages home-screen banners (admin-only surface).
type BannerService struct {
	banners core.BannerRepository
	audit   core.AdminActionRepository
	logger  *slog.Logger
}

// NewBannerService constructs a new BannerService.
func NewBannerService(opts BannerServiceOptions) (*BannerService, error) {
	if opts.Banners == nil {
		return nil, errors.New("BannerRepository is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &BannerService{
		banners: opts.Banners,
		audit:   opts.Audit,
		logger:  logger.With("component", "banner_service"),
	}, nil
}

// Create adds a banner.
func (s *BannerService) Create(ctx context.Context, adminID string, req *model.CreateBannerRequest) (*model.Banner, error) {
	banner, err := s.banners.Create(ctx, req)
	if err != nil {
		return nil, err
	}
	s.recordAction(ctx, adminID, "banner_created", banner.ID)
	return banner, nil
}

// Get retrieves a banner by ID.
func (s *BannerService) Get(ctx context.Context, id string) (*model.Banner, error) {
	return s.banners.GetByID(ctx, id)
}

// List retrieves banners in display order.
func (s *BannerService) List(ctx context.Context, activeOnly bool) ([]*model.Banner, error) {
	return s.banners.List(ctx, activeOnly)
}

// Update updates a banner.
func (s *BannerService) Update(
	ctx context.Context,
	adminID, id string,
	req model.UpdateBannerRequest,
) (*model.Banner, error) {
	banner, err := s.banners.Update(ctx, id, req)
	if err != nil {
		return nil, err
	}
	s.recordAction(ctx, adminID, "banner_updated", banner.ID)
	return banner, nil
}

// Delete removes a banner.
func (s *BannerService) Delete(ctx context.Context, adminID, id string) error {
	if err := s.banners.Delete(ctx, id); err != nil {
		return err
	}
	s.recordAction(ctx, adminID, "banner_deleted", id)
	return nil
}

func (s *BannerService) recordAction(ctx context.Context, adminID, action, bannerID string) {
	if s.audit == nil || adminID == "" {
		return
	}
	if err := s.audit.Insert(ctx, model.AdminAction{
		AdminID:    adminID,
		Action:     action,
		TargetType: "banner",
		TargetID:   bannerID,
	}); err != nil {
		s.logger.ErrorContext(ctx, "failed to record admin action",
			"action", action, "banner_id", bannerID, "err", err)
	}
}
