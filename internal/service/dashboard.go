package service

import (
	"context"
	"errors"

	"github.com/nextgen-organics/portal-api/internal/core"
	"github.com/nextgen-organics/portal-api/internal/domain/model"
)

// DashboardServiceOptions groups dependencies for DashboardService.
type DashboardServiceOptions struct {
	Dashboards core.DashboardRepository
	Vendors    core.VendorRepository
}

// DashboardService serves the read-only metrics behind both dashboards.
type DashboardService struct {
	dashboards core.DashboardRepository
	vendors    core.VendorRepository
}

// NewDashboardService constructs a new DashboardService.
func NewDashboardService(opts DashboardServiceOptions) (*DashboardService, error) {
	if opts.Dashboards == nil {
		return nil, errors.New("DashboardRepository is required")
	}
	if opts.Vendors == nil {
		return nil, errors.New("VendorRepository is required")
	}
	return &DashboardService{
		dashboards: opts.Dashboards,
		vendors:    opts.Vendors,
	}, nil
}

// AdminMetrics returns the marketplace-wide summary.
func (s *DashboardService) AdminMetrics(ctx context.Context) (*model.AdminMetrics, error) {
	return s.dashboards.AdminMetrics(ctx)
}

// VendorMetricsForUser resolves the caller's vendor record and returns its
// dashboard summary.
func (s *DashboardService) VendorMetricsForUser(ctx context.Context, userID string) (*model.VendorMetrics, error) {
	vendor, err := s.vendors.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.dashboards.VendorMetrics(ctx, vendor.ID)
}
