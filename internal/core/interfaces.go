package core

import (
	"context"
	"time"

	domainauth "github.com/nextgen-organics/portal-api/internal/domain/auth"
	"github.com/nextgen-organics/portal-api/internal/domain/model"
)

// This file contains repository interface definitions (ports in hexagonal architecture).
// These interfaces define the contracts between the service layer and data layer.
// Service implementations should depend on these interfaces, not concrete implementations.

// ProfileRepository defines the interface for user profile data operations.
type ProfileRepository interface {
	Create(ctx context.Context, req *model.CreateProfileRequest, passwordHash []byte) (*model.Profile, error)
	GetByID(ctx context.Context, id string) (*model.Profile, error)
	GetByEmail(ctx context.Context, email string) (*model.Profile, error)
}

// VendorRepository defines the interface for vendor data operations.
type VendorRepository interface {
	Create(ctx context.Context, req *model.CreateVendorRequest) (*model.Vendor, error)
	GetByID(ctx context.Context, id string) (*model.Vendor, error)
	GetByUserID(ctx context.Context, userID string) (*model.Vendor, error)
	ListWithOwners(ctx context.Context, opts model.VendorsListOptions) ([]*model.VendorWithOwner, error)
	UpdateStatus(ctx context.Context, id string, status domainauth.VendorStatus) (*model.Vendor, error)
}

// CategoryRepository defines the interface for category data operations.
type CategoryRepository interface {
	Create(ctx context.Context, req *model.CreateCategoryRequest) (*model.Category, error)
	GetByID(ctx context.Context, id string) (*model.Category, error)
	List(ctx context.Context) ([]*model.Category, error)
	Update(ctx context.Context, id string, req model.UpdateCategoryRequest) (*model.Category, error)
	Delete(ctx context.Context, id string) error
}

// ProductRepository defines the interface for product data operations.
type ProductRepository interface {
	Create(ctx context.Context, req *model.CreateProductRequest) (*model.Product, error)
	GetByID(ctx context.Context, id string) (*model.Product, error)
	List(ctx context.Context, opts model.ProductsListOptions) ([]*model.Product, error)
	ListWithRefs(ctx context.Context, opts model.ProductsListOptions) ([]*model.ProductWithRefs, error)
	Update(ctx context.Context, id string, req model.UpdateProductRequest) (*model.Product, error)
	Delete(ctx context.Context, id string) error
	// AdjustStock applies delta atomically in the database and fails when the
	// result would go negative. Returns the updated product.
	AdjustStock(ctx context.Context, id string, delta int) (*model.Product, error)
}

// TransitionParams groups parameters for OrderRepository.TransitionStatus.
type TransitionParams struct {
	OrderID   string
	From      model.OrderStatus // expected current status (compare-and-set)
	To        model.OrderStatus
	ChangedBy string
}

// CancelStaleParams groups parameters for OrderRepository.CancelStalePending.
type CancelStaleParams struct {
	OlderThan time.Duration
	BatchSize int
	ChangedBy string
}

// OrderRepository defines the interface for order data operations.
type OrderRepository interface {
	GetByID(ctx context.Context, id string) (*model.OrderWithItems, error)
	List(ctx context.Context, opts model.OrdersListOptions) ([]*model.Order, error)
	// TransitionStatus updates the status only when the stored status still
	// matches From, and appends the history row in the same transaction.
	TransitionStatus(ctx context.Context, params TransitionParams) (*model.Order, error)
	// CancelStalePending cancels pending orders older than the cutoff and
	// returns how many were cancelled. Used by the order reaper.
	CancelStalePending(ctx context.Context, params CancelStaleParams) (int64, error)
}

// BannerRepository defines the interface for banner data operations.
type BannerRepository interface {
	Create(ctx context.Context, req *model.CreateBannerRequest) (*model.Banner, error)
	GetByID(ctx context.Context, id string) (*model.Banner, error)
	List(ctx context.Context, activeOnly bool) ([]*model.Banner, error)
	Update(ctx context.Context, id string, req model.UpdateBannerRequest) (*model.Banner, error)
	Delete(ctx context.Context, id string) error
}

// SettingsRepository defines the interface for the platform settings singleton.
type SettingsRepository interface {
	Get(ctx context.Context) (*model.PlatformSettings, error)
	Upsert(ctx context.Context, s model.PlatformSettings) (*model.PlatformSettings, error)
}

// AdminActionRepository defines the interface for the append-only audit log.
type AdminActionRepository interface {
	Insert(ctx context.Context, action model.AdminAction) error
	List(ctx context.Context, opts model.AdminActionsListOptions) ([]*model.AdminAction, error)
}

// DashboardRepository defines the read-only aggregation queries behind the
// admin and vendor dashboards.
type DashboardRepository interface {
	AdminMetrics(ctx context.Context) (*model.AdminMetrics, error)
	VendorMetrics(ctx context.Context, vendorID string) (*model.VendorMetrics, error)
}
