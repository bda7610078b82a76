package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/nextgen-organics/portal-api/internal/core"
	"github.com/nextgen-organics/portal-api/internal/domain/model"
	apperrors "github.com/nextgen-organics/portal-api/internal/errors"
)

// ProductServiceOptions groups dependencies for ProductService.
type ProductServiceOptions struct {
	Products core.ProductRepository
	Logger   *slog.Logger
}

// ProductService manages vendor product listings. Mutations are scoped to the
// owning vendor; admins pass an empty owner to bypass the ownership check.
type ProductService struct {
	products core.ProductRepository
	logger   *slog.Logger
}

// NewProductService constructs a new ProductService.
func NewProductService(opts ProductServiceOptions) (*ProductService, error) {
	if opts.Products == nil {
		return nil, errors.New("ProductRepository is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &ProductService{
		products: opts.Products,
		logger:   logger.With("component", "product_service"),
	}, nil
}

// Create adds a product under the given vendor.
func (s *ProductService) Create(ctx context.Context, req *model.CreateProductRequest) (*model.Product, error) {
	product, err := s.products.Create(ctx, req)
	if err != nil {
		return nil, err
	}
	s.logger.InfoContext(ctx, "product created",
		"product_id", product.ID, "vendor_id", product.VendorID, "name", product.Name)
	return product, nil
}

// Get retrieves a product by ID.
func (s *ProductService) Get(ctx context.Context, id string) (*model.Product, error) {
	return s.products.GetByID(ctx, id)
}

// List retrieves products with filters.
func (s *ProductService) List(ctx context.Context, opts model.ProductsListOptions) ([]*model.Product, error) {
	return s.products.List(ctx, opts)
}

// ListWithRefs retrieves products joined with category and vendor names, for
// the admin oversight screen.
func (s *ProductService) ListWithRefs(
	ctx context.Context,
	opts model.ProductsListOptions,
) ([]*model.ProductWithRefs, error) {
	return s.products.ListWithRefs(ctx, opts)
}

// Update updates a product. ownerVendorID, when non-empty, must match the
// product's vendor.
func (s *ProductService) Update(
	ctx context.Context,
	id, ownerVendorID string,
	req model.UpdateProductRequest,
) (*model.Product, error) {
	if err := s.checkOwner(ctx, id, ownerVendorID); err != nil {
		return nil, err
	}
	return s.products.Update(ctx, id, req)
}

// Delete removes a product, subject to the same ownership check as Update.
func (s *ProductService) Delete(ctx context.Context, id, ownerVendorID string) error {
	if err := s.checkOwner(ctx, id, ownerVendorID); err != nil {
		return err
	}
	if err := s.products.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "product deleted", "product_id", id)
	return nil
}

// AdjustStock applies a stock delta atomically; negative deltas that would
// take stock below zero fail.
func (s *ProductService) AdjustStock(
	ctx context.Context,
	id, ownerVendorID string,
	delta int,
) (*model.Product, error) {
	if delta == 0 {
		return nil, apperrors.Validation("stock delta cannot be zero")
	}
	if err := s.checkOwner(ctx, id, ownerVendorID); err != nil {
		return nil, err
	}
	return s.products.AdjustStock(ctx, id, delta)
}

func (s *ProductService) checkOwner(ctx context.Context, id, ownerVendorID string) error {
	if ownerVendorID == "" {
		return nil
	}
	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if product.VendorID != ownerVendorID {
		return apperrors.Forbidden("product belongs to another vendor")
	}
	return nil
}
