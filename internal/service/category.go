package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/nextgen-organics/portal-api/internal/core"
	"github.com/nextgen-organics/portal-api/internal/domain/model"
)

// CategoryServiceOptions groups dependencies for CategoryService.
type CategoryServiceOptions struct {
	Categories core.CategoryRepository
	Logger     *slog.Logger
}

// CategoryService manages the product category catalog (admin-curated).
type CategoryService struct {
	categories core.CategoryRepository
	logger     *slog.Logger
}

// NewCategoryService constructs a new CategoryService.
func NewCategoryService(opts CategoryServiceOptions) (*CategoryService, error) {
	if opts.Categories == nil {
		return nil, errors.New("CategoryRepository is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &CategoryService{
		categories: opts.Categories,
		logger:     logger.With("component", "category_service"),
	}, nil
}

// Create adds a category.
func (s *CategoryService) Create(ctx context.Context, req *model.CreateCategoryRequest) (*model.Category, error) {
	cat, err := s.categories.Create(ctx, req)
	if err != nil {
		return nil, err
	}
	s.logger.InfoContext(ctx, "category created", "category_id", cat.ID, "name", cat.Name)
	return cat, nil
}

// Get retrieves a category by ID.
func (s *CategoryService) Get(ctx context.Context, id string) (*model.Category, error) {
	return s.categories.GetByID(ctx, id)
}

// List retrieves all categories.
func (s *CategoryService) List(ctx context.Context) ([]*model.Category, error) {
	return s.categories.List(ctx)
}

// Update updates a category.
func (s *CategoryService) Update(ctx context.Context, id string, req model.UpdateCategoryRequest) (*model.Category, error) {
	return s.categories.Update(ctx, id, req)
}

// Delete removes a category. Categories still referenced by products cannot
// be deleted; the repository surfaces that as a foreign key error.
func (s *CategoryService) Delete(ctx context.Context, id string) error {
	if err := s.categories.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "category deleted", "category_id", id)
	return nil
}
