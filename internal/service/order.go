package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/nextgen-organics/portal-api/internal/core"
	"github.com/nextgen-organics/portal-api/internal/domain/model"
	apperrors "github.com/nextgen-organics/portal-api/internal/errors"
)

// OrderServiceOptions groups dependencies for OrderService.
type OrderServiceOptions struct {
	Orders core.OrderRepository
	Logger *slog.Logger
}

// OrderService handles order retrieval and the vendor fulfillment flow.
// Status moves one step at a time through the fixed checklist; the repository
// enforces the transition with a compare-and-set so two concurrent taps on
// "advance" cannot skip a step.
type OrderService struct {
	orders core.OrderRepository
	logger *slog.Logger
}

// NewOrderService constructs a new OrderService.
func NewOrderService(opts OrderServiceOptions) (*OrderService, error) {
	if opts.Orders == nil {
		return nil, errors.New("OrderRepository is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &OrderService{
		orders: opts.Orders,
		logger: logger.With("component", "order_service"),
	}, nil
}

// Get retrieves an order with items and history. ownerVendorID, when
// non-empty, must match the order's vendor.
func (s *OrderService) Get(ctx context.Context, id, ownerVendorID string) (*model.OrderWithItems, error) {
	order, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if ownerVendorID != "" && order.VendorID != ownerVendorID {
		return nil, apperrors.Forbidden("order belongs to another vendor")
	}
	return order, nil
}

// List retrieves orders with filters.
func (s *OrderService) List(ctx context.Context, opts model.OrdersListOptions) ([]*model.Order, error) {
	return s.orders.List(ctx, opts)
}

// Advance moves an order one step forward in the fulfillment flow.
func (s *OrderService) Advance(ctx context.Context, id, ownerVendorID, changedBy string) (*model.Order, error) {
	order, err := s.Get(ctx, id, ownerVendorID)
	if err != nil {
		return nil, err
	}

	next, err := model.AdvanceStatus(order.Status)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeConflict, err.Error())
	}

	updated, err := s.orders.TransitionStatus(ctx, core.TransitionParams{
		OrderID:   id,
		From:      order.Status,
		To:        next,
		ChangedBy: changedBy,
	})
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "order advanced",
		"order_id", id, "from", order.Status, "to", updated.Status, "changed_by", changedBy)
	return updated, nil
}

// Cancel cancels an order that has not yet left the kitchen.
func (s *OrderService) Cancel(ctx context.Context, id, ownerVendorID, changedBy string) (*model.Order, error) {
	order, err := s.Get(ctx, id, ownerVendorID)
	if err != nil {
		return nil, err
	}

	if !order.Status.CanCancel() {
		return nil, apperrors.Conflict("order can no longer be cancelled")
	}

	updated, err := s.orders.TransitionStatus(ctx, core.TransitionParams{
		OrderID:   id,
		From:      order.Status,
		To:        model.OrderCancelled,
		ChangedBy: changedBy,
	})
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "order cancelled",
		"order_id", id, "from", order.Status, "changed_by", changedBy)
	return updated, nil
}
