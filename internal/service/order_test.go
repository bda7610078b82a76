package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/nextgen-organics/portal-api/internal/core"
	"github.com/nextgen-organics/portal-api/internal/data"
	"github.com/nextgen-organics/portal-api/internal/domain/model"
	apperrors "github.com/nextgen-organics/portal-api/internal/errors"
	"github.com/nextgen-organics/portal-api/internal/mocks"
)

func orderFixture(status model.OrderStatus) *model.OrderWithItems {
	return &model.OrderWithItems{
		Order: model.Order{
			ID:       "o-1",
			VendorID: "v-1",
			Status:   status,
			Total:    42.50,
		},
	}
}

func newOrderSvc(t *testing.T, repo core.OrderRepository) *OrderService {
	t.Helper()
	svc, err := NewOrderService(OrderServiceOptions{Orders: repo})
	require.NoError(t, err)
	return svc
}

func TestOrderService_Get_OwnershipCheck(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockOrderRepository(ctrl)
	repo.EXPECT().GetByID(gomock.Any(), "o-1").Return(orderFixture(model.OrderPending), nil).Times(3)

	svc := newOrderSvc(t, repo)

	t.Run("owner can read", func(t *testing.T) {
		order, err := svc.Get(context.Background(), "o-1", "v-1")
		require.NoError(t, err)
		assert.Equal(t, "o-1", order.ID)
	})

	t.Run("empty owner bypasses the check for admins", func(t *testing.T) {
		_, err := svc.Get(context.Background(), "o-1", "")
		require.NoError(t, err)
	})

	t.Run("other vendor is forbidden", func(t *testing.T) {
		_, err := svc.Get(context.Background(), "o-1", "v-other")
		require.Error(t, err)
		assert.True(t, apperrors.IsForbidden(err))
	})
}

func TestOrderService_Advance(t *testing.T) {
	t.Run("moves one step with compare-and-set", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mocks.NewMockOrderRepository(ctrl)
		repo.EXPECT().GetByID(gomock.Any(), "o-1").Return(orderFixture(model.OrderPending), nil)
		repo.EXPECT().TransitionStatus(gomock.Any(), core.TransitionParams{
			OrderID:   "o-1",
			From:      model.OrderPending,
			To:        model.OrderConfirmed,
			ChangedBy: "u-vendor",
		}).Return(&model.Order{ID: "o-1", VendorID: "v-1", Status: model.OrderConfirmed}, nil)

		svc := newOrderSvc(t, repo)

		updated, err := svc.Advance(context.Background(), "o-1", "v-1", "u-vendor")
		require.NoError(t, err)
		assert.Equal(t, model.OrderConfirmed, updated.Status)
	})

	t.Run("terminal status is a conflict", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mocks.NewMockOrderRepository(ctrl)
		repo.EXPECT().GetByID(gomock.Any(), "o-1").Return(orderFixture(model.OrderDelivered), nil)

		svc := newOrderSvc(t, repo)

		_, err := svc.Advance(context.Background(), "o-1", "v-1", "u-vendor")
		require.Error(t, err)
		assert.True(t, apperrors.IsConflict(err))
		assert.ErrorIs(t, err, model.ErrOrderNotAdvanceable)
	})

	t.Run("concurrent transition surfaces repository error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mocks.NewMockOrderRepository(ctrl)
		repo.EXPECT().GetByID(gomock.Any(), "o-1").Return(orderFixture(model.OrderPending), nil)
		repo.EXPECT().TransitionStatus(gomock.Any(), gomock.Any()).Return(nil, data.ErrOrderStatusChanged)

		svc := newOrderSvc(t, repo)

		_, err := svc.Advance(context.Background(), "o-1", "v-1", "u-vendor")
		require.ErrorIs(t, err, data.ErrOrderStatusChanged)
	})

	t.Run("wrong vendor never reaches the repository transition", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mocks.NewMockOrderRepository(ctrl)
		repo.EXPECT().GetByID(gomock.Any(), "o-1").Return(orderFixture(model.OrderPending), nil)

		svc := newOrderSvc(t, repo)

		_, err := svc.Advance(context.Background(), "o-1", "v-other", "u-vendor")
		require.Error(t, err)
		assert.True(t, apperrors.IsForbidden(err))
	})
}

func TestOrderService_Cancel(t *testing.T) {
	t.Run("pending order can be cancelled", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mocks.NewMockOrderRepository(ctrl)
		repo.EXPECT().GetByID(gomock.Any(), "o-1").Return(orderFixture(model.OrderPending), nil)
		repo.EXPECT().TransitionStatus(gomock.Any(), core.TransitionParams{
			OrderID:   "o-1",
			From:      model.OrderPending,
			To:        model.OrderCancelled,
			ChangedBy: "u-vendor",
		}).Return(&model.Order{ID: "o-1", Status: model.OrderCancelled}, nil)

		svc := newOrderSvc(t, repo)

		updated, err := svc.Cancel(context.Background(), "o-1", "v-1", "u-vendor")
		require.NoError(t, err)
		assert.Equal(t, model.OrderCancelled, updated.Status)
	})

	t.Run("order in preparation can no longer be cancelled", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mocks.NewMockOrderRepository(ctrl)
		repo.EXPECT().GetByID(gomock.Any(), "o-1").Return(orderFixture(model.OrderPreparing), nil)

		svc := newOrderSvc(t, repo)

		_, err := svc.Cancel(context.Background(), "o-1", "v-1", "u-vendor")
		require.Error(t, err)
		assert.True(t, apperrors.IsConflict(err))
	})
}

func TestNewOrderService_RequiresRepo(t *testing.T) {
	_, err := NewOrderService(OrderServiceOptions{})
	require.Error(t, err)
}
