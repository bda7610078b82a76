package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/nextgen-organics/portal-api/config"
	"github.com/nextgen-organics/portal-api/internal/core"
	"github.com/nextgen-organics/portal-api/internal/domain/model"
	"github.com/nextgen-organics/portal-api/internal/mocks"
)

func TestReaperService_SweepsWithSettingsWindow(t *testing.T) {
	ctrl := gomock.NewController(t)
	orders := mocks.NewMockOrderRepository(ctrl)
	settings := mocks.NewMockSettingsRepository(ctrl)

	current := model.DefaultPlatformSettings()
	current.OrderAutoCancelHours = 6

	swept := make(chan core.CancelStaleParams, 1)

	settings.EXPECT().Get(gomock.Any()).Return(&current, nil).MinTimes(1)
	orders.EXPECT().
		CancelStalePending(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, params core.CancelStaleParams) (int64, error) {
			select {
			case swept <- params:
			default:
			}
			return 3, nil
		}).
		MinTimes(1)

	svc, err := NewReaperService(ReaperServiceOptions{
		Orders:   orders,
		Settings: settings,
		Config:   config.ReaperConfig{Interval: 5 * time.Millisecond, BatchSize: 50},
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- svc.Run(ctx) }()

	select {
	case params := <-swept:
		require.Equal(t, 6*time.Hour, params.OlderThan)
		require.Equal(t, 50, params.BatchSize)
		require.Equal(t, "system:reaper", params.ChangedBy)
	case <-time.After(2 * time.Second):
		t.Fatal("reaper never swept")
	}

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err, "cancellation is a graceful shutdown")
	case <-time.After(2 * time.Second):
		t.Fatal("reaper did not stop after cancel")
	}
}

func TestReaperService_KeepsRunningAfterSweepError(t *testing.T) {
	ctrl := gomock.NewController(t)
	orders := mocks.NewMockOrderRepository(ctrl)
	settings := mocks.NewMockSettingsRepository(ctrl)

	calls := make(chan struct{}, 4)
	settings.EXPECT().
		Get(gomock.Any()).
		DoAndReturn(func(context.Context) (*model.PlatformSettings, error) {
			select {
			case calls <- struct{}{}:
			default:
			}
			return nil, context.DeadlineExceeded
		}).
		MinTimes(2)

	svc, err := NewReaperService(ReaperServiceOptions{
		Orders:   orders,
		Settings: settings,
		Config:   config.ReaperConfig{Interval: 5 * time.Millisecond, BatchSize: 10},
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- svc.Run(ctx) }()

	// Two observed sweeps prove the loop survived the first failure.
	for range 2 {
		select {
		case <-calls:
		case <-time.After(2 * time.Second):
			t.Fatal("reaper stopped sweeping")
		}
	}

	cancel()
	require.NoError(t, <-done)
}

func TestNewReaperService_Validation(t *testing.T) {
	ctrl := gomock.NewController(t)

	_, err := NewReaperService(ReaperServiceOptions{Settings: mocks.NewMockSettingsRepository(ctrl)})
	require.Error(t, err)

	_, err = NewReaperService(ReaperServiceOptions{Orders: mocks.NewMockOrderRepository(ctrl)})
	require.Error(t, err)
}
