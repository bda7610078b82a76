package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/nextgen-organics/portal-api/internal/domain/model"
	"github.com/nextgen-organics/portal-api/internal/mocks"
)

func TestSettingsService_Get(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockSettingsRepository(ctrl)
	defaults := model.DefaultPlatformSettings()
	repo.EXPECT().Get(gomock.Any()).Return(&defaults, nil)

	svc, err := NewSettingsService(SettingsServiceOptions{Settings: repo})
	require.NoError(t, err)

	got, err := svc.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, defaults.PlatformCommission, got.PlatformCommission)
}

func TestSettingsService_Update(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockSettingsRepository(ctrl)
	audit := mocks.NewMockAdminActionRepository(ctrl)

	next := model.DefaultPlatformSettings()
	next.PlatformCommission = 12.5

	repo.EXPECT().Upsert(gomock.Any(), next).Return(&next, nil)
	audit.EXPECT().
		Insert(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, action model.AdminAction) error {
			assert.Equal(t, "u-admin", action.AdminID)
			assert.Equal(t, "settings_updated", action.Action)
			assert.Equal(t, "platform_settings", action.TargetType)
			return nil
		})

	svc, err := NewSettingsService(SettingsServiceOptions{Settings: repo, Audit: audit})
	require.NoError(t, err)

	updated, err := svc.Update(context.Background(), "u-admin", next)
	require.NoError(t, err)
	assert.Equal(t, 12.5, updated.PlatformCommission)
}

func TestSettingsService_Update_AuditFailureDoesNotFailRequest(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockSettingsRepository(ctrl)
	audit := mocks.NewMockAdminActionRepository(ctrl)

	next := model.DefaultPlatformSettings()
	repo.EXPECT().Upsert(gomock.Any(), next).Return(&next, nil)
	audit.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(assert.AnError)

	svc, err := NewSettingsService(SettingsServiceOptions{Settings: repo, Audit: audit})
	require.NoError(t, err)

	_, err = svc.Update(context.Background(), "u-admin", next)
	require.NoError(t, err)
}

func TestSettingsService_Update_WithoutAuditRepo(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockSettingsRepository(ctrl)

	next := model.DefaultPlatformSettings()
	repo.EXPECT().Upsert(gomock.Any(), next).Return(&next, nil)

	svc, err := NewSettingsService(SettingsServiceOptions{Settings: repo})
	require.NoError(t, err)

	_, err = svc.Update(context.Background(), "", next)
	require.NoError(t, err)
}

func TestNewSettingsService_RequiresRepo(t *testing.T) {
	_, err := NewSettingsService(SettingsServiceOptions{})
	require.Error(t, err)
}
