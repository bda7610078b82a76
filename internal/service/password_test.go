package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/nextgen-organics/portal-api/internal/data"
	domainauth "github.com/nextgen-organics/portal-api/internal/domain/auth"
	"github.com/nextgen-organics/portal-api/internal/domain/model"
	"github.com/nextgen-organics/portal-api/internal/mocks"
)

func TestPasswordVerifier_Authenticate(t *testing.T) {
	hash, err := HashPassword("hunter2hunter2")
	require.NoError(t, err)

	profile := &model.Profile{
		ID:           "u-1",
		Email:        "vendor@example.com",
		FullName:     "Vendor Owner",
		Role:         domainauth.RoleVendor,
		PasswordHash: hash,
	}

	t.Run("correct credentials return identity", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mocks.NewMockProfileRepository(ctrl)
		repo.EXPECT().GetByEmail(gomock.Any(), "vendor@example.com").Return(profile, nil)

		verifier, err := NewPasswordVerifier(repo)
		require.NoError(t, err)

		identity, err := verifier.Authenticate(context.Background(), "vendor@example.com", "hunter2hunter2")
		require.NoError(t, err)
		assert.Equal(t, "u-1", identity.UserID)
		assert.Equal(t, domainauth.RoleVendor, identity.Role)
		assert.Equal(t, "Vendor Owner", identity.Name)
	})

	t.Run("wrong password is rejected", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mocks.NewMockProfileRepository(ctrl)
		repo.EXPECT().GetByEmail(gomock.Any(), "vendor@example.com").Return(profile, nil)

		verifier, err := NewPasswordVerifier(repo)
		require.NoError(t, err)

		_, err = verifier.Authenticate(context.Background(), "vendor@example.com", "wrong")
		require.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown email is indistinguishable from wrong password", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mocks.NewMockProfileRepository(ctrl)
		repo.EXPECT().GetByEmail(gomock.Any(), "nobody@example.com").Return(nil, data.ErrProfileNotFound)

		verifier, err := NewPasswordVerifier(repo)
		require.NoError(t, err)

		_, err = verifier.Authenticate(context.Background(), "nobody@example.com", "whatever")
		require.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("profile without a hash cannot log in", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mocks.NewMockProfileRepository(ctrl)
		ssoOnly := &model.Profile{ID: "u-2", Email: "sso@example.com", Role: domainauth.RoleAdmin}
		repo.EXPECT().GetByEmail(gomock.Any(), "sso@example.com").Return(ssoOnly, nil)

		verifier, err := NewPasswordVerifier(repo)
		require.NoError(t, err)

		_, err = verifier.Authenticate(context.Background(), "sso@example.com", "anything")
		require.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("store errors surface as-is", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mocks.NewMockProfileRepository(ctrl)
		storeErr := errors.New("connection reset")
		repo.EXPECT().GetByEmail(gomock.Any(), "vendor@example.com").Return(nil, storeErr)

		verifier, err := NewPasswordVerifier(repo)
		require.NoError(t, err)

		_, err = verifier.Authenticate(context.Background(), "vendor@example.com", "hunter2hunter2")
		require.ErrorIs(t, err, storeErr)
		assert.NotErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestNewPasswordVerifier_RequiresRepo(t *testing.T) {
	_, err := NewPasswordVerifier(nil)
	require.Error(t, err)
}

func TestHashPassword_RoundTrips(t *testing.T) {
	hash, err := HashPassword("some-password")
	require.NoError(t, err)
	assert.NotEmpty(t, hash)
	assert.NotEqual(t, "some-password", string(hash))
}
