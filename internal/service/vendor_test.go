package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	domainauth "github.com/nextgen-organics/portal-api/internal/domain/auth"
	"github.com/nextgen-organics/portal-api/internal/domain/model"
	apperrors "github.com/nextgen-organics/portal-api/internal/errors"
	"github.com/nextgen-organics/portal-api/internal/mocks"
)

type vendorMocks struct {
	vendors  *mocks.MockVendorRepository
	profiles *mocks.MockProfileRepository
	audit    *mocks.MockAdminActionRepository
}

func newVendorSvc(t *testing.T) (*VendorService, vendorMocks) {
	t.Helper()
	ctrl := gomock.NewController(t)
	m := vendorMocks{
		vendors:  mocks.NewMockVendorRepository(ctrl),
		profiles: mocks.NewMockProfileRepository(ctrl),
		audit:    mocks.NewMockAdminActionRepository(ctrl),
	}
	svc, err := NewVendorService(VendorServiceOptions{
		Vendors:  m.vendors,
		Profiles: m.profiles,
		Audit:    m.audit,
	})
	require.NoError(t, err)
	return svc, m
}

func TestVendorService_Register(t *testing.T) {
	svc, m := newVendorSvc(t)

	m.profiles.EXPECT().
		Create(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req *model.CreateProfileRequest, hash []byte) (*model.Profile, error) {
			assert.Equal(t, "owner@greenvalley.test", req.Email)
			assert.Equal(t, domainauth.RoleVendor, req.Role)
			assert.NotEmpty(t, hash)
			return &model.Profile{ID: "u-1", Email: req.Email, Role: req.Role}, nil
		})
	m.vendors.EXPECT().
		Create(gomock.Any(), &model.CreateVendorRequest{
			UserID:   "u-1",
			ShopName: "Green Valley Farm",
			Phone:    "+1-555-0101",
			Address:  "12 Orchard Lane",
		}).
		Return(&model.Vendor{ID: "v-1", UserID: "u-1", ShopName: "Green Valley Farm", Status: domainauth.VendorPending}, nil)

	vendor, err := svc.Register(context.Background(), RegisterVendorInput{
		Email:    "owner@greenvalley.test",
		FullName: "Shop Owner",
		Password: "long-enough-password",
		ShopName: "Green Valley Farm",
		Phone:    "+1-555-0101",
		Address:  "12 Orchard Lane",
	})
	require.NoError(t, err)
	assert.Equal(t, "v-1", vendor.ID)
	assert.Equal(t, domainauth.VendorPending, vendor.Status)
}

func TestVendorService_Register_ProfileCreateFails(t *testing.T) {
	svc, m := newVendorSvc(t)

	m.profiles.EXPECT().
		Create(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, apperrors.Conflict("email already registered"))

	_, err := svc.Register(context.Background(), RegisterVendorInput{
		Email:    "dupe@example.com",
		FullName: "Dupe",
		Password: "long-enough-password",
		ShopName: "Dupe Farm",
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsConflict(err))
}

func TestVendorService_SetStatus(t *testing.T) {
	for _, status := range []domainauth.VendorStatus{
		domainauth.VendorApproved,
		domainauth.VendorRejected,
		domainauth.VendorSuspended,
		domainauth.VendorPending,
	} {
		t.Run(string(status), func(t *testing.T) {
			svc, m := newVendorSvc(t)

			m.vendors.EXPECT().
				UpdateStatus(gomock.Any(), "v-1", status).
				Return(&model.Vendor{ID: "v-1", Status: status}, nil)
			m.audit.EXPECT().
				Insert(gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, action model.AdminAction) error {
					assert.Equal(t, "u-admin", action.AdminID)
					assert.Equal(t, "vendor_status_"+string(status), action.Action)
					assert.Equal(t, "vendor", action.TargetType)
					assert.Equal(t, "v-1", action.TargetID)
					return nil
				})

			vendor, err := svc.SetStatus(context.Background(), SetStatusInput{
				VendorID: "v-1",
				Status:   status,
				AdminID:  "u-admin",
			})
			require.NoError(t, err)
			assert.Equal(t, status, vendor.Status)
		})
	}
}

func TestVendorService_SetStatus_InvalidStatus(t *testing.T) {
	svc, _ := newVendorSvc(t)

	_, err := svc.SetStatus(context.Background(), SetStatusInput{
		VendorID: "v-1",
		Status:   domainauth.VendorStatus("banned"),
		AdminID:  "u-admin",
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
}

func TestVendorService_SetStatus_RequiresAdminID(t *testing.T) {
	svc, _ := newVendorSvc(t)

	_, err := svc.SetStatus(context.Background(), SetStatusInput{
		VendorID: "v-1",
		Status:   domainauth.VendorApproved,
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
}

func TestVendorService_SetStatus_AuditFailureDoesNotFailRequest(t *testing.T) {
	svc, m := newVendorSvc(t)

	m.vendors.EXPECT().
		UpdateStatus(gomock.Any(), "v-1", domainauth.VendorApproved).
		Return(&model.Vendor{ID: "v-1", Status: domainauth.VendorApproved}, nil)
	m.audit.EXPECT().
		Insert(gomock.Any(), gomock.Any()).
		Return(assert.AnError)

	vendor, err := svc.SetStatus(context.Background(), SetStatusInput{
		VendorID: "v-1",
		Status:   domainauth.VendorApproved,
		AdminID:  "u-admin",
	})
	require.NoError(t, err)
	assert.Equal(t, domainauth.VendorApproved, vendor.Status)
}

func TestNewVendorService_Validation(t *testing.T) {
	ctrl := gomock.NewController(t)
	vendors := mocks.NewMockVendorRepository(ctrl)
	profiles := mocks.NewMockProfileRepository(ctrl)
	audit := mocks.NewMockAdminActionRepository(ctrl)

	_, err := NewVendorService(VendorServiceOptions{Profiles: profiles, Audit: audit})
	require.Error(t, err)

	_, err = NewVendorService(VendorServiceOptions{Vendors: vendors, Audit: audit})
	require.Error(t, err)

	_, err = NewVendorService(VendorServiceOptions{Vendors: vendors, Profiles: profiles})
	require.Error(t, err)
}
