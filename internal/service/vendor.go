package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/nextgen-organics/portal-api/internal/core"
	domainauth "github.com/nextgen-organics/portal-api/internal/domain/auth"
	"github.com/nextgen-organics/portal-api/internal/domain/model"
	apperrors "github.com/nextgen-organics/portal-api/internal/errors"
)

// VendorServiceOptions groups dependencies for VendorService.
type VendorServiceOptions struct {
	Vendors  core.VendorRepository
	Profiles core.ProfileRepository
	Audit    core.AdminActionRepository
	Logger   *slog.Logger
}

// VendorService manages vendor onboarding and the admin approval workflow.
type VendorService struct {
	vendors  core.VendorRepository
	profiles core.ProfileRepository
	audit    core.AdminActionRepository
	logger   *slog.Logger
}

// NewVendorService constructs a new VendorService.
func NewVendorService(opts VendorServiceOptions) (*VendorService, error) {
	if opts.Vendors == nil {
		return nil, errors.New("VendorRepository is required")
	}
	if opts.Profiles == nil {
		return nil, errors.New("ProfileRepository is required")
	}
	if opts.Audit == nil {
		return nil, errors.New("AdminActionRepository is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &VendorService{
		vendors:  opts.Vendors,
		profiles: opts.Profiles,
		audit:    opts.Audit,
		logger:   logger.With("component", "vendor_service"),
	}, nil
}

// RegisterVendorInput groups vendor self-registration parameters: the profile
// credentials plus the shop details.
type RegisterVendorInput struct {
	Email    string
	FullName string
	Password string
	ShopName string
	Phone    string
	Address  string
}

// Register creates the vendor's profile and shop record. The new vendor
// starts pending and lands on the pending screen until an admin approves.
func (s *VendorService) Register(ctx context.Context, in RegisterVendorInput) (*model.Vendor, error) {
	hash, err := HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	profile, err := s.profiles.Create(ctx, &model.CreateProfileRequest{
		Email:    in.Email,
		FullName: in.FullName,
		Role:     domainauth.RoleVendor,
		Password: in.Password,
	}, hash)
	if err != nil {
		return nil, err
	}

	vendor, err := s.vendors.Create(ctx, &model.CreateVendorRequest{
		UserID:   profile.ID,
		ShopName: in.ShopName,
		Phone:    in.Phone,
		Address:  in.Address,
	})
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "vendor registered",
		"vendor_id", vendor.ID, "user_id", profile.ID, "shop_name", vendor.ShopName)
	return vendor, nil
}

// Get retrieves a vendor by ID.
func (s *VendorService) Get(ctx context.Context, id string) (*model.Vendor, error) {
	return s.vendors.GetByID(ctx, id)
}

// GetByUserID retrieves the vendor owned by a user.
func (s *VendorService) GetByUserID(ctx context.Context, userID string) (*model.Vendor, error) {
	return s.vendors.GetByUserID(ctx, userID)
}

// List retrieves vendors with owner details for the admin screen.
func (s *VendorService) List(ctx context.Context, opts model.VendorsListOptions) ([]*model.VendorWithOwner, error) {
	return s.vendors.ListWithOwners(ctx, opts)
}

// SetStatusInput groups parameters for an admin status change.
type SetStatusInput struct {
	VendorID string
	Status   domainauth.VendorStatus
	AdminID  string
	Note     *string
}

// SetStatus applies an admin approval decision and records it in the audit
// log. Approving, rejecting, and suspending all go through here; the new
// status takes effect on the vendor's next request because the access path
// re-reads it every time.
func (s *VendorService) SetStatus(ctx context.Context, in SetStatusInput) (*model.Vendor, error) {
	switch in.Status {
	case domainauth.VendorApproved, domainauth.VendorRejected,
		domainauth.VendorSuspended, domainauth.VendorPending:
	default:
		return nil, apperrors.Validation(fmt.Sprintf("invalid vendor status %q", in.Status))
	}
	if in.AdminID == "" {
		return nil, apperrors.Validation("admin_id is required")
	}

	vendor, err := s.vendors.UpdateStatus(ctx, in.VendorID, in.Status)
	if err != nil {
		return nil, err
	}

	if err := s.audit.Insert(ctx, model.AdminAction{
		AdminID:    in.AdminID,
		Action:     "vendor_status_" + string(in.Status),
		TargetType: "vendor",
		TargetID:   vendor.ID,
		Note:       in.Note,
	}); err != nil {
		// The status change already committed; losing the audit row is worth a
		// loud log but not a failed request.
		s.logger.ErrorContext(ctx, "failed to record admin action",
			"vendor_id", vendor.ID, "status", in.Status, "err", err)
	}

	s.logger.InfoContext(ctx, "vendor status changed",
		"vendor_id", vendor.ID, "status", vendor.Status, "admin_id", in.AdminID)
	return vendor, nil
}
