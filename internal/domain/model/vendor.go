//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	domainauth "github.com/nextgen-organics/portal-api/internal/domain/auth"
)

const (
	maxShopNameLen = 120
	maxAddressLen  = 500
)

// Vendor is a seller account on the marketplace. Status gates portal access:
// only approved vendors reach the vendor dashboard.
type Vendor struct {
	ID        string                  `json:"id"         db:"id"`
	UserID    string                  `json:"user_id"    db:"user_id"`
	ShopName  string                  `json:"shop_name"  db:"shop_name"`
	Phone     string                  `json:"phone"      db:"phone"`
	Address   string                  `json:"address"    db:"address"`
	Status    domainauth.VendorStatus `json:"status"     db:"status"`
	CreatedAt time.Time               `json:"created_at" db:"created_at"`
	UpdatedAt time.Time               `json:"updated_at" db:"updated_at"`
}

// VendorWithOwner joins a vendor row with the owning profile, for the admin
// vendor management screen.
type VendorWithOwner struct {
	Vendor
	OwnerName  string `json:"owner_name"  db:"owner_name"`
	OwnerEmail string `json:"owner_email" db:"owner_email"`
}

// CreateVendorRequest represents vendor onboarding input. New vendors always
// start pending; approval is an admin action.
type CreateVendorRequest struct {
	UserID   string `json:"user_id"`
	ShopName string `json:"shop_name"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
}

// Validate validates CreateVendorRequest.
func (r *CreateVendorRequest) Validate() error {
	if strings.TrimSpace(r.UserID) == "" {
		return errors.New("user_id is required")
	}
	name := strings.TrimSpace(r.ShopName)
	if name == "" {
		return errors.New("shop_name is required and cannot be empty")
	}
	if utf8.RuneCountInString(name) > maxShopNameLen {
		return errors.New("shop_name cannot exceed 120 characters")
	}
	if utf8.RuneCountInString(r.Address) > maxAddressLen {
		return errors.New("address cannot exceed 500 characters")
	}
	return nil
}

// VendorsListOptions controls paging and filtering for listing vendors.
// Notes:
// - Status matches exactly (after normalization).
// - Q matches shop_name via ILIKE substring.
type VendorsListOptions struct {
	Limit  int
	Offset int
	Status *domainauth.VendorStatus
	Q      *string
}
