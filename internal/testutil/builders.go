// Package testutil provides testing utilities and helpers for the portal services.
package testutil

import (
	domainauth "github.com/nextgen-organics/portal-api/internal/domain/auth"
	"github.com/nextgen-organics/portal-api/internal/domain/model"
)

// ProfileRequestBuilder provides a fluent interface for building CreateProfileRequest objects for testing.
type ProfileRequestBuilder struct {
	req *model.CreateProfileRequest
}

// NewProfileRequest creates a new ProfileRequestBuilder with sensible defaults.
func NewProfileRequest() *ProfileRequestBuilder {
	return &ProfileRequestBuilder{
		req: &model.CreateProfileRequest{
			Email:    "test.user@example.com",
			FullName: "Test User",
			Role:     domainauth.RoleCustomer,
			Password: "correct-horse-battery",
		},
	}
}

// WithEmail sets the profile email.
func (b *ProfileRequestBuilder) WithEmail(email string) *ProfileRequestBuilder {
	b.req.Email = email
	return b
}

// WithFullName sets the profile full name.
func (b *ProfileRequestBuilder) WithFullName(name string) *ProfileRequestBuilder {
	b.req.FullName = name
	return b
}

// WithPhone sets the profile phone number.
func (b *ProfileRequestBuilder) WithPhone(phone string) *ProfileRequestBuilder {
	b.req.Phone = &phone
	return b
}

// WithRole sets the profile role.
func (b *ProfileRequestBuilder) WithRole(role domainauth.Role) *ProfileRequestBuilder {
	b.req.Role = role
	return b
}

// WithPassword sets the plaintext password.
func (b *ProfileRequestBuilder) WithPassword(password string) *ProfileRequestBuilder {
	b.req.Password = password
	return b
}

// Build returns the constructed CreateProfileRequest.
func (b *ProfileRequestBuilder) Build() *model.CreateProfileRequest {
	return b.req
}

// VendorRequestBuilder provides a fluent interface for building CreateVendorRequest objects for testing.
type VendorRequestBuilder struct {
	req *model.CreateVendorRequest
}

// NewVendorRequest creates a new VendorRequestBuilder with sensible defaults.
func NewVendorRequest(userID string) *VendorRequestBuilder {
	return &VendorRequestBuilder{
		req: &model.CreateVendorRequest{
			UserID:   userID,
			ShopName: "Green Valley Farm",
			Phone:    "+1-555-0100",
			Address:  "12 Orchard Lane",
		},
	}
}

// WithShopName sets the vendor shop name.
func (b *VendorRequestBuilder) WithShopName(name string) *VendorRequestBuilder {
	b.req.ShopName = name
	return b
}

// WithPhone sets the vendor phone number.
func (b *VendorRequestBuilder) WithPhone(phone string) *VendorRequestBuilder {
	b.req.Phone = phone
	return b
}

// WithAddress sets the vendor address.
func (b *VendorRequestBuilder) WithAddress(address string) *VendorRequestBuilder {
	b.req.Address = address
	return b
}

// Build returns the constructed CreateVendorRequest.
func (b *VendorRequestBuilder) Build() *model.CreateVendorRequest {
	return b.req
}

// ProductRequestBuilder provides a fluent interface for building CreateProductRequest objects for testing.
type ProductRequestBuilder struct {
	req *model.CreateProductRequest
}

// NewProductRequest creates a new ProductRequestBuilder with sensible defaults.
func NewProductRequest(vendorID, categoryID string) *ProductRequestBuilder {
	return &ProductRequestBuilder{
		req: &model.CreateProductRequest{
			VendorID:   vendorID,
			CategoryID: categoryID,
			Name:       "Organic Honeycrisp Apples",
			Price:      4.99,
			Stock:      25,
		},
	}
}

// WithName sets the product name.
func (b *ProductRequestBuilder) WithName(name string) *ProductRequestBuilder {
	b.req.Name = name
	return b
}

// WithDescription sets the product description.
func (b *ProductRequestBuilder) WithDescription(desc string) *ProductRequestBuilder {
	b.req.Description = &desc
	return b
}

// WithPrice sets the product price.
func (b *ProductRequestBuilder) WithPrice(price float64) *ProductRequestBuilder {
	b.req.Price = price
	return b
}

// WithStock sets the initial stock level.
func (b *ProductRequestBuilder) WithStock(stock int) *ProductRequestBuilder {
	b.req.Stock = stock
	return b
}

// WithActive sets the active flag.
func (b *ProductRequestBuilder) WithActive(active bool) *ProductRequestBuilder {
	b.req.IsActive = &active
	return b
}

// WithImageURL sets the product image URL.
func (b *ProductRequestBuilder) WithImageURL(url string) *ProductRequestBuilder {
	b.req.ImageURL = &url
	return b
}

// Build returns the constructed CreateProductRequest.
func (b *ProductRequestBuilder) Build() *model.CreateProductRequest {
	return b.req
}

// BannerRequestBuilder provides a fluent interface for building CreateBannerRequest objects for testing.
type BannerRequestBuilder struct {
	req *model.CreateBannerRequest
}

// NewBannerRequest creates a new BannerRequestBuilder with sensible defaults.
func NewBannerRequest() *BannerRequestBuilder {
	return &BannerRequestBuilder{
		req: &model.CreateBannerRequest{
			Title:      "Harvest Season Sale",
			ColorStart: "#3f6212",
			ColorEnd:   "#a3e635",
			Position:   1,
		},
	}
}

// WithTitle sets the banner title.
func (b *BannerRequestBuilder) WithTitle(title string) *BannerRequestBuilder {
	b.req.Title = title
	return b
}

// WithSubtitle sets the banner subtitle.
func (b *BannerRequestBuilder) WithSubtitle(subtitle string) *BannerRequestBuilder {
	b.req.Subtitle = &subtitle
	return b
}

// WithColors sets the gradient colors.
func (b *BannerRequestBuilder) WithColors(start, end string) *BannerRequestBuilder {
	b.req.ColorStart = start
	b.req.ColorEnd = end
	return b
}

// WithActive sets the active flag.
func (b *BannerRequestBuilder) WithActive(active bool) *BannerRequestBuilder {
	b.req.Active = &active
	return b
}

// WithPosition sets the banner ordering position.
func (b *BannerRequestBuilder) WithPosition(position int) *BannerRequestBuilder {
	b.req.Position = position
	return b
}

// Build returns the constructed CreateBannerRequest.
func (b *BannerRequestBuilder) Build() *model.CreateBannerRequest {
	return b.req
}

// Common test request presets

// AdminProfileRequest creates a profile request with the admin role.
func AdminProfileRequest() *model.CreateProfileRequest {
	return NewProfileRequest().
		WithEmail("admin@example.com").
		WithFullName("Portal Admin").
		WithRole(domainauth.RoleAdmin).
		Build()
}

// VendorProfileRequest creates a profile request with the vendor role.
func VendorProfileRequest(email string) *model.CreateProfileRequest {
	return NewProfileRequest().
		WithEmail(email).
		WithFullName("Vendor Owner").
		WithRole(domainauth.RoleVendor).
		Build()
}

// InactiveProductRequest creates a product request that starts inactive.
func InactiveProductRequest(vendorID, categoryID string) *model.CreateProductRequest {
	return NewProductRequest(vendorID, categoryID).
		WithName("Seasonal Squash").
		WithActive(false).
		Build()
}
