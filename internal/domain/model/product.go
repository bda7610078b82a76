package model

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	maxProductNameLen = 160
	maxDescriptionLen = 2000
)

// Product is a vendor listing. Stock changes go through the repository's
// atomic AdjustStock rather than read-modify-write in the application.
type Product struct {
	ID          string    `json:"id"                    db:"id"`
	VendorID    string    `json:"vendor_id"             db:"vendor_id"`
	CategoryID  string    `json:"category_id"           db:"category_id"`
	Name        string    `json:"name"                  db:"name"`
	Description *string   `json:"description,omitempty" db:"description"`
	Price       float64   `json:"price"                 db:"price"`
	Stock       int       `json:"stock"                 db:"stock"`
	IsActive    bool      `json:"is_active"             db:"is_active"`
	ImageURL    *string   `json:"image_url,omitempty"   db:"image_url"`
	CreatedAt   time.Time `json:"created_at"            db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"            db:"updated_at"`
}

// ProductWithRefs joins a product with its category and vendor names, for
// the admin product oversight screen.
type ProductWithRefs struct {
	Product
	CategoryName string `json:"category_name" db:"category_name"`
	ShopName     string `json:"shop_name"     db:"shop_name"`
}

// CreateProductRequest represents parameters to create a Product.
type CreateProductRequest struct {
	VendorID    string  `json:"vendor_id"`
	CategoryID  string  `json:"category_id"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	Price       float64 `json:"price"`
	Stock       int     `json:"stock"`
	IsActive    *bool   `json:"is_active,omitempty"`
	ImageURL    *string `json:"image_url,omitempty"`
}

// Validate validates CreateProductRequest.
func (r *CreateProductRequest) Validate() error {
	if strings.TrimSpace(r.VendorID) == "" {
		return errors.New("vendor_id is required")
	}
	if strings.TrimSpace(r.CategoryID) == "" {
		return errors.New("category_id is required")
	}
	name := strings.TrimSpace(r.Name)
	if name == "" {
		return errors.New("name is required and cannot be empty")
	}
	if utf8.RuneCountInString(name) > maxProductNameLen {
		return errors.New("name cannot exceed 160 characters")
	}
	if r.Description != nil && utf8.RuneCountInString(*r.Description) > maxDescriptionLen {
		return errors.New("description cannot exceed 2000 characters")
	}
	if r.Price <= 0 {
		return errors.New("price must be > 0")
	}
	if r.Stock < 0 {
		return errors.New("stock cannot be negative")
	}
	return nil
}

// UpdateProductRequest represents parameters to update a Product.
type UpdateProductRequest struct {
	CategoryID  *string  `json:"category_id,omitempty"`
	Name        *string  `json:"name,omitempty"`
	Description *string  `json:"description,omitempty"`
	Price       *float64 `json:"price,omitempty"`
	IsActive    *bool    `json:"is_active,omitempty"`
	ImageURL    *string  `json:"image_url,omitempty"`
}

// HasUpdates reports whether any field is set in UpdateProductRequest.
func (r *UpdateProductRequest) HasUpdates() bool {
	return r.CategoryID != nil || r.Name != nil || r.Description != nil ||
		r.Price != nil || r.IsActive != nil || r.ImageURL != nil
}

// Validate validates UpdateProductRequest, ensuring at least one field is set and values are sane.
func (r *UpdateProductRequest) Validate() error {
	if !r.HasUpdates() {
		return errors.New("at least one field must be updated")
	}
	if r.Name != nil {
		n := strings.TrimSpace(*r.Name)
		if n == "" {
			return errors.New("name cannot be empty")
		}
		if utf8.RuneCountInString(n) > maxProductNameLen {
			return errors.New("name cannot exceed 160 characters")
		}
	}
	if r.Description != nil && utf8.RuneCountInString(*r.Description) > maxDescriptionLen {
		return errors.New("description cannot exceed 2000 characters")
	}
	if r.Price != nil && *r.Price <= 0 {
		return errors.New("price must be > 0")
	}
	if r.CategoryID != nil && strings.TrimSpace(*r.CategoryID) == "" {
		return errors.New("category_id cannot be empty")
	}
	return nil
}

// ProductsListOptions controls paging and filtering for listing products.
// Notes:
// - VendorID and CategoryID match exactly.
// - ActiveOnly hides inactive listings.
// - Q matches name via ILIKE substring.
// - MaxStock filters to products at or below the threshold (low-stock view).
type ProductsListOptions struct {
	Limit      int
	Offset     int
	VendorID   *string
	CategoryID *string
	ActiveOnly bool
	Q          *string
	MaxStock   *int
}
