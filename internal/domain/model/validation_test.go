package model

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/nextgen-organics/portal-api/internal/domain/auth"
)

func TestCreateProductRequest_Validate(t *testing.T) {
	valid := func() CreateProductRequest {
		return CreateProductRequest{
			VendorID:   "v-1",
			CategoryID: "c-1",
			Name:       "Organic Kale",
			Price:      2.99,
			Stock:      10,
		}
	}

	t.Run("valid request passes", func(t *testing.T) {
		req := valid()
		require.NoError(t, req.Validate())
	})

	tests := []struct {
		name    string
		mutate  func(*CreateProductRequest)
		wantErr string
	}{
		{"missing vendor", func(r *CreateProductRequest) { r.VendorID = " " }, "vendor_id"},
		{"missing category", func(r *CreateProductRequest) { r.CategoryID = "" }, "category_id"},
		{"empty name", func(r *CreateProductRequest) { r.Name = "  " }, "name"},
		{"name too long", func(r *CreateProductRequest) { r.Name = strings.Repeat("x", 161) }, "160"},
		{"zero price", func(r *CreateProductRequest) { r.Price = 0 }, "price"},
		{"negative price", func(r *CreateProductRequest) { r.Price = -1 }, "price"},
		{"negative stock", func(r *CreateProductRequest) { r.Stock = -1 }, "stock"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid()
			tt.mutate(&req)
			err := req.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestUpdateProductRequest_Validate(t *testing.T) {
	t.Run("empty update is rejected", func(t *testing.T) {
		req := UpdateProductRequest{}
		assert.False(t, req.HasUpdates())
		require.Error(t, req.Validate())
	})

	t.Run("single field update passes", func(t *testing.T) {
		price := 3.50
		req := UpdateProductRequest{Price: &price}
		assert.True(t, req.HasUpdates())
		require.NoError(t, req.Validate())
	})

	t.Run("empty name is rejected", func(t *testing.T) {
		name := "  "
		req := UpdateProductRequest{Name: &name}
		require.Error(t, req.Validate())
	})

	t.Run("non-positive price is rejected", func(t *testing.T) {
		price := 0.0
		req := UpdateProductRequest{Price: &price}
		require.Error(t, req.Validate())
	})
}

func TestCreateVendorRequest_Validate(t *testing.T) {
	valid := func() CreateVendorRequest {
		return CreateVendorRequest{
			UserID:   "u-1",
			ShopName: "Green Valley Farm",
			Phone:    "+1-555-0101",
			Address:  "12 Orchard Lane",
		}
	}

	t.Run("valid request passes", func(t *testing.T) {
		req := valid()
		require.NoError(t, req.Validate())
	})

	t.Run("missing user is rejected", func(t *testing.T) {
		req := valid()
		req.UserID = ""
		require.Error(t, req.Validate())
	})

	t.Run("empty shop name is rejected", func(t *testing.T) {
		req := valid()
		req.ShopName = "   "
		require.Error(t, req.Validate())
	})
}

func TestCreateProfileRequest_Validate(t *testing.T) {
	valid := func() CreateProfileRequest {
		return CreateProfileRequest{
			Email:    "owner@example.com",
			FullName: "Shop Owner",
			Role:     domainauth.RoleVendor,
			Password: "long-enough-password",
		}
	}

	t.Run("valid request passes", func(t *testing.T) {
		req := valid()
		require.NoError(t, req.Validate())
	})

	t.Run("bad email is rejected", func(t *testing.T) {
		req := valid()
		req.Email = "not-an-email"
		require.Error(t, req.Validate())
	})

	t.Run("short password is rejected", func(t *testing.T) {
		req := valid()
		req.Password = "short"
		require.Error(t, req.Validate())
	})

	t.Run("missing full name is rejected", func(t *testing.T) {
		req := valid()
		req.FullName = " "
		require.Error(t, req.Validate())
	})
}

func TestCreateBannerRequest_Validate(t *testing.T) {
	valid := func() CreateBannerRequest {
		return CreateBannerRequest{
			Title:      "Harvest Season Sale",
			ColorStart: "#3f6212",
			ColorEnd:   "#a3e635",
			Position:   1,
		}
	}

	t.Run("valid request passes", func(t *testing.T) {
		req := valid()
		require.NoError(t, req.Validate())
	})

	t.Run("empty title is rejected", func(t *testing.T) {
		req := valid()
		req.Title = ""
		require.Error(t, req.Validate())
	})
}

func TestPlatformSettings_Validate(t *testing.T) {
	t.Run("defaults are valid", func(t *testing.T) {
		s := DefaultPlatformSettings()
		require.NoError(t, s.Validate())
	})

	tests := []struct {
		name   string
		mutate func(*PlatformSettings)
	}{
		{"commission above 100", func(s *PlatformSettings) { s.PlatformCommission = 101 }},
		{"negative commission", func(s *PlatformSettings) { s.PlatformCommission = -1 }},
		{"negative tax", func(s *PlatformSettings) { s.TaxPercentage = -0.5 }},
		{"negative delivery fee", func(s *PlatformSettings) { s.DeliveryFeeBase = -1 }},
		{"zero delivery radius", func(s *PlatformSettings) { s.MaxDeliveryRadiusKM = 0 }},
		{"zero auto-cancel window", func(s *PlatformSettings) { s.OrderAutoCancelHours = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := DefaultPlatformSettings()
			tt.mutate(&s)
			require.Error(t, s.Validate())
		})
	}
}
