package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseRole(t *testing.T) {
	tests := []struct {
		input string
		want  Role
	}{
		{"admin", RoleAdmin},
		{"ADMIN", RoleAdmin},
		{"  admin  ", RoleAdmin},
		{"vendor", RoleVendor},
		{"Vendor", RoleVendor},
		{"customer", RoleCustomer},
		{"", RoleCustomer},
		{"superuser", RoleCustomer},
		{"moderator", RoleCustomer},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseRole(tt.input), "ParseRole(%q)", tt.input)
	}
}

func TestParseVendorStatus(t *testing.T) {
	tests := []struct {
		input string
		want  VendorStatus
	}{
		{"approved", VendorApproved},
		{"APPROVED", VendorApproved},
		{"rejected", VendorRejected},
		{"suspended", VendorSuspended},
		{"pending", VendorPending},
		{"", VendorPending},
		{"garbage", VendorPending},
		{" approved ", VendorApproved},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseVendorStatus(tt.input), "ParseVendorStatus(%q)", tt.input)
	}
}

func TestIdentity_EffectiveVendorStatus(t *testing.T) {
	t.Run("non-vendor roles have no status", func(t *testing.T) {
		assert.Equal(t, VendorStatus(""), Identity{Role: RoleAdmin, VendorStatus: VendorApproved}.EffectiveVendorStatus())
		assert.Equal(t, VendorStatus(""), Identity{Role: RoleCustomer}.EffectiveVendorStatus())
	})

	t.Run("suspended collapses to rejected", func(t *testing.T) {
		id := Identity{Role: RoleVendor, VendorStatus: VendorSuspended}
		assert.Equal(t, VendorRejected, id.EffectiveVendorStatus())
	})

	t.Run("missing status defaults to pending", func(t *testing.T) {
		id := Identity{Role: RoleVendor}
		assert.Equal(t, VendorPending, id.EffectiveVendorStatus())
	})

	t.Run("approved and rejected pass through", func(t *testing.T) {
		assert.Equal(t, VendorApproved, Identity{Role: RoleVendor, VendorStatus: VendorApproved}.EffectiveVendorStatus())
		assert.Equal(t, VendorRejected, Identity{Role: RoleVendor, VendorStatus: VendorRejected}.EffectiveVendorStatus())
	})
}

func TestSession_IsAdmin(t *testing.T) {
	assert.True(t, Session{Role: RoleAdmin, ExpiresAt: time.Now()}.IsAdmin())
	assert.False(t, Session{Role: RoleVendor}.IsAdmin())
	assert.False(t, Session{Role: RoleCustomer}.IsAdmin())
}
