package auth

// Package auth contains domain-level types for authentication and sessions.
// It is pure and free of framework/adapter concerns.

import (
	"strings"
	"time"
)

// Role represents an application authorization role.
// Keep string form for easy persistence and cookies.
// Valid values are defined as constants below.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleVendor   Role = "vendor"
	RoleCustomer Role = "customer"
)

// VendorStatus is the approval state of a vendor account.
// It is meaningful only when the role is vendor.
type VendorStatus string

const (
	VendorPending  VendorStatus = "pending"
	VendorApproved VendorStatus = "approved"
	VendorRejected VendorStatus = "rejected"
	// VendorSuspended is stored for vendors an admin has suspended.
	// For access decisions it is treated like rejected.
	VendorSuspended VendorStatus = "suspended"
)

// ParseRole normalizes a stored role string to a Role.
// Unknown or empty values fall back to customer, the least-privileged role.
// This is the single normalization point for role strings; callers must not
// compare raw strings from the data store.
func ParseRole(s string) Role {
	switch Role(strings.ToLower(strings.TrimSpace(s))) {
	case RoleAdmin:
		return RoleAdmin
	case RoleVendor:
		return RoleVendor
	default:
		return RoleCustomer
	}
}

// ParseVendorStatus normalizes a stored vendor status string.
// Unknown or empty values fall back to pending, the safest default: a vendor
// with an unreadable status is held at the pending screen rather than let in.
func ParseVendorStatus(s string) VendorStatus {
	switch VendorStatus(strings.ToLower(strings.TrimSpace(s))) {
	case VendorApproved:
		return VendorApproved
	case VendorRejected:
		return VendorRejected
	case VendorSuspended:
		return VendorSuspended
	default:
		return VendorPending
	}
}

// Identity is the resolved principal for a request: who the caller is, their
// role, and (for vendors) their approval status.
type Identity struct {
	UserID       string
	Email        string
	Name         string
	Role         Role
	VendorStatus VendorStatus // meaningful only when Role == RoleVendor
}

// EffectiveVendorStatus returns the status used for access decisions.
// Non-vendor identities have no meaningful status; vendors with a missing or
// suspended status resolve to pending/rejected respectively.
func (i Identity) EffectiveVendorStatus() VendorStatus {
	if i.Role != RoleVendor {
		return ""
	}
	st := ParseVendorStatus(string(i.VendorStatus))
	if st == VendorSuspended {
		return VendorRejected
	}
	return st
}

// Session is the server-side record persisted for an authenticated user.
// ID is an opaque session identifier (e.g., random URL-safe string).
type Session struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      Role      `json:"role"`
	ExpiresAt time.Time `json:"expires_at"`
}

// IsAdmin returns true if the session role is admin.
func (s Session) IsAdmin() bool { return s.Role == RoleAdmin }
