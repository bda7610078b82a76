package model

import (
	"errors"
	"strings"
	"time"

	domainauth "github.com/nextgen-organics/portal-api/internal/domain/auth"
)

// Profile is a user account row. Role is stored as text in the database and
// normalized through auth.ParseRole at the repository boundary, so the rest
// of the application never sees raw role strings.
type Profile struct {
	ID           string          `json:"id"                      db:"id"`
	Email        string          `json:"email"                   db:"email"`
	FullName     string          `json:"full_name"               db:"full_name"`
	Phone        *string         `json:"phone,omitempty"         db:"phone"`
	Role         domainauth.Role `json:"role"                    db:"role"`
	PasswordHash []byte          `json:"-"                       db:"password_hash"`
	CreatedAt    time.Time       `json:"created_at"              db:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"              db:"updated_at"`
}

// CreateProfileRequest represents parameters to register a profile.
type CreateProfileRequest struct {
	Email    string          `json:"email"`
	FullName string          `json:"full_name"`
	Phone    *string         `json:"phone,omitempty"`
	Role     domainauth.Role `json:"role"`
	Password string          `json:"password"`
}

const minPasswordLen = 8

// Validate validates CreateProfileRequest.
func (r *CreateProfileRequest) Validate() error {
	email := strings.TrimSpace(r.Email)
	if email == "" || !strings.Contains(email, "@") {
		return errors.New("a valid email is required")
	}
	if strings.TrimSpace(r.FullName) == "" {
		return errors.New("full_name is required")
	}
	if len(r.Password) < minPasswordLen {
		return errors.New("password must be at least 8 characters")
	}
	switch r.Role {
	case domainauth.RoleAdmin, domainauth.RoleVendor, domainauth.RoleCustomer:
	default:
		return errors.New("invalid role")
	}
	return nil
}
