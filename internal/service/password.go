package service

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/nextgen-organics/portal-api/internal/core"
	"github.com/nextgen-organics/portal-api/internal/data"
	domainauth "github.com/nextgen-organics/portal-api/internal/domain/auth"
)

// ErrInvalidCredentials is returned for a wrong email or password. The two
// cases are deliberately indistinguishable to the caller.
var ErrInvalidCredentials = errors.New("invalid email or password")

// PasswordVerifier implements ports.PasswordAuthenticator against the
// profiles table using bcrypt hashes.
type PasswordVerifier struct {
	profiles core.ProfileRepository
}

// NewPasswordVerifier constructs a PasswordVerifier.
func NewPasswordVerifier(profiles core.ProfileRepository) (*PasswordVerifier, error) {
	if profiles == nil {
		return nil, errors.New("ProfileRepository is required")
	}
	return &PasswordVerifier{profiles: profiles}, nil
}

// Authenticate verifies the credentials and returns the matching identity.
func (v *PasswordVerifier) Authenticate(ctx context.Context, email, password string) (domainauth.Identity, error) {
	profile, err := v.profiles.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, data.ErrProfileNotFound) {
			// Burn a bcrypt round anyway so response timing does not reveal
			// whether the email exists.
			_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
			return domainauth.Identity{}, ErrInvalidCredentials
		}
		return domainauth.Identity{}, err
	}

	if len(profile.PasswordHash) == 0 {
		return domainauth.Identity{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(profile.PasswordHash, []byte(password)); err != nil {
		return domainauth.Identity{}, ErrInvalidCredentials
	}

	return domainauth.Identity{
		UserID: profile.ID,
		Email:  profile.Email,
		Name:   profile.FullName,
		Role:   profile.Role,
	}, nil
}

// HashPassword hashes a plaintext password for storage.
func HashPassword(password string) ([]byte, error) {
	return bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
}

// dummyHash is a valid bcrypt hash of a random string, used to equalize
// timing on unknown emails.
var dummyHash = []byte("$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy")
