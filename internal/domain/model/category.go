package model

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"
)

const maxCategoryNameLen = 80

// Category groups products for browsing and dashboard breakdowns.
type Category struct {
	ID        string    `json:"id"                  db:"id"`
	Name      string    `json:"name"                db:"name"`
	ImageURL  *string   `json:"image_url,omitempty" db:"image_url"`
	CreatedAt time.Time `json:"created_at"          db:"created_at"`
}

// CreateCategoryRequest represents parameters to create a Category.
type CreateCategoryRequest struct {
	Name     string  `json:"name"`
	ImageURL *string `json:"image_url,omitempty"`
}

// Validate validates CreateCategoryRequest.
func (r *CreateCategoryRequest) Validate() error {
	name := strings.TrimSpace(r.Name)
	if name == "" {
		return errors.New("name is required and cannot be empty")
	}
	if utf8.RuneCountInString(name) > maxCategoryNameLen {
		return errors.New("name cannot exceed 80 characters")
	}
	return nil
}

// UpdateCategoryRequest represents parameters to update a Category.
type UpdateCategoryRequest struct {
	Name     *string `json:"name,omitempty"`
	ImageURL *string `json:"image_url,omitempty"`
}

// Validate validates UpdateCategoryRequest, ensuring at least one field is set.
func (r *UpdateCategoryRequest) Validate() error {
	if r.Name == nil && r.ImageURL == nil {
		return errors.New("at least one field must be updated")
	}
	if r.Name != nil {
		n := strings.TrimSpace(*r.Name)
		if n == "" {
			return errors.New("name cannot be empty")
		}
		if utf8.RuneCountInString(n) > maxCategoryNameLen {
			return errors.New("name cannot exceed 80 characters")
		}
	}
	return nil
}
