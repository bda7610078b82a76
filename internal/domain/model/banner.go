package model

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"
)

const maxBannerTitleLen = 80

// Banner is a home-screen highlight managed from the admin portal.
// Colors are the two gradient stops rendered behind the title.
type Banner struct {
	ID         string    `json:"id"                  db:"id"`
	Title      string    `json:"title"               db:"title"`
	Subtitle   *string   `json:"subtitle,omitempty"  db:"subtitle"`
	ColorStart string    `json:"color_start"         db:"color_start"`
	ColorEnd   string    `json:"color_end"           db:"color_end"`
	ImageURL   *string   `json:"image_url,omitempty" db:"image_url"`
	Active     bool      `json:"active"              db:"active"`
	Position   int       `json:"position"            db:"position"`
	CreatedAt  time.Time `json:"created_at"          db:"created_at"`
}

// CreateBannerRequest represents parameters to create a Banner.
type CreateBannerRequest struct {
	Title      string  `json:"title"`
	Subtitle   *string `json:"subtitle,omitempty"`
	ColorStart string  `json:"color_start"`
	ColorEnd   string  `json:"color_end"`
	ImageURL   *string `json:"image_url,omitempty"`
	Active     *bool   `json:"active,omitempty"`
	Position   int     `json:"position"`
}

// Validate validates CreateBannerRequest.
func (r *CreateBannerRequest) Validate() error {
	title := strings.TrimSpace(r.Title)
	if title == "" {
		return errors.New("title is required and cannot be empty")
	}
	if utf8.RuneCountInString(title) > maxBannerTitleLen {
		return errors.New("title cannot exceed 80 characters")
	}
	if !validHexColor(r.ColorStart) || !validHexColor(r.ColorEnd) {
		return errors.New("color_start and color_end must be #rrggbb hex colors")
	}
	if r.Position < 0 {
		return errors.New("position cannot be negative")
	}
	return nil
}

// UpdateBannerRequest represents parameters to update a Banner.
type UpdateBannerRequest struct {
	Title      *string `json:"title,omitempty"`
	Subtitle   *string `json:"subtitle,omitempty"`
	ColorStart *string `json:"color_start,omitempty"`
	ColorEnd   *string `json:"color_end,omitempty"`
	ImageURL   *string `json:"image_url,omitempty"`
	Active     *bool   `json:"active,omitempty"`
	Position   *int    `json:"position,omitempty"`
}

// HasUpdates reports whether any field is set in UpdateBannerRequest.
func (r *UpdateBannerRequest) HasUpdates() bool {
	return r.Title != nil || r.Subtitle != nil || r.ColorStart != nil ||
		r.ColorEnd != nil || r.ImageURL != nil || r.Active != nil || r.Position != nil
}

// Validate validates UpdateBannerRequest.
func (r *UpdateBannerRequest) Validate() error {
	if !r.HasUpdates() {
		return errors.New("at least one field must be updated")
	}
	if r.Title != nil {
		t := strings.TrimSpace(*r.Title)
		if t == "" {
			return errors.New("title cannot be empty")
		}
		if utf8.RuneCountInString(t) > maxBannerTitleLen {
			return errors.New("title cannot exceed 80 characters")
		}
	}
	if r.ColorStart != nil && !validHexColor(*r.ColorStart) {
		return errors.New("color_start must be a #rrggbb hex color")
	}
	if r.ColorEnd != nil && !validHexColor(*r.ColorEnd) {
		return errors.New("color_end must be a #rrggbb hex color")
	}
	if r.Position != nil && *r.Position < 0 {
		return errors.New("position cannot be negative")
	}
	return nil
}

func validHexColor(s string) bool {
	if len(s) != 7 || s[0] != '#' {
		return false
	}
	for _, c := range s[1:] {
		switch {
		case c >= '0' && c <= '9', c >= 'a' && c <= 'f', c >= 'A' && c <= 'F':
		default:
			return false
		}
	}
	return true
}
