package model

import (
	"errors"
	"time"
)

// PlatformSettings is the singleton row (id=1) of marketplace-wide knobs.
// All percentages are 0-100; money values are in rupees.
type PlatformSettings struct {
	ID                    int       `json:"id"                       db:"id"`
	PlatformCommission    float64   `json:"platform_commission"      db:"platform_commission"`
	TaxPercentage         float64   `json:"tax_percentage"           db:"tax_percentage"`
	DeliveryFeeBase       float64   `json:"delivery_fee_base"        db:"delivery_fee_base"`
	DeliveryFeePerKM      float64   `json:"delivery_fee_per_km"      db:"delivery_fee_per_km"`
	FreeDeliveryThreshold float64   `json:"free_delivery_threshold"  db:"free_delivery_threshold"`
	MaxDeliveryRadiusKM   float64   `json:"max_delivery_radius_km"   db:"max_delivery_radius_km"`
	MinOrderAmount        float64   `json:"min_order_amount"         db:"min_order_amount"`
	OrderAutoCancelHours  int       `json:"order_auto_cancel_hours"  db:"order_auto_cancel_hours"`
	UpdatedAt             time.Time `json:"updated_at"               db:"updated_at"`
}

// DefaultPlatformSettings returns the values seeded for a fresh install.
func DefaultPlatformSettings() PlatformSettings {
	return PlatformSettings{
		ID:                   1,
		PlatformCommission:   10,
		TaxPercentage:        5,
		DeliveryFeeBase:      20,
		DeliveryFeePerKM:     5,
		MaxDeliveryRadiusKM:  15,
		MinOrderAmount:       99,
		OrderAutoCancelHours: 24,
	}
}

// Validate validates PlatformSettings before an upsert.
func (s *PlatformSettings) Validate() error {
	if s.PlatformCommission < 0 || s.PlatformCommission > 100 {
		return errors.New("platform_commission must be between 0 and 100")
	}
	if s.TaxPercentage < 0 || s.TaxPercentage > 100 {
		return errors.New("tax_percentage must be between 0 and 100")
	}
	if s.DeliveryFeeBase < 0 || s.DeliveryFeePerKM < 0 {
		return errors.New("delivery fees cannot be negative")
	}
	if s.FreeDeliveryThreshold < 0 {
		return errors.New("free_delivery_threshold cannot be negative")
	}
	if s.MaxDeliveryRadiusKM <= 0 {
		return errors.New("max_delivery_radius_km must be > 0")
	}
	if s.MinOrderAmount < 0 {
		return errors.New("min_order_amount cannot be negative")
	}
	if s.OrderAutoCancelHours <= 0 {
		return errors.New("order_auto_cancel_hours must be > 0")
	}
	return nil
}
