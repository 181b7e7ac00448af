package model

import (
	"time"

	"github.com/google/uuid"
)

// PromoCode is a percentage discount with a validity window and an optional
// usage cap.
type PromoCode struct {
	ID                 uuid.UUID `json:"id" db:"id"`
	Code               string    `json:"code" db:"code"`
	DiscountPercentage int       `json:"discountPercentage" db:"discount_percentage"`
	ValidFrom          time.Time `json:"validFrom" db:"valid_from"`
	ValidTo            time.Time `json:"validTo" db:"valid_to"`
	Active             bool      `json:"active" db:"active"`
	UsageLimit         *int      `json:"usageLimit,omitempty" db:"usage_limit"`
	UsedCount          int       `json:"usedCount" db:"used_count"`
	CreatedAt          time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt          time.Time `json:"updatedAt" db:"updated_at"`
}

// PromoCodeRequest is the admin payload for creating or updating a promo code.
type PromoCodeRequest struct {
	Code               string    `json:"code"`
	DiscountPercentage int       `json:"discountPercentage"`
	ValidFrom          time.Time `json:"validFrom"`
	ValidTo            time.Time `json:"validTo"`
	Active             bool      `json:"active"`
	UsageLimit         *int      `json:"usageLimit,omitempty"`
}

// PromoPreview is the read-only validation result for a promo code. Previewing
// never consumes a usage slot; only applying the code at checkout does.
type PromoPreview struct {
	Valid              bool   `json:"valid"`
	DiscountPercentage int    `json:"discountPercentage,omitempty"`
	Reason             string `json:"reason,omitempty"`
}
