package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InventoryItem represents a fabric stock record for one (material, colour)
// combination. Quantities are metres of fabric.
type InventoryItem struct {
	ID            uuid.UUID       `json:"id" db:"id"`
	MaterialName  string          `json:"materialName" db:"material_name"`
	MaterialType  *string         `json:"materialType,omitempty" db:"material_type"`
	Color         string          `json:"color" db:"color"`
	ColorCode     *string         `json:"colorCode,omitempty" db:"color_code"`
	Pattern       *string         `json:"pattern,omitempty" db:"pattern"`
	TotalQuantity decimal.Decimal `json:"totalQuantity" db:"total_quantity"`
	UnitPrice     decimal.Decimal `json:"unitPrice" db:"unit_price"`
	CreatedAt     time.Time       `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time       `json:"updatedAt" db:"updated_at"`
}

// InventoryItemRequest is the admin payload for creating or updating a fabric.
type InventoryItemRequest struct {
	MaterialName  string          `json:"materialName"`
	MaterialType  *string         `json:"materialType,omitempty"`
	Color         string          `json:"color"`
	ColorCode     *string         `json:"colorCode,omitempty"`
	Pattern       *string         `json:"pattern,omitempty"`
	TotalQuantity decimal.Decimal `json:"totalQuantity"`
	UnitPrice     decimal.Decimal `json:"unitPrice"`
}

// AvailabilityRequest asks whether enough fabric is in stock.
type AvailabilityRequest struct {
	MaterialName     string          `json:"materialName"`
	Color            string          `json:"color"`
	RequiredQuantity decimal.Decimal `json:"requiredQuantity"`
}

// AvailabilityResponse reports the result of a stock check. AvailableQuantity
// is the current stock level regardless of the outcome.
type AvailabilityResponse struct {
	Available         bool            `json:"available"`
	AvailableQuantity decimal.Decimal `json:"availableQuantity"`
	UnitPrice         decimal.Decimal `json:"unitPrice"`
}
