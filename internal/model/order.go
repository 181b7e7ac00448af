package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderItems is the garment configuration captured at checkout. Measurements
// are a denormalized snapshot of the customer's profile at order time; later
// edits to the saved profile never alter an existing order.
type OrderItems struct {
	Gender         string            `json:"gender"`
	DressType      string            `json:"dressType"`
	Material       string            `json:"material"`
	Color          string            `json:"color"`
	QuantityMetres decimal.Decimal   `json:"quantityMetres"`
	Measurements   map[string]string `json:"measurements"`
	Extras         []string          `json:"extras,omitempty"`
}

// Order is the central order record. Status moves along the lifecycle state
// machine; per-status timestamps record when each transition happened.
type Order struct {
	ID                   uuid.UUID       `json:"id" db:"id"`
	UserID               string          `json:"userId" db:"user_id"`
	Items                OrderItems      `json:"items"`
	InventoryItemID      uuid.UUID       `json:"-" db:"inventory_item_id"`
	PromoCode            *string         `json:"promoCode,omitempty" db:"promo_code"`
	TotalAmount          decimal.Decimal `json:"totalAmount" db:"total_amount"`
	Status               OrderStatus     `json:"status" db:"status"`
	DeliveryAddress      string          `json:"deliveryAddress" db:"delivery_address"`
	ExpectedDeliveryDate *time.Time      `json:"expectedDeliveryDate,omitempty" db:"expected_delivery_date"`
	CancelReason         *string         `json:"cancelReason,omitempty" db:"cancel_reason"`
	FeedbackText         *string         `json:"feedbackText,omitempty" db:"feedback_text"`
	FeedbackRating       *int            `json:"feedbackRating,omitempty" db:"feedback_rating"`
	DeliveryOtp          *string         `json:"-" db:"delivery_otp"`
	OtpVerified          bool            `json:"otpVerified" db:"otp_verified"`
	PendingAt            *time.Time      `json:"pendingAt,omitempty" db:"pending_at"`
	OrderAcceptedAt      *time.Time      `json:"orderAcceptedAt,omitempty" db:"order_accepted_at"`
	ShippedAt            *time.Time      `json:"shippedAt,omitempty" db:"shipped_at"`
	OutForDeliveryAt     *time.Time      `json:"outForDeliveryAt,omitempty" db:"out_for_delivery_at"`
	DeliveredAt          *time.Time      `json:"deliveredAt,omitempty" db:"delivered_at"`
	CancelledAt          *time.Time      `json:"cancelledAt,omitempty" db:"cancelled_at"`
	CreatedAt            time.Time       `json:"createdAt" db:"created_at"`
	UpdatedAt            time.Time       `json:"updatedAt" db:"updated_at"`
}

// OrderRequest represents the checkout payload.
type OrderRequest struct {
	Items           OrderItems `json:"items"`
	PromoCode       *string    `json:"promoCode,omitempty"`
	DeliveryAddress string     `json:"deliveryAddress"`
}

// CancelRequest carries the customer-supplied cancellation reason.
type CancelRequest struct {
	Reason string `json:"reason"`
}

// DeliverRequest carries the OTP supplied at the doorstep.
type DeliverRequest struct {
	Otp string `json:"otp"`
}

// FeedbackRequest carries post-delivery feedback.
type FeedbackRequest struct {
	Text   string `json:"text"`
	Rating int    `json:"rating"`
}

// StatusUpdateRequest is the operator payload for driving an order forward.
type StatusUpdateRequest struct {
	Status OrderStatus `json:"status"`
}
