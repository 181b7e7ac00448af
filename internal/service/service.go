package service

import (
	"context"
	"time"

	"tailor-kart/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InventoryService defines operations for fabric stock management.
type InventoryService interface {
	// GetAll retrieves the fabric catalogue with pagination.
	GetAll(ctx context.Context, limit, offset int) ([]model.InventoryItem, error)

	// GetByID retrieves a single fabric by ID.
	GetByID(ctx context.Context, id uuid.UUID) (*model.InventoryItem, error)

	// CheckAvailability reports whether enough fabric is in stock. Read-only.
	CheckAvailability(ctx context.Context, req *model.AvailabilityRequest) (*model.AvailabilityResponse, error)

	// Create adds a new fabric (admin).
	Create(ctx context.Context, req *model.InventoryItemRequest) (*model.InventoryItem, error)

	// Update overwrites a fabric's attributes (admin).
	Update(ctx context.Context, id uuid.UUID, req *model.InventoryItemRequest) (*model.InventoryItem, error)

	// Delete removes a fabric (admin).
	Delete(ctx context.Context, id uuid.UUID) error

	// SetQuantity overwrites the stock level (admin correction).
	SetQuantity(ctx context.Context, id uuid.UUID, quantity decimal.Decimal) error
}

// PromoService defines operations for promo code management and validation.
type PromoService interface {
	// Preview reports whether a code could be applied now. Never consumes a
	// usage slot.
	Preview(ctx context.Context, code string, now time.Time) (*model.PromoPreview, error)

	// Release returns a previously applied code's usage slot (customer removed
	// the code from an in-progress order).
	Release(ctx context.Context, code string) error

	// GetAll retrieves all promo codes (admin).
	GetAll(ctx context.Context) ([]model.PromoCode, error)

	// Create adds a new promo code (admin).
	Create(ctx context.Context, req *model.PromoCodeRequest) (*model.PromoCode, error)

	// Update overwrites a promo code (admin).
	Update(ctx context.Context, id uuid.UUID, req *model.PromoCodeRequest) (*model.PromoCode, error)

	// Delete removes a promo code (admin).
	Delete(ctx context.Context, id uuid.UUID) error
}

// OrderService drives the order lifecycle.
type OrderService interface {
	// Create validates the checkout payload, then deducts stock, applies the
	// promo and creates the order in a single transaction.
	Create(ctx context.Context, userID string, req *model.OrderRequest) (*model.Order, error)

	// GetByID retrieves an order. Non-admin callers only see their own orders.
	GetByID(ctx context.Context, id uuid.UUID, userID string, isAdmin bool) (*model.Order, error)

	// ListByUser retrieves the caller's orders.
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]model.Order, error)

	// List retrieves all orders (admin).
	List(ctx context.Context, limit, offset int) ([]model.Order, error)

	// Advance moves an order forward along the fulfilment path (operator
	// action). Target must be Order Accepted, Shipped or Out for Delivery;
	// Delivered and Cancelled have their own entry points.
	Advance(ctx context.Context, id uuid.UUID, target model.OrderStatus) (*model.Order, error)

	// Deliver confirms delivery, gated by the stored OTP.
	Deliver(ctx context.Context, id uuid.UUID, suppliedOtp string) (*model.Order, error)

	// Cancel cancels a Pending order with a reason and restores the deducted
	// stock.
	Cancel(ctx context.Context, id uuid.UUID, userID string, isAdmin bool, reason string) (*model.Order, error)

	// Feedback records text and a 1-5 rating on a Delivered order.
	Feedback(ctx context.Context, id uuid.UUID, userID string, req *model.FeedbackRequest) (*model.Order, error)
}

// MeasurementService manages saved measurement profiles.
type MeasurementService interface {
	// Save creates or replaces the caller's profile for (gender, dressType).
	Save(ctx context.Context, userID string, req *model.MeasurementRequest) (*model.Measurement, error)

	// Get retrieves the caller's profile for (gender, dressType).
	Get(ctx context.Context, userID, gender, dressType string) (*model.Measurement, error)

	// ListByUser retrieves all of the caller's profiles.
	ListByUser(ctx context.Context, userID string) ([]model.Measurement, error)
}

// NotificationService serves the persisted inbox.
type NotificationService interface {
	// ListByUser retrieves the caller's notifications, newest first.
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]model.Notification, error)
}
