package repository

import (
	"context"
	"time"

	"tailor-kart/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// InventoryRepository defines the interface for fabric stock data access.
type InventoryRepository interface {
	// GetAll retrieves all fabrics with pagination support.
	GetAll(ctx context.Context, limit, offset int) ([]model.InventoryItem, error)

	// GetByID retrieves a single fabric by its ID.
	GetByID(ctx context.Context, id uuid.UUID) (*model.InventoryItem, error)

	// FindByMaterialColor retrieves a fabric by material name and colour.
	// Matching is case-insensitive on trimmed values.
	FindByMaterialColor(ctx context.Context, material, color string) (*model.InventoryItem, error)

	// Create inserts a new fabric record.
	Create(ctx context.Context, item *model.InventoryItem) error

	// Update overwrites a fabric record's attributes.
	Update(ctx context.Context, item *model.InventoryItem) error

	// Delete removes a fabric record.
	Delete(ctx context.Context, id uuid.UUID) error

	// SetQuantity overwrites the stock level (admin correction).
	SetQuantity(ctx context.Context, id uuid.UUID, quantity decimal.Decimal) error

	// Deduct atomically decrements stock within the provided transaction.
	// Returns model.ErrInsufficientStock if the decrement would drive the
	// quantity negative, model.ErrFabricNotFound if the fabric does not exist.
	Deduct(ctx context.Context, tx pgx.Tx, id uuid.UUID, quantity decimal.Decimal) (*model.InventoryItem, error)

	// Restore adds quantity back within the provided transaction
	// (compensation for a cancelled order).
	Restore(ctx context.Context, tx pgx.Tx, id uuid.UUID, quantity decimal.Decimal) error
}

// PromoRepository defines the interface for promo code data access.
type PromoRepository interface {
	// GetAll retrieves all promo codes.
	GetAll(ctx context.Context) ([]model.PromoCode, error)

	// GetByCode retrieves a promo code by its code string.
	GetByCode(ctx context.Context, code string) (*model.PromoCode, error)

	// Create inserts a new promo code.
	Create(ctx context.Context, promo *model.PromoCode) error

	// Update overwrites a promo code's attributes.
	Update(ctx context.Context, promo *model.PromoCode) error

	// Delete removes a promo code.
	Delete(ctx context.Context, id uuid.UUID) error

	// ConsumeUsage atomically claims one usage slot within the provided
	// transaction. Returns the updated promo code, or a domain error naming
	// the reason the code cannot be applied now.
	ConsumeUsage(ctx context.Context, tx pgx.Tx, code string, now time.Time) (*model.PromoCode, error)

	// ReleaseUsage decrements the used count, floored at zero.
	ReleaseUsage(ctx context.Context, code string) error
}

// OrderRepository defines the interface for order data access.
type OrderRepository interface {
	// BeginTx starts a new database transaction.
	BeginTx(ctx context.Context) (pgx.Tx, error)

	// Create inserts a new order within the provided transaction.
	Create(ctx context.Context, tx pgx.Tx, order *model.Order) error

	// GetByID retrieves an order by its ID.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error)

	// GetByIDForUpdate retrieves an order and row-locks it for the duration
	// of the transaction, serializing concurrent transitions per order.
	GetByIDForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*model.Order, error)

	// Update persists mutated order fields within the provided transaction.
	Update(ctx context.Context, tx pgx.Tx, order *model.Order) error

	// ListByUser retrieves a user's orders, newest first.
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]model.Order, error)

	// List retrieves all orders, newest first (admin view).
	List(ctx context.Context, limit, offset int) ([]model.Order, error)
}

// MeasurementRepository defines the interface for measurement profile access.
type MeasurementRepository interface {
	// Upsert creates or replaces the profile for (user, gender, dressType).
	Upsert(ctx context.Context, m *model.Measurement) error

	// Get retrieves the profile for (user, gender, dressType).
	Get(ctx context.Context, userID, gender, dressType string) (*model.Measurement, error)

	// ListByUser retrieves all of a user's saved profiles.
	ListByUser(ctx context.Context, userID string) ([]model.Measurement, error)
}

// NotificationRepository defines the interface for the persisted inbox.
type NotificationRepository interface {
	// Create inserts a notification record.
	Create(ctx context.Context, n *model.Notification) error

	// ListByUser retrieves a user's notifications, newest first.
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]model.Notification, error)
}
