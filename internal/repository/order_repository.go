package repository

import (
	"context"
	"fmt"

	"tailor-kart/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// orderRepository implements the OrderRepository interface using PostgreSQL.
type orderRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewOrderRepository creates a new PostgreSQL-backed order repository.
func NewOrderRepository(pool *pgxpool.Pool, logger zerolog.Logger) OrderRepository {
	return &orderRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "order").Logger(),
	}
}

const orderColumns = `id, user_id, gender, dress_type, material, color, quantity_metres, measurements, extras,
	inventory_item_id, promo_code, total_amount, status, delivery_address, expected_delivery_date,
	cancel_reason, feedback_text, feedback_rating, delivery_otp, otp_verified,
	pending_at, order_accepted_at, shipped_at, out_for_delivery_at, delivered_at, cancelled_at,
	created_at, updated_at`

func scanOrder(row pgx.Row, order *model.Order) error {
	return row.Scan(
		&order.ID,
		&order.UserID,
		&order.Items.Gender,
		&order.Items.DressType,
		&order.Items.Material,
		&order.Items.Color,
		&order.Items.QuantityMetres,
		&order.Items.Measurements,
		&order.Items.Extras,
		&order.InventoryItemID,
		&order.PromoCode,
		&order.TotalAmount,
		&order.Status,
		&order.DeliveryAddress,
		&order.ExpectedDeliveryDate,
		&order.CancelReason,
		&order.FeedbackText,
		&order.FeedbackRating,
		&order.DeliveryOtp,
		&order.OtpVerified,
		&order.PendingAt,
		&order.OrderAcceptedAt,
		&order.ShippedAt,
		&order.OutForDeliveryAt,
		&order.DeliveredAt,
		&order.CancelledAt,
		&order.CreatedAt,
		&order.UpdatedAt,
	)
}

// BeginTx starts a new database transaction.
func (r *orderRepository) BeginTx(ctx context.Context) (pgx.Tx, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to begin transaction")
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return tx, nil
}

// Create inserts a new order within the provided transaction.
func (r *orderRepository) Create(ctx context.Context, tx pgx.Tx, order *model.Order) error {
	query := `
		INSERT INTO orders
			(id, user_id, gender, dress_type, material, color, quantity_metres, measurements, extras,
			 inventory_item_id, promo_code, total_amount, status, delivery_address, expected_delivery_date,
			 delivery_otp, otp_verified, pending_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)
	`

	_, err := tx.Exec(ctx, query,
		order.ID,
		order.UserID,
		order.Items.Gender,
		order.Items.DressType,
		order.Items.Material,
		order.Items.Color,
		order.Items.QuantityMetres,
		order.Items.Measurements,
		order.Items.Extras,
		order.InventoryItemID,
		order.PromoCode,
		order.TotalAmount,
		order.Status,
		order.DeliveryAddress,
		order.ExpectedDeliveryDate,
		order.DeliveryOtp,
		order.OtpVerified,
		order.PendingAt,
		order.CreatedAt,
		order.UpdatedAt,
	)
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("order_id", order.ID.String()).
			Msg("failed to create order")
		return fmt.Errorf("failed to create order: %w", err)
	}

	r.logger.Debug().
		Str("order_id", order.ID.String()).
		Msg("order created successfully")

	return nil
}

// GetByID retrieves an order by its ID.
func (r *orderRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`

	var order model.Order
	err := scanOrder(r.pool.QueryRow(ctx, query, id), &order)
	if err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().Str("order_id", id.String()).Msg("order not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("order_id", id.String()).Msg("failed to query order")
		return nil, fmt.Errorf("failed to query order: %w", err)
	}

	return &order, nil
}

// GetByIDForUpdate retrieves an order and row-locks it for the duration of the
// transaction, serializing concurrent transitions on the same order.
func (r *orderRepository) GetByIDForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1 FOR UPDATE`

	var order model.Order
	err := scanOrder(tx.QueryRow(ctx, query, id), &order)
	if err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().Str("order_id", id.String()).Msg("order not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("order_id", id.String()).Msg("failed to lock order")
		return nil, fmt.Errorf("failed to lock order: %w", err)
	}

	return &order, nil
}

// Update persists mutated order fields within the provided transaction.
// Checkout-time fields (user, items, amounts) are immutable after creation and
// are not written here.
func (r *orderRepository) Update(ctx context.Context, tx pgx.Tx, order *model.Order) error {
	query := `
		UPDATE orders
		SET status = $2,
		    cancel_reason = $3,
		    feedback_text = $4,
		    feedback_rating = $5,
		    delivery_otp = $6,
		    otp_verified = $7,
		    order_accepted_at = $8,
		    shipped_at = $9,
		    out_for_delivery_at = $10,
		    delivered_at = $11,
		    cancelled_at = $12,
		    updated_at = $13
		WHERE id = $1
	`

	tag, err := tx.Exec(ctx, query,
		order.ID,
		order.Status,
		order.CancelReason,
		order.FeedbackText,
		order.FeedbackRating,
		order.DeliveryOtp,
		order.OtpVerified,
		order.OrderAcceptedAt,
		order.ShippedAt,
		order.OutForDeliveryAt,
		order.DeliveredAt,
		order.CancelledAt,
		order.UpdatedAt,
	)
	if err != nil {
		r.logger.Error().Err(err).Str("order_id", order.ID.String()).Msg("failed to update order")
		return fmt.Errorf("failed to update order: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return model.ErrOrderNotFound
	}

	return nil
}

// ListByUser retrieves a user's orders, newest first.
func (r *orderRepository) ListByUser(ctx context.Context, userID string, limit, offset int) ([]model.Order, error) {
	query := `
		SELECT ` + orderColumns + `
		FROM orders
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	return r.queryOrders(ctx, query, userID, limit, offset)
}

// List retrieves all orders, newest first (admin view).
func (r *orderRepository) List(ctx context.Context, limit, offset int) ([]model.Order, error) {
	query := `
		SELECT ` + orderColumns + `
		FROM orders
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`

	return r.queryOrders(ctx, query, limit, offset)
}

func (r *orderRepository) queryOrders(ctx context.Context, query string, args ...any) ([]model.Order, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query orders")
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	var orders []model.Order
	for rows.Next() {
		var order model.Order
		if err := scanOrder(rows, &order); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan order row")
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, order)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating order rows")
		return nil, fmt.Errorf("error iterating orders: %w", err)
	}

	return orders, nil
}
