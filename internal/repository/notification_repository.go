package repository

import (
	"context"
	"fmt"

	"tailor-kart/internal/model"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// notificationRepository implements NotificationRepository using PostgreSQL.
type notificationRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewNotificationRepository creates a new PostgreSQL-backed notification repository.
func NewNotificationRepository(pool *pgxpool.Pool, logger zerolog.Logger) NotificationRepository {
	return &notificationRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "notification").Logger(),
	}
}

// Create inserts a notification record.
func (r *notificationRepository) Create(ctx context.Context, n *model.Notification) error {
	query := `
		INSERT INTO notifications (id, user_id, title, message, order_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.pool.Exec(ctx, query, n.ID, n.UserID, n.Title, n.Message, n.OrderID, n.CreatedAt)
	if err != nil {
		r.logger.Error().Err(err).
			Str("user_id", n.UserID).
			Msg("failed to create notification")
		return fmt.Errorf("failed to create notification: %w", err)
	}

	return nil
}

// ListByUser retrieves a user's notifications, newest first.
func (r *notificationRepository) ListByUser(ctx context.Context, userID string, limit, offset int) ([]model.Notification, error) {
	query := `
		SELECT id, user_id, title, message, order_id, created_at
		FROM notifications
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.pool.Query(ctx, query, userID, limit, offset)
	if err != nil {
		r.logger.Error().Err(err).Str("user_id", userID).Msg("failed to query notifications")
		return nil, fmt.Errorf("failed to query notifications: %w", err)
	}
	defer rows.Close()

	var notifications []model.Notification
	for rows.Next() {
		var n model.Notification
		if err := rows.Scan(&n.ID, &n.UserID, &n.Title, &n.Message, &n.OrderID, &n.CreatedAt); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan notification row")
			return nil, fmt.Errorf("failed to scan notification: %w", err)
		}
		notifications = append(notifications, n)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating notification rows")
		return nil, fmt.Errorf("error iterating notifications: %w", err)
	}

	return notifications, nil
}
