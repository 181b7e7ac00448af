package notify

import (
	"context"
	"fmt"
	"time"

	"tailor-kart/internal/model"
	"tailor-kart/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// storeNotifier persists notifications as inbox records. Live fan-out, if any,
// is layered on top by whatever serves the inbox.
type storeNotifier struct {
	repo   repository.NotificationRepository
	logger zerolog.Logger
}

// NewStoreNotifier creates a Notifier backed by the notification repository.
func NewStoreNotifier(repo repository.NotificationRepository, logger zerolog.Logger) Notifier {
	return &storeNotifier{
		repo:   repo,
		logger: logger.With().Str("component", "store-notifier").Logger(),
	}
}

// Emit persists the notification for later retrieval.
func (n *storeNotifier) Emit(ctx context.Context, userID, title, message string, orderID uuid.UUID, at time.Time) error {
	record := &model.Notification{
		ID:        uuid.New(),
		UserID:    userID,
		Title:     title,
		Message:   message,
		OrderID:   &orderID,
		CreatedAt: at,
	}

	if err := n.repo.Create(ctx, record); err != nil {
		return fmt.Errorf("failed to persist notification: %w", err)
	}

	n.logger.Debug().
		Str("user_id", userID).
		Str("order_id", orderID.String()).
		Str("title", title).
		Msg("notification emitted")

	return nil
}
