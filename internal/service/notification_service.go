package service

import (
	"context"

	"tailor-kart/internal/model"
	"tailor-kart/internal/repository"

	"github.com/rs/zerolog"
)

// notificationService implements NotificationService.
type notificationService struct {
	repo   repository.NotificationRepository
	logger zerolog.Logger
}

// NewNotificationService creates a new notification inbox service.
func NewNotificationService(repo repository.NotificationRepository, logger zerolog.Logger) NotificationService {
	return &notificationService{
		repo:   repo,
		logger: logger.With().Str("service", "notification").Logger(),
	}
}

// ListByUser retrieves the caller's notifications, newest first.
func (s *notificationService) ListByUser(ctx context.Context, userID string, limit, offset int) ([]model.Notification, error) {
	limit, offset = clampPage(limit, offset)
	return s.repo.ListByUser(ctx, userID, limit, offset)
}
