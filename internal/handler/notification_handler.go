package handler

import (
	"net/http"

	"tailor-kart/internal/middleware"
	"tailor-kart/internal/model"
	"tailor-kart/internal/service"

	"github.com/rs/zerolog"
)

// NotificationHandler serves the persisted notification inbox.
type NotificationHandler struct {
	service service.NotificationService
	logger  zerolog.Logger
}

// NewNotificationHandler creates a new notification handler.
func NewNotificationHandler(service service.NotificationService, logger zerolog.Logger) *NotificationHandler {
	return &NotificationHandler{
		service: service,
		logger:  logger.With().Str("handler", "notification").Logger(),
	}
}

// List handles GET /api/notifications requests.
func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := pageParams(r)

	notifications, err := h.service.ListByUser(r.Context(), middleware.UserID(r.Context()), limit, offset)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}
	if notifications == nil {
		notifications = []model.Notification{}
	}

	writeJSON(w, http.StatusOK, notifications)
}
