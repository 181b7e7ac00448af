package handler

import (
	"net/http"

	"tailor-kart/internal/middleware"
	"tailor-kart/internal/model"
	"tailor-kart/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// OrderHandler handles order-related HTTP requests.
type OrderHandler struct {
	service service.OrderService
	logger  zerolog.Logger
}

// NewOrderHandler creates a new order handler.
func NewOrderHandler(service service.OrderService, logger zerolog.Logger) *OrderHandler {
	return &OrderHandler{
		service: service,
		logger:  logger.With().Str("handler", "order").Logger(),
	}
}

// Create handles POST /api/orders requests.
func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.OrderRequest
	if err := decodeJSON(r, &req); err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	order, err := h.service.Create(r.Context(), middleware.UserID(r.Context()), &req)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, order)
}

// GetByID handles GET /api/orders/{id} requests.
func (h *OrderHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	orderID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid order ID format", h.logger)
		return
	}

	ctx := r.Context()
	order, err := h.service.GetByID(ctx, orderID, middleware.UserID(ctx), middleware.IsAdmin(ctx))
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}
	if order == nil {
		writeServiceError(w, model.ErrOrderNotFound, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, order)
}

// List handles GET /api/orders requests, scoped to the caller.
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := pageParams(r)

	orders, err := h.service.ListByUser(r.Context(), middleware.UserID(r.Context()), limit, offset)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}
	if orders == nil {
		orders = []model.Order{}
	}

	writeJSON(w, http.StatusOK, orders)
}

// ListAll handles GET /api/admin/orders requests.
func (h *OrderHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	limit, offset := pageParams(r)

	orders, err := h.service.List(r.Context(), limit, offset)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}
	if orders == nil {
		orders = []model.Order{}
	}

	writeJSON(w, http.StatusOK, orders)
}

// UpdateStatus handles POST /api/admin/orders/{id}/status requests.
func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	orderID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid order ID format", h.logger)
		return
	}

	var req model.StatusUpdateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeServiceError(w, err, h.logger)
		return
	}
	if !req.Status.IsValid() {
		writeError(w, http.StatusBadRequest, model.ErrCodeIllegalTransition, "unknown order status", h.logger)
		return
	}

	order, err := h.service.Advance(r.Context(), orderID, req.Status)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, order)
}

// Deliver handles POST /api/orders/{id}/deliver requests.
func (h *OrderHandler) Deliver(w http.ResponseWriter, r *http.Request) {
	orderID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid order ID format", h.logger)
		return
	}

	var req model.DeliverRequest
	if err := decodeJSON(r, &req); err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	order, err := h.service.Deliver(r.Context(), orderID, req.Otp)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, order)
}

// Cancel handles POST /api/orders/{id}/cancel requests.
func (h *OrderHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	orderID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid order ID format", h.logger)
		return
	}

	var req model.CancelRequest
	if err := decodeJSON(r, &req); err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	ctx := r.Context()
	order, err := h.service.Cancel(ctx, orderID, middleware.UserID(ctx), middleware.IsAdmin(ctx), req.Reason)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, order)
}

// Feedback handles POST /api/orders/{id}/feedback requests.
func (h *OrderHandler) Feedback(w http.ResponseWriter, r *http.Request) {
	orderID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid order ID format", h.logger)
		return
	}

	var req model.FeedbackRequest
	if err := decodeJSON(r, &req); err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	order, err := h.service.Feedback(r.Context(), orderID, middleware.UserID(r.Context()), &req)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, order)
}
