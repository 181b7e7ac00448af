package handler

import (
	"net/http"
	"time"

	"tailor-kart/internal/model"
	"tailor-kart/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// PromoHandler handles promo code HTTP requests.
type PromoHandler struct {
	service service.PromoService
	logger  zerolog.Logger
}

// NewPromoHandler creates a new promo code handler.
func NewPromoHandler(service service.PromoService, logger zerolog.Logger) *PromoHandler {
	return &PromoHandler{
		service: service,
		logger:  logger.With().Str("handler", "promo").Logger(),
	}
}

// Preview handles GET /api/promos/{code}/preview requests.
func (h *PromoHandler) Preview(w http.ResponseWriter, r *http.Request) {
	preview, err := h.service.Preview(r.Context(), chi.URLParam(r, "code"), time.Now())
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, preview)
}

// Release handles DELETE /api/orders/promo/{code} requests. The customer
// removed an applied code from an in-progress order; its usage slot goes back.
func (h *PromoHandler) Release(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Release(r.Context(), chi.URLParam(r, "code")); err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// List handles GET /api/admin/promos requests.
func (h *PromoHandler) List(w http.ResponseWriter, r *http.Request) {
	promos, err := h.service.GetAll(r.Context())
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}
	if promos == nil {
		promos = []model.PromoCode{}
	}

	writeJSON(w, http.StatusOK, promos)
}

// Create handles POST /api/admin/promos requests.
func (h *PromoHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.PromoCodeRequest
	if err := decodeJSON(r, &req); err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	promo, err := h.service.Create(r.Context(), &req)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, promo)
}

// Update handles PUT /api/admin/promos/{id} requests.
func (h *PromoHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid promo ID format", h.logger)
		return
	}

	var req model.PromoCodeRequest
	if err := decodeJSON(r, &req); err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	promo, err := h.service.Update(r.Context(), id, &req)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, promo)
}

// Delete handles DELETE /api/admin/promos/{id} requests.
func (h *PromoHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid promo ID format", h.logger)
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
