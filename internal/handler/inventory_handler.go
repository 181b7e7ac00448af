package handler

import (
	"net/http"

	"tailor-kart/internal/model"
	"tailor-kart/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// InventoryHandler handles fabric catalogue HTTP requests.
type InventoryHandler struct {
	service service.InventoryService
	logger  zerolog.Logger
}

// NewInventoryHandler creates a new inventory handler.
func NewInventoryHandler(service service.InventoryService, logger zerolog.Logger) *InventoryHandler {
	return &InventoryHandler{
		service: service,
		logger:  logger.With().Str("handler", "inventory").Logger(),
	}
}

// List handles GET /api/fabrics requests.
func (h *InventoryHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := pageParams(r)

	items, err := h.service.GetAll(r.Context(), limit, offset)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}
	if items == nil {
		items = []model.InventoryItem{}
	}

	writeJSON(w, http.StatusOK, items)
}

// GetByID handles GET /api/fabrics/{id} requests.
func (h *InventoryHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid fabric ID format", h.logger)
		return
	}

	item, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}
	if item == nil {
		writeServiceError(w, model.ErrFabricNotFound, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, item)
}

// CheckAvailability handles POST /api/fabrics/availability requests.
func (h *InventoryHandler) CheckAvailability(w http.ResponseWriter, r *http.Request) {
	var req model.AvailabilityRequest
	if err := decodeJSON(r, &req); err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	resp, err := h.service.CheckAvailability(r.Context(), &req)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// Create handles POST /api/admin/fabrics requests.
func (h *InventoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.InventoryItemRequest
	if err := decodeJSON(r, &req); err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	item, err := h.service.Create(r.Context(), &req)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, item)
}

// Update handles PUT /api/admin/fabrics/{id} requests.
func (h *InventoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid fabric ID format", h.logger)
		return
	}

	var req model.InventoryItemRequest
	if err := decodeJSON(r, &req); err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	item, err := h.service.Update(r.Context(), id, &req)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, item)
}

// Delete handles DELETE /api/admin/fabrics/{id} requests.
func (h *InventoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid fabric ID format", h.logger)
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// quantityRequest is the payload for stock level corrections.
type quantityRequest struct {
	TotalQuantity decimal.Decimal `json:"totalQuantity"`
}

// SetQuantity handles PUT /api/admin/fabrics/{id}/quantity requests.
func (h *InventoryHandler) SetQuantity(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid fabric ID format", h.logger)
		return
	}

	var req quantityRequest
	if err := decodeJSON(r, &req); err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	if err := h.service.SetQuantity(r.Context(), id, req.TotalQuantity); err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
