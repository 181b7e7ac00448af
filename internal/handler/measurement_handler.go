package handler

import (
	"net/http"

	"tailor-kart/internal/middleware"
	"tailor-kart/internal/model"
	"tailor-kart/internal/service"

	"github.com/rs/zerolog"
)

// MeasurementHandler handles measurement profile HTTP requests.
type MeasurementHandler struct {
	service service.MeasurementService
	logger  zerolog.Logger
}

// NewMeasurementHandler creates a new measurement handler.
func NewMeasurementHandler(service service.MeasurementService, logger zerolog.Logger) *MeasurementHandler {
	return &MeasurementHandler{
		service: service,
		logger:  logger.With().Str("handler", "measurement").Logger(),
	}
}

// Save handles PUT /api/measurements requests. Saving overwrites any existing
// profile for the same (gender, dressType).
func (h *MeasurementHandler) Save(w http.ResponseWriter, r *http.Request) {
	var req model.MeasurementRequest
	if err := decodeJSON(r, &req); err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	profile, err := h.service.Save(r.Context(), middleware.UserID(r.Context()), &req)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, profile)
}

// Get handles GET /api/measurements requests. With gender and dressType query
// parameters it returns one profile; without, all of the caller's profiles.
func (h *MeasurementHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.UserID(ctx)
	gender := r.URL.Query().Get("gender")
	dressType := r.URL.Query().Get("dressType")

	if gender == "" && dressType == "" {
		profiles, err := h.service.ListByUser(ctx, userID)
		if err != nil {
			writeServiceError(w, err, h.logger)
			return
		}
		if profiles == nil {
			profiles = []model.Measurement{}
		}
		writeJSON(w, http.StatusOK, profiles)
		return
	}

	profile, err := h.service.Get(ctx, userID, gender, dressType)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}
	if profile == nil {
		writeError(w, http.StatusNotFound, model.ErrCodeMissingField, "no saved measurement profile", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, profile)
}
