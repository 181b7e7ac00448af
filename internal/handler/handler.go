package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"tailor-kart/internal/model"

	"github.com/rs/zerolog"
)

// domainStatus maps business-rule error codes to HTTP status codes.
var domainStatus = map[string]int{
	model.ErrCodeInvalidJSON:        http.StatusBadRequest,
	model.ErrCodeMissingField:       http.StatusBadRequest,
	model.ErrCodeInvalidQuantity:    http.StatusBadRequest,
	model.ErrCodeInvalidRating:      http.StatusBadRequest,
	model.ErrCodeCancelReasonNeeded: http.StatusBadRequest,
	model.ErrCodeOtpRequired:        http.StatusBadRequest,
	model.ErrCodeFabricNotFound:     http.StatusNotFound,
	model.ErrCodePromoNotFound:      http.StatusNotFound,
	model.ErrCodeOrderNotFound:      http.StatusNotFound,
	model.ErrCodeInsufficientStock:  http.StatusConflict,
	model.ErrCodePromoInactive:      http.StatusConflict,
	model.ErrCodePromoNotYetActive:  http.StatusConflict,
	model.ErrCodePromoExpired:       http.StatusConflict,
	model.ErrCodePromoExhausted:     http.StatusConflict,
	model.ErrCodeIllegalTransition:  http.StatusConflict,
	model.ErrCodeOrderNotPending:    http.StatusConflict,
	model.ErrCodeOrderNotDelivered:  http.StatusConflict,
	model.ErrCodeOtpNotGenerated:    http.StatusConflict,
	model.ErrCodeOtpMismatch:        http.StatusConflict,
	model.ErrCodeUnauthorised:       http.StatusUnauthorized,
	model.ErrCodeForbidden:          http.StatusForbidden,
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Log the error but don't expose it to the client
		return
	}
}

// writeError writes an error response with the given status code and message.
func writeError(w http.ResponseWriter, status int, code, message string, logger zerolog.Logger) {
	logger.Error().Str("code", code).Str("error", message).Int("status", status).Msg("handler error")
	writeJSON(w, status, model.ErrorResponse{Error: code, Message: message})
}

// writeServiceError translates a service error into an HTTP response. Domain
// errors carry their own code and status; everything else is an opaque 500.
func writeServiceError(w http.ResponseWriter, err error, logger zerolog.Logger) {
	var domainErr *model.DomainError
	if errors.As(err, &domainErr) {
		status, ok := domainStatus[domainErr.Code]
		if !ok {
			status = http.StatusInternalServerError
		}
		writeError(w, status, domainErr.Code, domainErr.Message, logger)
		return
	}

	logger.Error().Err(err).Msg("unhandled service error")
	writeError(w, http.StatusInternalServerError, model.ErrCodeInternalError, "an internal error occurred", logger)
}

// decodeJSON decodes the request body into dst.
func decodeJSON(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return model.NewDomainError(model.ErrCodeInvalidJSON, "invalid request body")
	}
	return nil
}

// pageParams reads limit/offset query parameters, defaulting to 0 (the
// services clamp them).
func pageParams(r *http.Request) (limit, offset int) {
	limit, _ = strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ = strconv.Atoi(r.URL.Query().Get("offset"))
	return limit, offset
}
