package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"mini-store/internal/middleware"
	"mini-store/internal/model"

	"github.com/rs/zerolog"
)

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Log the error but don't expose it to the client
		return
	}
}

// statusForCode maps a domain error code to an HTTP status.
func statusForCode(code string) int {
	switch code {
	case model.ErrCodeValidation, model.ErrCodeInvalidJSON,
		model.ErrCodeInsufficientStock, model.ErrCodeInsufficientPayment:
		return http.StatusBadRequest
	case model.ErrCodeNotFound:
		return http.StatusNotFound
	case model.ErrCodeUnauthorised:
		return http.StatusUnauthorized
	case model.ErrCodeConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// writeDomainError writes a structured error response. Domain errors keep
// their code and message; anything else is logged with the correlation ID
// and surfaced as a generic internal error, never echoing internal detail.
func writeDomainError(w http.ResponseWriter, r *http.Request, err error, logger zerolog.Logger) {
	correlationID := middleware.RequestIDFromContext(r.Context())

	var domainErr *model.DomainError
	if errors.As(err, &domainErr) {
		logger.Warn().
			Str("error_code", domainErr.Code).
			Str("request_id", correlationID).
			Msg(domainErr.Message)
		writeJSON(w, statusForCode(domainErr.Code), model.ErrorResponse{
			Error:         domainErr.Code,
			Message:       domainErr.Message,
			CorrelationID: correlationID,
		})
		return
	}

	logger.Error().
		Err(err).
		Str("request_id", correlationID).
		Msg("internal error")
	writeJSON(w, http.StatusInternalServerError, model.ErrorResponse{
		Error:         model.ErrCodeInternalError,
		Message:       "an internal error occurred",
		CorrelationID: correlationID,
	})
}

// writeError writes a structured error response with an explicit status,
// code and message.
func writeError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	writeJSON(w, status, model.ErrorResponse{
		Error:         code,
		Message:       message,
		CorrelationID: middleware.RequestIDFromContext(r.Context()),
	})
}
