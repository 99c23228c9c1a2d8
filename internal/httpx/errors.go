package httpx

import (
	"errors"
	"log/slog"
	"net/http"

	"libraryapi/internal/apperr"
)

// WriteError maps a service error onto the envelope. Errors outside the
// apperr taxonomy are logged and reported as a generic 500.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, apperr.ErrNotFound):
		JSONError(w, r, http.StatusNotFound, "NOT_FOUND", err.Error(), nil)
	case errors.Is(err, apperr.ErrInvalidState):
		JSONError(w, r, http.StatusUnprocessableEntity, "INVALID_STATE", err.Error(), nil)
	case errors.Is(err, apperr.ErrConflict):
		JSONError(w, r, http.StatusConflict, "CONFLICT", err.Error(), nil)
	default:
		slog.ErrorContext(r.Context(), "request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"request_id", RequestIDFrom(r),
			"error", err,
		)
		JSONError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
	}
}

// BadRequest reports an undecodable request body.
func BadRequest(w http.ResponseWriter, r *http.Request) {
	JSONError(w, r, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body", nil)
}

// ValidationFailed reports field-level validation errors.
func ValidationFailed(w http.ResponseWriter, r *http.Request, details []ErrorDetail) {
	JSONError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", details)
}
