package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/lunchroom/lunchbox/internal/service"
	"github.com/lunchroom/lunchbox/internal/store"
)

// WriteJSON writes a JSON response
func WriteJSON(w http.ResponseWriter, status int, data interface{}, logger *slog.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("failed to encode JSON response", "error", err)
	}
}

// WriteError writes an error response in JSON format
func WriteError(w http.ResponseWriter, status int, message string, logger *slog.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	response := map[string]string{"error": message}
	if err := json.NewEncoder(w).Encode(response); err != nil {
		logger.Error("failed to encode error response", "error", err)
	}
}

// WriteServiceError maps domain errors onto HTTP statuses: validation
// failures are the caller's problem (400), an exhausted retry budget is
// "try again later" (503), anything else is a 500.
func WriteServiceError(w http.ResponseWriter, err error, logger *slog.Logger) {
	switch {
	case errors.Is(err, service.ErrEmptyItemName),
		errors.Is(err, service.ErrZeroPrice),
		errors.Is(err, service.ErrInvalidQuantity),
		errors.Is(err, service.ErrEmptyCategory),
		errors.Is(err, service.ErrUnknownPerson):
		WriteError(w, http.StatusBadRequest, err.Error(), logger)
	case errors.Is(err, store.ErrBusy):
		WriteError(w, http.StatusServiceUnavailable, "System busy, please try again", logger)
	default:
		WriteError(w, http.StatusInternalServerError, "Internal server error", logger)
	}
}
