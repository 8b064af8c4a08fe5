package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"
)

// DatabaseSizer reports the on-disk size of the backing database file.
type DatabaseSizer interface {
	FileSize() int64
}

// HealthHandler provides health check endpoint
type HealthHandler struct {
	logger  *slog.Logger
	sizer   DatabaseSizer
	started time.Time
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(logger *slog.Logger, sizer DatabaseSizer) *HealthHandler {
	return &HealthHandler{
		logger:  logger,
		sizer:   sizer,
		started: time.Now().UTC(),
	}
}

// HealthResponse represents the health check response. DatabaseKiB mirrors
// the original coordinator's db-size readout used to spot a file that the
// daily reset failed to shrink.
type HealthResponse struct {
	Status      string    `json:"status"`
	Timestamp   time.Time `json:"timestamp"`
	UptimeSec   int64     `json:"uptimeSec"`
	DatabaseKiB float64   `json:"databaseKiB"`
}

// ServeHTTP handles health check requests
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	now := time.Now().UTC()
	response := HealthResponse{
		Status:      "healthy",
		Timestamp:   now,
		UptimeSec:   int64(now.Sub(h.started).Seconds()),
		DatabaseKiB: float64(h.sizer.FileSize()) / 1024,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	if err := json.NewEncoder(w).Encode(response); err != nil {
		h.logger.Error("failed to encode health response", "error", err)
	}
}
