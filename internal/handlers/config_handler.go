package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/lunchroom/lunchbox/internal/service"
)

// ConfigHandler serves and edits the configuration registry: the
// participant list the name picker shows, and the option vocabularies the
// customization pills are built from. Reads are open; the replacement
// endpoints sit behind the admin middleware.
type ConfigHandler struct {
	orderService *service.OrderService
	log          *slog.Logger
}

// NewConfigHandler creates a new config handler
func NewConfigHandler(orderService *service.OrderService, log *slog.Logger) *ConfigHandler {
	return &ConfigHandler{
		orderService: orderService,
		log:          log,
	}
}

// Participants handles GET /api/config/participants
func (h *ConfigHandler) Participants(w http.ResponseWriter, r *http.Request) {
	names, err := h.orderService.Participants(r.Context())
	if err != nil {
		h.log.Error("failed to list participants", "error", err)
		WriteServiceError(w, err, h.log)
		return
	}

	WriteJSON(w, http.StatusOK, names, h.log)
}

// Options handles GET /api/config/options/{category}
func (h *ConfigHandler) Options(w http.ResponseWriter, r *http.Request) {
	category := chi.URLParam(r, "category")

	values, err := h.orderService.Options(r.Context(), category)
	if err != nil {
		h.log.Error("failed to list options", "error", err, "category", category)
		WriteServiceError(w, err, h.log)
		return
	}

	WriteJSON(w, http.StatusOK, values, h.log)
}

// ReplaceParticipants handles PUT /api/admin/participants. The body is the
// complete new list; its order becomes the display order.
func (h *ConfigHandler) ReplaceParticipants(w http.ResponseWriter, r *http.Request) {
	var names []string
	if err := json.NewDecoder(r.Body).Decode(&names); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.log)
		return
	}

	if err := h.orderService.ReplaceParticipants(r.Context(), names); err != nil {
		h.log.Error("failed to replace participants", "error", err)
		WriteServiceError(w, err, h.log)
		return
	}

	h.log.Info("participant list replaced", "count", len(names))
	w.WriteHeader(http.StatusNoContent)
}

// ReplaceOptions handles PUT /api/admin/options/{category}.
func (h *ConfigHandler) ReplaceOptions(w http.ResponseWriter, r *http.Request) {
	category := chi.URLParam(r, "category")

	var values []string
	if err := json.NewDecoder(r.Body).Decode(&values); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.log)
		return
	}

	if err := h.orderService.ReplaceOptions(r.Context(), category, values); err != nil {
		h.log.Error("failed to replace options", "error", err, "category", category)
		WriteServiceError(w, err, h.log)
		return
	}

	h.log.Info("option list replaced", "category", category, "count", len(values))
	w.WriteHeader(http.StatusNoContent)
}
