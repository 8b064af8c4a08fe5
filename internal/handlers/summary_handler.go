package handlers

import (
	"log/slog"
	"net/http"

	"github.com/lunchroom/lunchbox/internal/models"
	"github.com/lunchroom/lunchbox/internal/service"
)

// SummaryHandler serves the aggregated read-side views the stats board
// polls every few seconds.
type SummaryHandler struct {
	orderService *service.OrderService
	log          *slog.Logger
}

// NewSummaryHandler creates a new summary handler
func NewSummaryHandler(orderService *service.OrderService, log *slog.Logger) *SummaryHandler {
	return &SummaryHandler{
		orderService: orderService,
		log:          log,
	}
}

// ByItem handles GET /api/summary/item?category=
func (h *SummaryHandler) ByItem(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")
	if category == "" {
		WriteError(w, http.StatusBadRequest, "category query parameter is required", h.log)
		return
	}

	groups, err := h.orderService.SummarizeByItem(r.Context(), models.Category(category))
	if err != nil {
		h.log.Error("failed to summarize by item", "error", err, "category", category)
		WriteServiceError(w, err, h.log)
		return
	}

	WriteJSON(w, http.StatusOK, groups, h.log)
}

// ByPerson handles GET /api/summary/person
func (h *SummaryHandler) ByPerson(w http.ResponseWriter, r *http.Request) {
	groups, err := h.orderService.SummarizeByPerson(r.Context())
	if err != nil {
		h.log.Error("failed to summarize by person", "error", err)
		WriteServiceError(w, err, h.log)
		return
	}

	WriteJSON(w, http.StatusOK, groups, h.log)
}

// ShoppingList handles GET /api/summary/shopping-list?category= and returns
// plain text ready to paste into a chat with the vendor.
func (h *SummaryHandler) ShoppingList(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")
	if category == "" {
		WriteError(w, http.StatusBadRequest, "category query parameter is required", h.log)
		return
	}

	list, err := h.orderService.ShoppingList(r.Context(), models.Category(category))
	if err != nil {
		h.log.Error("failed to build shopping list", "error", err, "category", category)
		WriteServiceError(w, err, h.log)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(list)); err != nil {
		h.log.Error("failed to write shopping list", "error", err)
	}
}
