package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/lunchroom/lunchbox/internal/models"
	"github.com/lunchroom/lunchbox/internal/service"
)

// OrderHandler handles order-related HTTP requests
type OrderHandler struct {
	orderService *service.OrderService
	log          *slog.Logger
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(orderService *service.OrderService, log *slog.Logger) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
		log:          log,
	}
}

// Create handles POST /api/order
func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.NewOrderLine
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log.Error("failed to decode order request", "error", err)
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.log)
		return
	}

	id, err := h.orderService.AddOrder(r.Context(), req)
	if err != nil {
		h.log.Error("failed to add order", "error", err, "person", req.Person)
		WriteServiceError(w, err, h.log)
		return
	}

	WriteJSON(w, http.StatusCreated, map[string]int64{"id": id}, h.log)
	h.log.Info("order added", "id", id, "person", req.Person, "item", req.ItemName)
}

// Delete handles DELETE /api/order/{orderId}. A missing id still returns
// 204: the other session won the race, nothing to report.
func (h *OrderHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "orderId"), 10, 64)
	if err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid order id", h.log)
		return
	}

	if err := h.orderService.RemoveOrder(r.Context(), id); err != nil {
		h.log.Error("failed to remove order", "error", err, "id", id)
		WriteServiceError(w, err, h.log)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// List handles GET /api/order, optionally filtered to one person with
// ?person=.
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	var (
		lines []models.OrderLine
		err   error
	)
	if person := r.URL.Query().Get("person"); person != "" {
		lines, err = h.orderService.ListMine(r.Context(), person)
	} else {
		lines, err = h.orderService.ListAll(r.Context())
	}
	if err != nil {
		h.log.Error("failed to list orders", "error", err)
		WriteServiceError(w, err, h.log)
		return
	}

	WriteJSON(w, http.StatusOK, lines, h.log)
}

// Reset handles POST /api/reset, the end-of-day wipe. Open to every
// participant, matching the shared reset button on the original sidebar.
func (h *OrderHandler) Reset(w http.ResponseWriter, r *http.Request) {
	if err := h.orderService.ResetAll(r.Context()); err != nil {
		h.log.Error("failed to reset orders", "error", err)
		WriteServiceError(w, err, h.log)
		return
	}

	h.log.Info("order table reset")
	w.WriteHeader(http.StatusNoContent)
}
