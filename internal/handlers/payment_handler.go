package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/lunchroom/lunchbox/internal/models"
	"github.com/lunchroom/lunchbox/internal/service"
)

// PaymentHandler serves the collection screen: progress bar, outstanding
// lists, and the person-level collect/undo buttons.
type PaymentHandler struct {
	orderService *service.OrderService
	log          *slog.Logger
}

// NewPaymentHandler creates a new payment handler
func NewPaymentHandler(orderService *service.OrderService, log *slog.Logger) *PaymentHandler {
	return &PaymentHandler{
		orderService: orderService,
		log:          log,
	}
}

// Progress handles GET /api/payment/progress
func (h *PaymentHandler) Progress(w http.ResponseWriter, r *http.Request) {
	progress, err := h.orderService.Progress(r.Context())
	if err != nil {
		h.log.Error("failed to compute progress", "error", err)
		WriteServiceError(w, err, h.log)
		return
	}

	WriteJSON(w, http.StatusOK, progress, h.log)
}

// Unpaid handles GET /api/payment/unpaid
func (h *PaymentHandler) Unpaid(w http.ResponseWriter, r *http.Request) {
	groups, err := h.orderService.UnpaidByPerson(r.Context())
	if err != nil {
		h.log.Error("failed to group unpaid lines", "error", err)
		WriteServiceError(w, err, h.log)
		return
	}

	WriteJSON(w, http.StatusOK, groups, h.log)
}

// boardResponse is one category's collect screen: outstanding cards on top,
// settled lines below.
type boardResponse struct {
	Unpaid []models.OrderLine `json:"unpaid"`
	Paid   []models.OrderLine `json:"paid"`
}

// Board handles GET /api/payment/board?category=
func (h *PaymentHandler) Board(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")
	if category == "" {
		WriteError(w, http.StatusBadRequest, "category query parameter is required", h.log)
		return
	}

	unpaid, paid, err := h.orderService.PaymentLines(r.Context(), models.Category(category))
	if err != nil {
		h.log.Error("failed to partition payment lines", "error", err, "category", category)
		WriteServiceError(w, err, h.log)
		return
	}

	WriteJSON(w, http.StatusOK, boardResponse{Unpaid: unpaid, Paid: paid}, h.log)
}

// Collect handles POST /api/payment/{person}/collect
func (h *PaymentHandler) Collect(w http.ResponseWriter, r *http.Request) {
	h.setPaid(w, r, true)
}

// Undo handles POST /api/payment/{person}/undo
func (h *PaymentHandler) Undo(w http.ResponseWriter, r *http.Request) {
	h.setPaid(w, r, false)
}

func (h *PaymentHandler) setPaid(w http.ResponseWriter, r *http.Request, paid bool) {
	person := chi.URLParam(r, "person")
	if person == "" {
		WriteError(w, http.StatusBadRequest, "person is required", h.log)
		return
	}

	var (
		receipt models.Receipt
		err     error
	)
	if paid {
		receipt, err = h.orderService.MarkPersonPaid(r.Context(), person)
	} else {
		receipt, err = h.orderService.MarkPersonUnpaid(r.Context(), person)
	}
	if err != nil {
		h.log.Error("failed to toggle paid state", "error", err, "person", person, "paid", paid)
		WriteServiceError(w, err, h.log)
		return
	}

	WriteJSON(w, http.StatusOK, receipt, h.log)
	h.log.Info("paid state toggled",
		"receipt_id", receipt.ReceiptID,
		"person", person,
		"paid", paid,
		"amount", receipt.Amount,
		"lines", receipt.LineCount,
	)
}
