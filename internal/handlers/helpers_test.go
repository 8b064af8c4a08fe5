package handlers

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/lunchroom/lunchbox/internal/service"
	"github.com/lunchroom/lunchbox/internal/store"
	"github.com/lunchroom/lunchbox/pkg/logger"
)

// newTestRouter wires handlers over a real SQLite store in a temp dir, with
// Alice and Bob on the participant list, mirroring the route table in main.
func newTestRouter(t *testing.T) (*chi.Mux, *service.OrderService) {
	t.Helper()

	st, err := store.Open(filepath.Join(t.TempDir(), "lunch.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	if err := st.ReplaceParticipants(context.Background(), []string{"Alice", "Bob"}); err != nil {
		t.Fatalf("seed participants: %v", err)
	}

	log := logger.New("error")
	svc := service.NewOrderService(st, st)

	orderHandler := NewOrderHandler(svc, log)
	summaryHandler := NewSummaryHandler(svc, log)
	paymentHandler := NewPaymentHandler(svc, log)
	configHandler := NewConfigHandler(svc, log)

	r := chi.NewRouter()
	r.Route("/api", func(r chi.Router) {
		r.Post("/order", orderHandler.Create)
		r.Delete("/order/{orderId}", orderHandler.Delete)
		r.Get("/order", orderHandler.List)
		r.Post("/reset", orderHandler.Reset)

		r.Get("/summary/item", summaryHandler.ByItem)
		r.Get("/summary/person", summaryHandler.ByPerson)
		r.Get("/summary/shopping-list", summaryHandler.ShoppingList)

		r.Get("/payment/progress", paymentHandler.Progress)
		r.Get("/payment/unpaid", paymentHandler.Unpaid)
		r.Get("/payment/board", paymentHandler.Board)
		r.Post("/payment/{person}/collect", paymentHandler.Collect)
		r.Post("/payment/{person}/undo", paymentHandler.Undo)

		r.Get("/config/participants", configHandler.Participants)
		r.Get("/config/options/{category}", configHandler.Options)
	})

	return r, svc
}
