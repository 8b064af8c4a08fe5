package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"

	"github.com/lunchroom/lunchbox/internal/config"
	"github.com/lunchroom/lunchbox/internal/handlers"
	"github.com/lunchroom/lunchbox/internal/middleware"
	"github.com/lunchroom/lunchbox/internal/service"
	"github.com/lunchroom/lunchbox/internal/store"
	"github.com/lunchroom/lunchbox/pkg/logger"
)

func main() {
	// Optional .env for local development; real deployments set env vars.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize structured logger
	log := logger.New(cfg.LogLevel)
	slog.SetDefault(log)

	log.Info("starting lunch ordering server",
		"port", cfg.Server.Port,
		"host", cfg.Server.Host,
		"database", cfg.Database.Path,
		"log_level", cfg.LogLevel,
	)

	// Open the order store and seed the registry on first run
	st, err := store.Open(cfg.Database.Path)
	if err != nil {
		log.Error("failed to open store", "error", err)
		os.Exit(1)
	}
	defer st.Close()

	if err := st.Seed(context.Background(), cfg.Registry.DefaultParticipants); err != nil {
		log.Error("failed to seed registry", "error", err)
		os.Exit(1)
	}

	// Initialize services
	orderService := service.NewOrderService(st, st)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(log, st)
	orderHandler := handlers.NewOrderHandler(orderService, log)
	summaryHandler := handlers.NewSummaryHandler(orderService, log)
	paymentHandler := handlers.NewPaymentHandler(orderService, log)
	configHandler := handlers.NewConfigHandler(orderService, log)

	// Create router
	r := chi.NewRouter()

	// Apply middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger(log))
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(60 * time.Second))

	// CORS configuration
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Admin-Secret"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Register health check endpoint
	r.Get("/health", healthHandler.ServeHTTP)

	// API routes
	r.Route("/api", func(r chi.Router) {
		// Order endpoints
		r.Post("/order", orderHandler.Create)
		r.Delete("/order/{orderId}", orderHandler.Delete)
		r.Get("/order", orderHandler.List)
		r.Post("/reset", orderHandler.Reset)

		// Aggregated views polled by the stats board
		r.Get("/summary/item", summaryHandler.ByItem)
		r.Get("/summary/person", summaryHandler.ByPerson)
		r.Get("/summary/shopping-list", summaryHandler.ShoppingList)

		// Payment collection
		r.Get("/payment/progress", paymentHandler.Progress)
		r.Get("/payment/unpaid", paymentHandler.Unpaid)
		r.Get("/payment/board", paymentHandler.Board)
		r.Post("/payment/{person}/collect", paymentHandler.Collect)
		r.Post("/payment/{person}/undo", paymentHandler.Undo)

		// Registry reads for the ordering screen
		r.Get("/config/participants", configHandler.Participants)
		r.Get("/config/options/{category}", configHandler.Options)

		// Registry edits behind the shared admin secret
		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.AdminAuth(cfg.Admin.Secret))
			r.Put("/participants", configHandler.ReplaceParticipants)
			r.Put("/options/{category}", configHandler.ReplaceOptions)
		})
	})

	// Create HTTP server
	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info("server listening", "address", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	// Create shutdown context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	// Attempt graceful shutdown
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	log.Info("server stopped gracefully")
}
