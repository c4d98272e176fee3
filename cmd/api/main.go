// Command api is the Lead Manager back-office API server.
//
// Usage:
//
//	leadmanager-api
//	API_PORT=8080 leadmanager-api
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"

	"github.com/brandboost/leadmanager/internal/api"
	"github.com/brandboost/leadmanager/internal/config"
	"github.com/brandboost/leadmanager/internal/db"
	"github.com/brandboost/leadmanager/internal/lead"
	"github.com/brandboost/leadmanager/internal/maintenance"
	"github.com/brandboost/leadmanager/internal/notifications"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	// Load .env if present
	_ = godotenv.Load(".env")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Context with signal handling
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	// Connect to database
	logger.Info("Connecting to database...")
	pool, err := db.New(ctx, cfg)
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()
	logger.Info("Database connected",
		"min_conns", cfg.DBPoolMinConns,
		"max_conns", cfg.DBPoolMaxConns)

	// Real-time publisher (RabbitMQ when configured, log-only otherwise)
	var publisher notifications.Publisher
	if cfg.AMQPURL != "" {
		amqpPub, err := notifications.NewAMQPPublisher(ctx, cfg.AMQPURL, logger)
		if err != nil {
			logger.Error("Failed to connect to RabbitMQ", "error", err)
			os.Exit(1)
		}
		defer amqpPub.Close()
		publisher = amqpPub
		logger.Info("Real-time publisher connected")
	} else {
		publisher = &notifications.LogPublisher{Logger: logger}
		logger.Info("Real-time publisher disabled (no AMQP_URL)")
	}

	// Stores and the shared evaluation pipeline
	leadStore := lead.NewStore(pool.Pool)
	notifStore := notifications.NewPGStore(pool.Pool)
	evaluator := notifications.NewEvaluator(leadStore, notifStore, publisher, logger)

	// Payment sweep: once at startup, then on every tick
	scheduler := notifications.NewScheduler(cfg.SweepInterval, func(ctx context.Context) {
		evaluator.RunSweep(ctx)
	}, logger)
	go scheduler.Start(ctx)

	// Maintenance ticker (old read notification cleanup)
	go maintenance.Start(ctx, pool.Pool, maintenance.Config{
		CleanupInterval: cfg.CleanupInterval,
		CleanupMaxAge:   cfg.CleanupMaxAge,
	}, logger)

	// Create router
	router := api.NewRouter(pool, leadStore, notifStore, evaluator, cfg, logger)

	// Create HTTP server
	addr := fmt.Sprintf("%s:%d", cfg.APIHost, cfg.APIPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in background
	go func() {
		logger.Info("Starting Lead Manager API",
			"addr", addr,
			"environment", cfg.Environment,
			"sweep_interval", cfg.SweepInterval)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt
	<-ctx.Done()
	logger.Info("Shutting down...")

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Shutdown error", "error", err)
	}
	logger.Info("Server stopped")
}
