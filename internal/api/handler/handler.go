// Package handler provides HTTP handlers for all API endpoints. Handlers
// talk to Postgres through the lead and notification stores; lead writes
// additionally feed the payment-due evaluation pipeline.
package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/brandboost/leadmanager/internal/api/respond"
	"github.com/brandboost/leadmanager/internal/config"
	"github.com/brandboost/leadmanager/internal/db"
	"github.com/brandboost/leadmanager/internal/lead"
	"github.com/brandboost/leadmanager/internal/notifications"
)

// Handler holds shared dependencies for all endpoint handlers.
type Handler struct {
	pool      *db.Pool
	leads     *lead.Store
	notifs    *notifications.PGStore
	evaluator *notifications.Evaluator
	cfg       *config.Config
	logger    *slog.Logger
}

// New creates a Handler with shared dependencies.
func New(pool *db.Pool, leads *lead.Store, notifs *notifications.PGStore,
	evaluator *notifications.Evaluator, cfg *config.Config, logger *slog.Logger) *Handler {
	return &Handler{
		pool:      pool,
		leads:     leads,
		notifs:    notifs,
		evaluator: evaluator,
		cfg:       cfg,
		logger:    logger,
	}
}

// Root serves API info at /.
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"name":    "Lead Manager API",
		"version": "1.0.0",
		"status":  "running",
	})
}

// HealthCheck returns basic health status.
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// HealthCheckDB verifies database connectivity.
func (h *Handler) HealthCheckDB(w http.ResponseWriter, r *http.Request) {
	if err := h.pool.HealthCheck(r.Context()); err != nil {
		respond.WriteJSONObject(w, http.StatusServiceUnavailable, map[string]interface{}{
			"status":    "unhealthy",
			"database":  "disconnected",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
		return
	}
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"database":  "connected",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
