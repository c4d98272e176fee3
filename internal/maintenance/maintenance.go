// Package maintenance runs periodic background tasks as Go tickers. All
// scheduled housekeeping is driven from Go since the API is already a
// persistent, long-running service.
package maintenance

import (
	"context"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
)

// DB is the minimal database surface maintenance tasks need.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// Config controls maintenance task intervals. Zero duration disables a task.
type Config struct {
	CleanupInterval time.Duration // purge old read notifications
	CleanupMaxAge   time.Duration // how long read notifications are kept
}

// DefaultConfig returns sensible production defaults.
func DefaultConfig() Config {
	return Config{
		CleanupInterval: 30 * time.Minute,
		CleanupMaxAge:   30 * 24 * time.Hour,
	}
}

// Start launches the configured maintenance tickers. Blocks until ctx is
// cancelled. Intended to be called with `go`.
func Start(ctx context.Context, db DB, cfg Config, logger *slog.Logger) {
	if cfg.CleanupInterval <= 0 {
		logger.Info("Maintenance disabled")
		return
	}
	logger.Info("Maintenance ticker started",
		"cleanup", cfg.CleanupInterval, "max_age", cfg.CleanupMaxAge)

	ticker := time.NewTicker(cfg.CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			CleanupNotifications(ctx, db, cfg.CleanupMaxAge, logger)
		case <-ctx.Done():
			logger.Info("Maintenance ticker stopped")
			return
		}
	}
}

// CleanupNotifications removes read notifications older than maxAge. Unread
// notifications are kept regardless of age so nothing disappears from the
// panel before someone has seen it.
func CleanupNotifications(ctx context.Context, db DB, maxAge time.Duration, logger *slog.Logger) {
	cutoff := time.Now().Add(-maxAge)
	tag, err := db.Exec(ctx, "purge_read_notifications", cutoff)
	if err != nil {
		logger.Warn("Cleanup: failed to purge read notifications", "error", err)
		return
	}
	if tag.RowsAffected() > 0 {
		logger.Info("Cleanup: purged read notifications", "count", tag.RowsAffected())
	}
}
