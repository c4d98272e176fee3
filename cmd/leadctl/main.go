// Command leadctl is the Lead Manager admin CLI.
//
// Usage:
//
//	leadctl sweep
//	leadctl cleanup --max-age 720h
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/brandboost/leadmanager/internal/config"
	"github.com/brandboost/leadmanager/internal/db"
	"github.com/brandboost/leadmanager/internal/lead"
	"github.com/brandboost/leadmanager/internal/maintenance"
	"github.com/brandboost/leadmanager/internal/notifications"
)

var logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

func main() {
	// Load .env if present
	_ = godotenv.Load(".env")

	root := &cobra.Command{
		Use:   "leadctl",
		Short: "Lead Manager admin CLI",
	}

	root.AddCommand(sweepCmd())
	root.AddCommand(cleanupCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

// --------------------------------------------------------------------------
// sweep command
// --------------------------------------------------------------------------

func sweepCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sweep",
		Short: "Run one payment-due sweep over all unpaid leads",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withPool(func(ctx context.Context, cfg *config.Config, pool *db.Pool) error {
				var publisher notifications.Publisher
				if cfg.AMQPURL != "" {
					amqpPub, err := notifications.NewAMQPPublisher(ctx, cfg.AMQPURL, logger)
					if err != nil {
						return fmt.Errorf("connect publisher: %w", err)
					}
					defer amqpPub.Close()
					publisher = amqpPub
				} else {
					publisher = &notifications.LogPublisher{Logger: logger}
				}

				evaluator := notifications.NewEvaluator(
					lead.NewStore(pool.Pool),
					notifications.NewPGStore(pool.Pool),
					publisher,
					logger,
				)

				result := evaluator.RunSweep(ctx)
				fmt.Println(result.Summary())
				if len(result.Errors) > 0 {
					return fmt.Errorf("sweep finished with %d errors", len(result.Errors))
				}
				return nil
			})
		},
	}
}

// --------------------------------------------------------------------------
// cleanup command
// --------------------------------------------------------------------------

func cleanupCmd() *cobra.Command {
	var maxAge time.Duration
	cmd := &cobra.Command{
		Use:   "cleanup",
		Short: "Purge read notifications older than --max-age",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withPool(func(ctx context.Context, cfg *config.Config, pool *db.Pool) error {
				maintenance.CleanupNotifications(ctx, pool.Pool, maxAge, logger)
				return nil
			})
		},
	}
	cmd.Flags().DurationVar(&maxAge, "max-age", 30*24*time.Hour, "age beyond which read notifications are deleted")
	return cmd
}

// withPool loads config, opens the pool, and runs fn with a signal-aware
// context.
func withPool(fn func(ctx context.Context, cfg *config.Config, pool *db.Pool) error) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	pool, err := db.New(ctx, cfg)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer pool.Close()

	return fn(ctx, cfg, pool)
}
