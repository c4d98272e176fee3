// Package db provides a pgxpool-based connection pool with prepared statement
// registration and health checking.
package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/brandboost/leadmanager/internal/config"
)

// Pool wraps pgxpool.Pool with application-specific helpers.
type Pool struct {
	*pgxpool.Pool
}

// New creates and validates a new connection pool.
func New(ctx context.Context, cfg *config.Config) (*Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database URL: %w", err)
	}

	poolCfg.MinConns = int32(cfg.DBPoolMinConns)
	poolCfg.MaxConns = int32(cfg.DBPoolMaxConns)
	poolCfg.MaxConnLifetime = cfg.DBPoolMaxLife
	poolCfg.MaxConnIdleTime = 5 * time.Minute

	// Register prepared statements on every new connection.
	poolCfg.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		return registerPreparedStatements(ctx, conn)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	// Verify connectivity
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &Pool{Pool: pool}, nil
}

// HealthCheck runs a trivial query to verify the database is reachable.
func (p *Pool) HealthCheck(ctx context.Context) error {
	var n int
	return p.QueryRow(ctx, "health_check").Scan(&n)
}

const leadColumns = `id, contact_number, email, bda_name, company_name, client_name,
	client_email, client_designation, company_offering, company_industry,
	packages, package_type, services_requested, total_service_fees_charged,
	gst_bill, amount_without_gst, payment_date, payment_done,
	actual_amount_received, pending_amount, pending_amount_due_date,
	payment_mode, service_promised_by_bda, extra_service_requested,
	important_information, created_at, updated_at`

// registerPreparedStatements registers all statements the API, sweep, and
// maintenance layers use. Prepared statements eliminate parse overhead on
// every request.
func registerPreparedStatements(ctx context.Context, conn *pgx.Conn) error {
	stmts := map[string]string{
		// Health
		"health_check": "SELECT 1",

		// Leads
		"insert_lead": `INSERT INTO leads (
			id, contact_number, email, bda_name, company_name, client_name,
			client_email, client_designation, company_offering, company_industry,
			packages, package_type, services_requested, total_service_fees_charged,
			gst_bill, amount_without_gst, payment_date, payment_done,
			actual_amount_received, pending_amount, pending_amount_due_date,
			payment_mode, service_promised_by_bda, extra_service_requested,
			important_information
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21,$22,$23,$24,$25)
		RETURNING created_at, updated_at`,

		"lead_by_id":   "SELECT " + leadColumns + " FROM leads WHERE id = $1",
		"list_leads":   "SELECT " + leadColumns + " FROM leads ORDER BY created_at DESC",
		"leads_by_bda": "SELECT " + leadColumns + " FROM leads WHERE bda_name = $1 ORDER BY created_at DESC",

		"update_lead": `UPDATE leads SET
			contact_number = $2, email = $3, bda_name = $4, company_name = $5,
			client_name = $6, client_email = $7, client_designation = $8,
			company_offering = $9, company_industry = $10, packages = $11,
			package_type = $12, services_requested = $13,
			total_service_fees_charged = $14, gst_bill = $15,
			amount_without_gst = $16, payment_date = $17, payment_done = $18,
			actual_amount_received = $19, pending_amount = $20,
			pending_amount_due_date = $21, payment_mode = $22,
			service_promised_by_bda = $23, extra_service_requested = $24,
			important_information = $25, updated_at = NOW()
		WHERE id = $1
		RETURNING created_at, updated_at`,

		// Sweep: unpaid leads with a pending due date
		"leads_due_for_evaluation": "SELECT " + leadColumns + ` FROM leads
			WHERE pending_amount_due_date IS NOT NULL
			  AND payment_done <> 'Full In Advance'
			ORDER BY pending_amount_due_date`,

		// Notifications
		"insert_notification": `INSERT INTO notifications (
			message, type, related_id, due_date, amount, read
		) VALUES ($1,$2,$3,$4,$5,false)
		RETURNING id, created_at`,

		"notification_exists_since": `SELECT 1 FROM notifications
			WHERE related_id = $1 AND type = $2 AND created_at >= $3
			LIMIT 1`,

		"list_notifications": `SELECT id, message, type, related_id, due_date, amount, read, created_at
			FROM notifications ORDER BY created_at DESC`,

		"mark_notification_read": `UPDATE notifications SET read = true WHERE id = $1
			RETURNING id, message, type, related_id, due_date, amount, read, created_at`,

		"delete_notification": "DELETE FROM notifications WHERE id = $1",

		// Maintenance
		"purge_read_notifications": `DELETE FROM notifications
			WHERE read = true AND created_at < $1`,
	}

	for name, sql := range stmts {
		if _, err := conn.Prepare(ctx, name, sql); err != nil {
			return fmt.Errorf("prepare %q: %w", name, err)
		}
	}
	return nil
}
