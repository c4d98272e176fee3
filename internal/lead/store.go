package lead

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DB is the subset of pgxpool.Pool the store uses. Satisfied by pgxmock in
// tests.
type DB interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// ErrNotFound is returned when a lead id does not exist.
var ErrNotFound = fmt.Errorf("lead not found")

// Store persists leads in Postgres via the prepared statements registered
// in internal/db.
type Store struct {
	db DB
}

// NewStore creates a lead store.
func NewStore(db DB) *Store {
	return &Store{db: db}
}

// Create inserts a new lead. The id is assigned here; created/updated
// timestamps come back from the database.
func (s *Store) Create(ctx context.Context, l *Lead) (*Lead, error) {
	l.ID = uuid.New()
	err := s.db.QueryRow(ctx, "insert_lead",
		l.ID, l.ContactNumber, l.Email, l.BDAName, l.CompanyName, l.ClientName,
		l.ClientEmail, l.ClientDesignation, l.CompanyOffering, l.CompanyIndustry,
		l.Packages, l.PackageType, l.ServicesRequested, l.TotalServiceFeesCharged,
		l.GSTBill, l.AmountWithoutGST, l.PaymentDate, l.PaymentDone,
		l.ActualAmountReceived, l.PendingAmount, l.PendingAmountDueDate,
		l.PaymentMode, l.ServicePromisedByBDA, l.ExtraServiceRequested,
		l.ImportantInformation,
	).Scan(&l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert lead: %w", err)
	}
	return l, nil
}

// Update replaces the mutable fields of an existing lead.
func (s *Store) Update(ctx context.Context, l *Lead) (*Lead, error) {
	err := s.db.QueryRow(ctx, "update_lead",
		l.ID, l.ContactNumber, l.Email, l.BDAName, l.CompanyName, l.ClientName,
		l.ClientEmail, l.ClientDesignation, l.CompanyOffering, l.CompanyIndustry,
		l.Packages, l.PackageType, l.ServicesRequested, l.TotalServiceFeesCharged,
		l.GSTBill, l.AmountWithoutGST, l.PaymentDate, l.PaymentDone,
		l.ActualAmountReceived, l.PendingAmount, l.PendingAmountDueDate,
		l.PaymentMode, l.ServicePromisedByBDA, l.ExtraServiceRequested,
		l.ImportantInformation,
	).Scan(&l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("update lead: %w", err)
	}
	return l, nil
}

// GetByID fetches a single lead.
func (s *Store) GetByID(ctx context.Context, id uuid.UUID) (*Lead, error) {
	row := s.db.QueryRow(ctx, "lead_by_id", id)
	l, err := scanLead(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get lead: %w", err)
	}
	return l, nil
}

// List returns all leads, newest first.
func (s *Store) List(ctx context.Context) ([]Lead, error) {
	rows, err := s.db.Query(ctx, "list_leads")
	if err != nil {
		return nil, fmt.Errorf("list leads: %w", err)
	}
	defer rows.Close()
	return collectLeads(rows)
}

// ListByBDA returns leads filed by a given BDA, newest first.
func (s *Store) ListByBDA(ctx context.Context, bdaName string) ([]Lead, error) {
	rows, err := s.db.Query(ctx, "leads_by_bda", bdaName)
	if err != nil {
		return nil, fmt.Errorf("list leads by bda: %w", err)
	}
	defer rows.Close()
	return collectLeads(rows)
}

// DueForEvaluation returns all leads with a pending due date whose payment
// is not fully settled. This is the batch-sweep eligibility query.
func (s *Store) DueForEvaluation(ctx context.Context) ([]Lead, error) {
	rows, err := s.db.Query(ctx, "leads_due_for_evaluation")
	if err != nil {
		return nil, fmt.Errorf("leads due for evaluation: %w", err)
	}
	defer rows.Close()
	return collectLeads(rows)
}

func collectLeads(rows pgx.Rows) ([]Lead, error) {
	var leads []Lead
	for rows.Next() {
		l, err := scanLead(rows)
		if err != nil {
			return nil, fmt.Errorf("scan lead: %w", err)
		}
		leads = append(leads, *l)
	}
	return leads, rows.Err()
}

func scanLead(row pgx.Row) (*Lead, error) {
	var l Lead
	err := row.Scan(
		&l.ID, &l.ContactNumber, &l.Email, &l.BDAName, &l.CompanyName,
		&l.ClientName, &l.ClientEmail, &l.ClientDesignation, &l.CompanyOffering,
		&l.CompanyIndustry, &l.Packages, &l.PackageType, &l.ServicesRequested,
		&l.TotalServiceFeesCharged, &l.GSTBill, &l.AmountWithoutGST,
		&l.PaymentDate, &l.PaymentDone, &l.ActualAmountReceived,
		&l.PendingAmount, &l.PendingAmountDueDate, &l.PaymentMode,
		&l.ServicePromisedByBDA, &l.ExtraServiceRequested,
		&l.ImportantInformation, &l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &l, nil
}
