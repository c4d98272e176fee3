package notifications

import (
	"context"
	"fmt"
	"time"

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

// ErrNotFound is returned when a notification id does not exist.
var ErrNotFound = fmt.Errorf("notification not found")

// PGStore persists notifications in Postgres via the prepared statements
// registered in internal/db.
type PGStore struct {
	db DB
}

// NewPGStore creates a notification store.
func NewPGStore(db DB) *PGStore {
	return &PGStore{db: db}
}

// ExistsSince reports whether a notification for (relatedID, typ) was
// created at or after since. Callers pass local midnight to gate one
// notification per lead, type, and day.
func (s *PGStore) ExistsSince(ctx context.Context, relatedID uuid.UUID, typ Type, since time.Time) (bool, error) {
	var one int
	err := s.db.QueryRow(ctx, "notification_exists_since", relatedID, typ, since).Scan(&one)
	if err == pgx.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("notification exists check: %w", err)
	}
	return true, nil
}

// Insert persists a new unread notification and fills in the DB-assigned id
// and creation timestamp.
func (s *PGStore) Insert(ctx context.Context, n *Notification) (*Notification, error) {
	err := s.db.QueryRow(ctx, "insert_notification",
		n.Message, n.Type, n.RelatedID, n.DueDate, n.Amount,
	).Scan(&n.ID, &n.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert notification: %w", err)
	}
	n.Read = false
	return n, nil
}

// List returns all notifications, newest first.
func (s *PGStore) List(ctx context.Context) ([]Notification, error) {
	rows, err := s.db.Query(ctx, "list_notifications")
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	defer rows.Close()

	var out []Notification
	for rows.Next() {
		var n Notification
		if err := rows.Scan(&n.ID, &n.Message, &n.Type, &n.RelatedID,
			&n.DueDate, &n.Amount, &n.Read, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan notification: %w", err)
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

// MarkRead sets read=true and returns the updated notification.
func (s *PGStore) MarkRead(ctx context.Context, id uuid.UUID) (*Notification, error) {
	var n Notification
	err := s.db.QueryRow(ctx, "mark_notification_read", id).Scan(
		&n.ID, &n.Message, &n.Type, &n.RelatedID,
		&n.DueDate, &n.Amount, &n.Read, &n.CreatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("mark notification read: %w", err)
	}
	return &n, nil
}

// Delete removes a notification.
func (s *PGStore) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := s.db.Exec(ctx, "delete_notification", id)
	if err != nil {
		return fmt.Errorf("delete notification: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
