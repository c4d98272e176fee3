package notifications

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockStore(t *testing.T) (pgxmock.PgxPoolIface, *PGStore) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock, NewPGStore(mock)
}

func TestPGStore_ExistsSince(t *testing.T) {
	relatedID := uuid.New()
	since := time.Date(2026, time.March, 10, 0, 0, 0, 0, time.Local)

	t.Run("match found", func(t *testing.T) {
		mock, store := newMockStore(t)
		mock.ExpectQuery("notification_exists_since").
			WithArgs(relatedID, TypePaymentDueSoon, since).
			WillReturnRows(pgxmock.NewRows([]string{"one"}).AddRow(1))

		exists, err := store.ExistsSince(context.Background(), relatedID, TypePaymentDueSoon, since)

		require.NoError(t, err)
		assert.True(t, exists)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("no match", func(t *testing.T) {
		mock, store := newMockStore(t)
		mock.ExpectQuery("notification_exists_since").
			WithArgs(relatedID, TypePaymentDueSoon, since).
			WillReturnError(pgx.ErrNoRows)

		exists, err := store.ExistsSince(context.Background(), relatedID, TypePaymentDueSoon, since)

		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("query failure", func(t *testing.T) {
		mock, store := newMockStore(t)
		mock.ExpectQuery("notification_exists_since").
			WithArgs(relatedID, TypePaymentDueSoon, since).
			WillReturnError(errors.New("connection reset"))

		_, err := store.ExistsSince(context.Background(), relatedID, TypePaymentDueSoon, since)

		assert.Error(t, err)
	})
}

func TestPGStore_Insert(t *testing.T) {
	relatedID := uuid.New()
	assignedID := uuid.New()
	createdAt := time.Now()
	amount := 50000.0

	mock, store := newMockStore(t)
	mock.ExpectQuery("insert_notification").
		WithArgs("Payment for Acme is due in 2 days", TypePaymentDueSoon,
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}).AddRow(assignedID, createdAt))

	n := &Notification{
		Message:   "Payment for Acme is due in 2 days",
		Type:      TypePaymentDueSoon,
		RelatedID: &relatedID,
		Amount:    &amount,
	}
	saved, err := store.Insert(context.Background(), n)

	require.NoError(t, err)
	assert.Equal(t, assignedID, saved.ID)
	assert.Equal(t, createdAt, saved.CreatedAt)
	assert.False(t, saved.Read)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPGStore_List(t *testing.T) {
	id := uuid.New()
	rid := uuid.New()
	relatedID := &rid
	createdAt := time.Now()

	mock, store := newMockStore(t)
	mock.ExpectQuery("list_notifications").
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "message", "type", "related_id", "due_date", "amount", "read", "created_at",
		}).AddRow(id, "Payment for Acme is overdue by 1 days", TypePaymentOverdue,
			relatedID, (*time.Time)(nil), (*float64)(nil), false, createdAt))

	list, err := store.List(context.Background())

	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, id, list[0].ID)
	assert.Equal(t, TypePaymentOverdue, list[0].Type)
}

func TestPGStore_MarkRead(t *testing.T) {
	id := uuid.New()
	createdAt := time.Now()

	t.Run("marks read", func(t *testing.T) {
		mock, store := newMockStore(t)
		mock.ExpectQuery("mark_notification_read").
			WithArgs(id).
			WillReturnRows(pgxmock.NewRows([]string{
				"id", "message", "type", "related_id", "due_date", "amount", "read", "created_at",
			}).AddRow(id, "msg", TypePaymentDueWeek, (*uuid.UUID)(nil),
				(*time.Time)(nil), (*float64)(nil), true, createdAt))

		n, err := store.MarkRead(context.Background(), id)

		require.NoError(t, err)
		assert.True(t, n.Read)
	})

	t.Run("unknown id", func(t *testing.T) {
		mock, store := newMockStore(t)
		mock.ExpectQuery("mark_notification_read").
			WithArgs(id).
			WillReturnError(pgx.ErrNoRows)

		_, err := store.MarkRead(context.Background(), id)

		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestPGStore_Delete(t *testing.T) {
	id := uuid.New()

	t.Run("deletes", func(t *testing.T) {
		mock, store := newMockStore(t)
		mock.ExpectExec("delete_notification").
			WithArgs(id).
			WillReturnResult(pgxmock.NewResult("DELETE", 1))

		require.NoError(t, store.Delete(context.Background(), id))
	})

	t.Run("unknown id", func(t *testing.T) {
		mock, store := newMockStore(t)
		mock.ExpectExec("delete_notification").
			WithArgs(id).
			WillReturnResult(pgxmock.NewResult("DELETE", 0))

		assert.ErrorIs(t, store.Delete(context.Background(), id), ErrNotFound)
	})
}
