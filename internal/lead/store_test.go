package lead

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

var leadColumns = []string{
	"id", "contact_number", "email", "bda_name", "company_name", "client_name",
	"client_email", "client_designation", "company_offering", "company_industry",
	"packages", "package_type", "services_requested", "total_service_fees_charged",
	"gst_bill", "amount_without_gst", "payment_date", "payment_done",
	"actual_amount_received", "pending_amount", "pending_amount_due_date",
	"payment_mode", "service_promised_by_bda", "extra_service_requested",
	"important_information", "created_at", "updated_at",
}

func leadRow(id uuid.UUID, company string, due *time.Time, status PaymentStatus) []any {
	now := time.Now()
	return []any{
		id, "9876543210", "sales@acme.in", "Ravi", company, "Priya",
		"priya@acme.in", "Founder", "D2C skincare", "Consumer goods",
		(*string)(nil), (*string)(nil), []string{"SEO", "Branding"}, 50000.0,
		(*string)(nil), (*float64)(nil), (*time.Time)(nil), status,
		(*float64)(nil), (*float64)(nil), due,
		(*string)(nil), "SEO audit within a week", (*string)(nil),
		(*string)(nil), now, now,
	}
}

func newMockStore(t *testing.T) (pgxmock.PgxPoolIface, *Store) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock, NewStore(mock)
}

func TestStore_Create(t *testing.T) {
	mock, store := newMockStore(t)
	now := time.Now()

	args := make([]any, 25)
	for i := range args {
		args[i] = pgxmock.AnyArg()
	}
	mock.ExpectQuery("insert_lead").
		WithArgs(args...).
		WillReturnRows(pgxmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))

	l := &Lead{
		ContactNumber:           "9876543210",
		CompanyName:             "Acme",
		PaymentDone:             PaymentPartial,
		TotalServiceFeesCharged: 50000,
	}
	created, err := store.Create(context.Background(), l)

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, created.ID)
	assert.Equal(t, now, created.CreatedAt)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_Update_NotFound(t *testing.T) {
	mock, store := newMockStore(t)

	args := make([]any, 25)
	for i := range args {
		args[i] = pgxmock.AnyArg()
	}
	mock.ExpectQuery("update_lead").
		WithArgs(args...).
		WillReturnError(pgx.ErrNoRows)

	l := &Lead{ID: uuid.New(), CompanyName: "Ghost Co", PaymentDone: PaymentNotDone}
	_, err := store.Update(context.Background(), l)

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStore_DueForEvaluation(t *testing.T) {
	mock, store := newMockStore(t)

	id1, id2 := uuid.New(), uuid.New()
	due1 := time.Now().Add(24 * time.Hour)
	due2 := time.Now().Add(-24 * time.Hour)
	mock.ExpectQuery("leads_due_for_evaluation").
		WillReturnRows(pgxmock.NewRows(leadColumns).
			AddRow(leadRow(id1, "First Co", &due1, PaymentPartial)...).
			AddRow(leadRow(id2, "Second Co", &due2, PaymentNotDone)...))

	leads, err := store.DueForEvaluation(context.Background())

	require.NoError(t, err)
	require.Len(t, leads, 2)
	assert.Equal(t, id1, leads[0].ID)
	assert.Equal(t, "First Co", leads[0].CompanyName)
	require.NotNil(t, leads[0].PendingAmountDueDate)
	assert.Equal(t, PaymentNotDone, leads[1].PaymentDone)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_ListByBDA_QueryFailure(t *testing.T) {
	mock, store := newMockStore(t)

	mock.ExpectQuery("leads_by_bda").
		WithArgs("Ravi").
		WillReturnError(errors.New("connection reset"))

	_, err := store.ListByBDA(context.Background(), "Ravi")

	assert.Error(t, err)
}

func TestStore_GetByID_NotFound(t *testing.T) {
	mock, store := newMockStore(t)
	id := uuid.New()

	mock.ExpectQuery("lead_by_id").
		WithArgs(id).
		WillReturnError(pgx.ErrNoRows)

	_, err := store.GetByID(context.Background(), id)

	assert.ErrorIs(t, err, ErrNotFound)
}
