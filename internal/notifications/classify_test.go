package notifications

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brandboost/leadmanager/internal/lead"
)

func TestClassify(t *testing.T) {
	now := time.Date(2026, time.March, 10, 12, 0, 0, 0, time.Local)

	view := func(due *time.Time, status lead.PaymentStatus) PaymentView {
		return PaymentView{
			CompanyName:             "Acme",
			PendingAmountDueDate:    due,
			PaymentDone:             status,
			TotalServiceFeesCharged: 50000,
		}
	}
	at := func(offset time.Duration) *time.Time {
		d := now.Add(offset)
		return &d
	}

	tests := []struct {
		name        string
		view        PaymentView
		wantType    Type
		wantMessage string
		wantNone    bool
	}{
		{
			name:        "overdue by 2.5 days rounds up",
			view:        view(at(-60*time.Hour), lead.PaymentPartial),
			wantType:    TypePaymentOverdue,
			wantMessage: "Payment for Acme is overdue by 3 days",
		},
		{
			name:        "overdue by a fraction of a day reads one day",
			view:        view(at(-4*time.Hour-48*time.Minute), lead.PaymentNotDone),
			wantType:    TypePaymentOverdue,
			wantMessage: "Payment for Acme is overdue by 1 days",
		},
		{
			name:        "due right now",
			view:        view(at(0), lead.PaymentPartial),
			wantType:    TypePaymentDueSoon,
			wantMessage: "Payment for Acme is due in 0 days",
		},
		{
			name:        "due in 2 days exactly",
			view:        view(at(48*time.Hour), lead.PaymentPartial),
			wantType:    TypePaymentDueSoon,
			wantMessage: "Payment for Acme is due in 2 days",
		},
		{
			name:        "due in 2.1 days rounds up to 3",
			view:        view(at(50*time.Hour+24*time.Minute), lead.PaymentPartial),
			wantType:    TypePaymentDueSoon,
			wantMessage: "Payment for Acme is due in 3 days",
		},
		{
			name:        "due in exactly 3 days stays due-soon",
			view:        view(at(72*time.Hour), lead.PaymentPartial),
			wantType:    TypePaymentDueSoon,
			wantMessage: "Payment for Acme is due in 3 days",
		},
		{
			name:        "due in 3.5 days is due-week",
			view:        view(at(84*time.Hour), lead.PaymentNotDone),
			wantType:    TypePaymentDueWeek,
			wantMessage: "Payment for Acme is due in 4 days",
		},
		{
			name:        "due in exactly 7 days stays due-week",
			view:        view(at(7*24*time.Hour), lead.PaymentPartial),
			wantType:    TypePaymentDueWeek,
			wantMessage: "Payment for Acme is due in 7 days",
		},
		{
			name:     "due beyond a week produces nothing",
			view:     view(at(7*24*time.Hour+time.Minute), lead.PaymentPartial),
			wantNone: true,
		},
		{
			name:     "no due date produces nothing",
			view:     view(nil, lead.PaymentNotDone),
			wantNone: true,
		},
		{
			name:     "full advance payment is exempt even when overdue",
			view:     view(at(-48*time.Hour), lead.PaymentFullAdvance),
			wantNone: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, ok := Classify(tt.view, now)
			if tt.wantNone {
				assert.False(t, ok)
				return
			}
			require.True(t, ok)
			assert.Equal(t, tt.wantType, c.Type)
			assert.Equal(t, tt.wantMessage, c.Message)
		})
	}
}

func TestStartOfDay(t *testing.T) {
	loc := time.FixedZone("IST", 5*3600+1800)
	now := time.Date(2026, time.March, 10, 23, 45, 12, 999, loc)

	got := startOfDay(now)

	assert.Equal(t, time.Date(2026, time.March, 10, 0, 0, 0, 0, loc), got)
	// The input instant is untouched.
	assert.Equal(t, 23, now.Hour())
}
