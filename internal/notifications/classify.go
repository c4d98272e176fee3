package notifications

import (
	"fmt"
	"math"
	"time"
)

// Classification is the message and urgency bucket produced for an unpaid
// lead approaching or past its due date.
type Classification struct {
	Type    Type
	Message string
}

// Classify maps a lead's payment state and the current instant to an urgency
// classification. The second return is false when no notice is warranted:
// no due date, payment settled in full, or due more than a week out.
//
// Day counts round up toward the next whole day on both sides of the due
// date, so 0.2 days past due reads "overdue by 1 days" and 2.1 days out
// reads "due in 3 days". Callers and the front end depend on this exact
// phrasing.
func Classify(v PaymentView, now time.Time) (Classification, bool) {
	if v.PendingAmountDueDate == nil || v.PaymentDone.Settled() {
		return Classification{}, false
	}

	days := v.PendingAmountDueDate.Sub(now).Hours() / 24

	switch {
	case days < 0:
		return Classification{
			Type:    TypePaymentOverdue,
			Message: fmt.Sprintf("Payment for %s is overdue by %d days", v.CompanyName, int(math.Ceil(math.Abs(days)))),
		}, true
	case days <= dueSoonDays:
		return Classification{
			Type:    TypePaymentDueSoon,
			Message: fmt.Sprintf("Payment for %s is due in %d days", v.CompanyName, int(math.Ceil(days))),
		}, true
	case days <= dueWeekDays:
		return Classification{
			Type:    TypePaymentDueWeek,
			Message: fmt.Sprintf("Payment for %s is due in %d days", v.CompanyName, int(math.Ceil(days))),
		}, true
	default:
		return Classification{}, false
	}
}

// startOfDay returns midnight of the day containing t, in t's location.
// Used as the lower bound of the same-day dedup window.
func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
