// Package notifications implements payment-due alerting for leads.
//
// Pipeline: classify urgency from the due date → suppress same-day
// duplicates → persist the notification → broadcast to live subscribers.
// The same pipeline runs from a scheduled sweep over all unpaid leads and
// synchronously after every lead create/update.
package notifications

import (
	"time"

	"github.com/google/uuid"

	"github.com/brandboost/leadmanager/internal/lead"
)

// --------------------------------------------------------------------------
// Constants
// --------------------------------------------------------------------------

const (
	// Urgency thresholds, in days before the due date.
	dueSoonDays = 3
	dueWeekDays = 7

	// Broadcast channels and event names subscribers listen on.
	PaymentChannel   = "payment-alerts"
	PaymentEvent     = "payment-status"
	LeadChannel      = "lead-alerts"
	LeadCreatedEvent = "new-lead"
)

// Type is the closed enumeration of notification kinds.
type Type string

const (
	TypePaymentOverdue Type = "payment_overdue"
	TypePaymentDueSoon Type = "payment_due_soon"
	TypePaymentDueWeek Type = "payment_due_week"
	TypeLeadCreated    Type = "lead_created"
)

// --------------------------------------------------------------------------
// Types
// --------------------------------------------------------------------------

// Notification is a persisted alert shown in the back-office panel. Created
// once, never updated by this package; the read flag flips only through the
// notification-read API.
type Notification struct {
	ID        uuid.UUID  `json:"id"`
	Message   string     `json:"message"`
	Type      Type       `json:"type"`
	RelatedID *uuid.UUID `json:"relatedId,omitempty"`
	DueDate   *time.Time `json:"dueDate,omitempty"`
	Amount    *float64   `json:"amount,omitempty"`
	Read      bool       `json:"read"`
	CreatedAt time.Time  `json:"createdAt"`
}

// PaymentView is the narrow slice of a lead the classifier needs. It keeps
// this package decoupled from the full lead schema.
type PaymentView struct {
	LeadID                  uuid.UUID
	CompanyName             string
	PendingAmountDueDate    *time.Time
	PaymentDone             lead.PaymentStatus
	TotalServiceFeesCharged float64
}

// ViewOf projects a lead onto its payment view.
func ViewOf(l lead.Lead) PaymentView {
	return PaymentView{
		LeadID:                  l.ID,
		CompanyName:             l.CompanyName,
		PendingAmountDueDate:    l.PendingAmountDueDate,
		PaymentDone:             l.PaymentDone,
		TotalServiceFeesCharged: l.TotalServiceFeesCharged,
	}
}

// PaymentAlert is the broadcast payload for payment-status events.
type PaymentAlert struct {
	Message        string     `json:"message"`
	LeadID         uuid.UUID  `json:"leadId"`
	DueDate        *time.Time `json:"dueDate,omitempty"`
	NotificationID uuid.UUID  `json:"notificationId"`
	Type           Type       `json:"type"`
	CompanyName    string     `json:"companyName"`
	Amount         float64    `json:"amount"`
}

// LeadAlert is the broadcast payload for new-lead events.
type LeadAlert struct {
	Message        string    `json:"message"`
	LeadID         uuid.UUID `json:"leadId"`
	NotificationID uuid.UUID `json:"notificationId"`
}
