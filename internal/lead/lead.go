// Package lead owns the sales-lead entity: the record a BDA files after an
// intake call, including client details, requested services, and payment
// state. Payment-due evaluation reads leads through the narrow view in
// internal/notifications.
package lead

import (
	"time"

	"github.com/google/uuid"
)

// PaymentStatus is the tri-state payment-collection indicator on a lead.
type PaymentStatus string

const (
	PaymentNotDone     PaymentStatus = "Not Done"
	PaymentPartial     PaymentStatus = "Partial Payment"
	PaymentFullAdvance PaymentStatus = "Full In Advance"
)

// Valid reports whether s is one of the known payment states.
func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentNotDone, PaymentPartial, PaymentFullAdvance:
		return true
	}
	return false
}

// Settled reports whether the lead owes nothing further. Only a full advance
// payment exempts a lead from due-date evaluation.
func (s PaymentStatus) Settled() bool {
	return s == PaymentFullAdvance
}

// Lead is a sales order record awaiting or undergoing payment collection.
type Lead struct {
	ID                uuid.UUID `json:"id"`
	ContactNumber     string    `json:"contactNumber"`
	Email             string    `json:"email"`
	BDAName           string    `json:"bdaName"`
	CompanyName       string    `json:"companyName"`
	ClientName        string    `json:"clientName"`
	ClientEmail       string    `json:"clientEmail"`
	ClientDesignation string    `json:"clientDesignation"`
	CompanyOffering   string    `json:"companyOffering"`
	CompanyIndustry   string    `json:"companyIndustry"`

	// Service details
	Packages          *string  `json:"packages,omitempty"`
	PackageType       *string  `json:"packageType,omitempty"`
	ServicesRequested []string `json:"servicesRequested"`

	// Payment details
	TotalServiceFeesCharged float64       `json:"totalServiceFeesCharged"`
	GSTBill                 *string       `json:"gstBill,omitempty"`
	AmountWithoutGST        *float64      `json:"amountWithoutGST,omitempty"`
	PaymentDate             *time.Time    `json:"paymentDate,omitempty"`
	PaymentDone             PaymentStatus `json:"paymentDone"`
	ActualAmountReceived    *float64      `json:"actualAmountReceived,omitempty"`
	PendingAmount           *float64      `json:"pendingAmount,omitempty"`
	PendingAmountDueDate    *time.Time    `json:"pendingAmountDueDate,omitempty"`
	PaymentMode             *string       `json:"paymentMode,omitempty"`

	// Final details
	ServicePromisedByBDA  string  `json:"servicePromisedByBDA"`
	ExtraServiceRequested *string `json:"extraServiceRequested,omitempty"`
	ImportantInformation  *string `json:"importantInformation,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
