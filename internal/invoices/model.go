package invoices

import (
	"errors"
	"strings"
	"time"
)

// Invoice is a bill issued for a completed detailing visit.
type Invoice struct {
	ID            string     `json:"id"`
	CompanyID     string     `json:"company_id"`
	ClientID      string     `json:"client_id"`
	AppointmentID string     `json:"appointment_id,omitempty"`
	Description   string     `json:"description"`
	AmountCents   int64      `json:"amount_cents"`
	Paid          bool       `json:"paid"`
	PaidAt        *time.Time `json:"paid_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

// CreateInvoiceRequest is the payload for issuing an invoice.
type CreateInvoiceRequest struct {
	CompanyID     string `json:"-"`
	ClientID      string `json:"client_id"`
	AppointmentID string `json:"appointment_id"`
	Description   string `json:"description"`
	AmountCents   int64  `json:"amount_cents"`
}

// Validate checks required fields.
func (r *CreateInvoiceRequest) Validate() error {
	if strings.TrimSpace(r.CompanyID) == "" {
		return ErrMissingCompanyID
	}
	if strings.TrimSpace(r.ClientID) == "" {
		return ErrMissingClientID
	}
	if r.AmountCents <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

var (
	// ErrMissingCompanyID is returned when the tenant scope is absent.
	ErrMissingCompanyID = errors.New("company id is required")

	// ErrMissingClientID is returned when no client is linked.
	ErrMissingClientID = errors.New("client id is required")

	// ErrInvalidAmount is returned for non-positive invoice amounts.
	ErrInvalidAmount = errors.New("amount must be positive")

	// ErrInvoiceNotFound is returned when no invoice matches the lookup.
	ErrInvoiceNotFound = errors.New("invoice not found")

	// ErrAlreadyPaid is returned when marking a settled invoice as paid again.
	ErrAlreadyPaid = errors.New("invoice already paid")
)
