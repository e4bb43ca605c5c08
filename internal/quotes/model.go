package quotes

import (
	"errors"
	"strings"
	"time"
)

// Status is the lifecycle state of a quote.
type Status string

const (
	StatusPending  Status = "pending"
	StatusAccepted Status = "accepted"
	StatusRejected Status = "rejected"
)

// Quote is a priced service proposal for a client.
type Quote struct {
	ID          string      `json:"id"`
	CompanyID   string      `json:"company_id"`
	ClientID    string      `json:"client_id"`
	Description string      `json:"description"`
	Items       []QuoteItem `json:"items,omitempty"`
	TotalCents  int64       `json:"total_cents"`
	Status      Status      `json:"status"`
	CreatedAt   time.Time   `json:"created_at"`
}

// QuoteItem is a single line of a quote.
type QuoteItem struct {
	Description string `json:"description"`
	AmountCents int64  `json:"amount_cents"`
}

// CreateQuoteRequest is the payload for creating a quote.
type CreateQuoteRequest struct {
	CompanyID   string      `json:"-"`
	ClientID    string      `json:"client_id"`
	Description string      `json:"description"`
	Items       []QuoteItem `json:"items"`
}

// Validate checks required fields and computes nothing; totals are derived
// from items at creation time.
func (r *CreateQuoteRequest) Validate() error {
	if strings.TrimSpace(r.CompanyID) == "" {
		return ErrMissingCompanyID
	}
	if strings.TrimSpace(r.ClientID) == "" {
		return ErrMissingClientID
	}
	if len(r.Items) == 0 {
		return ErrNoItems
	}
	for _, item := range r.Items {
		if item.AmountCents < 0 {
			return ErrNegativeAmount
		}
	}
	return nil
}

// Total sums the item amounts.
func (r *CreateQuoteRequest) Total() int64 {
	var total int64
	for _, item := range r.Items {
		total += item.AmountCents
	}
	return total
}

var (
	// ErrMissingCompanyID is returned when the tenant scope is absent.
	ErrMissingCompanyID = errors.New("company id is required")

	// ErrMissingClientID is returned when no client is linked.
	ErrMissingClientID = errors.New("client id is required")

	// ErrNoItems is returned when a quote has no line items.
	ErrNoItems = errors.New("quote needs at least one item")

	// ErrNegativeAmount is returned when an item amount is negative.
	ErrNegativeAmount = errors.New("item amount cannot be negative")

	// ErrQuoteNotFound is returned when no quote matches the lookup.
	ErrQuoteNotFound = errors.New("quote not found")

	// ErrQuoteResolved is returned when accepting or rejecting a quote that
	// is no longer pending.
	ErrQuoteResolved = errors.New("quote already resolved")
)
