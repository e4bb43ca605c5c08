package invoices

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Repository defines the interface for invoice storage.
type Repository interface {
	Create(ctx context.Context, req *CreateInvoiceRequest) (*Invoice, error)
	GetByID(ctx context.Context, companyID, id string) (*Invoice, error)
	ListByCompany(ctx context.Context, companyID string, unpaidOnly bool) ([]*Invoice, error)
	MarkPaid(ctx context.Context, companyID, id string) (*Invoice, error)
}

// InMemoryRepository is a Repository backed by a map, used in development
// and tests.
type InMemoryRepository struct {
	mu       sync.RWMutex
	invoices map[string]*Invoice
}

// NewInMemoryRepository creates an empty in-memory repository.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{invoices: make(map[string]*Invoice)}
}

// Create issues a new invoice.
func (r *InMemoryRepository) Create(ctx context.Context, req *CreateInvoiceRequest) (*Invoice, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	invoice := &Invoice{
		ID:            uuid.New().String(),
		CompanyID:     req.CompanyID,
		ClientID:      req.ClientID,
		AppointmentID: req.AppointmentID,
		Description:   req.Description,
		AmountCents:   req.AmountCents,
		CreatedAt:     time.Now().UTC(),
	}

	r.mu.Lock()
	r.invoices[invoice.ID] = invoice
	r.mu.Unlock()

	return invoice, nil
}

// GetByID retrieves an invoice scoped to the company.
func (r *InMemoryRepository) GetByID(ctx context.Context, companyID, id string) (*Invoice, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	invoice, ok := r.invoices[id]
	if !ok || invoice.CompanyID != companyID {
		return nil, ErrInvoiceNotFound
	}
	return invoice, nil
}

// ListByCompany returns invoices of a company ordered by creation time.
func (r *InMemoryRepository) ListByCompany(ctx context.Context, companyID string, unpaidOnly bool) ([]*Invoice, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*Invoice
	for _, inv := range r.invoices {
		if inv.CompanyID != companyID {
			continue
		}
		if unpaidOnly && inv.Paid {
			continue
		}
		out = append(out, inv)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

// MarkPaid settles an invoice.
func (r *InMemoryRepository) MarkPaid(ctx context.Context, companyID, id string) (*Invoice, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	invoice, ok := r.invoices[id]
	if !ok || invoice.CompanyID != companyID {
		return nil, ErrInvoiceNotFound
	}
	if invoice.Paid {
		return nil, ErrAlreadyPaid
	}
	now := time.Now().UTC()
	invoice.Paid = true
	invoice.PaidAt = &now
	return invoice, nil
}
