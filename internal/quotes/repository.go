package quotes

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Repository defines the interface for quote storage.
type Repository interface {
	Create(ctx context.Context, req *CreateQuoteRequest) (*Quote, error)
	GetByID(ctx context.Context, companyID, id string) (*Quote, error)
	ListByCompany(ctx context.Context, companyID string) ([]*Quote, error)
	SetStatus(ctx context.Context, companyID, id string, status Status) (*Quote, error)
}

// InMemoryRepository is a Repository backed by a map, used in development
// and tests.
type InMemoryRepository struct {
	mu     sync.RWMutex
	quotes map[string]*Quote
}

// NewInMemoryRepository creates an empty in-memory repository.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{quotes: make(map[string]*Quote)}
}

// Create stores a new pending quote.
func (r *InMemoryRepository) Create(ctx context.Context, req *CreateQuoteRequest) (*Quote, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	quote := &Quote{
		ID:          uuid.New().String(),
		CompanyID:   req.CompanyID,
		ClientID:    req.ClientID,
		Description: req.Description,
		Items:       append([]QuoteItem(nil), req.Items...),
		TotalCents:  req.Total(),
		Status:      StatusPending,
		CreatedAt:   time.Now().UTC(),
	}

	r.mu.Lock()
	r.quotes[quote.ID] = quote
	r.mu.Unlock()

	return quote, nil
}

// GetByID retrieves a quote scoped to the company.
func (r *InMemoryRepository) GetByID(ctx context.Context, companyID, id string) (*Quote, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	quote, ok := r.quotes[id]
	if !ok || quote.CompanyID != companyID {
		return nil, ErrQuoteNotFound
	}
	return quote, nil
}

// ListByCompany returns quotes of a company ordered by creation time.
func (r *InMemoryRepository) ListByCompany(ctx context.Context, companyID string) ([]*Quote, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*Quote
	for _, q := range r.quotes {
		if q.CompanyID == companyID {
			out = append(out, q)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

// SetStatus resolves a pending quote.
func (r *InMemoryRepository) SetStatus(ctx context.Context, companyID, id string, status Status) (*Quote, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	quote, ok := r.quotes[id]
	if !ok || quote.CompanyID != companyID {
		return nil, ErrQuoteNotFound
	}
	if quote.Status != StatusPending {
		return nil, ErrQuoteResolved
	}
	quote.Status = status
	return quote, nil
}
