package companies

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Repository defines the interface for tenant storage.
type Repository interface {
	Create(ctx context.Context, req *CreateCompanyRequest) (*Company, error)
	GetByID(ctx context.Context, id string) (*Company, error)
	// First returns the oldest registered company. The chat executors fall
	// back to it when a message arrives without a tenant id; see the warning
	// logged at the call site before relying on this in multi-tenant setups.
	First(ctx context.Context) (*Company, error)
	List(ctx context.Context) ([]*Company, error)
}

// InMemoryRepository is a Repository backed by a map, used in development
// and tests.
type InMemoryRepository struct {
	mu        sync.RWMutex
	companies map[string]*Company
}

// NewInMemoryRepository creates an empty in-memory repository.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{companies: make(map[string]*Company)}
}

// Create registers a new company.
func (r *InMemoryRepository) Create(ctx context.Context, req *CreateCompanyRequest) (*Company, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	company := &Company{
		ID:        uuid.New().String(),
		Name:      req.Name,
		Phone:     req.Phone,
		Email:     req.Email,
		CreatedAt: time.Now().UTC(),
	}

	r.mu.Lock()
	r.companies[company.ID] = company
	r.mu.Unlock()

	return company, nil
}

// GetByID retrieves a company by id.
func (r *InMemoryRepository) GetByID(ctx context.Context, id string) (*Company, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	company, ok := r.companies[id]
	if !ok {
		return nil, ErrCompanyNotFound
	}
	return company, nil
}

// First returns the oldest registered company.
func (r *InMemoryRepository) First(ctx context.Context) (*Company, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var first *Company
	for _, c := range r.companies {
		if first == nil || c.CreatedAt.Before(first.CreatedAt) {
			first = c
		}
	}
	if first == nil {
		return nil, ErrNoCompanies
	}
	return first, nil
}

// List returns all companies ordered by creation time.
func (r *InMemoryRepository) List(ctx context.Context) ([]*Company, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Company, 0, len(r.companies))
	for _, c := range r.companies {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}
