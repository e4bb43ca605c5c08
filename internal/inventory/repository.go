package inventory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Repository defines the interface for product storage.
type Repository interface {
	Create(ctx context.Context, req *CreateProductRequest) (*Product, error)
	GetByID(ctx context.Context, companyID, id string) (*Product, error)
	ListByCompany(ctx context.Context, companyID string, lowStockOnly bool) ([]*Product, error)
	// AdjustQuantity adds delta (possibly negative) to the stock level and
	// returns the updated product.
	AdjustQuantity(ctx context.Context, companyID, id string, delta int) (*Product, error)
}

// InMemoryRepository is a Repository backed by a map, used in development
// and tests.
type InMemoryRepository struct {
	mu       sync.RWMutex
	products map[string]*Product
}

// NewInMemoryRepository creates an empty in-memory repository.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{products: make(map[string]*Product)}
}

// Create registers a new product.
func (r *InMemoryRepository) Create(ctx context.Context, req *CreateProductRequest) (*Product, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	product := &Product{
		ID:           uuid.New().String(),
		CompanyID:    req.CompanyID,
		Name:         req.Name,
		Unit:         req.Unit,
		Quantity:     req.Quantity,
		MinimumStock: req.MinimumStock,
		CreatedAt:    time.Now().UTC(),
	}

	r.mu.Lock()
	r.products[product.ID] = product
	r.mu.Unlock()

	return product, nil
}

// GetByID retrieves a product scoped to the company.
func (r *InMemoryRepository) GetByID(ctx context.Context, companyID, id string) (*Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	product, ok := r.products[id]
	if !ok || product.CompanyID != companyID {
		return nil, ErrProductNotFound
	}
	return product, nil
}

// ListByCompany returns products of a company, optionally filtered to low stock.
func (r *InMemoryRepository) ListByCompany(ctx context.Context, companyID string, lowStockOnly bool) ([]*Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*Product
	for _, p := range r.products {
		if p.CompanyID != companyID {
			continue
		}
		if lowStockOnly && !p.LowStock() {
			continue
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// AdjustQuantity adds delta to the stock level.
func (r *InMemoryRepository) AdjustQuantity(ctx context.Context, companyID, id string, delta int) (*Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	product, ok := r.products[id]
	if !ok || product.CompanyID != companyID {
		return nil, ErrProductNotFound
	}
	if product.Quantity+delta < 0 {
		return nil, ErrInsufficientStock
	}
	product.Quantity += delta
	return product, nil
}
