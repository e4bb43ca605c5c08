package clients

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Repository defines the interface for client and vehicle storage.
type Repository interface {
	Create(ctx context.Context, req *CreateClientRequest) (*Client, error)
	GetByID(ctx context.Context, companyID, id string) (*Client, error)
	// FindLatestByNameContaining returns the most recently created client in
	// the company whose name contains the fragment, case-insensitively.
	FindLatestByNameContaining(ctx context.Context, companyID, fragment string) (*Client, error)
	ListByCompany(ctx context.Context, companyID string, filter ListFilter) ([]*Client, error)
	AddVehicle(ctx context.Context, req *CreateVehicleRequest) (*Vehicle, error)
	ListVehicles(ctx context.Context, clientID string) ([]*Vehicle, error)
}

// InMemoryRepository is a Repository backed by maps, used in development
// and tests.
type InMemoryRepository struct {
	mu       sync.RWMutex
	clients  map[string]*Client
	vehicles map[string][]*Vehicle // clientID -> vehicles
}

// NewInMemoryRepository creates an empty in-memory repository.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		clients:  make(map[string]*Client),
		vehicles: make(map[string][]*Vehicle),
	}
}

// Create registers a new client.
func (r *InMemoryRepository) Create(ctx context.Context, req *CreateClientRequest) (*Client, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	client := &Client{
		ID:        uuid.New().String(),
		CompanyID: req.CompanyID,
		Name:      req.Name,
		Phone:     req.Phone,
		Email:     req.Email,
		CreatedAt: time.Now().UTC(),
	}

	r.mu.Lock()
	r.clients[client.ID] = client
	r.mu.Unlock()

	return client, nil
}

// GetByID retrieves a client scoped to the company.
func (r *InMemoryRepository) GetByID(ctx context.Context, companyID, id string) (*Client, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	client, ok := r.clients[id]
	if !ok || client.CompanyID != companyID {
		return nil, ErrClientNotFound
	}
	return client, nil
}

// FindLatestByNameContaining implements the containment lookup used by the
// confirmation flow.
func (r *InMemoryRepository) FindLatestByNameContaining(ctx context.Context, companyID, fragment string) (*Client, error) {
	fragment = strings.ToLower(strings.TrimSpace(fragment))
	if fragment == "" {
		return nil, ErrClientNotFound
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	var latest *Client
	for _, c := range r.clients {
		if c.CompanyID != companyID {
			continue
		}
		if !strings.Contains(strings.ToLower(c.Name), fragment) {
			continue
		}
		if latest == nil || c.CreatedAt.After(latest.CreatedAt) {
			latest = c
		}
	}
	if latest == nil {
		return nil, ErrClientNotFound
	}
	return latest, nil
}

// ListByCompany returns clients of a company ordered by creation time.
func (r *InMemoryRepository) ListByCompany(ctx context.Context, companyID string, filter ListFilter) ([]*Client, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*Client
	for _, c := range r.clients {
		if c.CompanyID == companyID {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })

	out = applyWindow(out, filter)
	return out, nil
}

// AddVehicle links a vehicle to a client.
func (r *InMemoryRepository) AddVehicle(ctx context.Context, req *CreateVehicleRequest) (*Vehicle, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.clients[req.ClientID]; !ok {
		return nil, ErrClientNotFound
	}

	vehicle := &Vehicle{
		ID:        uuid.New().String(),
		ClientID:  req.ClientID,
		Model:     req.Model,
		Plate:     req.Plate,
		Color:     req.Color,
		CreatedAt: time.Now().UTC(),
	}
	r.vehicles[req.ClientID] = append(r.vehicles[req.ClientID], vehicle)
	return vehicle, nil
}

// ListVehicles returns the vehicles linked to a client.
func (r *InMemoryRepository) ListVehicles(ctx context.Context, clientID string) ([]*Vehicle, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Vehicle, len(r.vehicles[clientID]))
	copy(out, r.vehicles[clientID])
	return out, nil
}

func applyWindow(list []*Client, filter ListFilter) []*Client {
	if filter.Offset > 0 {
		if filter.Offset >= len(list) {
			return nil
		}
		list = list[filter.Offset:]
	}
	if filter.Limit > 0 && filter.Limit < len(list) {
		list = list[:filter.Limit]
	}
	return list
}
