package appointments

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Repository defines the interface for appointment storage.
type Repository interface {
	Create(ctx context.Context, req *CreateAppointmentRequest) (*Appointment, error)
	GetByID(ctx context.Context, companyID, id string) (*Appointment, error)
	ListByCompany(ctx context.Context, companyID string, filter ListFilter) ([]*Appointment, error)
	// FirstScheduledInWindow returns the earliest appointment of the client
	// still in scheduled status within [from, to). A nil bound is open.
	FirstScheduledInWindow(ctx context.Context, companyID, clientID string, from, to *time.Time) (*Appointment, error)
	Update(ctx context.Context, appt *Appointment) error
}

// InMemoryRepository is a Repository backed by a map, used in development
// and tests.
type InMemoryRepository struct {
	mu           sync.RWMutex
	appointments map[string]*Appointment
}

// NewInMemoryRepository creates an empty in-memory repository.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{appointments: make(map[string]*Appointment)}
}

// Create books a new appointment in scheduled status.
func (r *InMemoryRepository) Create(ctx context.Context, req *CreateAppointmentRequest) (*Appointment, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	appt := &Appointment{
		ID:          uuid.New().String(),
		CompanyID:   req.CompanyID,
		ClientID:    req.ClientID,
		VehicleID:   req.VehicleID,
		Service:     req.Service,
		ScheduledAt: req.ScheduledAt.UTC(),
		Status:      StatusScheduled,
		Notes:       req.Notes,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	r.mu.Lock()
	r.appointments[appt.ID] = appt
	r.mu.Unlock()

	clone := *appt
	return &clone, nil
}

// GetByID retrieves an appointment scoped to the company.
func (r *InMemoryRepository) GetByID(ctx context.Context, companyID, id string) (*Appointment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	appt, ok := r.appointments[id]
	if !ok || appt.CompanyID != companyID {
		return nil, ErrAppointmentNotFound
	}
	clone := *appt
	return &clone, nil
}

// ListByCompany returns appointments matching the filter ordered by schedule.
func (r *InMemoryRepository) ListByCompany(ctx context.Context, companyID string, filter ListFilter) ([]*Appointment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*Appointment
	for _, a := range r.appointments {
		if a.CompanyID != companyID {
			continue
		}
		if filter.ClientID != "" && a.ClientID != filter.ClientID {
			continue
		}
		if filter.Status != "" && a.Status != filter.Status {
			continue
		}
		if filter.From != nil && a.ScheduledAt.Before(*filter.From) {
			continue
		}
		if filter.To != nil && !a.ScheduledAt.Before(*filter.To) {
			continue
		}
		clone := *a
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ScheduledAt.Before(out[j].ScheduledAt) })

	if filter.Offset > 0 {
		if filter.Offset >= len(out) {
			return nil, nil
		}
		out = out[filter.Offset:]
	}
	if filter.Limit > 0 && filter.Limit < len(out) {
		out = out[:filter.Limit]
	}
	return out, nil
}

// FirstScheduledInWindow returns the earliest scheduled appointment in the window.
func (r *InMemoryRepository) FirstScheduledInWindow(ctx context.Context, companyID, clientID string, from, to *time.Time) (*Appointment, error) {
	list, err := r.ListByCompany(ctx, companyID, ListFilter{
		ClientID: clientID,
		Status:   StatusScheduled,
		From:     from,
		To:       to,
	})
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, ErrAppointmentNotFound
	}
	return list[0], nil
}

// Update persists a mutated appointment.
func (r *InMemoryRepository) Update(ctx context.Context, appt *Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.appointments[appt.ID]
	if !ok || current.CompanyID != appt.CompanyID {
		return ErrAppointmentNotFound
	}
	clone := *appt
	r.appointments[appt.ID] = &clone
	return nil
}
