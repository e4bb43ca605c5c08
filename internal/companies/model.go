package companies

import (
	"errors"
	"strings"
	"time"
)

// Company is an isolated tenant owning its own clients, appointments,
// quotes and inventory.
type Company struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateCompanyRequest is the payload for registering a tenant.
type CreateCompanyRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email"`
}

// Validate checks required fields.
func (r *CreateCompanyRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return ErrInvalidName
	}
	return nil
}

var (
	// ErrInvalidName is returned when the company name is missing.
	ErrInvalidName = errors.New("company name is required")

	// ErrCompanyNotFound is returned when no company matches the lookup.
	ErrCompanyNotFound = errors.New("company not found")

	// ErrNoCompanies is returned by First when the system has no tenants at all.
	ErrNoCompanies = errors.New("no companies registered")
)
