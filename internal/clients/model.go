package clients

import (
	"strings"
	"time"
)

// Client is a customer of a detailing company.
type Client struct {
	ID        string    `json:"id"`
	CompanyID string    `json:"company_id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// Vehicle belongs to a client.
type Vehicle struct {
	ID        string    `json:"id"`
	ClientID  string    `json:"client_id"`
	Model     string    `json:"model"`
	Plate     string    `json:"plate"`
	Color     string    `json:"color"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateClientRequest is the payload for registering a client.
type CreateClientRequest struct {
	CompanyID string `json:"-"`
	Name      string `json:"name"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
}

// Validate checks required fields.
func (r *CreateClientRequest) Validate() error {
	if strings.TrimSpace(r.CompanyID) == "" {
		return ErrMissingCompanyID
	}
	if strings.TrimSpace(r.Name) == "" {
		return ErrInvalidName
	}
	return nil
}

// CreateVehicleRequest is the payload for linking a vehicle to a client.
type CreateVehicleRequest struct {
	ClientID string `json:"-"`
	Model    string `json:"model"`
	Plate    string `json:"plate"`
	Color    string `json:"color"`
}

// Validate checks required fields.
func (r *CreateVehicleRequest) Validate() error {
	if strings.TrimSpace(r.ClientID) == "" {
		return ErrMissingClientID
	}
	if strings.TrimSpace(r.Model) == "" {
		return ErrInvalidVehicleModel
	}
	return nil
}

// ListFilter narrows client listings.
type ListFilter struct {
	Limit  int
	Offset int
}
