package inventory

import (
	"errors"
	"strings"
	"time"
)

// Product is a stocked supply item (wax, shampoo, microfiber, etc).
type Product struct {
	ID            string    `json:"id"`
	CompanyID     string    `json:"company_id"`
	Name          string    `json:"name"`
	Unit          string    `json:"unit,omitempty"`
	Quantity      int       `json:"quantity"`
	MinimumStock  int       `json:"minimum_stock"`
	CreatedAt     time.Time `json:"created_at"`
}

// LowStock reports whether the product is at or below its minimum.
func (p *Product) LowStock() bool {
	return p.Quantity <= p.MinimumStock
}

// CreateProductRequest is the payload for registering a product.
type CreateProductRequest struct {
	CompanyID    string `json:"-"`
	Name         string `json:"name"`
	Unit         string `json:"unit"`
	Quantity     int    `json:"quantity"`
	MinimumStock int    `json:"minimum_stock"`
}

// Validate checks required fields.
func (r *CreateProductRequest) Validate() error {
	if strings.TrimSpace(r.CompanyID) == "" {
		return ErrMissingCompanyID
	}
	if strings.TrimSpace(r.Name) == "" {
		return ErrInvalidName
	}
	if r.Quantity < 0 || r.MinimumStock < 0 {
		return ErrNegativeQuantity
	}
	return nil
}

var (
	// ErrMissingCompanyID is returned when the tenant scope is absent.
	ErrMissingCompanyID = errors.New("company id is required")

	// ErrInvalidName is returned when the product name is missing.
	ErrInvalidName = errors.New("product name is required")

	// ErrNegativeQuantity is returned for negative stock values.
	ErrNegativeQuantity = errors.New("quantity cannot be negative")

	// ErrProductNotFound is returned when no product matches the lookup.
	ErrProductNotFound = errors.New("product not found")

	// ErrInsufficientStock is returned when an adjustment would drop the
	// quantity below zero.
	ErrInsufficientStock = errors.New("insufficient stock")
)
