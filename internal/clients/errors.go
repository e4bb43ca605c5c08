package clients

import "errors"

var (
	// ErrInvalidName is returned when the client name is missing.
	ErrInvalidName = errors.New("client name is required")

	// ErrMissingCompanyID is returned when the tenant scope is absent.
	ErrMissingCompanyID = errors.New("company id is required")

	// ErrMissingClientID is returned when a vehicle has no owning client.
	ErrMissingClientID = errors.New("client id is required")

	// ErrInvalidVehicleModel is returned when the vehicle model is missing.
	ErrInvalidVehicleModel = errors.New("vehicle model is required")

	// ErrClientNotFound is returned when no client matches the lookup.
	ErrClientNotFound = errors.New("client not found")
)
