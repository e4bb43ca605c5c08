package appointments

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingCompanyID is returned when the tenant scope is absent.
	ErrMissingCompanyID = errors.New("company id is required")

	// ErrMissingClientID is returned when no client is linked.
	ErrMissingClientID = errors.New("client id is required")

	// ErrMissingSchedule is returned when the scheduled time is absent.
	ErrMissingSchedule = errors.New("scheduled time is required")

	// ErrAppointmentNotFound is returned when no appointment matches the lookup.
	ErrAppointmentNotFound = errors.New("appointment not found")

	// ErrInvalidTransition is returned when a status change breaks the
	// appointment lifecycle rules.
	ErrInvalidTransition = errors.New("invalid status transition")
)

func transitionError(from, to Status) error {
	return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
}
