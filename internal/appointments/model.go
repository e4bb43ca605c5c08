package appointments

import (
	"strings"
	"time"
)

// Status is the lifecycle state of an appointment.
type Status string

const (
	StatusScheduled  Status = "scheduled"
	StatusConfirmed  Status = "confirmed"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

// Terminal reports whether no further transitions are allowed.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// Appointment is a scheduled detailing visit. The appointment itself owns its
// status transitions; callers go through the methods below rather than
// assigning Status directly.
type Appointment struct {
	ID          string    `json:"id"`
	CompanyID   string    `json:"company_id"`
	ClientID    string    `json:"client_id"`
	VehicleID   string    `json:"vehicle_id,omitempty"`
	Service     string    `json:"service,omitempty"`
	ScheduledAt time.Time `json:"scheduled_at"`
	Status      Status    `json:"status"`
	Notes       string    `json:"notes,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Confirm moves a scheduled appointment to confirmed.
func (a *Appointment) Confirm() error {
	if a.Status != StatusScheduled {
		return transitionError(a.Status, StatusConfirmed)
	}
	a.setStatus(StatusConfirmed)
	return nil
}

// Start moves a scheduled or confirmed appointment to in_progress.
func (a *Appointment) Start() error {
	if a.Status != StatusScheduled && a.Status != StatusConfirmed {
		return transitionError(a.Status, StatusInProgress)
	}
	a.setStatus(StatusInProgress)
	return nil
}

// Complete moves an in-progress appointment to completed.
func (a *Appointment) Complete() error {
	if a.Status != StatusInProgress {
		return transitionError(a.Status, StatusCompleted)
	}
	a.setStatus(StatusCompleted)
	return nil
}

// Cancel moves any non-terminal appointment to cancelled.
func (a *Appointment) Cancel() error {
	if a.Status.Terminal() {
		return transitionError(a.Status, StatusCancelled)
	}
	a.setStatus(StatusCancelled)
	return nil
}

// Reschedule moves the appointment to a new time and resets it to scheduled.
// Completed and cancelled appointments cannot be rescheduled.
func (a *Appointment) Reschedule(at time.Time) error {
	if a.Status.Terminal() {
		return transitionError(a.Status, StatusScheduled)
	}
	a.ScheduledAt = at.UTC()
	a.setStatus(StatusScheduled)
	return nil
}

func (a *Appointment) setStatus(s Status) {
	a.Status = s
	a.UpdatedAt = time.Now().UTC()
}

// CreateAppointmentRequest is the payload for booking a visit.
type CreateAppointmentRequest struct {
	CompanyID   string    `json:"-"`
	ClientID    string    `json:"client_id"`
	VehicleID   string    `json:"vehicle_id"`
	Service     string    `json:"service"`
	ScheduledAt time.Time `json:"scheduled_at"`
	Notes       string    `json:"notes"`
}

// Validate checks required fields.
func (r *CreateAppointmentRequest) Validate() error {
	if strings.TrimSpace(r.CompanyID) == "" {
		return ErrMissingCompanyID
	}
	if strings.TrimSpace(r.ClientID) == "" {
		return ErrMissingClientID
	}
	if r.ScheduledAt.IsZero() {
		return ErrMissingSchedule
	}
	return nil
}

// ListFilter narrows appointment listings.
type ListFilter struct {
	ClientID string
	Status   Status
	From     *time.Time
	To       *time.Time
	Limit    int
	Offset   int
}
