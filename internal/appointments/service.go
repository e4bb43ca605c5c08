package appointments

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/thiagodeassisbm-source/lavamasterapp-sub001/pkg/logging"
)

var appointmentsTracer = otel.Tracer("lavamaster.internal.appointments")

// Service applies lifecycle transitions on top of the repository.
type Service struct {
	repo   Repository
	logger *logging.Logger
}

// NewService constructs an appointments service.
func NewService(repo Repository, logger *logging.Logger) *Service {
	if repo == nil {
		panic("appointments: repository required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Service{repo: repo, logger: logger}
}

// Confirm transitions a scheduled appointment to confirmed.
func (s *Service) Confirm(ctx context.Context, companyID, id string) (*Appointment, error) {
	return s.transition(ctx, "confirm", companyID, id, func(a *Appointment) error {
		return a.Confirm()
	})
}

// Start transitions a scheduled or confirmed appointment to in_progress.
func (s *Service) Start(ctx context.Context, companyID, id string) (*Appointment, error) {
	return s.transition(ctx, "start", companyID, id, func(a *Appointment) error {
		return a.Start()
	})
}

// Complete transitions an in-progress appointment to completed.
func (s *Service) Complete(ctx context.Context, companyID, id string) (*Appointment, error) {
	return s.transition(ctx, "complete", companyID, id, func(a *Appointment) error {
		return a.Complete()
	})
}

// Cancel transitions any non-terminal appointment to cancelled.
func (s *Service) Cancel(ctx context.Context, companyID, id string) (*Appointment, error) {
	return s.transition(ctx, "cancel", companyID, id, func(a *Appointment) error {
		return a.Cancel()
	})
}

// Reschedule moves the appointment and resets it to scheduled.
func (s *Service) Reschedule(ctx context.Context, companyID, id string, at time.Time) (*Appointment, error) {
	return s.transition(ctx, "reschedule", companyID, id, func(a *Appointment) error {
		return a.Reschedule(at)
	})
}

func (s *Service) transition(ctx context.Context, op, companyID, id string, apply func(*Appointment) error) (*Appointment, error) {
	ctx, span := appointmentsTracer.Start(ctx, "appointments."+op)
	defer span.End()
	span.SetAttributes(
		attribute.String("lavamaster.company_id", companyID),
		attribute.String("lavamaster.appointment_id", id),
	)

	appt, err := s.repo.GetByID(ctx, companyID, id)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	if err := apply(appt); err != nil {
		span.RecordError(err)
		return nil, err
	}
	if err := s.repo.Update(ctx, appt); err != nil {
		span.RecordError(err)
		return nil, err
	}

	s.logger.Info("appointment transition",
		"op", op,
		"company_id", companyID,
		"appointment_id", id,
		"status", appt.Status,
	)
	return appt, nil
}
