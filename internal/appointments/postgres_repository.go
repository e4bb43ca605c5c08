package appointments

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresRepository stores appointments in the relational database.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository initializes a repo backed by pgxpool.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	if pool == nil {
		panic("appointments: pgx pool required")
	}
	return &PostgresRepository{pool: pool}
}

const apptColumns = "id, company_id, client_id, COALESCE(vehicle_id, ''), COALESCE(service, ''), scheduled_at, status, COALESCE(notes, ''), created_at, updated_at"

// Create books a new appointment in scheduled status.
func (r *PostgresRepository) Create(ctx context.Context, req *CreateAppointmentRequest) (*Appointment, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	id := uuid.New()
	query := `
		INSERT INTO appointments (id, company_id, client_id, vehicle_id, service, scheduled_at, status, notes)
		VALUES ($1, $2, $3, NULLIF($4, ''), $5, $6, $7, $8)
		RETURNING created_at, updated_at
	`
	var createdAt, updatedAt time.Time
	if err := r.pool.QueryRow(ctx, query,
		id,
		req.CompanyID,
		req.ClientID,
		req.VehicleID,
		req.Service,
		req.ScheduledAt.UTC(),
		StatusScheduled,
		req.Notes,
	).Scan(&createdAt, &updatedAt); err != nil {
		return nil, fmt.Errorf("appointments: insert failed: %w", err)
	}

	return &Appointment{
		ID:          id.String(),
		CompanyID:   req.CompanyID,
		ClientID:    req.ClientID,
		VehicleID:   req.VehicleID,
		Service:     req.Service,
		ScheduledAt: req.ScheduledAt.UTC(),
		Status:      StatusScheduled,
		Notes:       req.Notes,
		CreatedAt:   createdAt,
		UpdatedAt:   updatedAt,
	}, nil
}

// GetByID fetches an appointment scoped to the company.
func (r *PostgresRepository) GetByID(ctx context.Context, companyID, id string) (*Appointment, error) {
	query := fmt.Sprintf(`SELECT %s FROM appointments WHERE id = $1 AND company_id = $2`, apptColumns)
	return scanAppointment(r.pool.QueryRow(ctx, query, id, companyID))
}

// ListByCompany returns appointments matching the filter ordered by schedule.
func (r *PostgresRepository) ListByCompany(ctx context.Context, companyID string, filter ListFilter) ([]*Appointment, error) {
	var (
		conds = []string{"company_id = $1"}
		args  = []any{companyID}
	)
	if filter.ClientID != "" {
		args = append(args, filter.ClientID)
		conds = append(conds, "client_id = $"+strconv.Itoa(len(args)))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		conds = append(conds, "status = $"+strconv.Itoa(len(args)))
	}
	if filter.From != nil {
		args = append(args, filter.From.UTC())
		conds = append(conds, "scheduled_at >= $"+strconv.Itoa(len(args)))
	}
	if filter.To != nil {
		args = append(args, filter.To.UTC())
		conds = append(conds, "scheduled_at < $"+strconv.Itoa(len(args)))
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	args = append(args, limit, filter.Offset)

	query := fmt.Sprintf(
		`SELECT %s FROM appointments WHERE %s ORDER BY scheduled_at ASC LIMIT $%d OFFSET $%d`,
		apptColumns, strings.Join(conds, " AND "), len(args)-1, len(args),
	)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("appointments: list failed: %w", err)
	}
	defer rows.Close()

	var out []*Appointment
	for rows.Next() {
		appt, err := scanAppointment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, appt)
	}
	return out, rows.Err()
}

// FirstScheduledInWindow returns the earliest scheduled appointment in the window.
func (r *PostgresRepository) FirstScheduledInWindow(ctx context.Context, companyID, clientID string, from, to *time.Time) (*Appointment, error) {
	list, err := r.ListByCompany(ctx, companyID, ListFilter{
		ClientID: clientID,
		Status:   StatusScheduled,
		From:     from,
		To:       to,
		Limit:    1,
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
func (r *PostgresRepository) Update(ctx context.Context, appt *Appointment) error {
	query := `
		UPDATE appointments
		SET scheduled_at = $3, status = $4, notes = $5, updated_at = $6
		WHERE id = $1 AND company_id = $2
	`
	tag, err := r.pool.Exec(ctx, query,
		appt.ID,
		appt.CompanyID,
		appt.ScheduledAt.UTC(),
		appt.Status,
		appt.Notes,
		time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("appointments: update failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrAppointmentNotFound
	}
	return nil
}

func scanAppointment(row pgx.Row) (*Appointment, error) {
	var a Appointment
	if err := row.Scan(
		&a.ID,
		&a.CompanyID,
		&a.ClientID,
		&a.VehicleID,
		&a.Service,
		&a.ScheduledAt,
		&a.Status,
		&a.Notes,
		&a.CreatedAt,
		&a.UpdatedAt,
	); err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrAppointmentNotFound
		}
		return nil, fmt.Errorf("appointments: select failed: %w", err)
	}
	return &a, nil
}
