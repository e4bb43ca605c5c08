package clients

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresRepository stores clients and vehicles in the relational database.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository initializes a repo backed by pgxpool.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	if pool == nil {
		panic("clients: pgx pool required")
	}
	return &PostgresRepository{pool: pool}
}

// Create inserts a new client row.
func (r *PostgresRepository) Create(ctx context.Context, req *CreateClientRequest) (*Client, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	id := uuid.New()
	query := `
		INSERT INTO clients (id, company_id, name, phone, email)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at
	`
	var createdAt time.Time
	if err := r.pool.QueryRow(ctx, query, id, req.CompanyID, req.Name, req.Phone, req.Email).Scan(&createdAt); err != nil {
		return nil, fmt.Errorf("clients: insert failed: %w", err)
	}

	return &Client{
		ID:        id.String(),
		CompanyID: req.CompanyID,
		Name:      req.Name,
		Phone:     req.Phone,
		Email:     req.Email,
		CreatedAt: createdAt,
	}, nil
}

// GetByID fetches a client scoped to the company.
func (r *PostgresRepository) GetByID(ctx context.Context, companyID, id string) (*Client, error) {
	query := `
		SELECT id, company_id, name, phone, email, created_at
		FROM clients
		WHERE id = $1 AND company_id = $2
	`
	return scanClient(r.pool.QueryRow(ctx, query, id, companyID))
}

// FindLatestByNameContaining resolves the most recent client whose name
// contains the fragment.
func (r *PostgresRepository) FindLatestByNameContaining(ctx context.Context, companyID, fragment string) (*Client, error) {
	if fragment == "" {
		return nil, ErrClientNotFound
	}
	query := `
		SELECT id, company_id, name, phone, email, created_at
		FROM clients
		WHERE company_id = $1 AND name ILIKE '%' || $2 || '%'
		ORDER BY created_at DESC
		LIMIT 1
	`
	return scanClient(r.pool.QueryRow(ctx, query, companyID, fragment))
}

// ListByCompany returns clients of a company ordered by creation time.
func (r *PostgresRepository) ListByCompany(ctx context.Context, companyID string, filter ListFilter) ([]*Client, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	query := `
		SELECT id, company_id, name, phone, email, created_at
		FROM clients
		WHERE company_id = $1
		ORDER BY created_at ASC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.pool.Query(ctx, query, companyID, limit, filter.Offset)
	if err != nil {
		return nil, fmt.Errorf("clients: list failed: %w", err)
	}
	defer rows.Close()

	var out []*Client
	for rows.Next() {
		var c Client
		if err := rows.Scan(&c.ID, &c.CompanyID, &c.Name, &c.Phone, &c.Email, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("clients: scan failed: %w", err)
		}
		out = append(out, &c)
	}
	return out, rows.Err()
}

// AddVehicle inserts a vehicle row linked to a client.
func (r *PostgresRepository) AddVehicle(ctx context.Context, req *CreateVehicleRequest) (*Vehicle, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	id := uuid.New()
	query := `
		INSERT INTO vehicles (id, client_id, model, plate, color)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at
	`
	var createdAt time.Time
	if err := r.pool.QueryRow(ctx, query, id, req.ClientID, req.Model, req.Plate, req.Color).Scan(&createdAt); err != nil {
		return nil, fmt.Errorf("clients: vehicle insert failed: %w", err)
	}

	return &Vehicle{
		ID:        id.String(),
		ClientID:  req.ClientID,
		Model:     req.Model,
		Plate:     req.Plate,
		Color:     req.Color,
		CreatedAt: createdAt,
	}, nil
}

// ListVehicles returns the vehicles linked to a client.
func (r *PostgresRepository) ListVehicles(ctx context.Context, clientID string) ([]*Vehicle, error) {
	query := `
		SELECT id, client_id, model, plate, color, created_at
		FROM vehicles
		WHERE client_id = $1
		ORDER BY created_at ASC
	`
	rows, err := r.pool.Query(ctx, query, clientID)
	if err != nil {
		return nil, fmt.Errorf("clients: vehicle list failed: %w", err)
	}
	defer rows.Close()

	var out []*Vehicle
	for rows.Next() {
		var v Vehicle
		if err := rows.Scan(&v.ID, &v.ClientID, &v.Model, &v.Plate, &v.Color, &v.CreatedAt); err != nil {
			return nil, fmt.Errorf("clients: vehicle scan failed: %w", err)
		}
		out = append(out, &v)
	}
	return out, rows.Err()
}

func scanClient(row pgx.Row) (*Client, error) {
	var c Client
	if err := row.Scan(&c.ID, &c.CompanyID, &c.Name, &c.Phone, &c.Email, &c.CreatedAt); err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrClientNotFound
		}
		return nil, fmt.Errorf("clients: select failed: %w", err)
	}
	return &c, nil
}
