package companies

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresRepository stores companies in the relational database.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository initializes a repo backed by pgxpool.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	if pool == nil {
		panic("companies: pgx pool required")
	}
	return &PostgresRepository{pool: pool}
}

// Create inserts a new row.
func (r *PostgresRepository) Create(ctx context.Context, req *CreateCompanyRequest) (*Company, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	id := uuid.New()
	query := `
		INSERT INTO companies (id, name, phone, email)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at
	`
	var createdAt time.Time
	if err := r.pool.QueryRow(ctx, query, id, req.Name, req.Phone, req.Email).Scan(&createdAt); err != nil {
		return nil, fmt.Errorf("companies: insert failed: %w", err)
	}

	return &Company{
		ID:        id.String(),
		Name:      req.Name,
		Phone:     req.Phone,
		Email:     req.Email,
		CreatedAt: createdAt,
	}, nil
}

// GetByID fetches a company by id.
func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*Company, error) {
	query := `
		SELECT id, name, phone, email, created_at
		FROM companies
		WHERE id = $1
	`
	return r.scanOne(r.pool.QueryRow(ctx, query, id))
}

// First fetches the oldest company.
func (r *PostgresRepository) First(ctx context.Context) (*Company, error) {
	query := `
		SELECT id, name, phone, email, created_at
		FROM companies
		ORDER BY created_at ASC
		LIMIT 1
	`
	company, err := r.scanOne(r.pool.QueryRow(ctx, query))
	if err == ErrCompanyNotFound {
		return nil, ErrNoCompanies
	}
	return company, err
}

// List returns all companies ordered by creation time.
func (r *PostgresRepository) List(ctx context.Context) ([]*Company, error) {
	query := `
		SELECT id, name, phone, email, created_at
		FROM companies
		ORDER BY created_at ASC
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("companies: list failed: %w", err)
	}
	defer rows.Close()

	var out []*Company
	for rows.Next() {
		var c Company
		if err := rows.Scan(&c.ID, &c.Name, &c.Phone, &c.Email, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("companies: scan failed: %w", err)
		}
		out = append(out, &c)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) scanOne(row pgx.Row) (*Company, error) {
	var c Company
	if err := row.Scan(&c.ID, &c.Name, &c.Phone, &c.Email, &c.CreatedAt); err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrCompanyNotFound
		}
		return nil, fmt.Errorf("companies: select failed: %w", err)
	}
	return &c, nil
}
