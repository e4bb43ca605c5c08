package quotes

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresRepository stores quotes in the relational database. Items are kept
// as a JSONB column; they are only ever read back as a whole.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository initializes a repo backed by pgxpool.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	if pool == nil {
		panic("quotes: pgx pool required")
	}
	return &PostgresRepository{pool: pool}
}

// Create stores a new pending quote.
func (r *PostgresRepository) Create(ctx context.Context, req *CreateQuoteRequest) (*Quote, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	items, err := json.Marshal(req.Items)
	if err != nil {
		return nil, fmt.Errorf("quotes: marshal items: %w", err)
	}

	id := uuid.New()
	query := `
		INSERT INTO quotes (id, company_id, client_id, description, items, total_cents, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at
	`
	var createdAt time.Time
	if err := r.pool.QueryRow(ctx, query,
		id,
		req.CompanyID,
		req.ClientID,
		req.Description,
		items,
		req.Total(),
		StatusPending,
	).Scan(&createdAt); err != nil {
		return nil, fmt.Errorf("quotes: insert failed: %w", err)
	}

	return &Quote{
		ID:          id.String(),
		CompanyID:   req.CompanyID,
		ClientID:    req.ClientID,
		Description: req.Description,
		Items:       append([]QuoteItem(nil), req.Items...),
		TotalCents:  req.Total(),
		Status:      StatusPending,
		CreatedAt:   createdAt,
	}, nil
}

// GetByID fetches a quote scoped to the company.
func (r *PostgresRepository) GetByID(ctx context.Context, companyID, id string) (*Quote, error) {
	query := `
		SELECT id, company_id, client_id, description, items, total_cents, status, created_at
		FROM quotes
		WHERE id = $1 AND company_id = $2
	`
	return scanQuote(r.pool.QueryRow(ctx, query, id, companyID))
}

// ListByCompany returns quotes of a company ordered by creation time.
func (r *PostgresRepository) ListByCompany(ctx context.Context, companyID string) ([]*Quote, error) {
	query := `
		SELECT id, company_id, client_id, description, items, total_cents, status, created_at
		FROM quotes
		WHERE company_id = $1
		ORDER BY created_at ASC
	`
	rows, err := r.pool.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("quotes: list failed: %w", err)
	}
	defer rows.Close()

	var out []*Quote
	for rows.Next() {
		quote, err := scanQuote(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, quote)
	}
	return out, rows.Err()
}

// SetStatus resolves a pending quote.
func (r *PostgresRepository) SetStatus(ctx context.Context, companyID, id string, status Status) (*Quote, error) {
	query := `
		UPDATE quotes
		SET status = $3
		WHERE id = $1 AND company_id = $2 AND status = $4
		RETURNING id, company_id, client_id, description, items, total_cents, status, created_at
	`
	quote, err := scanQuote(r.pool.QueryRow(ctx, query, id, companyID, status, StatusPending))
	if err == ErrQuoteNotFound {
		// Distinguish "missing" from "already resolved".
		if _, getErr := r.GetByID(ctx, companyID, id); getErr == nil {
			return nil, ErrQuoteResolved
		}
		return nil, ErrQuoteNotFound
	}
	return quote, err
}

func scanQuote(row pgx.Row) (*Quote, error) {
	var (
		q     Quote
		items []byte
	)
	if err := row.Scan(&q.ID, &q.CompanyID, &q.ClientID, &q.Description, &items, &q.TotalCents, &q.Status, &q.CreatedAt); err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrQuoteNotFound
		}
		return nil, fmt.Errorf("quotes: select failed: %w", err)
	}
	if len(items) > 0 {
		if err := json.Unmarshal(items, &q.Items); err != nil {
			return nil, fmt.Errorf("quotes: unmarshal items: %w", err)
		}
	}
	return &q, nil
}
