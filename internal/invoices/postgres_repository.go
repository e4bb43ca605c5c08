package invoices

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresRepository stores invoices in the relational database.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository initializes a repo backed by pgxpool.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	if pool == nil {
		panic("invoices: pgx pool required")
	}
	return &PostgresRepository{pool: pool}
}

const invoiceColumns = "id, company_id, client_id, COALESCE(appointment_id, ''), COALESCE(description, ''), amount_cents, paid, paid_at, created_at"

// Create issues a new invoice.
func (r *PostgresRepository) Create(ctx context.Context, req *CreateInvoiceRequest) (*Invoice, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	id := uuid.New()
	query := `
		INSERT INTO invoices (id, company_id, client_id, appointment_id, description, amount_cents)
		VALUES ($1, $2, $3, NULLIF($4, ''), $5, $6)
		RETURNING created_at
	`
	var createdAt time.Time
	if err := r.pool.QueryRow(ctx, query,
		id,
		req.CompanyID,
		req.ClientID,
		req.AppointmentID,
		req.Description,
		req.AmountCents,
	).Scan(&createdAt); err != nil {
		return nil, fmt.Errorf("invoices: insert failed: %w", err)
	}

	return &Invoice{
		ID:            id.String(),
		CompanyID:     req.CompanyID,
		ClientID:      req.ClientID,
		AppointmentID: req.AppointmentID,
		Description:   req.Description,
		AmountCents:   req.AmountCents,
		CreatedAt:     createdAt,
	}, nil
}

// GetByID fetches an invoice scoped to the company.
func (r *PostgresRepository) GetByID(ctx context.Context, companyID, id string) (*Invoice, error) {
	query := fmt.Sprintf(`SELECT %s FROM invoices WHERE id = $1 AND company_id = $2`, invoiceColumns)
	return scanInvoice(r.pool.QueryRow(ctx, query, id, companyID))
}

// ListByCompany returns invoices of a company ordered by creation time.
func (r *PostgresRepository) ListByCompany(ctx context.Context, companyID string, unpaidOnly bool) ([]*Invoice, error) {
	query := fmt.Sprintf(`SELECT %s FROM invoices WHERE company_id = $1`, invoiceColumns)
	if unpaidOnly {
		query += " AND NOT paid"
	}
	query += " ORDER BY created_at ASC"

	rows, err := r.pool.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("invoices: list failed: %w", err)
	}
	defer rows.Close()

	var out []*Invoice
	for rows.Next() {
		invoice, err := scanInvoice(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, invoice)
	}
	return out, rows.Err()
}

// MarkPaid settles an invoice.
func (r *PostgresRepository) MarkPaid(ctx context.Context, companyID, id string) (*Invoice, error) {
	query := fmt.Sprintf(`
		UPDATE invoices
		SET paid = TRUE, paid_at = NOW()
		WHERE id = $1 AND company_id = $2 AND NOT paid
		RETURNING %s
	`, invoiceColumns)
	invoice, err := scanInvoice(r.pool.QueryRow(ctx, query, id, companyID))
	if err == ErrInvoiceNotFound {
		if _, getErr := r.GetByID(ctx, companyID, id); getErr == nil {
			return nil, ErrAlreadyPaid
		}
		return nil, ErrInvoiceNotFound
	}
	return invoice, err
}

func scanInvoice(row pgx.Row) (*Invoice, error) {
	var inv Invoice
	if err := row.Scan(
		&inv.ID,
		&inv.CompanyID,
		&inv.ClientID,
		&inv.AppointmentID,
		&inv.Description,
		&inv.AmountCents,
		&inv.Paid,
		&inv.PaidAt,
		&inv.CreatedAt,
	); err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrInvoiceNotFound
		}
		return nil, fmt.Errorf("invoices: select failed: %w", err)
	}
	return &inv, nil
}
