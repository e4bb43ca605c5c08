package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresRepository stores products in the relational database.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository initializes a repo backed by pgxpool.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	if pool == nil {
		panic("inventory: pgx pool required")
	}
	return &PostgresRepository{pool: pool}
}

// Create registers a new product.
func (r *PostgresRepository) Create(ctx context.Context, req *CreateProductRequest) (*Product, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	id := uuid.New()
	query := `
		INSERT INTO inventory_products (id, company_id, name, unit, quantity, minimum_stock)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at
	`
	var createdAt time.Time
	if err := r.pool.QueryRow(ctx, query, id, req.CompanyID, req.Name, req.Unit, req.Quantity, req.MinimumStock).Scan(&createdAt); err != nil {
		return nil, fmt.Errorf("inventory: insert failed: %w", err)
	}

	return &Product{
		ID:           id.String(),
		CompanyID:    req.CompanyID,
		Name:         req.Name,
		Unit:         req.Unit,
		Quantity:     req.Quantity,
		MinimumStock: req.MinimumStock,
		CreatedAt:    createdAt,
	}, nil
}

// GetByID fetches a product scoped to the company.
func (r *PostgresRepository) GetByID(ctx context.Context, companyID, id string) (*Product, error) {
	query := `
		SELECT id, company_id, name, COALESCE(unit, ''), quantity, minimum_stock, created_at
		FROM inventory_products
		WHERE id = $1 AND company_id = $2
	`
	return scanProduct(r.pool.QueryRow(ctx, query, id, companyID))
}

// ListByCompany returns products of a company, optionally filtered to low stock.
func (r *PostgresRepository) ListByCompany(ctx context.Context, companyID string, lowStockOnly bool) ([]*Product, error) {
	query := `
		SELECT id, company_id, name, COALESCE(unit, ''), quantity, minimum_stock, created_at
		FROM inventory_products
		WHERE company_id = $1
	`
	if lowStockOnly {
		query += " AND quantity <= minimum_stock"
	}
	query += " ORDER BY name ASC"

	rows, err := r.pool.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("inventory: list failed: %w", err)
	}
	defer rows.Close()

	var out []*Product
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, product)
	}
	return out, rows.Err()
}

// AdjustQuantity adds delta to the stock level, refusing to go negative.
func (r *PostgresRepository) AdjustQuantity(ctx context.Context, companyID, id string, delta int) (*Product, error) {
	query := `
		UPDATE inventory_products
		SET quantity = quantity + $3
		WHERE id = $1 AND company_id = $2 AND quantity + $3 >= 0
		RETURNING id, company_id, name, COALESCE(unit, ''), quantity, minimum_stock, created_at
	`
	product, err := scanProduct(r.pool.QueryRow(ctx, query, id, companyID, delta))
	if err == ErrProductNotFound {
		if _, getErr := r.GetByID(ctx, companyID, id); getErr == nil {
			return nil, ErrInsufficientStock
		}
		return nil, ErrProductNotFound
	}
	return product, err
}

func scanProduct(row pgx.Row) (*Product, error) {
	var p Product
	if err := row.Scan(&p.ID, &p.CompanyID, &p.Name, &p.Unit, &p.Quantity, &p.MinimumStock, &p.CreatedAt); err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("inventory: select failed: %w", err)
	}
	return &p, nil
}
