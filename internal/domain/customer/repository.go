package customer

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

var ErrNotFound = errors.New("customer not found")

// ListFilters narrows the customer list
type ListFilters struct {
	Search     string
	WithCredit bool // only customers with outstanding balance, highest first
}

// Repository provides customer data access
type Repository struct {
	db *sqlx.DB
}

// NewRepository creates new customer repository
func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

const customerColumns = `id, name, email, phone, address, credit_limit, current_credit, store_id, created_at, updated_at`

// List returns customers, optionally filtered
func (r *Repository) List(ctx context.Context, filters ListFilters) ([]*Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE 1=1`
	args := make([]interface{}, 0, 2)
	idx := 1

	if filters.Search != "" {
		query += fmt.Sprintf(" AND (name ILIKE $%d OR phone ILIKE $%d OR email ILIKE $%d)", idx, idx, idx)
		args = append(args, "%"+filters.Search+"%")
		idx++
	}
	if filters.WithCredit {
		query += " AND current_credit > 0 ORDER BY current_credit DESC"
	} else {
		query += " ORDER BY name"
	}

	customers := make([]*Customer, 0)
	if err := r.db.SelectContext(ctx, &customers, query, args...); err != nil {
		return nil, fmt.Errorf("customer repository list: %w", err)
	}
	return customers, nil
}

// GetByID returns a customer by ID
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*Customer, error) {
	var c Customer
	err := r.db.GetContext(ctx, &c,
		`SELECT `+customerColumns+` FROM customers WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("customer repository get: %w", err)
	}
	return &c, nil
}

// Count returns the total number of customers
func (r *Repository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM customers`); err != nil {
		return 0, fmt.Errorf("customer repository count: %w", err)
	}
	return n, nil
}

// Create inserts a new customer
func (r *Repository) Create(ctx context.Context, c *Customer) error {
	query := `
		INSERT INTO customers (id, name, email, phone, address, credit_limit, current_credit, store_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.db.ExecContext(ctx, query,
		c.ID, c.Name, c.Email, c.Phone, c.Address, c.CreditLimit, c.CurrentCredit, c.StoreID, c.CreatedAt, c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("customer repository create: %w", err)
	}
	return nil
}

// Update updates contact details and the credit limit.
// The outstanding balance is only ever moved by ledger operations.
func (r *Repository) Update(ctx context.Context, c *Customer) error {
	query := `
		UPDATE customers
		SET name = $2, email = $3, phone = $4, address = $5, credit_limit = $6, updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx, query,
		c.ID, c.Name, c.Email, c.Phone, c.Address, c.CreditLimit)
	if err != nil {
		return fmt.Errorf("customer repository update: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("customer repository update: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}
