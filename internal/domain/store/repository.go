package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

var ErrNotFound = errors.New("store not found")

// Repository provides store data access
type Repository struct {
	db *sqlx.DB
}

// NewRepository creates new store repository
func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

const storeColumns = `id, name, address, phone, email, tax_rate, currency, created_at, updated_at`

// List returns all stores ordered by name
func (r *Repository) List(ctx context.Context) ([]*Store, error) {
	stores := make([]*Store, 0)
	err := r.db.SelectContext(ctx, &stores,
		`SELECT `+storeColumns+` FROM stores ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("store repository list: %w", err)
	}
	return stores, nil
}

// GetByID returns a store by ID
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*Store, error) {
	var s Store
	err := r.db.GetContext(ctx, &s,
		`SELECT `+storeColumns+` FROM stores WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("store repository get: %w", err)
	}
	return &s, nil
}

// GetDefault returns the oldest store row. Single-store installs have
// exactly one; checkout reads its tax rate from here.
func (r *Repository) GetDefault(ctx context.Context) (*Store, error) {
	var s Store
	err := r.db.GetContext(ctx, &s,
		`SELECT `+storeColumns+` FROM stores ORDER BY created_at LIMIT 1`)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("store repository get default: %w", err)
	}
	return &s, nil
}

// Create inserts a new store
func (r *Repository) Create(ctx context.Context, s *Store) error {
	query := `
		INSERT INTO stores (id, name, address, phone, email, tax_rate, currency, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.db.ExecContext(ctx, query,
		s.ID, s.Name, s.Address, s.Phone, s.Email, s.TaxRate, s.Currency, s.CreatedAt, s.UpdatedAt)
	if err != nil {
		return fmt.Errorf("store repository create: %w", err)
	}
	return nil
}

// Update updates a store
func (r *Repository) Update(ctx context.Context, s *Store) error {
	query := `
		UPDATE stores
		SET name = $2, address = $3, phone = $4, email = $5, tax_rate = $6, currency = $7, updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx, query,
		s.ID, s.Name, s.Address, s.Phone, s.Email, s.TaxRate, s.Currency)
	if err != nil {
		return fmt.Errorf("store repository update: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("store repository update: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}
