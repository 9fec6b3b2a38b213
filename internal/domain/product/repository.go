package product

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// ListFilters narrows the product list
type ListFilters struct {
	Search     string // matches name, barcode or sku
	ActiveOnly bool
	LowStock   bool
}

// Repository provides product data access
type Repository struct {
	db *sqlx.DB
}

// NewRepository creates new product repository
func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

const productSelect = `
	SELECT p.id, p.name, p.description, p.barcode, p.sku, p.category_id, p.supplier_id,
	       p.cost_price, p.selling_price, p.stock_quantity, p.min_stock_level,
	       p.is_active, p.store_id, p.created_at, p.updated_at,
	       c.name AS category_name, s.name AS supplier_name
	FROM products p
	LEFT JOIN categories c ON c.id = p.category_id
	LEFT JOIN suppliers s ON s.id = p.supplier_id`

// List returns products, optionally filtered, ordered by name
func (r *Repository) List(ctx context.Context, filters ListFilters) ([]*Product, error) {
	query := productSelect + ` WHERE 1=1`
	args := make([]interface{}, 0, 2)
	idx := 1

	if filters.Search != "" {
		query += fmt.Sprintf(" AND (p.name ILIKE $%d OR p.barcode = $%d OR p.sku = $%d)", idx, idx+1, idx+1)
		args = append(args, "%"+filters.Search+"%", filters.Search)
		idx += 2
	}
	if filters.ActiveOnly {
		query += " AND p.is_active = true"
	}
	if filters.LowStock {
		query += " AND p.stock_quantity <= p.min_stock_level"
	}
	query += " ORDER BY p.name"

	products := make([]*Product, 0)
	if err := r.db.SelectContext(ctx, &products, query, args...); err != nil {
		return nil, fmt.Errorf("product repository list: %w", err)
	}
	return products, nil
}

// GetByID returns a product by ID
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*Product, error) {
	var p Product
	err := r.db.GetContext(ctx, &p, productSelect+` WHERE p.id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("product repository get: %w", err)
	}
	return &p, nil
}

// GetByBarcode returns a product by its barcode (scanner lookup)
func (r *Repository) GetByBarcode(ctx context.Context, barcode string) (*Product, error) {
	var p Product
	err := r.db.GetContext(ctx, &p, productSelect+` WHERE p.barcode = $1`, barcode)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("product repository get by barcode: %w", err)
	}
	return &p, nil
}

// ListByIDs returns the products for the given IDs, in no particular order
func (r *Repository) ListByIDs(ctx context.Context, ids []uuid.UUID) ([]*Product, error) {
	if len(ids) == 0 {
		return []*Product{}, nil
	}

	products := make([]*Product, 0, len(ids))
	err := r.db.SelectContext(ctx, &products,
		productSelect+` WHERE p.id = ANY($1)`, pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("product repository list by ids: %w", err)
	}
	return products, nil
}

// Create inserts a new product
func (r *Repository) Create(ctx context.Context, p *Product) error {
	query := `
		INSERT INTO products (id, name, description, barcode, sku, category_id, supplier_id,
		                      cost_price, selling_price, stock_quantity, min_stock_level,
		                      is_active, store_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`

	_, err := r.db.ExecContext(ctx, query,
		p.ID, p.Name, p.Description, p.Barcode, p.SKU, p.CategoryID, p.SupplierID,
		p.CostPrice, p.SellingPrice, p.StockQuantity, p.MinStockLevel,
		p.IsActive, p.StoreID, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("product repository create: %w", err)
	}
	return nil
}

// Update updates a product
func (r *Repository) Update(ctx context.Context, p *Product) error {
	query := `
		UPDATE products
		SET name = $2, description = $3, barcode = $4, sku = $5, category_id = $6, supplier_id = $7,
		    cost_price = $8, selling_price = $9, stock_quantity = $10, min_stock_level = $11,
		    is_active = $12, updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx, query,
		p.ID, p.Name, p.Description, p.Barcode, p.SKU, p.CategoryID, p.SupplierID,
		p.CostPrice, p.SellingPrice, p.StockQuantity, p.MinStockLevel, p.IsActive)
	if err != nil {
		return fmt.Errorf("product repository update: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("product repository update: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete hard-deletes a product. Products are the only entity removed
// outright; past sale line items keep a nullable reference.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("product repository delete: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("product repository delete: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}
