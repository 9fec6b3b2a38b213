package sale

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/puntopos/puntopos-api/internal/domain/credit"
)

const txTimeout = 5 * time.Second

// Repository persists sales
type Repository interface {
	Commit(ctx context.Context, s *Sale, items []SaleItem) error
	List(ctx context.Context, filters ListFilters) ([]*Sale, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Sale, []SaleItem, error)
}

// PostgresRepository provides sale data access
type PostgresRepository struct {
	db *sqlx.DB
}

// NewRepository creates new sale repository
func NewRepository(db *sqlx.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const saleSelect = `
	SELECT s.id, s.customer_id, s.user_id, s.store_id,
	       s.total_amount, s.tax_amount, s.discount_amount,
	       s.payment_method, s.status, s.notes, s.created_at,
	       c.name AS customer_name, u.full_name AS user_name
	FROM sales s
	LEFT JOIN customers c ON c.id = s.customer_id
	LEFT JOIN users_profile u ON u.id = s.user_id`

// Commit writes the sale, its items, the stock decrements and — for
// credit sales — the customer balance raise plus ledger entry in one
// transaction. Any failed step rolls everything back.
func (r *PostgresRepository) Commit(ctx context.Context, s *Sale, items []SaleItem) error {
	if len(items) == 0 {
		return ErrEmptySale
	}

	ctx2, cancel := context.WithTimeout(ctx, txTimeout)
	defer cancel()

	tx, err := r.db.BeginTxx(ctx2, &sql.TxOptions{})
	if err != nil {
		return fmt.Errorf("sale repository begin tx: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx2, `
		INSERT INTO sales (
			id, customer_id, user_id, store_id,
			total_amount, tax_amount, discount_amount,
			payment_method, status, notes, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`, s.ID, s.CustomerID, s.UserID, s.StoreID,
		s.TotalAmount, s.TaxAmount, s.DiscountAmount,
		s.PaymentMethod, s.Status, s.Notes, s.CreatedAt)
	if err != nil {
		return fmt.Errorf("sale repository insert sale: %w", err)
	}

	for i := range items {
		item := &items[i]
		_, err = tx.ExecContext(ctx2, `
			INSERT INTO sale_items (id, sale_id, product_id, quantity, unit_price, total_price, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`, item.ID, item.SaleID, item.ProductID, item.Quantity, item.UnitPrice, item.TotalPrice, item.CreatedAt)
		if err != nil {
			return fmt.Errorf("sale repository insert item: %w", err)
		}

		// Conditional decrement: a concurrent sale that drained the
		// stock makes this match zero rows and the whole sale aborts.
		result, err := tx.ExecContext(ctx2, `
			UPDATE products
			SET stock_quantity = stock_quantity - $2, updated_at = NOW()
			WHERE id = $1 AND stock_quantity >= $2
		`, item.ProductID, item.Quantity)
		if err != nil {
			return fmt.Errorf("sale repository decrement stock: %w", err)
		}
		rows, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("sale repository rows affected: %w", err)
		}
		if rows == 0 {
			return fmt.Errorf("%w: product %s", ErrInsufficientStock, item.ProductID)
		}
	}

	if s.PaymentMethod == PaymentCredit {
		if !s.CustomerID.Valid {
			return ErrCustomerRequired
		}
		if err := r.drawCredit(ctx2, tx, s); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("sale repository commit tx: %w", err)
	}

	return nil
}

// drawCredit raises the customer's outstanding balance and records the
// ledger entry. The credit limit is informational and not enforced here.
func (r *PostgresRepository) drawCredit(ctx context.Context, tx *sqlx.Tx, s *Sale) error {
	var balanceAfter float64
	err := tx.GetContext(ctx, &balanceAfter, `
		UPDATE customers
		SET current_credit = current_credit + $2, updated_at = NOW()
		WHERE id = $1
		RETURNING current_credit
	`, s.CustomerID.UUID, s.TotalAmount)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrCustomerNotFound
		}
		return fmt.Errorf("sale repository raise balance: %w", err)
	}

	description := fmt.Sprintf("Venta #%s", s.ID.String()[:8])
	_, err = tx.ExecContext(ctx, `
		INSERT INTO credit_transactions (id, customer_id, sale_id, transaction_type, amount, balance_after, description, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
	`, uuid.New(), s.CustomerID.UUID, s.ID, credit.TypeCredit, s.TotalAmount, balanceAfter, description)
	if err != nil {
		return fmt.Errorf("sale repository insert ledger: %w", err)
	}

	return nil
}

// List returns sales newest first, optionally bounded by date
func (r *PostgresRepository) List(ctx context.Context, filters ListFilters) ([]*Sale, error) {
	query := saleSelect + ` WHERE 1=1`
	args := make([]interface{}, 0, 3)
	idx := 1

	if filters.DateFrom != "" {
		query += fmt.Sprintf(" AND s.created_at >= $%d", idx)
		args = append(args, filters.DateFrom)
		idx++
	}
	if filters.DateTo != "" {
		query += fmt.Sprintf(" AND s.created_at < ($%d::date + INTERVAL '1 day')", idx)
		args = append(args, filters.DateTo)
		idx++
	}

	limit := filters.Limit
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	query += fmt.Sprintf(" ORDER BY s.created_at DESC LIMIT $%d", idx)
	args = append(args, limit)

	sales := make([]*Sale, 0)
	if err := r.db.SelectContext(ctx, &sales, query, args...); err != nil {
		return nil, fmt.Errorf("sale repository list: %w", err)
	}
	return sales, nil
}

// GetByID returns a sale with its items
func (r *PostgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*Sale, []SaleItem, error) {
	var s Sale
	err := r.db.GetContext(ctx, &s, saleSelect+` WHERE s.id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, fmt.Errorf("sale repository get: %w", err)
	}

	items := make([]SaleItem, 0)
	err = r.db.SelectContext(ctx, &items, `
		SELECT i.id, i.sale_id, i.product_id, i.quantity, i.unit_price, i.total_price, i.created_at,
		       p.name AS product_name
		FROM sale_items i
		LEFT JOIN products p ON p.id = i.product_id
		WHERE i.sale_id = $1
		ORDER BY i.created_at
	`, id)
	if err != nil {
		return nil, nil, fmt.Errorf("sale repository get items: %w", err)
	}

	return &s, items, nil
}
