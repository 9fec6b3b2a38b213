package credit

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

const txTimeout = 5 * time.Second

// Repository persists the credit ledger
type Repository interface {
	RecordPayment(ctx context.Context, customerID uuid.UUID, amount float64, description string) (*Transaction, error)
	ListTransactions(ctx context.Context, filters ListFilters) ([]*Transaction, error)
	GetSummary(ctx context.Context) (*Summary, error)
}

// PostgresRepository provides credit ledger data access
type PostgresRepository struct {
	db *sqlx.DB
}

// NewRepository creates new credit repository
func NewRepository(db *sqlx.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// RecordPayment lowers the customer's balance and writes the ledger
// entry in one transaction. The conditional update rejects payments
// above the balance even under concurrent writes.
func (r *PostgresRepository) RecordPayment(ctx context.Context, customerID uuid.UUID, amount float64, description string) (*Transaction, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}

	ctx2, cancel := context.WithTimeout(ctx, txTimeout)
	defer cancel()

	tx, err := r.db.BeginTxx(ctx2, &sql.TxOptions{})
	if err != nil {
		return nil, fmt.Errorf("credit repository begin tx: %w", err)
	}
	defer tx.Rollback()

	var balanceAfter float64
	err = tx.GetContext(ctx2, &balanceAfter, `
		UPDATE customers
		SET current_credit = current_credit - $2, updated_at = NOW()
		WHERE id = $1 AND current_credit >= $2
		RETURNING current_credit
	`, customerID, amount)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			// Zero rows is either a missing customer or a too-large payment
			var exists bool
			if err := tx.GetContext(ctx2, &exists, `SELECT EXISTS(SELECT 1 FROM customers WHERE id = $1)`, customerID); err != nil {
				return nil, fmt.Errorf("credit repository check customer: %w", err)
			}
			if !exists {
				return nil, ErrCustomerNotFound
			}
			return nil, ErrExceedsBalance
		}
		return nil, fmt.Errorf("credit repository lower balance: %w", err)
	}

	if description == "" {
		description = "Abono a cuenta"
	}

	t := &Transaction{
		ID:              uuid.New(),
		CustomerID:      customerID,
		TransactionType: TypePayment,
		Amount:          -amount,
		BalanceAfter:    balanceAfter,
		Description:     sql.NullString{String: description, Valid: true},
		CreatedAt:       time.Now(),
	}

	_, err = tx.ExecContext(ctx2, `
		INSERT INTO credit_transactions (id, customer_id, sale_id, transaction_type, amount, balance_after, description, created_at)
		VALUES ($1, $2, NULL, $3, $4, $5, $6, $7)
	`, t.ID, t.CustomerID, t.TransactionType, t.Amount, t.BalanceAfter, t.Description, t.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("credit repository insert ledger: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("credit repository commit tx: %w", err)
	}

	return t, nil
}

// ListTransactions returns ledger entries newest first
func (r *PostgresRepository) ListTransactions(ctx context.Context, filters ListFilters) ([]*Transaction, error) {
	query := `
		SELECT t.id, t.customer_id, t.sale_id, t.transaction_type, t.amount, t.balance_after, t.description, t.created_at,
		       c.name AS customer_name
		FROM credit_transactions t
		JOIN customers c ON c.id = t.customer_id
		WHERE 1=1`
	args := make([]interface{}, 0, 2)
	idx := 1

	if filters.CustomerID != "" {
		query += fmt.Sprintf(" AND t.customer_id = $%d", idx)
		args = append(args, filters.CustomerID)
		idx++
	}

	limit := filters.Limit
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	query += fmt.Sprintf(" ORDER BY t.created_at DESC LIMIT $%d", idx)
	args = append(args, limit)

	transactions := make([]*Transaction, 0)
	if err := r.db.SelectContext(ctx, &transactions, query, args...); err != nil {
		return nil, fmt.Errorf("credit repository list: %w", err)
	}
	return transactions, nil
}

// GetSummary aggregates outstanding balances across all customers
func (r *PostgresRepository) GetSummary(ctx context.Context) (*Summary, error) {
	var s Summary
	err := r.db.GetContext(ctx, &s, `
		SELECT COALESCE(SUM(current_credit), 0)                        AS total_outstanding,
		       COUNT(*) FILTER (WHERE current_credit > 0)              AS customers_with_debt,
		       COALESCE(AVG(current_credit) FILTER (WHERE current_credit > 0), 0) AS average_debt
		FROM customers
	`)
	if err != nil {
		return nil, fmt.Errorf("credit repository summary: %w", err)
	}
	return &s, nil
}
