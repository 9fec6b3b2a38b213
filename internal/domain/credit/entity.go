package credit

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// TransactionType of a ledger entry
type TransactionType string

const (
	// TypeCredit is a draw: a credit sale raised the customer's balance
	TypeCredit TransactionType = "credit"
	// TypePayment lowers the balance; stored with a negative amount
	TypePayment TransactionType = "payment"
)

// Transaction is one ledger entry. balance_after snapshots the
// customer's outstanding balance right after the entry applied.
type Transaction struct {
	ID              uuid.UUID       `db:"id"`
	CustomerID      uuid.UUID       `db:"customer_id"`
	SaleID          uuid.NullUUID   `db:"sale_id"`
	TransactionType TransactionType `db:"transaction_type"`
	Amount          float64         `db:"amount"`
	BalanceAfter    float64         `db:"balance_after"`
	Description     sql.NullString  `db:"description"`
	CreatedAt       time.Time       `db:"created_at"`

	CustomerName sql.NullString `db:"customer_name"`
}

// Response represents a ledger entry in API responses
type Response struct {
	ID              string  `json:"id"`
	CustomerID      string  `json:"customer_id"`
	CustomerName    string  `json:"customer_name,omitempty"`
	SaleID          *string `json:"sale_id,omitempty"`
	TransactionType string  `json:"transaction_type"`
	Amount          float64 `json:"amount"`
	BalanceAfter    float64 `json:"balance_after"`
	Description     string  `json:"description,omitempty"`
	CreatedAt       string  `json:"created_at"`
}

// Summary aggregates the store's outstanding credit
type Summary struct {
	TotalOutstanding  float64 `db:"total_outstanding" json:"total_outstanding"`
	CustomersWithDebt int     `db:"customers_with_debt" json:"customers_with_debt"`
	AverageDebt       float64 `db:"average_debt" json:"average_debt"`
}

// ToResponse converts entity to response
func (t *Transaction) ToResponse() *Response {
	resp := &Response{
		ID:              t.ID.String(),
		CustomerID:      t.CustomerID.String(),
		TransactionType: string(t.TransactionType),
		Amount:          t.Amount,
		BalanceAfter:    t.BalanceAfter,
		CreatedAt:       t.CreatedAt.Format(time.RFC3339),
	}
	if t.SaleID.Valid {
		id := t.SaleID.UUID.String()
		resp.SaleID = &id
	}
	if t.Description.Valid {
		resp.Description = t.Description.String
	}
	if t.CustomerName.Valid {
		resp.CustomerName = t.CustomerName.String
	}
	return resp
}
