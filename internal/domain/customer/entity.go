package customer

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// Customer is a buyer who may purchase on account. current_credit is the
// outstanding balance they owe; it never goes below zero.
type Customer struct {
	ID            uuid.UUID      `db:"id"`
	Name          string         `db:"name"`
	Email         sql.NullString `db:"email"`
	Phone         sql.NullString `db:"phone"`
	Address       sql.NullString `db:"address"`
	CreditLimit   float64        `db:"credit_limit"`
	CurrentCredit float64        `db:"current_credit"`
	StoreID       uuid.NullUUID  `db:"store_id"`
	CreatedAt     time.Time      `db:"created_at"`
	UpdatedAt     time.Time      `db:"updated_at"`
}

// Response represents a customer in API responses
type Response struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Email         string  `json:"email,omitempty"`
	Phone         string  `json:"phone,omitempty"`
	Address       string  `json:"address,omitempty"`
	CreditLimit   float64 `json:"credit_limit"`
	CurrentCredit float64 `json:"current_credit"`
	// OverLimit is informational only; the limit is reported, never enforced.
	OverLimit bool   `json:"over_limit"`
	CreatedAt string `json:"created_at"`
}

// ToResponse converts entity to response
func (c *Customer) ToResponse() *Response {
	resp := &Response{
		ID:            c.ID.String(),
		Name:          c.Name,
		CreditLimit:   c.CreditLimit,
		CurrentCredit: c.CurrentCredit,
		OverLimit:     c.CurrentCredit > c.CreditLimit,
		CreatedAt:     c.CreatedAt.Format(time.RFC3339),
	}
	if c.Email.Valid {
		resp.Email = c.Email.String
	}
	if c.Phone.Valid {
		resp.Phone = c.Phone.String
	}
	if c.Address.Valid {
		resp.Address = c.Address.String
	}
	return resp
}

// UpsertRequest for POST /customers and PUT /customers/{id}
type UpsertRequest struct {
	Name        string  `json:"name" validate:"required,min=2,max=200"`
	Email       string  `json:"email" validate:"omitempty,email,max=255"`
	Phone       string  `json:"phone" validate:"omitempty,max=30"`
	Address     string  `json:"address" validate:"omitempty,max=500"`
	CreditLimit float64 `json:"credit_limit" validate:"gte=0"`
}
