package store

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// Store is a point of sale location. Its tax rate is applied at checkout.
type Store struct {
	ID        uuid.UUID      `db:"id"`
	Name      string         `db:"name"`
	Address   sql.NullString `db:"address"`
	Phone     sql.NullString `db:"phone"`
	Email     sql.NullString `db:"email"`
	TaxRate   float64        `db:"tax_rate"`
	Currency  string         `db:"currency"`
	CreatedAt time.Time      `db:"created_at"`
	UpdatedAt time.Time      `db:"updated_at"`
}

// Response represents a store in API responses
type Response struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Address   string  `json:"address,omitempty"`
	Phone     string  `json:"phone,omitempty"`
	Email     string  `json:"email,omitempty"`
	TaxRate   float64 `json:"tax_rate"`
	Currency  string  `json:"currency"`
	CreatedAt string  `json:"created_at"`
}

// ToResponse converts entity to response
func (s *Store) ToResponse() *Response {
	resp := &Response{
		ID:        s.ID.String(),
		Name:      s.Name,
		TaxRate:   s.TaxRate,
		Currency:  s.Currency,
		CreatedAt: s.CreatedAt.Format(time.RFC3339),
	}
	if s.Address.Valid {
		resp.Address = s.Address.String
	}
	if s.Phone.Valid {
		resp.Phone = s.Phone.String
	}
	if s.Email.Valid {
		resp.Email = s.Email.String
	}
	return resp
}

// UpsertRequest for POST /stores and PUT /stores/{id}
type UpsertRequest struct {
	Name     string  `json:"name" validate:"required,min=2,max=200"`
	Address  string  `json:"address" validate:"omitempty,max=500"`
	Phone    string  `json:"phone" validate:"omitempty,max=30"`
	Email    string  `json:"email" validate:"omitempty,email,max=255"`
	TaxRate  float64 `json:"tax_rate" validate:"gte=0,lte=1"`
	Currency string  `json:"currency" validate:"required,len=3"`
}
