package sale

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// PaymentMethod is how a sale was settled
type PaymentMethod string

const (
	PaymentCash   PaymentMethod = "cash"
	PaymentCard   PaymentMethod = "card"
	PaymentCredit PaymentMethod = "credit"
)

// Status of a sale. Checkout writes completed rows; cancelled exists
// for manual corrections done directly in the database.
type Status string

const (
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// Sale is a committed checkout. customer_id is null for walk-in cash
// and card sales; user_id is the operator who rang it up.
type Sale struct {
	ID             uuid.UUID      `db:"id"`
	CustomerID     uuid.NullUUID  `db:"customer_id"`
	UserID         uuid.NullUUID  `db:"user_id"`
	StoreID        uuid.NullUUID  `db:"store_id"`
	TotalAmount    float64        `db:"total_amount"`
	TaxAmount      float64        `db:"tax_amount"`
	DiscountAmount float64        `db:"discount_amount"`
	PaymentMethod  PaymentMethod  `db:"payment_method"`
	Status         Status         `db:"status"`
	Notes          sql.NullString `db:"notes"`
	CreatedAt      time.Time      `db:"created_at"`

	// Joined names, present on list queries
	CustomerName sql.NullString `db:"customer_name"`
	UserName     sql.NullString `db:"user_name"`
}

// SaleItem is one product line of a committed sale. unit_price is the
// selling price at the moment of checkout.
type SaleItem struct {
	ID         uuid.UUID `db:"id"`
	SaleID     uuid.UUID `db:"sale_id"`
	ProductID  uuid.UUID `db:"product_id"`
	Quantity   int       `db:"quantity"`
	UnitPrice  float64   `db:"unit_price"`
	TotalPrice float64   `db:"total_price"`
	CreatedAt  time.Time `db:"created_at"`

	ProductName sql.NullString `db:"product_name"`
}

// Response represents a sale in API responses
type Response struct {
	ID             string          `json:"id"`
	CustomerID     *string         `json:"customer_id,omitempty"`
	CustomerName   string          `json:"customer_name,omitempty"`
	UserID         *string         `json:"user_id,omitempty"`
	UserName       string          `json:"user_name,omitempty"`
	TotalAmount    float64         `json:"total_amount"`
	TaxAmount      float64         `json:"tax_amount"`
	DiscountAmount float64         `json:"discount_amount"`
	PaymentMethod  string          `json:"payment_method"`
	Status         string          `json:"status"`
	Notes          string          `json:"notes,omitempty"`
	Items          []*ItemResponse `json:"items,omitempty"`
	CreatedAt      string          `json:"created_at"`
}

// ItemResponse represents a sale line in API responses
type ItemResponse struct {
	ID          string  `json:"id"`
	ProductID   string  `json:"product_id"`
	ProductName string  `json:"product_name,omitempty"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	TotalPrice  float64 `json:"total_price"`
}

// ToResponse converts entity to response
func (s *Sale) ToResponse() *Response {
	resp := &Response{
		ID:             s.ID.String(),
		TotalAmount:    s.TotalAmount,
		TaxAmount:      s.TaxAmount,
		DiscountAmount: s.DiscountAmount,
		PaymentMethod:  string(s.PaymentMethod),
		Status:         string(s.Status),
		CreatedAt:      s.CreatedAt.Format(time.RFC3339),
	}
	if s.CustomerID.Valid {
		id := s.CustomerID.UUID.String()
		resp.CustomerID = &id
	}
	if s.CustomerName.Valid {
		resp.CustomerName = s.CustomerName.String
	}
	if s.UserID.Valid {
		id := s.UserID.UUID.String()
		resp.UserID = &id
	}
	if s.UserName.Valid {
		resp.UserName = s.UserName.String
	}
	if s.Notes.Valid {
		resp.Notes = s.Notes.String
	}
	return resp
}

// ToResponse converts a sale item to response
func (i *SaleItem) ToResponse() *ItemResponse {
	resp := &ItemResponse{
		ID:         i.ID.String(),
		ProductID:  i.ProductID.String(),
		Quantity:   i.Quantity,
		UnitPrice:  i.UnitPrice,
		TotalPrice: i.TotalPrice,
	}
	if i.ProductName.Valid {
		resp.ProductName = i.ProductName.String
	}
	return resp
}
