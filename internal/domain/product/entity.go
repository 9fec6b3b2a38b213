package product

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// Product is a catalog item. stock_quantity is decremented at checkout;
// rows are hard-deleted from the catalog editor.
type Product struct {
	ID            uuid.UUID      `db:"id"`
	Name          string         `db:"name"`
	Description   sql.NullString `db:"description"`
	Barcode       sql.NullString `db:"barcode"`
	SKU           sql.NullString `db:"sku"`
	CategoryID    uuid.NullUUID  `db:"category_id"`
	SupplierID    uuid.NullUUID  `db:"supplier_id"`
	CostPrice     float64        `db:"cost_price"`
	SellingPrice  float64        `db:"selling_price"`
	StockQuantity int            `db:"stock_quantity"`
	MinStockLevel int            `db:"min_stock_level"`
	IsActive      bool           `db:"is_active"`
	StoreID       uuid.NullUUID  `db:"store_id"`
	CreatedAt     time.Time      `db:"created_at"`
	UpdatedAt     time.Time      `db:"updated_at"`

	// Joined names, present on list queries
	CategoryName sql.NullString `db:"category_name"`
	SupplierName sql.NullString `db:"supplier_name"`
}

// Response represents a product in API responses
type Response struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Description   string  `json:"description,omitempty"`
	Barcode       string  `json:"barcode,omitempty"`
	SKU           string  `json:"sku,omitempty"`
	CategoryID    *string `json:"category_id,omitempty"`
	CategoryName  string  `json:"category_name,omitempty"`
	SupplierID    *string `json:"supplier_id,omitempty"`
	SupplierName  string  `json:"supplier_name,omitempty"`
	CostPrice     float64 `json:"cost_price"`
	SellingPrice  float64 `json:"selling_price"`
	StockQuantity int     `json:"stock_quantity"`
	MinStockLevel int     `json:"min_stock_level"`
	LowStock      bool    `json:"low_stock"`
	IsActive      bool    `json:"is_active"`
	CreatedAt     string  `json:"created_at"`
}

// ToResponse converts entity to response
func (p *Product) ToResponse() *Response {
	resp := &Response{
		ID:            p.ID.String(),
		Name:          p.Name,
		CostPrice:     p.CostPrice,
		SellingPrice:  p.SellingPrice,
		StockQuantity: p.StockQuantity,
		MinStockLevel: p.MinStockLevel,
		LowStock:      p.StockQuantity <= p.MinStockLevel,
		IsActive:      p.IsActive,
		CreatedAt:     p.CreatedAt.Format(time.RFC3339),
	}
	if p.Description.Valid {
		resp.Description = p.Description.String
	}
	if p.Barcode.Valid {
		resp.Barcode = p.Barcode.String
	}
	if p.SKU.Valid {
		resp.SKU = p.SKU.String
	}
	if p.CategoryID.Valid {
		s := p.CategoryID.UUID.String()
		resp.CategoryID = &s
	}
	if p.CategoryName.Valid {
		resp.CategoryName = p.CategoryName.String
	}
	if p.SupplierID.Valid {
		s := p.SupplierID.UUID.String()
		resp.SupplierID = &s
	}
	if p.SupplierName.Valid {
		resp.SupplierName = p.SupplierName.String
	}
	return resp
}

// UpsertRequest for POST /products and PUT /products/{id}
type UpsertRequest struct {
	Name          string  `json:"name" validate:"required,min=1,max=200"`
	Description   string  `json:"description" validate:"omitempty,max=2000"`
	Barcode       string  `json:"barcode" validate:"omitempty,max=64"`
	SKU           string  `json:"sku" validate:"omitempty,max=64"`
	CategoryID    string  `json:"category_id" validate:"omitempty,uuid"`
	SupplierID    string  `json:"supplier_id" validate:"omitempty,uuid"`
	CostPrice     float64 `json:"cost_price" validate:"gte=0"`
	SellingPrice  float64 `json:"selling_price" validate:"gte=0"`
	StockQuantity int     `json:"stock_quantity" validate:"gte=0"`
	MinStockLevel int     `json:"min_stock_level" validate:"gte=0"`
	IsActive      *bool   `json:"is_active"`
}
