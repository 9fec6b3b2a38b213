package sale

// CheckoutItem is a single product line in a checkout request
type CheckoutItem struct {
	ProductID string `json:"product_id" validate:"required,uuid"`
	Quantity  int    `json:"quantity" validate:"required,min=1"`
}

// CheckoutRequest commits a cart as a sale. Prices are never taken
// from the client; the server re-reads them from the catalog.
type CheckoutRequest struct {
	Items          []CheckoutItem `json:"items" validate:"required,min=1,dive"`
	PaymentMethod  string         `json:"payment_method" validate:"required,payment_method"`
	CustomerID     *string        `json:"customer_id,omitempty" validate:"omitempty,uuid"`
	DiscountAmount float64        `json:"discount_amount" validate:"gte=0"`
	Notes          string         `json:"notes,omitempty" validate:"max=500"`
}

// ListFilters narrows the sales listing
type ListFilters struct {
	DateFrom string
	DateTo   string
	Limit    int
}
