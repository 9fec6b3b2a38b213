package credit

// PaymentRequest records a payment against a customer's balance
type PaymentRequest struct {
	CustomerID  string  `json:"customer_id" validate:"required,uuid"`
	Amount      float64 `json:"amount" validate:"required,gt=0"`
	Description string  `json:"description,omitempty" validate:"max=500"`
}

// ListFilters narrows the ledger listing
type ListFilters struct {
	CustomerID string
	Limit      int
}
