package credit

import "errors"

var (
	ErrInvalidAmount    = errors.New("payment amount must be positive")
	ErrExceedsBalance   = errors.New("payment exceeds outstanding balance")
	ErrCustomerNotFound = errors.New("customer not found")
)
