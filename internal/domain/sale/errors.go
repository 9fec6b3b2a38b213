package sale

import "errors"

var (
	ErrEmptySale         = errors.New("sale has no items")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrUnknownProduct    = errors.New("unknown or inactive product")
	ErrDiscountTooLarge  = errors.New("discount exceeds sale total")
	ErrCustomerRequired  = errors.New("credit sales require a customer")
	ErrCustomerNotFound  = errors.New("customer not found")
	ErrNotFound          = errors.New("sale not found")
)
