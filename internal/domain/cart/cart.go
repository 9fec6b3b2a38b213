package cart

import (
	"errors"
	"math"

	"github.com/google/uuid"
)

// DefaultTaxRate is the IVA rate applied when the store carries none.
const DefaultTaxRate = 0.16

var (
	ErrOutOfStock        = errors.New("product out of stock")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrNotInCart         = errors.New("product not in cart")
)

// Item is the product snapshot a line is built from. Stock is the
// ceiling captured when the product list was last fetched.
type Item struct {
	ProductID uuid.UUID
	Name      string
	UnitPrice float64
	Stock     int
}

// Line is one product entry in the cart
type Line struct {
	Item
	Quantity int
}

// Total returns unit price times quantity
func (l Line) Total() float64 {
	return l.UnitPrice * float64(l.Quantity)
}

// Cart accumulates checkout lines and computes totals.
// It is view-local state; no I/O happens here.
type Cart struct {
	lines   []Line
	taxRate float64
}

// New creates an empty cart with the given tax rate
func New(taxRate float64) *Cart {
	if taxRate < 0 {
		taxRate = DefaultTaxRate
	}
	return &Cart{taxRate: taxRate}
}

// Add puts one unit of the product in the cart. A product already
// present has its quantity incremented instead. The stock ceiling is
// enforced either way: a rejected add leaves the cart untouched.
func (c *Cart) Add(item Item) error {
	for i := range c.lines {
		if c.lines[i].ProductID == item.ProductID {
			if c.lines[i].Quantity >= c.lines[i].Stock {
				return ErrInsufficientStock
			}
			c.lines[i].Quantity++
			return nil
		}
	}

	if item.Stock <= 0 {
		return ErrOutOfStock
	}
	c.lines = append(c.lines, Line{Item: item, Quantity: 1})
	return nil
}

// SetQuantity sets a line's quantity. Zero or less removes the line;
// a quantity above the stock ceiling is rejected and the line keeps
// its previous quantity.
func (c *Cart) SetQuantity(productID uuid.UUID, quantity int) error {
	for i := range c.lines {
		if c.lines[i].ProductID != productID {
			continue
		}
		if quantity <= 0 {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			return nil
		}
		if quantity > c.lines[i].Stock {
			return ErrInsufficientStock
		}
		c.lines[i].Quantity = quantity
		return nil
	}
	return ErrNotInCart
}

// Remove drops a line entirely
func (c *Cart) Remove(productID uuid.UUID) {
	for i := range c.lines {
		if c.lines[i].ProductID == productID {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			return
		}
	}
}

// Clear empties the cart
func (c *Cart) Clear() {
	c.lines = nil
}

// Len returns the number of distinct lines
func (c *Cart) Len() int {
	return len(c.lines)
}

// IsEmpty reports whether the cart has no lines
func (c *Cart) IsEmpty() bool {
	return len(c.lines) == 0
}

// Lines returns a copy of the cart lines in insertion order
func (c *Cart) Lines() []Line {
	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

// Subtotal is the sum of line totals
func (c *Cart) Subtotal() float64 {
	var sum float64
	for _, l := range c.lines {
		sum += l.Total()
	}
	return sum
}

// Tax is the subtotal times the tax rate, rounded to cents
func (c *Cart) Tax() float64 {
	return Round2(c.Subtotal() * c.taxRate)
}

// Total is subtotal plus tax
func (c *Cart) Total() float64 {
	return c.Subtotal() + c.Tax()
}

// Round2 rounds a currency amount to two decimal places
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
