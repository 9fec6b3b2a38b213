package sale

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/puntopos/puntopos-api/internal/domain/cart"
	"github.com/puntopos/puntopos-api/internal/domain/customer"
	"github.com/puntopos/puntopos-api/internal/domain/product"
	"github.com/puntopos/puntopos-api/internal/domain/store"
)

type productReader interface {
	ListByIDs(ctx context.Context, ids []uuid.UUID) ([]*product.Product, error)
}

type customerReader interface {
	GetByID(ctx context.Context, id uuid.UUID) (*customer.Customer, error)
}

type storeReader interface {
	GetDefault(ctx context.Context) (*store.Store, error)
}

// Service handles checkout business logic
type Service struct {
	repo           Repository
	products       productReader
	customers      customerReader
	stores         storeReader
	defaultTaxRate float64
}

// NewService creates sale service
func NewService(repo Repository, products productReader, customers customerReader, stores storeReader, defaultTaxRate float64) *Service {
	return &Service{
		repo:           repo,
		products:       products,
		customers:      customers,
		stores:         stores,
		defaultTaxRate: defaultTaxRate,
	}
}

// Checkout validates the request against the live catalog, prices the
// sale server-side and commits it atomically. userID is the operator.
func (s *Service) Checkout(ctx context.Context, userID uuid.UUID, req *CheckoutRequest) (*Response, error) {
	if len(req.Items) == 0 {
		return nil, ErrEmptySale
	}

	method := PaymentMethod(req.PaymentMethod)

	var customerID uuid.NullUUID
	if req.CustomerID != nil && *req.CustomerID != "" {
		id, err := uuid.Parse(*req.CustomerID)
		if err != nil {
			return nil, ErrCustomerNotFound
		}
		if _, err := s.customers.GetByID(ctx, id); err != nil {
			return nil, ErrCustomerNotFound
		}
		customerID = uuid.NullUUID{UUID: id, Valid: true}
	}
	if method == PaymentCredit && !customerID.Valid {
		return nil, ErrCustomerRequired
	}

	// Collapse duplicate product lines before touching the catalog
	quantities := make(map[uuid.UUID]int, len(req.Items))
	order := make([]uuid.UUID, 0, len(req.Items))
	for _, item := range req.Items {
		id, err := uuid.Parse(item.ProductID)
		if err != nil {
			return nil, ErrUnknownProduct
		}
		if _, seen := quantities[id]; !seen {
			order = append(order, id)
		}
		quantities[id] += item.Quantity
	}

	products, err := s.products.ListByIDs(ctx, order)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]*product.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	rate := s.defaultTaxRate
	var storeID uuid.NullUUID
	if st, err := s.stores.GetDefault(ctx); err == nil {
		storeID = uuid.NullUUID{UUID: st.ID, Valid: true}
		if st.TaxRate > 0 {
			rate = st.TaxRate
		}
	}

	// Price through the cart engine so the stock ceiling and totals
	// follow the same rules the sales screen applies.
	c := cart.New(rate)
	for _, id := range order {
		p, ok := byID[id]
		if !ok || !p.IsActive {
			return nil, fmt.Errorf("%w: %s", ErrUnknownProduct, id)
		}
		if err := c.Add(cart.Item{
			ProductID: p.ID,
			Name:      p.Name,
			UnitPrice: p.SellingPrice,
			Stock:     p.StockQuantity,
		}); err != nil {
			return nil, fmt.Errorf("%w: %s", ErrInsufficientStock, p.Name)
		}
		if qty := quantities[id]; qty > 1 {
			if err := c.SetQuantity(p.ID, qty); err != nil {
				return nil, fmt.Errorf("%w: %s", ErrInsufficientStock, p.Name)
			}
		}
	}

	subtotal := c.Subtotal()
	tax := c.Tax()
	// A discount past the taxed total would commit a negative sale and,
	// on credit sales, drive the customer balance below zero.
	if req.DiscountAmount > subtotal+tax {
		return nil, ErrDiscountTooLarge
	}
	total := cart.Round2(subtotal + tax - req.DiscountAmount)

	now := time.Now()
	sl := &Sale{
		ID:             uuid.New(),
		CustomerID:     customerID,
		UserID:         uuid.NullUUID{UUID: userID, Valid: userID != uuid.Nil},
		StoreID:        storeID,
		TotalAmount:    total,
		TaxAmount:      tax,
		DiscountAmount: req.DiscountAmount,
		PaymentMethod:  method,
		Status:         StatusCompleted,
		CreatedAt:      now,
	}
	if req.Notes != "" {
		sl.Notes = sql.NullString{String: req.Notes, Valid: true}
	}

	lines := c.Lines()
	items := make([]SaleItem, 0, len(lines))
	for _, l := range lines {
		items = append(items, SaleItem{
			ID:         uuid.New(),
			SaleID:     sl.ID,
			ProductID:  l.ProductID,
			Quantity:   l.Quantity,
			UnitPrice:  l.UnitPrice,
			TotalPrice: cart.Round2(l.Total()),
			CreatedAt:  now,
		})
	}

	if err := s.repo.Commit(ctx, sl, items); err != nil {
		return nil, err
	}

	resp := sl.ToResponse()
	resp.Items = make([]*ItemResponse, len(items))
	for i := range items {
		resp.Items[i] = items[i].ToResponse()
	}
	return resp, nil
}

// List returns recent sales
func (s *Service) List(ctx context.Context, filters ListFilters) ([]*Response, error) {
	sales, err := s.repo.List(ctx, filters)
	if err != nil {
		return nil, err
	}
	out := make([]*Response, len(sales))
	for i, sl := range sales {
		out[i] = sl.ToResponse()
	}
	return out, nil
}

// Get returns a sale with its items
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Response, error) {
	sl, items, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := sl.ToResponse()
	resp.Items = make([]*ItemResponse, len(items))
	for i := range items {
		resp.Items[i] = items[i].ToResponse()
	}
	return resp, nil
}
