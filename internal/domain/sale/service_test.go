package sale

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/puntopos/puntopos-api/internal/domain/customer"
	"github.com/puntopos/puntopos-api/internal/domain/product"
	"github.com/puntopos/puntopos-api/internal/domain/store"
)

type fakeRepo struct {
	committed *Sale
	items     []SaleItem
	err       error
}

func (f *fakeRepo) Commit(_ context.Context, s *Sale, items []SaleItem) error {
	if f.err != nil {
		return f.err
	}
	f.committed = s
	f.items = items
	return nil
}

func (f *fakeRepo) List(_ context.Context, _ ListFilters) ([]*Sale, error) {
	return nil, nil
}

func (f *fakeRepo) GetByID(_ context.Context, _ uuid.UUID) (*Sale, []SaleItem, error) {
	return nil, nil, ErrNotFound
}

type fakeProducts struct {
	products map[uuid.UUID]*product.Product
}

func (f *fakeProducts) ListByIDs(_ context.Context, ids []uuid.UUID) ([]*product.Product, error) {
	out := make([]*product.Product, 0, len(ids))
	for _, id := range ids {
		if p, ok := f.products[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

type fakeCustomers struct {
	customers map[uuid.UUID]*customer.Customer
}

func (f *fakeCustomers) GetByID(_ context.Context, id uuid.UUID) (*customer.Customer, error) {
	if c, ok := f.customers[id]; ok {
		return c, nil
	}
	return nil, customer.ErrNotFound
}

type fakeStores struct {
	store *store.Store
}

func (f *fakeStores) GetDefault(_ context.Context) (*store.Store, error) {
	if f.store == nil {
		return nil, store.ErrNotFound
	}
	return f.store, nil
}

func newTestService(repo *fakeRepo, products map[uuid.UUID]*product.Product, customers map[uuid.UUID]*customer.Customer, st *store.Store) *Service {
	return NewService(
		repo,
		&fakeProducts{products: products},
		&fakeCustomers{customers: customers},
		&fakeStores{store: st},
		0.16,
	)
}

func activeProduct(price float64, stock int) *product.Product {
	return &product.Product{
		ID:            uuid.New(),
		Name:          "Producto",
		SellingPrice:  price,
		StockQuantity: stock,
		IsActive:      true,
	}
}

func TestCheckout_CashSaleTotals(t *testing.T) {
	p := activeProduct(10.00, 10)
	repo := &fakeRepo{}
	svc := newTestService(repo, map[uuid.UUID]*product.Product{p.ID: p}, nil, nil)

	resp, err := svc.Checkout(context.Background(), uuid.New(), &CheckoutRequest{
		Items:         []CheckoutItem{{ProductID: p.ID.String(), Quantity: 3}},
		PaymentMethod: "cash",
	})
	if err != nil {
		t.Fatalf("Checkout() error = %v", err)
	}

	if resp.TaxAmount != 4.80 {
		t.Errorf("tax = %v, want 4.80", resp.TaxAmount)
	}
	if resp.TotalAmount != 34.80 {
		t.Errorf("total = %v, want 34.80", resp.TotalAmount)
	}
	if resp.Status != string(StatusCompleted) {
		t.Errorf("status = %q, want completed", resp.Status)
	}
	if repo.committed == nil {
		t.Fatal("sale was not committed")
	}
	if len(repo.items) != 1 || repo.items[0].UnitPrice != 10.00 {
		t.Errorf("item priced from client, want server-side catalog price")
	}
}

func TestCheckout_UsesStoreTaxRate(t *testing.T) {
	p := activeProduct(100.00, 5)
	repo := &fakeRepo{}
	st := &store.Store{ID: uuid.New(), TaxRate: 0.08}
	svc := newTestService(repo, map[uuid.UUID]*product.Product{p.ID: p}, nil, st)

	resp, err := svc.Checkout(context.Background(), uuid.New(), &CheckoutRequest{
		Items:         []CheckoutItem{{ProductID: p.ID.String(), Quantity: 1}},
		PaymentMethod: "card",
	})
	if err != nil {
		t.Fatalf("Checkout() error = %v", err)
	}
	if resp.TaxAmount != 8.00 {
		t.Errorf("tax = %v, want 8.00 at store rate", resp.TaxAmount)
	}
	if !repo.committed.StoreID.Valid || repo.committed.StoreID.UUID != st.ID {
		t.Error("sale not attributed to the default store")
	}
}

func TestCheckout_CollapsesDuplicateLines(t *testing.T) {
	p := activeProduct(5.00, 10)
	repo := &fakeRepo{}
	svc := newTestService(repo, map[uuid.UUID]*product.Product{p.ID: p}, nil, nil)

	_, err := svc.Checkout(context.Background(), uuid.New(), &CheckoutRequest{
		Items: []CheckoutItem{
			{ProductID: p.ID.String(), Quantity: 2},
			{ProductID: p.ID.String(), Quantity: 3},
		},
		PaymentMethod: "cash",
	})
	if err != nil {
		t.Fatalf("Checkout() error = %v", err)
	}
	if len(repo.items) != 1 {
		t.Fatalf("expected 1 collapsed item, got %d", len(repo.items))
	}
	if repo.items[0].Quantity != 5 {
		t.Errorf("quantity = %d, want 5", repo.items[0].Quantity)
	}
}

func TestCheckout_Discount(t *testing.T) {
	t.Run("applied to total", func(t *testing.T) {
		p := activeProduct(10.00, 10)
		repo := &fakeRepo{}
		svc := newTestService(repo, map[uuid.UUID]*product.Product{p.ID: p}, nil, nil)

		resp, err := svc.Checkout(context.Background(), uuid.New(), &CheckoutRequest{
			Items:          []CheckoutItem{{ProductID: p.ID.String(), Quantity: 3}},
			PaymentMethod:  "cash",
			DiscountAmount: 4.80,
		})
		if err != nil {
			t.Fatalf("Checkout() error = %v", err)
		}
		if resp.TotalAmount != 30.00 {
			t.Errorf("total = %v, want 30.00", resp.TotalAmount)
		}
		if resp.DiscountAmount != 4.80 {
			t.Errorf("discount = %v, want 4.80", resp.DiscountAmount)
		}
	})

	t.Run("above taxed total is rejected", func(t *testing.T) {
		p := activeProduct(10.00, 10)
		repo := &fakeRepo{}
		svc := newTestService(repo, map[uuid.UUID]*product.Product{p.ID: p}, nil, nil)

		// subtotal 30.00 + tax 4.80 = 34.80
		_, err := svc.Checkout(context.Background(), uuid.New(), &CheckoutRequest{
			Items:          []CheckoutItem{{ProductID: p.ID.String(), Quantity: 3}},
			PaymentMethod:  "cash",
			DiscountAmount: 100.00,
		})
		if !errors.Is(err, ErrDiscountTooLarge) {
			t.Fatalf("Checkout() error = %v, want ErrDiscountTooLarge", err)
		}
		if repo.committed != nil {
			t.Error("negative-total sale reached the repository")
		}
	})

	t.Run("credit sale never draws a negative total", func(t *testing.T) {
		p := activeProduct(10.00, 10)
		c := &customer.Customer{ID: uuid.New(), Name: "Juan Pérez"}
		repo := &fakeRepo{}
		svc := newTestService(repo,
			map[uuid.UUID]*product.Product{p.ID: p},
			map[uuid.UUID]*customer.Customer{c.ID: c},
			nil,
		)

		customerID := c.ID.String()
		_, err := svc.Checkout(context.Background(), uuid.New(), &CheckoutRequest{
			Items:          []CheckoutItem{{ProductID: p.ID.String(), Quantity: 3}},
			PaymentMethod:  "credit",
			CustomerID:     &customerID,
			DiscountAmount: 100.00,
		})
		if !errors.Is(err, ErrDiscountTooLarge) {
			t.Fatalf("Checkout() error = %v, want ErrDiscountTooLarge", err)
		}
		if repo.committed != nil {
			t.Error("negative-total credit sale reached the repository")
		}
	})

	t.Run("full discount bottoms out at zero", func(t *testing.T) {
		p := activeProduct(10.00, 10)
		repo := &fakeRepo{}
		svc := newTestService(repo, map[uuid.UUID]*product.Product{p.ID: p}, nil, nil)

		resp, err := svc.Checkout(context.Background(), uuid.New(), &CheckoutRequest{
			Items:          []CheckoutItem{{ProductID: p.ID.String(), Quantity: 3}},
			PaymentMethod:  "cash",
			DiscountAmount: 34.80,
		})
		if err != nil {
			t.Fatalf("Checkout() error = %v", err)
		}
		if resp.TotalAmount != 0 {
			t.Errorf("total = %v, want 0", resp.TotalAmount)
		}
	})
}

func TestCheckout_EmptySale(t *testing.T) {
	svc := newTestService(&fakeRepo{}, nil, nil, nil)

	_, err := svc.Checkout(context.Background(), uuid.New(), &CheckoutRequest{
		Items:         nil,
		PaymentMethod: "cash",
	})
	if !errors.Is(err, ErrEmptySale) {
		t.Errorf("Checkout() error = %v, want ErrEmptySale", err)
	}
}

func TestCheckout_UnknownProduct(t *testing.T) {
	svc := newTestService(&fakeRepo{}, nil, nil, nil)

	_, err := svc.Checkout(context.Background(), uuid.New(), &CheckoutRequest{
		Items:         []CheckoutItem{{ProductID: uuid.New().String(), Quantity: 1}},
		PaymentMethod: "cash",
	})
	if !errors.Is(err, ErrUnknownProduct) {
		t.Errorf("Checkout() error = %v, want ErrUnknownProduct", err)
	}
}

func TestCheckout_InactiveProduct(t *testing.T) {
	p := activeProduct(10.00, 10)
	p.IsActive = false
	svc := newTestService(&fakeRepo{}, map[uuid.UUID]*product.Product{p.ID: p}, nil, nil)

	_, err := svc.Checkout(context.Background(), uuid.New(), &CheckoutRequest{
		Items:         []CheckoutItem{{ProductID: p.ID.String(), Quantity: 1}},
		PaymentMethod: "cash",
	})
	if !errors.Is(err, ErrUnknownProduct) {
		t.Errorf("Checkout() error = %v, want ErrUnknownProduct", err)
	}
}

func TestCheckout_InsufficientStock(t *testing.T) {
	p := activeProduct(10.00, 2)
	repo := &fakeRepo{}
	svc := newTestService(repo, map[uuid.UUID]*product.Product{p.ID: p}, nil, nil)

	_, err := svc.Checkout(context.Background(), uuid.New(), &CheckoutRequest{
		Items:         []CheckoutItem{{ProductID: p.ID.String(), Quantity: 3}},
		PaymentMethod: "cash",
	})
	if !errors.Is(err, ErrInsufficientStock) {
		t.Errorf("Checkout() error = %v, want ErrInsufficientStock", err)
	}
	if repo.committed != nil {
		t.Error("nothing should be committed on stock failure")
	}
}

func TestCheckout_CreditRequiresCustomer(t *testing.T) {
	p := activeProduct(10.00, 10)
	svc := newTestService(&fakeRepo{}, map[uuid.UUID]*product.Product{p.ID: p}, nil, nil)

	_, err := svc.Checkout(context.Background(), uuid.New(), &CheckoutRequest{
		Items:         []CheckoutItem{{ProductID: p.ID.String(), Quantity: 1}},
		PaymentMethod: "credit",
	})
	if !errors.Is(err, ErrCustomerRequired) {
		t.Errorf("Checkout() error = %v, want ErrCustomerRequired", err)
	}
}

func TestCheckout_CreditSale(t *testing.T) {
	p := activeProduct(50.00, 10)
	c := &customer.Customer{ID: uuid.New(), Name: "Juan Pérez"}
	repo := &fakeRepo{}
	svc := newTestService(repo,
		map[uuid.UUID]*product.Product{p.ID: p},
		map[uuid.UUID]*customer.Customer{c.ID: c},
		nil,
	)

	customerID := c.ID.String()
	resp, err := svc.Checkout(context.Background(), uuid.New(), &CheckoutRequest{
		Items:         []CheckoutItem{{ProductID: p.ID.String(), Quantity: 1}},
		PaymentMethod: "credit",
		CustomerID:    &customerID,
	})
	if err != nil {
		t.Fatalf("Checkout() error = %v", err)
	}
	if resp.CustomerID == nil || *resp.CustomerID != customerID {
		t.Error("credit sale not linked to customer")
	}
	if !repo.committed.CustomerID.Valid {
		t.Error("committed sale missing customer id")
	}
}

func TestCheckout_UnknownCustomer(t *testing.T) {
	p := activeProduct(10.00, 10)
	svc := newTestService(&fakeRepo{}, map[uuid.UUID]*product.Product{p.ID: p}, nil, nil)

	customerID := uuid.New().String()
	_, err := svc.Checkout(context.Background(), uuid.New(), &CheckoutRequest{
		Items:         []CheckoutItem{{ProductID: p.ID.String(), Quantity: 1}},
		PaymentMethod: "credit",
		CustomerID:    &customerID,
	})
	if !errors.Is(err, ErrCustomerNotFound) {
		t.Errorf("Checkout() error = %v, want ErrCustomerNotFound", err)
	}
}
