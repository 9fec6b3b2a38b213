package credit

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

type fakeRepo struct {
	balances map[uuid.UUID]float64
	recorded []*Transaction
}

func (f *fakeRepo) RecordPayment(_ context.Context, customerID uuid.UUID, amount float64, description string) (*Transaction, error) {
	balance, ok := f.balances[customerID]
	if !ok {
		return nil, ErrCustomerNotFound
	}
	if amount > balance {
		return nil, ErrExceedsBalance
	}
	f.balances[customerID] = balance - amount
	t := &Transaction{
		ID:              uuid.New(),
		CustomerID:      customerID,
		TransactionType: TypePayment,
		Amount:          -amount,
		BalanceAfter:    balance - amount,
		Description:     sql.NullString{String: description, Valid: description != ""},
		CreatedAt:       time.Now(),
	}
	f.recorded = append(f.recorded, t)
	return t, nil
}

func (f *fakeRepo) ListTransactions(_ context.Context, _ ListFilters) ([]*Transaction, error) {
	return f.recorded, nil
}

func (f *fakeRepo) GetSummary(_ context.Context) (*Summary, error) {
	var s Summary
	for _, b := range f.balances {
		s.TotalOutstanding += b
		if b > 0 {
			s.CustomersWithDebt++
		}
	}
	if s.CustomersWithDebt > 0 {
		s.AverageDebt = s.TotalOutstanding / float64(s.CustomersWithDebt)
	}
	return &s, nil
}

func TestRecordPayment(t *testing.T) {
	customerID := uuid.New()
	repo := &fakeRepo{balances: map[uuid.UUID]float64{customerID: 150.00}}
	svc := NewService(repo)

	resp, err := svc.RecordPayment(context.Background(), &PaymentRequest{
		CustomerID: customerID.String(),
		Amount:     100.00,
	})
	if err != nil {
		t.Fatalf("RecordPayment() error = %v", err)
	}

	if resp.Amount != -100.00 {
		t.Errorf("amount = %v, want -100.00 (payments are stored negative)", resp.Amount)
	}
	if resp.BalanceAfter != 50.00 {
		t.Errorf("balance_after = %v, want 50.00", resp.BalanceAfter)
	}
	if resp.TransactionType != string(TypePayment) {
		t.Errorf("transaction_type = %q, want payment", resp.TransactionType)
	}
}

func TestRecordPayment_ExceedsBalance(t *testing.T) {
	customerID := uuid.New()
	repo := &fakeRepo{balances: map[uuid.UUID]float64{customerID: 30.00}}
	svc := NewService(repo)

	_, err := svc.RecordPayment(context.Background(), &PaymentRequest{
		CustomerID: customerID.String(),
		Amount:     30.01,
	})
	if !errors.Is(err, ErrExceedsBalance) {
		t.Errorf("RecordPayment() error = %v, want ErrExceedsBalance", err)
	}
	if got := repo.balances[customerID]; got != 30.00 {
		t.Errorf("balance changed on rejected payment: %v", got)
	}
}

func TestRecordPayment_InvalidAmount(t *testing.T) {
	svc := NewService(&fakeRepo{balances: map[uuid.UUID]float64{}})

	for _, amount := range []float64{0, -5} {
		_, err := svc.RecordPayment(context.Background(), &PaymentRequest{
			CustomerID: uuid.New().String(),
			Amount:     amount,
		})
		if !errors.Is(err, ErrInvalidAmount) {
			t.Errorf("RecordPayment(amount=%v) error = %v, want ErrInvalidAmount", amount, err)
		}
	}
}

func TestRecordPayment_UnknownCustomer(t *testing.T) {
	svc := NewService(&fakeRepo{balances: map[uuid.UUID]float64{}})

	_, err := svc.RecordPayment(context.Background(), &PaymentRequest{
		CustomerID: uuid.New().String(),
		Amount:     10.00,
	})
	if !errors.Is(err, ErrCustomerNotFound) {
		t.Errorf("RecordPayment() error = %v, want ErrCustomerNotFound", err)
	}
}

func TestRecordPayment_FullSettlement(t *testing.T) {
	customerID := uuid.New()
	repo := &fakeRepo{balances: map[uuid.UUID]float64{customerID: 75.50}}
	svc := NewService(repo)

	resp, err := svc.RecordPayment(context.Background(), &PaymentRequest{
		CustomerID: customerID.String(),
		Amount:     75.50,
	})
	if err != nil {
		t.Fatalf("RecordPayment() error = %v", err)
	}
	if resp.BalanceAfter != 0 {
		t.Errorf("balance_after = %v, want 0 after full settlement", resp.BalanceAfter)
	}
}

func TestGetSummary(t *testing.T) {
	repo := &fakeRepo{balances: map[uuid.UUID]float64{
		uuid.New(): 100.00,
		uuid.New(): 50.00,
		uuid.New(): 0,
	}}
	svc := NewService(repo)

	s, err := svc.GetSummary(context.Background())
	if err != nil {
		t.Fatalf("GetSummary() error = %v", err)
	}
	if s.TotalOutstanding != 150.00 {
		t.Errorf("total_outstanding = %v, want 150.00", s.TotalOutstanding)
	}
	if s.CustomersWithDebt != 2 {
		t.Errorf("customers_with_debt = %d, want 2", s.CustomersWithDebt)
	}
	if s.AverageDebt != 75.00 {
		t.Errorf("average_debt = %v, want 75.00", s.AverageDebt)
	}
}
