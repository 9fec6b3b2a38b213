package credit

import (
	"context"

	"github.com/google/uuid"
)

// Service handles credit ledger business logic
type Service struct {
	repo Repository
}

// NewService creates credit service
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// RecordPayment accepts a payment when 0 < amount <= outstanding balance
func (s *Service) RecordPayment(ctx context.Context, req *PaymentRequest) (*Response, error) {
	customerID, err := uuid.Parse(req.CustomerID)
	if err != nil {
		return nil, ErrCustomerNotFound
	}
	if req.Amount <= 0 {
		return nil, ErrInvalidAmount
	}

	t, err := s.repo.RecordPayment(ctx, customerID, req.Amount, req.Description)
	if err != nil {
		return nil, err
	}
	return t.ToResponse(), nil
}

// ListTransactions returns recent ledger entries
func (s *Service) ListTransactions(ctx context.Context, filters ListFilters) ([]*Response, error) {
	transactions, err := s.repo.ListTransactions(ctx, filters)
	if err != nil {
		return nil, err
	}
	out := make([]*Response, len(transactions))
	for i, t := range transactions {
		out[i] = t.ToResponse()
	}
	return out, nil
}

// GetSummary returns the outstanding-credit aggregate
func (s *Service) GetSummary(ctx context.Context) (*Summary, error) {
	return s.repo.GetSummary(ctx)
}
