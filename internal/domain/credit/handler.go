package credit

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/puntopos/puntopos-api/internal/pkg/errorhandler"
	"github.com/puntopos/puntopos-api/internal/pkg/response"
	"github.com/puntopos/puntopos-api/internal/pkg/validator"
)

// Handler handles credit ledger HTTP requests
type Handler struct {
	service *Service
}

// NewHandler creates credit handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns credit routes
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/payments", h.RecordPayment)
	r.Get("/transactions", h.ListTransactions)
	r.Get("/summary", h.GetSummary)

	return r
}

// RecordPayment handles POST /credits/payments
func (h *Handler) RecordPayment(w http.ResponseWriter, r *http.Request) {
	var req PaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}
	if details := validator.Validate(req); details != nil {
		response.ValidationError(w, details)
		return
	}

	resp, err := h.service.RecordPayment(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidAmount):
			response.BadRequest(w, "Payment amount must be positive")
		case errors.Is(err, ErrExceedsBalance):
			response.Error(w, http.StatusUnprocessableEntity, "CREDIT_EXCEEDS_BALANCE", "Payment exceeds outstanding balance")
		case errors.Is(err, ErrCustomerNotFound):
			response.NotFound(w, "Customer not found")
		default:
			errorhandler.HandleError(r.Context(), w, http.StatusInternalServerError, "CREDIT_PAYMENT_FAILED", "Failed to record payment", err)
		}
		return
	}

	response.Created(w, resp)
}

// ListTransactions handles GET /credits/transactions?customer_id=&limit=
func (h *Handler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filters := ListFilters{
		CustomerID: q.Get("customer_id"),
	}
	if v := q.Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			filters.Limit = n
		}
	}

	transactions, err := h.service.ListTransactions(r.Context(), filters)
	if err != nil {
		errorhandler.HandleError(r.Context(), w, http.StatusInternalServerError, "CREDIT_LIST_FAILED", "Failed to list transactions", err)
		return
	}

	response.OK(w, transactions)
}

// GetSummary handles GET /credits/summary
func (h *Handler) GetSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.service.GetSummary(r.Context())
	if err != nil {
		errorhandler.HandleError(r.Context(), w, http.StatusInternalServerError, "CREDIT_SUMMARY_FAILED", "Failed to get credit summary", err)
		return
	}

	response.OK(w, summary)
}
