package sale

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/puntopos/puntopos-api/internal/middleware"
	"github.com/puntopos/puntopos-api/internal/pkg/errorhandler"
	"github.com/puntopos/puntopos-api/internal/pkg/response"
	"github.com/puntopos/puntopos-api/internal/pkg/validator"
)

// Handler handles sale HTTP requests
type Handler struct {
	service *Service
}

// NewHandler creates sale handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns sale routes
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.Checkout)
	r.Get("/", h.List)
	r.Get("/{id}", h.Get)

	return r
}

// Checkout handles POST /sales
func (h *Handler) Checkout(w http.ResponseWriter, r *http.Request) {
	var req CheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}
	if details := validator.Validate(req); details != nil {
		response.ValidationError(w, details)
		return
	}

	userID := middleware.GetUserID(r.Context())

	resp, err := h.service.Checkout(r.Context(), userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, ErrEmptySale):
			response.BadRequest(w, "Sale has no items")
		case errors.Is(err, ErrUnknownProduct):
			response.Error(w, http.StatusUnprocessableEntity, "SALE_UNKNOWN_PRODUCT", err.Error())
		case errors.Is(err, ErrInsufficientStock):
			response.Error(w, http.StatusUnprocessableEntity, "SALE_INSUFFICIENT_STOCK", err.Error())
		case errors.Is(err, ErrDiscountTooLarge):
			response.Error(w, http.StatusUnprocessableEntity, "SALE_DISCOUNT_TOO_LARGE", "Discount exceeds sale total")
		case errors.Is(err, ErrCustomerRequired):
			response.BadRequest(w, "Credit sales require a customer")
		case errors.Is(err, ErrCustomerNotFound):
			response.NotFound(w, "Customer not found")
		default:
			errorhandler.HandleError(r.Context(), w, http.StatusInternalServerError, "SALE_COMMIT_FAILED", "Failed to commit sale", err)
		}
		return
	}

	response.Created(w, resp)
}

// List handles GET /sales?from=&to=&limit=
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filters := ListFilters{
		DateFrom: q.Get("from"),
		DateTo:   q.Get("to"),
	}
	if v := q.Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			filters.Limit = n
		}
	}

	sales, err := h.service.List(r.Context(), filters)
	if err != nil {
		errorhandler.HandleError(r.Context(), w, http.StatusInternalServerError, "SALE_LIST_FAILED", "Failed to list sales", err)
		return
	}

	response.OK(w, sales)
}

// Get handles GET /sales/{id}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid sale ID")
		return
	}

	resp, err := h.service.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.NotFound(w, "Sale not found")
			return
		}
		errorhandler.HandleError(r.Context(), w, http.StatusInternalServerError, "SALE_GET_FAILED", "Failed to get sale", err)
		return
	}

	response.OK(w, resp)
}
