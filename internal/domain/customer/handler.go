package customer

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/puntopos/puntopos-api/internal/pkg/errorhandler"
	"github.com/puntopos/puntopos-api/internal/pkg/response"
	"github.com/puntopos/puntopos-api/internal/pkg/validator"
)

// Handler handles customer HTTP requests
type Handler struct {
	repo *Repository
}

// NewHandler creates customer handler
func NewHandler(repo *Repository) *Handler {
	return &Handler{repo: repo}
}

// Routes returns customer routes
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Get("/{id}", h.Get)
	r.Put("/{id}", h.Update)

	return r
}

// List handles GET /customers?search=&with_credit=
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filters := ListFilters{
		Search:     q.Get("search"),
		WithCredit: q.Get("with_credit") == "true",
	}

	customers, err := h.repo.List(r.Context(), filters)
	if err != nil {
		errorhandler.HandleError(r.Context(), w, http.StatusInternalServerError, "CUSTOMER_LIST_FAILED", "Failed to list customers", err)
		return
	}

	total, err := h.repo.Count(r.Context())
	if err != nil {
		errorhandler.HandleError(r.Context(), w, http.StatusInternalServerError, "CUSTOMER_LIST_FAILED", "Failed to count customers", err)
		return
	}

	items := make([]*Response, len(customers))
	for i, c := range customers {
		items[i] = c.ToResponse()
	}
	response.WithMeta(w, items, response.Meta{Total: total})
}

// Get handles GET /customers/{id}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid customer id")
		return
	}

	c, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.NotFound(w, "Customer not found")
			return
		}
		errorhandler.HandleError(r.Context(), w, http.StatusInternalServerError, "CUSTOMER_GET_FAILED", "Failed to load customer", err)
		return
	}

	response.OK(w, c.ToResponse())
}

// Create handles POST /customers
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req UpsertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}
	if details := validator.Validate(req); details != nil {
		response.ValidationError(w, details)
		return
	}

	now := time.Now()
	c := &Customer{
		ID:          uuid.New(),
		Name:        req.Name,
		Email:       sql.NullString{String: req.Email, Valid: req.Email != ""},
		Phone:       sql.NullString{String: req.Phone, Valid: req.Phone != ""},
		Address:     sql.NullString{String: req.Address, Valid: req.Address != ""},
		CreditLimit: req.CreditLimit,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := h.repo.Create(r.Context(), c); err != nil {
		errorhandler.HandleError(r.Context(), w, http.StatusInternalServerError, "CUSTOMER_CREATE_FAILED", "Failed to create customer", err)
		return
	}

	response.Created(w, c.ToResponse())
}

// Update handles PUT /customers/{id}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid customer id")
		return
	}

	var req UpsertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}
	if details := validator.Validate(req); details != nil {
		response.ValidationError(w, details)
		return
	}

	c, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.NotFound(w, "Customer not found")
			return
		}
		errorhandler.HandleError(r.Context(), w, http.StatusInternalServerError, "CUSTOMER_UPDATE_FAILED", "Failed to update customer", err)
		return
	}

	c.Name = req.Name
	c.Email = sql.NullString{String: req.Email, Valid: req.Email != ""}
	c.Phone = sql.NullString{String: req.Phone, Valid: req.Phone != ""}
	c.Address = sql.NullString{String: req.Address, Valid: req.Address != ""}
	c.CreditLimit = req.CreditLimit

	if err := h.repo.Update(r.Context(), c); err != nil {
		errorhandler.HandleError(r.Context(), w, http.StatusInternalServerError, "CUSTOMER_UPDATE_FAILED", "Failed to update customer", err)
		return
	}

	response.OK(w, c.ToResponse())
}
