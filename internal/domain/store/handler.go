package store

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

// Handler handles store HTTP requests
type Handler struct {
	repo *Repository
}

// NewHandler creates store handler
func NewHandler(repo *Repository) *Handler {
	return &Handler{repo: repo}
}

// Routes returns store routes. Writes are admin-only, wired by the caller.
func (h *Handler) Routes(adminMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.List)
	r.Get("/{id}", h.Get)

	r.Group(func(r chi.Router) {
		r.Use(adminMiddleware)
		r.Post("/", h.Create)
		r.Put("/{id}", h.Update)
	})

	return r
}

// List handles GET /stores
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	stores, err := h.repo.List(r.Context())
	if err != nil {
		errorhandler.HandleError(r.Context(), w, http.StatusInternalServerError, "STORE_LIST_FAILED", "Failed to list stores", err)
		return
	}

	items := make([]*Response, len(stores))
	for i, s := range stores {
		items[i] = s.ToResponse()
	}
	response.OK(w, items)
}

// Get handles GET /stores/{id}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid store id")
		return
	}

	s, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.NotFound(w, "Store not found")
			return
		}
		errorhandler.HandleError(r.Context(), w, http.StatusInternalServerError, "STORE_GET_FAILED", "Failed to load store", err)
		return
	}

	response.OK(w, s.ToResponse())
}

// Create handles POST /stores
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
	s := &Store{
		ID:        uuid.New(),
		Name:      req.Name,
		Address:   sql.NullString{String: req.Address, Valid: req.Address != ""},
		Phone:     sql.NullString{String: req.Phone, Valid: req.Phone != ""},
		Email:     sql.NullString{String: req.Email, Valid: req.Email != ""},
		TaxRate:   req.TaxRate,
		Currency:  req.Currency,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := h.repo.Create(r.Context(), s); err != nil {
		errorhandler.HandleError(r.Context(), w, http.StatusInternalServerError, "STORE_CREATE_FAILED", "Failed to create store", err)
		return
	}

	response.Created(w, s.ToResponse())
}

// Update handles PUT /stores/{id}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid store id")
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

	s := &Store{
		ID:       id,
		Name:     req.Name,
		Address:  sql.NullString{String: req.Address, Valid: req.Address != ""},
		Phone:    sql.NullString{String: req.Phone, Valid: req.Phone != ""},
		Email:    sql.NullString{String: req.Email, Valid: req.Email != ""},
		TaxRate:  req.TaxRate,
		Currency: req.Currency,
	}

	if err := h.repo.Update(r.Context(), s); err != nil {
		if errors.Is(err, ErrNotFound) {
			response.NotFound(w, "Store not found")
			return
		}
		errorhandler.HandleError(r.Context(), w, http.StatusInternalServerError, "STORE_UPDATE_FAILED", "Failed to update store", err)
		return
	}

	response.OK(w, s.ToResponse())
}
