package product

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

// Handler handles product HTTP requests
type Handler struct {
	repo *Repository
}

// NewHandler creates product handler
func NewHandler(repo *Repository) *Handler {
	return &Handler{repo: repo}
}

// Routes returns product routes. Deletion is admin-only.
func (h *Handler) Routes(adminMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Get("/low-stock", h.LowStock)
	r.Get("/barcode/{code}", h.GetByBarcode)
	r.Get("/{id}", h.Get)
	r.Put("/{id}", h.Update)
	r.With(adminMiddleware).Delete("/{id}", h.Delete)

	return r
}

// List handles GET /products?search=&active=
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filters := ListFilters{
		Search:     q.Get("search"),
		ActiveOnly: q.Get("active") == "true",
	}

	products, err := h.repo.List(r.Context(), filters)
	if err != nil {
		errorhandler.HandleError(r.Context(), w, http.StatusInternalServerError, "PRODUCT_LIST_FAILED", "Failed to list products", err)
		return
	}

	items := make([]*Response, len(products))
	for i, p := range products {
		items[i] = p.ToResponse()
	}
	response.OK(w, items)
}

// LowStock handles GET /products/low-stock
func (h *Handler) LowStock(w http.ResponseWriter, r *http.Request) {
	products, err := h.repo.List(r.Context(), ListFilters{LowStock: true})
	if err != nil {
		errorhandler.HandleError(r.Context(), w, http.StatusInternalServerError, "PRODUCT_LIST_FAILED", "Failed to list low-stock products", err)
		return
	}

	items := make([]*Response, len(products))
	for i, p := range products {
		items[i] = p.ToResponse()
	}
	response.OK(w, items)
}

// Get handles GET /products/{id}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid product id")
		return
	}

	p, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.NotFound(w, "Product not found")
			return
		}
		errorhandler.HandleError(r.Context(), w, http.StatusInternalServerError, "PRODUCT_GET_FAILED", "Failed to load product", err)
		return
	}

	response.OK(w, p.ToResponse())
}

// GetByBarcode handles GET /products/barcode/{code}
func (h *Handler) GetByBarcode(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")
	if code == "" {
		response.BadRequest(w, "Barcode is required")
		return
	}

	p, err := h.repo.GetByBarcode(r.Context(), code)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.NotFound(w, "Product not found")
			return
		}
		errorhandler.HandleError(r.Context(), w, http.StatusInternalServerError, "PRODUCT_GET_FAILED", "Failed to load product", err)
		return
	}

	response.OK(w, p.ToResponse())
}

// Create handles POST /products
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
	p := &Product{
		ID:            uuid.New(),
		Name:          req.Name,
		CostPrice:     req.CostPrice,
		SellingPrice:  req.SellingPrice,
		StockQuantity: req.StockQuantity,
		MinStockLevel: req.MinStockLevel,
		IsActive:      true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if req.IsActive != nil {
		p.IsActive = *req.IsActive
	}
	if err := applyOptionalFields(p, &req); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	if err := h.repo.Create(r.Context(), p); err != nil {
		errorhandler.HandleError(r.Context(), w, http.StatusInternalServerError, "PRODUCT_CREATE_FAILED", "Failed to create product", err)
		return
	}

	response.Created(w, p.ToResponse())
}

// Update handles PUT /products/{id}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid product id")
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

	p, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.NotFound(w, "Product not found")
			return
		}
		errorhandler.HandleError(r.Context(), w, http.StatusInternalServerError, "PRODUCT_UPDATE_FAILED", "Failed to update product", err)
		return
	}

	p.Name = req.Name
	p.CostPrice = req.CostPrice
	p.SellingPrice = req.SellingPrice
	p.StockQuantity = req.StockQuantity
	p.MinStockLevel = req.MinStockLevel
	if req.IsActive != nil {
		p.IsActive = *req.IsActive
	}
	if err := applyOptionalFields(p, &req); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	if err := h.repo.Update(r.Context(), p); err != nil {
		errorhandler.HandleError(r.Context(), w, http.StatusInternalServerError, "PRODUCT_UPDATE_FAILED", "Failed to update product", err)
		return
	}

	response.OK(w, p.ToResponse())
}

// Delete handles DELETE /products/{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid product id")
		return
	}

	if err := h.repo.Delete(r.Context(), id); err != nil {
		if errors.Is(err, ErrNotFound) {
			response.NotFound(w, "Product not found")
			return
		}
		errorhandler.HandleError(r.Context(), w, http.StatusInternalServerError, "PRODUCT_DELETE_FAILED", "Failed to delete product", err)
		return
	}

	response.NoContent(w)
}

func applyOptionalFields(p *Product, req *UpsertRequest) error {
	p.Description = sql.NullString{String: req.Description, Valid: req.Description != ""}
	p.Barcode = sql.NullString{String: req.Barcode, Valid: req.Barcode != ""}
	p.SKU = sql.NullString{String: req.SKU, Valid: req.SKU != ""}

	p.CategoryID = uuid.NullUUID{}
	if req.CategoryID != "" {
		id, err := uuid.Parse(req.CategoryID)
		if err != nil {
			return errors.New("invalid category_id")
		}
		p.CategoryID = uuid.NullUUID{UUID: id, Valid: true}
	}
	p.SupplierID = uuid.NullUUID{}
	if req.SupplierID != "" {
		id, err := uuid.Parse(req.SupplierID)
		if err != nil {
			return errors.New("invalid supplier_id")
		}
		p.SupplierID = uuid.NullUUID{UUID: id, Valid: true}
	}
	return nil
}
