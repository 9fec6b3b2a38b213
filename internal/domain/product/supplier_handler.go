package product

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/puntopos/puntopos-api/internal/pkg/errorhandler"
	"github.com/puntopos/puntopos-api/internal/pkg/response"
	"github.com/puntopos/puntopos-api/internal/pkg/validator"
)

// Supplier is a product source kept for reordering
type Supplier struct {
	ID    string `db:"id" json:"id"`
	Name  string `db:"name" json:"name"`
	Phone string `db:"phone" json:"phone,omitempty"`
	Email string `db:"email" json:"email,omitempty"`
}

// SupplierRequest for POST /suppliers
type SupplierRequest struct {
	Name  string `json:"name" validate:"required,min=1,max=200"`
	Phone string `json:"phone" validate:"omitempty,max=30"`
	Email string `json:"email" validate:"omitempty,email,max=255"`
}

// SupplierHandler handles supplier HTTP requests
type SupplierHandler struct {
	db *sqlx.DB
}

// NewSupplierHandler creates supplier handler
func NewSupplierHandler(db *sqlx.DB) *SupplierHandler {
	return &SupplierHandler{db: db}
}

// Routes returns supplier routes
func (h *SupplierHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Delete("/{id}", h.Delete)
	return r
}

// List handles GET /suppliers
func (h *SupplierHandler) List(w http.ResponseWriter, r *http.Request) {
	items := make([]Supplier, 0)
	err := h.db.SelectContext(r.Context(), &items, `
		SELECT id, name, COALESCE(phone, '') AS phone, COALESCE(email, '') AS email
		FROM suppliers
		ORDER BY name
	`)
	if err != nil {
		errorhandler.HandleError(r.Context(), w, http.StatusInternalServerError, "SUPPLIER_LIST_FAILED", "Failed to list suppliers", err)
		return
	}

	response.OK(w, items)
}

// Create handles POST /suppliers
func (h *SupplierHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req SupplierRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}
	if details := validator.Validate(req); details != nil {
		response.ValidationError(w, details)
		return
	}

	item := Supplier{ID: uuid.New().String(), Name: req.Name, Phone: req.Phone, Email: req.Email}
	_, err := h.db.ExecContext(r.Context(), `
		INSERT INTO suppliers (id, name, phone, email)
		VALUES ($1, $2, NULLIF($3, ''), NULLIF($4, ''))
	`, item.ID, item.Name, item.Phone, item.Email)
	if err != nil {
		errorhandler.HandleError(r.Context(), w, http.StatusInternalServerError, "SUPPLIER_CREATE_FAILED", "Failed to create supplier", err)
		return
	}

	response.Created(w, item)
}

// Delete handles DELETE /suppliers/{id}. Products keep a null supplier.
func (h *SupplierHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid supplier id")
		return
	}

	result, err := h.db.ExecContext(r.Context(), `DELETE FROM suppliers WHERE id = $1`, id)
	if err != nil {
		errorhandler.HandleError(r.Context(), w, http.StatusInternalServerError, "SUPPLIER_DELETE_FAILED", "Failed to delete supplier", err)
		return
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		response.NotFound(w, "Supplier not found")
		return
	}

	response.NoContent(w)
}
