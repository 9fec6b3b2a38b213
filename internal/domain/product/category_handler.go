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

// Category is a flat product grouping
type Category struct {
	ID          string `db:"id" json:"id"`
	Name        string `db:"name" json:"name"`
	Description string `db:"description" json:"description,omitempty"`
}

// CategoryRequest for POST /categories
type CategoryRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=100"`
	Description string `json:"description" validate:"omitempty,max=500"`
}

// CategoryHandler handles category HTTP requests
type CategoryHandler struct {
	db *sqlx.DB
}

// NewCategoryHandler creates category handler
func NewCategoryHandler(db *sqlx.DB) *CategoryHandler {
	return &CategoryHandler{db: db}
}

// Routes returns category routes
func (h *CategoryHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Delete("/{id}", h.Delete)
	return r
}

// List handles GET /categories
func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	items := make([]Category, 0)
	err := h.db.SelectContext(r.Context(), &items, `
		SELECT id, name, COALESCE(description, '') AS description
		FROM categories
		ORDER BY name
	`)
	if err != nil {
		errorhandler.HandleError(r.Context(), w, http.StatusInternalServerError, "CATEGORY_LIST_FAILED", "Failed to list categories", err)
		return
	}

	response.OK(w, items)
}

// Create handles POST /categories
func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}
	if details := validator.Validate(req); details != nil {
		response.ValidationError(w, details)
		return
	}

	item := Category{ID: uuid.New().String(), Name: req.Name, Description: req.Description}
	_, err := h.db.ExecContext(r.Context(), `
		INSERT INTO categories (id, name, description)
		VALUES ($1, $2, NULLIF($3, ''))
	`, item.ID, item.Name, item.Description)
	if err != nil {
		errorhandler.HandleError(r.Context(), w, http.StatusInternalServerError, "CATEGORY_CREATE_FAILED", "Failed to create category", err)
		return
	}

	response.Created(w, item)
}

// Delete handles DELETE /categories/{id}. Products keep a null category.
func (h *CategoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid category id")
		return
	}

	result, err := h.db.ExecContext(r.Context(), `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		errorhandler.HandleError(r.Context(), w, http.StatusInternalServerError, "CATEGORY_DELETE_FAILED", "Failed to delete category", err)
		return
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		response.NotFound(w, "Category not found")
		return
	}

	response.NoContent(w)
}
