package user

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/puntopos/puntopos-api/internal/pkg/errorhandler"
	"github.com/puntopos/puntopos-api/internal/pkg/password"
	"github.com/puntopos/puntopos-api/internal/pkg/response"
	"github.com/puntopos/puntopos-api/internal/pkg/validator"
)

// Handler handles staff management HTTP requests. Admin only.
type Handler struct {
	repo Repository
}

// NewHandler creates a new user handler
func NewHandler(repo Repository) *Handler {
	return &Handler{repo: repo}
}

// Routes returns staff management routes
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Put("/{id}", h.Update)
	r.Put("/{id}/password", h.ResetPassword)
	r.Delete("/{id}", h.Deactivate)

	return r
}

// List handles GET /users
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.repo.List(r.Context())
	if err != nil {
		errorhandler.HandleError(r.Context(), w, http.StatusInternalServerError, "USER_LIST_FAILED", "Failed to list users", err)
		return
	}

	items := make([]*Response, len(users))
	for i, u := range users {
		items[i] = u.ToResponse()
	}
	response.OK(w, items)
}

// Create handles POST /users
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}
	if details := validator.Validate(req); details != nil {
		response.ValidationError(w, details)
		return
	}

	hash, err := password.Hash(req.Password)
	if err != nil {
		errorhandler.HandleError(r.Context(), w, http.StatusInternalServerError, "USER_CREATE_FAILED", "Failed to create user", err)
		return
	}

	now := time.Now()
	u := &User{
		ID:           uuid.New(),
		Email:        req.Email,
		PasswordHash: hash,
		FullName:     req.FullName,
		Role:         Role(req.Role),
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if req.StoreID != "" {
		storeID, err := uuid.Parse(req.StoreID)
		if err != nil {
			response.BadRequest(w, "Invalid store_id")
			return
		}
		u.StoreID = uuid.NullUUID{UUID: storeID, Valid: true}
	}
	if req.Phone != "" {
		u.Phone = sql.NullString{String: req.Phone, Valid: true}
	}

	if err := h.repo.Create(r.Context(), u); err != nil {
		if errors.Is(err, ErrEmailExists) {
			response.Conflict(w, "Email already registered")
			return
		}
		errorhandler.HandleError(r.Context(), w, http.StatusInternalServerError, "USER_CREATE_FAILED", "Failed to create user", err)
		return
	}

	response.Created(w, u.ToResponse())
}

// Update handles PUT /users/{id}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid user id")
		return
	}

	var req UpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}
	if details := validator.Validate(req); details != nil {
		response.ValidationError(w, details)
		return
	}

	u, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.NotFound(w, "User not found")
			return
		}
		errorhandler.HandleError(r.Context(), w, http.StatusInternalServerError, "USER_UPDATE_FAILED", "Failed to update user", err)
		return
	}

	u.FullName = req.FullName
	u.Role = Role(req.Role)
	u.IsActive = *req.IsActive
	u.StoreID = uuid.NullUUID{}
	if req.StoreID != "" {
		storeID, err := uuid.Parse(req.StoreID)
		if err != nil {
			response.BadRequest(w, "Invalid store_id")
			return
		}
		u.StoreID = uuid.NullUUID{UUID: storeID, Valid: true}
	}
	u.Phone = sql.NullString{String: req.Phone, Valid: req.Phone != ""}

	if err := h.repo.Update(r.Context(), u); err != nil {
		errorhandler.HandleError(r.Context(), w, http.StatusInternalServerError, "USER_UPDATE_FAILED", "Failed to update user", err)
		return
	}

	response.OK(w, u.ToResponse())
}

// ResetPassword handles PUT /users/{id}/password. Admin-set reset;
// operators have no self-service password change.
func (h *Handler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid user id")
		return
	}

	var req ResetPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}
	if details := validator.Validate(req); details != nil {
		response.ValidationError(w, details)
		return
	}

	hash, err := password.Hash(req.Password)
	if err != nil {
		errorhandler.HandleError(r.Context(), w, http.StatusInternalServerError, "USER_PASSWORD_FAILED", "Failed to reset password", err)
		return
	}

	if err := h.repo.UpdatePassword(r.Context(), id, hash); err != nil {
		if errors.Is(err, ErrNotFound) {
			response.NotFound(w, "User not found")
			return
		}
		errorhandler.HandleError(r.Context(), w, http.StatusInternalServerError, "USER_PASSWORD_FAILED", "Failed to reset password", err)
		return
	}

	response.NoContent(w)
}

// Deactivate handles DELETE /users/{id}.
// Accounts are never hard-deleted; sales keep their operator reference.
func (h *Handler) Deactivate(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid user id")
		return
	}

	if err := h.repo.SetActive(r.Context(), id, false); err != nil {
		if errors.Is(err, ErrNotFound) {
			response.NotFound(w, "User not found")
			return
		}
		errorhandler.HandleError(r.Context(), w, http.StatusInternalServerError, "USER_DEACTIVATE_FAILED", "Failed to deactivate user", err)
		return
	}

	response.NoContent(w)
}
