package user

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/puntopos/puntopos-api/internal/pkg/password"
)

type fakeRepo struct {
	users map[uuid.UUID]*User
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{users: map[uuid.UUID]*User{}}
}

func (f *fakeRepo) Create(_ context.Context, u *User) error {
	f.users[u.ID] = u
	return nil
}

func (f *fakeRepo) GetByID(_ context.Context, id uuid.UUID) (*User, error) {
	if u, ok := f.users[id]; ok {
		return u, nil
	}
	return nil, ErrNotFound
}

func (f *fakeRepo) GetByEmail(_ context.Context, email string) (*User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, ErrNotFound
}

func (f *fakeRepo) List(_ context.Context) ([]*User, error) {
	out := make([]*User, 0, len(f.users))
	for _, u := range f.users {
		out = append(out, u)
	}
	return out, nil
}

func (f *fakeRepo) Update(_ context.Context, u *User) error {
	if _, ok := f.users[u.ID]; !ok {
		return ErrNotFound
	}
	f.users[u.ID] = u
	return nil
}

func (f *fakeRepo) SetActive(_ context.Context, id uuid.UUID, active bool) error {
	if u, ok := f.users[id]; ok {
		u.IsActive = active
		return nil
	}
	return ErrNotFound
}

func (f *fakeRepo) UpdatePassword(_ context.Context, id uuid.UUID, hash string) error {
	if u, ok := f.users[id]; ok {
		u.PasswordHash = hash
		return nil
	}
	return ErrNotFound
}

func seedEmployee(repo *fakeRepo) *User {
	u := &User{
		ID:        uuid.New(),
		Email:     "cajero@tienda.mx",
		FullName:  "Cajero",
		Role:      RoleEmployee,
		IsActive:  true,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	repo.users[u.ID] = u
	return u
}

func TestResetPassword(t *testing.T) {
	repo := newFakeRepo()
	u := seedEmployee(repo)
	h := NewHandler(repo)

	req := httptest.NewRequest(http.MethodPut, "/"+u.ID.String()+"/password",
		strings.NewReader(`{"password":"nueva-clave-123"}`))
	w := httptest.NewRecorder()
	h.Routes().ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d: %s", w.Code, w.Body.String())
	}
	if !password.Verify("nueva-clave-123", repo.users[u.ID].PasswordHash) {
		t.Error("stored hash does not match the new password")
	}
}

func TestResetPassword_TooShort(t *testing.T) {
	repo := newFakeRepo()
	u := seedEmployee(repo)
	h := NewHandler(repo)

	req := httptest.NewRequest(http.MethodPut, "/"+u.ID.String()+"/password",
		strings.NewReader(`{"password":"corta"}`))
	w := httptest.NewRecorder()
	h.Routes().ServeHTTP(w, req)

	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", w.Code)
	}
}

func TestResetPassword_UnknownUser(t *testing.T) {
	h := NewHandler(newFakeRepo())

	req := httptest.NewRequest(http.MethodPut, "/"+uuid.New().String()+"/password",
		strings.NewReader(`{"password":"nueva-clave-123"}`))
	w := httptest.NewRecorder()
	h.Routes().ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestDeactivate(t *testing.T) {
	repo := newFakeRepo()
	u := seedEmployee(repo)
	h := NewHandler(repo)

	req := httptest.NewRequest(http.MethodDelete, "/"+u.ID.String(), nil)
	w := httptest.NewRecorder()
	h.Routes().ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", w.Code)
	}
	if repo.users[u.ID].IsActive {
		t.Error("user still active after deactivation")
	}
}
