package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/puntopos/puntopos-api/internal/domain/user"
	"github.com/puntopos/puntopos-api/internal/pkg/jwt"
	"github.com/puntopos/puntopos-api/internal/pkg/password"
)

type fakeUserRepo struct {
	users map[uuid.UUID]*user.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[uuid.UUID]*user.User{}}
}

func (f *fakeUserRepo) Create(_ context.Context, u *user.User) error {
	f.users[u.ID] = u
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id uuid.UUID) (*user.User, error) {
	if u, ok := f.users[id]; ok {
		return u, nil
	}
	return nil, user.ErrNotFound
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*user.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, user.ErrNotFound
}

func (f *fakeUserRepo) List(_ context.Context) ([]*user.User, error) {
	out := make([]*user.User, 0, len(f.users))
	for _, u := range f.users {
		out = append(out, u)
	}
	return out, nil
}

func (f *fakeUserRepo) Update(_ context.Context, u *user.User) error {
	f.users[u.ID] = u
	return nil
}

func (f *fakeUserRepo) SetActive(_ context.Context, id uuid.UUID, active bool) error {
	if u, ok := f.users[id]; ok {
		u.IsActive = active
		return nil
	}
	return user.ErrNotFound
}

func (f *fakeUserRepo) UpdatePassword(_ context.Context, id uuid.UUID, hash string) error {
	if u, ok := f.users[id]; ok {
		u.PasswordHash = hash
		return nil
	}
	return user.ErrNotFound
}

func newTestService(repo user.Repository) *Service {
	jwtSvc := jwt.NewService("test-secret", time.Minute, time.Hour)
	return NewService(repo, jwtSvc, nil)
}

func seedUser(t *testing.T, repo *fakeUserRepo, email, plain, role string, active bool) *user.User {
	t.Helper()
	hash, err := password.Hash(plain)
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	u := &user.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: hash,
		FullName:     "Test User",
		Role:         user.Role(role),
		IsActive:     active,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	repo.users[u.ID] = u
	return u
}

func TestLogin(t *testing.T) {
	repo := newFakeUserRepo()
	seedUser(t, repo, "admin@tienda.mx", "secret123", "admin", true)
	svc := newTestService(repo)

	resp, err := svc.Login(context.Background(), &LoginRequest{
		Email:    "Admin@Tienda.MX",
		Password: "secret123",
	})
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if resp.Tokens.AccessToken == "" {
		t.Error("expected access token")
	}
	if resp.User.Role != "admin" {
		t.Errorf("role = %q, want admin", resp.User.Role)
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	repo := newFakeUserRepo()
	seedUser(t, repo, "admin@tienda.mx", "secret123", "admin", true)
	svc := newTestService(repo)

	_, err := svc.Login(context.Background(), &LoginRequest{
		Email:    "admin@tienda.mx",
		Password: "wrong",
	})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("Login() error = %v, want ErrInvalidCredentials", err)
	}
}

func TestLogin_UnknownEmail(t *testing.T) {
	svc := newTestService(newFakeUserRepo())

	_, err := svc.Login(context.Background(), &LoginRequest{
		Email:    "nobody@tienda.mx",
		Password: "whatever",
	})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("Login() error = %v, want ErrInvalidCredentials", err)
	}
}

func TestLogin_DeactivatedAccount(t *testing.T) {
	repo := newFakeUserRepo()
	seedUser(t, repo, "ex@tienda.mx", "secret123", "employee", false)
	svc := newTestService(repo)

	_, err := svc.Login(context.Background(), &LoginRequest{
		Email:    "ex@tienda.mx",
		Password: "secret123",
	})
	if !errors.Is(err, ErrUserInactive) {
		t.Errorf("Login() error = %v, want ErrUserInactive", err)
	}
}

func TestRegister(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestService(repo)

	resp, err := svc.Register(context.Background(), &RegisterRequest{
		Email:    "cajero@tienda.mx",
		Password: "secret123",
		FullName: "Nuevo Cajero",
		Role:     "employee",
	})
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if resp.User.Email != "cajero@tienda.mx" {
		t.Errorf("email = %q", resp.User.Email)
	}

	stored, err := repo.GetByEmail(context.Background(), "cajero@tienda.mx")
	if err != nil {
		t.Fatalf("user not stored: %v", err)
	}
	if stored.PasswordHash == "secret123" {
		t.Error("password stored in plain text")
	}
	if !stored.IsActive {
		t.Error("new accounts should start active")
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	repo := newFakeUserRepo()
	seedUser(t, repo, "dup@tienda.mx", "secret123", "employee", true)
	svc := newTestService(repo)

	_, err := svc.Register(context.Background(), &RegisterRequest{
		Email:    "dup@tienda.mx",
		Password: "another",
		FullName: "Dup",
		Role:     "employee",
	})
	if !errors.Is(err, ErrEmailAlreadyExists) {
		t.Errorf("Register() error = %v, want ErrEmailAlreadyExists", err)
	}
}

func TestRegister_InvalidRole(t *testing.T) {
	svc := newTestService(newFakeUserRepo())

	_, err := svc.Register(context.Background(), &RegisterRequest{
		Email:    "x@tienda.mx",
		Password: "secret123",
		FullName: "X",
		Role:     "superuser",
	})
	if !errors.Is(err, ErrInvalidRole) {
		t.Errorf("Register() error = %v, want ErrInvalidRole", err)
	}
}

func TestRefresh_RejectsGarbageToken(t *testing.T) {
	svc := newTestService(newFakeUserRepo())

	_, err := svc.Refresh(context.Background(), "not-a-jwt")
	if !errors.Is(err, ErrInvalidRefreshToken) {
		t.Errorf("Refresh() error = %v, want ErrInvalidRefreshToken", err)
	}
}

func TestRefresh_RejectsEmptyToken(t *testing.T) {
	svc := newTestService(newFakeUserRepo())

	_, err := svc.Refresh(context.Background(), "")
	if !errors.Is(err, ErrRefreshTokenRequired) {
		t.Errorf("Refresh() error = %v, want ErrRefreshTokenRequired", err)
	}
}

func TestRefresh_RejectsForeignSignature(t *testing.T) {
	repo := newFakeUserRepo()
	u := seedUser(t, repo, "admin@tienda.mx", "secret123", "admin", true)
	svc := newTestService(repo)

	otherSvc := jwt.NewService("other-secret", time.Minute, time.Hour)
	token, _, _, err := otherSvc.GenerateRefreshToken(u.ID)
	if err != nil {
		t.Fatalf("token gen failed: %v", err)
	}

	if _, err := svc.Refresh(context.Background(), token); !errors.Is(err, ErrInvalidRefreshToken) {
		t.Errorf("Refresh() error = %v, want ErrInvalidRefreshToken", err)
	}
}

func TestGetCurrentUser(t *testing.T) {
	repo := newFakeUserRepo()
	u := seedUser(t, repo, "me@tienda.mx", "secret123", "admin", true)
	svc := newTestService(repo)

	resp, err := svc.GetCurrentUser(context.Background(), u.ID)
	if err != nil {
		t.Fatalf("GetCurrentUser() error = %v", err)
	}
	if resp.Email != u.Email {
		t.Errorf("email = %q, want %q", resp.Email, u.Email)
	}
}
