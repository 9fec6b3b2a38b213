package jwt

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	svc := NewService("test-secret", time.Minute, time.Hour)
	userID := uuid.New()

	token, err := svc.GenerateAccessToken(userID, "admin", true)
	if err != nil {
		t.Fatalf("GenerateAccessToken() error = %v", err)
	}

	claims, err := svc.ValidateAccessToken(token)
	if err != nil {
		t.Fatalf("ValidateAccessToken() error = %v", err)
	}
	if claims.UserID != userID {
		t.Errorf("user id = %v, want %v", claims.UserID, userID)
	}
	if claims.Role != "admin" {
		t.Errorf("role = %q, want admin", claims.Role)
	}
	if !claims.IsActive {
		t.Error("is_active not carried through")
	}
}

func TestValidateAccessToken_RejectsRefreshToken(t *testing.T) {
	svc := NewService("test-secret", time.Minute, time.Hour)

	refresh, _, _, err := svc.GenerateRefreshToken(uuid.New())
	if err != nil {
		t.Fatalf("GenerateRefreshToken() error = %v", err)
	}

	if _, err := svc.ValidateAccessToken(refresh); err == nil {
		t.Error("refresh token accepted as access token")
	}
}

func TestValidateAccessToken_RejectsExpired(t *testing.T) {
	svc := NewService("test-secret", -time.Minute, time.Hour)

	token, err := svc.GenerateAccessToken(uuid.New(), "employee", true)
	if err != nil {
		t.Fatalf("GenerateAccessToken() error = %v", err)
	}

	if _, err := svc.ValidateAccessToken(token); err == nil {
		t.Error("expired token accepted")
	}
}

func TestValidateAccessToken_RejectsWrongSecret(t *testing.T) {
	svc := NewService("test-secret", time.Minute, time.Hour)
	other := NewService("other-secret", time.Minute, time.Hour)

	token, err := other.GenerateAccessToken(uuid.New(), "employee", true)
	if err != nil {
		t.Fatalf("GenerateAccessToken() error = %v", err)
	}

	if _, err := svc.ValidateAccessToken(token); err == nil {
		t.Error("token signed with another secret accepted")
	}
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	svc := NewService("test-secret", time.Minute, time.Hour)
	userID := uuid.New()

	token, jti, expiresAt, err := svc.GenerateRefreshToken(userID)
	if err != nil {
		t.Fatalf("GenerateRefreshToken() error = %v", err)
	}
	if jti == "" {
		t.Error("expected non-empty jti")
	}
	if !expiresAt.After(time.Now()) {
		t.Error("refresh token already expired")
	}

	claims, err := svc.ValidateRefreshToken(token)
	if err != nil {
		t.Fatalf("ValidateRefreshToken() error = %v", err)
	}
	if claims.UserID != userID {
		t.Errorf("user id = %v, want %v", claims.UserID, userID)
	}
}

func TestHashRefreshTokenIsStable(t *testing.T) {
	if HashRefreshToken("abc") != HashRefreshToken("abc") {
		t.Error("hash not deterministic")
	}
	if HashRefreshToken("abc") == HashRefreshToken("abd") {
		t.Error("distinct tokens collide")
	}
}
