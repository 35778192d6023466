package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/mutabaa-labs/mutabaa-core/internal/core/domain"
)

func TestHashAndVerifyPassword(t *testing.T) {
	adapter := NewAdapterWithCost("secret", 4) // Low cost for faster tests

	hash, err := adapter.HashPassword("mypassword")
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	if hash == "" || hash == "mypassword" {
		t.Errorf("unexpected hash %q", hash)
	}

	if !adapter.VerifyPassword("mypassword", hash) {
		t.Error("expected password verification to succeed")
	}
	if adapter.VerifyPassword("wrongpassword", hash) {
		t.Error("expected wrong password to fail verification")
	}
}

func TestHashPassword_DifferentHashesForSamePassword(t *testing.T) {
	adapter := NewAdapterWithCost("secret", 4)

	hash1, _ := adapter.HashPassword("password123")
	hash2, _ := adapter.HashPassword("password123")

	if hash1 == hash2 {
		t.Error("expected different hashes for same password (due to salt)")
	}
}

func TestGenerateAndParseToken(t *testing.T) {
	adapter := NewAdapter("test-secret")

	now := time.Now()
	claims := &domain.TokenClaims{
		Subject:   "admin",
		Admin:     true,
		IssuedAt:  now.Unix(),
		ExpiresAt: now.Add(time.Hour).Unix(),
	}

	token, err := adapter.GenerateToken(claims)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}
	if token == "" {
		t.Fatal("expected non-empty token")
	}

	parsed, err := adapter.ParseToken(token)
	if err != nil {
		t.Fatalf("failed to parse token: %v", err)
	}
	if parsed.Subject != "admin" {
		t.Errorf("subject = %q, want admin", parsed.Subject)
	}
	if !parsed.Admin {
		t.Error("admin claim lost in round trip")
	}
	if parsed.ExpiresAt != claims.ExpiresAt {
		t.Errorf("expires_at = %d, want %d", parsed.ExpiresAt, claims.ExpiresAt)
	}
}

func TestParseToken_WrongSecret(t *testing.T) {
	adapter := NewAdapter("secret-one")
	other := NewAdapter("secret-two")

	token, _ := adapter.GenerateToken(&domain.TokenClaims{
		Subject:   "admin",
		Admin:     true,
		IssuedAt:  time.Now().Unix(),
		ExpiresAt: time.Now().Add(time.Hour).Unix(),
	})

	if _, err := other.ParseToken(token); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Errorf("want ErrTokenInvalid, got %v", err)
	}
}

func TestParseToken_Expired(t *testing.T) {
	adapter := NewAdapter("test-secret")

	token, _ := adapter.GenerateToken(&domain.TokenClaims{
		Subject:   "admin",
		Admin:     true,
		IssuedAt:  time.Now().Add(-2 * time.Hour).Unix(),
		ExpiresAt: time.Now().Add(-time.Hour).Unix(),
	})

	if _, err := adapter.ParseToken(token); !errors.Is(err, domain.ErrTokenExpired) {
		t.Errorf("want ErrTokenExpired, got %v", err)
	}
}

func TestParseToken_Garbage(t *testing.T) {
	adapter := NewAdapter("test-secret")

	if _, err := adapter.ParseToken("not.a.jwt"); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Errorf("want ErrTokenInvalid, got %v", err)
	}
}
