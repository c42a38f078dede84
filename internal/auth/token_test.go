package auth

import (
	"errors"
	"testing"
	"time"

	"pinmap/internal/domain"
)

const testSecret = "test-secret-key-at-least-32-chars-long"

func testUser() *domain.User {
	return &domain.User{ID: 7, Username: "ana", Role: domain.RoleAdmin}
}

func TestGenerateAndVerify(t *testing.T) {
	t.Parallel()

	m := NewTokenManager(testSecret, time.Hour)
	tok, err := m.Generate(testUser())
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}

	claims, err := m.Verify(tok)
	if err != nil {
		t.Fatalf("Verify error: %v", err)
	}
	if claims.UserID != 7 || claims.Username != "ana" || claims.Role != domain.RoleAdmin {
		t.Fatalf("claims mismatch: %+v", claims)
	}
	if !claims.IsAdmin() {
		t.Fatal("expected admin claims")
	}
	if claims.ID == "" {
		t.Fatal("expected a token id claim")
	}
}

func TestVerify_Expired(t *testing.T) {
	t.Parallel()

	m := NewTokenManager(testSecret, -time.Minute)
	tok, err := m.Generate(testUser())
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}

	_, err = m.Verify(tok)
	if !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestVerify_WrongSecret(t *testing.T) {
	t.Parallel()

	tok, err := NewTokenManager(testSecret, time.Hour).Generate(testUser())
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}

	_, err = NewTokenManager("another-secret-that-does-not-match", time.Hour).Verify(tok)
	if !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestVerify_Malformed(t *testing.T) {
	t.Parallel()

	m := NewTokenManager(testSecret, time.Hour)
	for _, tok := range []string{"", "garbage", "a.b.c"} {
		if _, err := m.Verify(tok); !errors.Is(err, ErrTokenInvalid) {
			t.Fatalf("Verify(%q): expected ErrTokenInvalid, got %v", tok, err)
		}
	}
}
