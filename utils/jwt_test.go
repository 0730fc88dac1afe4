package utils

import (
	"testing"
	"time"
)

func TestTokenRoundTrip(t *testing.T) {
	token, err := CreateToken(42, "administrator", "test-secret")
	if err != nil {
		t.Fatalf("CreateToken: %v", err)
	}

	claims, err := ValidateToken(token, "test-secret")
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if claims.UserID != 42 {
		t.Errorf("UserID = %d, want 42", claims.UserID)
	}
	if claims.Role != "administrator" {
		t.Errorf("Role = %q, want administrator", claims.Role)
	}
	if claims.ExpiresAt == nil {
		t.Fatal("token has no expiry")
	}
	lifetime := time.Until(claims.ExpiresAt.Time)
	if lifetime < 6*24*time.Hour || lifetime > 8*24*time.Hour {
		t.Errorf("token lifetime = %v, want about 7 days", lifetime)
	}
}

func TestValidateTokenWrongSecret(t *testing.T) {
	token, err := CreateToken(1, "user", "secret-a")
	if err != nil {
		t.Fatalf("CreateToken: %v", err)
	}

	if _, err := ValidateToken(token, "secret-b"); err == nil {
		t.Fatal("token validated with the wrong secret")
	}
}

func TestValidateTokenGarbage(t *testing.T) {
	if _, err := ValidateToken("not-a-token", "secret"); err == nil {
		t.Fatal("garbage validated as a token")
	}
}
