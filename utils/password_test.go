package utils

import "testing"

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("parola123")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if hash == "parola123" {
		t.Fatal("password stored in plaintext")
	}

	if !CheckPasswordHash("parola123", hash) {
		t.Error("correct password rejected")
	}
	if CheckPasswordHash("wrong", hash) {
		t.Error("wrong password accepted")
	}
}
