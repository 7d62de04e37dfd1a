package auth

import (
	"encoding/base64"
	"testing"
)

func TestVerifyPassword_RoundTrip(t *testing.T) {
	t.Parallel()

	for _, password := range []string{"secret1", "пароль", "a", "correct horse battery staple"} {
		verifier, err := HashPassword(password)
		if err != nil {
			t.Fatalf("HashPassword(%q) error: %v", password, err)
		}
		if !VerifyPassword(password, verifier) {
			t.Errorf("VerifyPassword(%q, hash) = false; want true", password)
		}
	}
}

func TestVerifyPassword_WrongPassword(t *testing.T) {
	t.Parallel()

	verifier, err := HashPassword("secret1")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	if VerifyPassword("secret2", verifier) {
		t.Error("VerifyPassword accepted a wrong password")
	}
	if VerifyPassword("", verifier) {
		t.Error("VerifyPassword accepted an empty password")
	}
}

func TestHashPassword_SaltsDiffer(t *testing.T) {
	t.Parallel()

	first, err := HashPassword("secret1")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	second, err := HashPassword("secret1")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	if first == second {
		t.Error("two hashes of the same password are equal; salts are not random")
	}
	// Both stay verifiable despite the distinct salts.
	if !VerifyPassword("secret1", first) || !VerifyPassword("secret1", second) {
		t.Error("verification failed for a freshly hashed password")
	}
}

func TestVerifyPassword_MalformedVerifier(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		verifier string
	}{
		{"not base64", "%%%not-base64%%%"},
		{"empty", ""},
		{"too short", base64.StdEncoding.EncodeToString([]byte("short"))},
		{"too long", base64.StdEncoding.EncodeToString(make([]byte, 100))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if VerifyPassword("secret1", tt.verifier) {
				t.Errorf("VerifyPassword accepted malformed verifier %q", tt.verifier)
			}
		})
	}
}
