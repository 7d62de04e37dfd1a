// Package auth implements the credential core: password hashing and
// verification, and issuing and validating signed identity tokens.
package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"fmt"

	"golang.org/x/crypto/pbkdf2"
)

const (
	saltLength = 32
	keyLength  = 32
	iterations = 100000
)

// HashPassword derives a storable verifier from a plaintext password.
// A fresh random 32-byte salt is generated per call, so hashing the
// same password twice yields different verifiers. The result is
// base64(salt || key) where key is PBKDF2-SHA256 over the password.
func HashPassword(password string) (string, error) {
	salt := make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}

	key := pbkdf2.Key([]byte(password), salt, iterations, keyLength, sha256.New)

	blob := make([]byte, 0, saltLength+keyLength)
	blob = append(blob, salt...)
	blob = append(blob, key...)

	return base64.StdEncoding.EncodeToString(blob), nil
}

// VerifyPassword reports whether password matches the stored verifier.
// The comparison runs in constant time regardless of where a mismatch
// occurs. Malformed verifiers (bad base64, wrong length) verify as
// false rather than returning an error.
func VerifyPassword(password, verifier string) bool {
	blob, err := base64.StdEncoding.DecodeString(verifier)
	if err != nil || len(blob) != saltLength+keyLength {
		return false
	}

	salt := blob[:saltLength]
	stored := blob[saltLength:]

	key := pbkdf2.Key([]byte(password), salt, iterations, keyLength, sha256.New)

	return subtle.ConstantTimeCompare(key, stored) == 1
}
