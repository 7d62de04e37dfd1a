// Package http provides HTTP handlers for user authentication,
// including registration and password-based login.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/atinyakov/TaskKeeper/internal/service"
)

// AuthService defines the interface for authentication operations
// required by the HTTP handlers.
type AuthService interface {
	// Register creates a new user and issues a token for it.
	Register(ctx context.Context, username, email, password string) (*service.AuthResult, error)
	// Login verifies the credentials and issues a token.
	Login(ctx context.Context, username, password string) (*service.AuthResult, error)
}

// AuthHandler handles HTTP requests for user registration and login.
type AuthHandler struct {
	// AuthService performs the underlying authentication operations.
	AuthService AuthService
	// Log records internal failures; the response bodies stay generic.
	Log *zap.Logger
}

// RegisterRequest represents the JSON payload for user registration.
type RegisterRequest struct {
	// Username is the login name to register, 1-100 characters.
	Username string `json:"username"`
	// Email is the email address to register, 1-255 characters.
	Email string `json:"email"`
	// Password is the plaintext password; it is hashed before storage.
	Password string `json:"password"`
}

// LoginRequest represents the JSON payload for login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// writeJSON encodes v as the response body with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeMessage writes a terse JSON error body.
func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"message": message})
}

// Register handles POST /api/auth/register.
// It expects a JSON body with non-empty username, email, and password,
// creates the user, and responds with a freshly issued token. A taken
// username or email yields 409 regardless of which field collided.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request")
		return
	}
	if req.Username == "" || len(req.Username) > 100 ||
		req.Email == "" || len(req.Email) > 255 ||
		req.Password == "" {
		writeMessage(w, http.StatusBadRequest, "invalid request")
		return
	}

	result, err := h.AuthService.Register(r.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrUserExists) {
			writeMessage(w, http.StatusConflict, "user already exists")
			return
		}
		h.Log.Error("registration failed", zap.Error(err))
		writeMessage(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// Login handles POST /api/auth/login.
// The response for an unknown username and for a wrong password is
// identical, so the endpoint cannot be used to probe which usernames
// exist.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Username == "" || req.Password == "" {
		writeMessage(w, http.StatusBadRequest, "invalid request")
		return
	}

	result, err := h.AuthService.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			writeMessage(w, http.StatusUnauthorized, "invalid credentials")
			return
		}
		h.Log.Error("login failed", zap.Error(err))
		writeMessage(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, result)
}
