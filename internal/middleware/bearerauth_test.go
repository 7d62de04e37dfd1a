package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/atinyakov/TaskKeeper/internal/auth"
)

// fakeAuthenticator implements Authenticator for testing.
type fakeAuthenticator struct {
	identity auth.Identity
	err      error
	gotToken string
}

func (f *fakeAuthenticator) Authenticate(token string) (auth.Identity, error) {
	f.gotToken = token
	return f.identity, f.err
}

func TestBearerAuth(t *testing.T) {
	tests := []struct {
		name          string
		header        string
		authErr       error
		expectedCode  int
		expectHandler bool
	}{
		{
			name:         "missing header",
			header:       "",
			expectedCode: http.StatusUnauthorized,
		},
		{
			name:         "wrong scheme",
			header:       "Basic abc",
			expectedCode: http.StatusUnauthorized,
		},
		{
			name:         "empty token",
			header:       "Bearer ",
			expectedCode: http.StatusUnauthorized,
		},
		{
			name:         "invalid token",
			header:       "Bearer bad-token",
			authErr:      auth.ErrInvalidToken,
			expectedCode: http.StatusUnauthorized,
		},
		{
			name:          "valid token",
			header:        "Bearer good-token",
			expectedCode:  http.StatusOK,
			expectHandler: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			authenticator := &fakeAuthenticator{
				identity: auth.Identity{UserID: 7, Username: "alice", Email: "a@x.com"},
				err:      tt.authErr,
			}

			handlerCalled := false
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				handlerCalled = true
				identity, ok := IdentityFromContext(r.Context())
				if !ok {
					t.Error("identity missing from context")
				}
				if identity.UserID != 7 || identity.Username != "alice" {
					t.Errorf("unexpected identity: %+v", identity)
				}
			})

			rec := httptest.NewRecorder()
			req := httptest.NewRequest("GET", "/api/todo", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}

			BearerAuth(authenticator)(next).ServeHTTP(rec, req)

			if rec.Code != tt.expectedCode {
				t.Fatalf("expected status %d, got %d", tt.expectedCode, rec.Code)
			}
			if handlerCalled != tt.expectHandler {
				t.Errorf("handler called = %v; want %v", handlerCalled, tt.expectHandler)
			}
			if tt.expectHandler && authenticator.gotToken != "good-token" {
				t.Errorf("authenticator received token %q", authenticator.gotToken)
			}
		})
	}
}

func TestBearerAuth_UniformResponse(t *testing.T) {
	// Missing header, malformed token, and expired token must all yield
	// byte-identical responses so callers cannot probe token validity.
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})

	bodies := map[string]string{}
	for name, header := range map[string]string{
		"absent":  "",
		"invalid": "Bearer garbage",
	} {
		authenticator := &fakeAuthenticator{err: errors.New("bad signature")}
		rec := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/api/todo", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		BearerAuth(authenticator)(next).ServeHTTP(rec, req)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("%s: expected 401, got %d", name, rec.Code)
		}
		bodies[name] = rec.Body.String()
	}

	if bodies["absent"] != bodies["invalid"] {
		t.Errorf("401 bodies differ by cause: %q vs %q", bodies["absent"], bodies["invalid"])
	}
}

func TestIdentityFromContext_Missing(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	if _, ok := IdentityFromContext(req.Context()); ok {
		t.Error("expected no identity in a fresh context")
	}
}
