// Package middleware provides HTTP middlewares for authentication and logging.
package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/atinyakov/TaskKeeper/internal/auth"
)

type ctxKey string

const identityKey ctxKey = "identity"

// Authenticator validates an inbound bearer token and derives the
// caller's identity.
type Authenticator interface {
	// Authenticate verifies the token string and extracts the identity.
	Authenticate(token string) (auth.Identity, error)
}

// BearerAuth enforces bearer-token authentication for every request it
// wraps. A missing Authorization header, a non-Bearer scheme, and an
// invalid or expired token all yield the same 401 response, before any
// handler logic runs.
//
// On success, the resolved identity is stored in the request context
// and can be retrieved with IdentityFromContext.
func BearerAuth(authenticator Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			identity, err := authenticator.Authenticate(token)
			if err != nil {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), identityKey, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ContextWithIdentity returns a copy of ctx carrying the identity, as
// BearerAuth would have stored it.
func ContextWithIdentity(ctx context.Context, identity auth.Identity) context.Context {
	return context.WithValue(ctx, identityKey, identity)
}

// IdentityFromContext extracts the authenticated identity from the
// request context. The boolean is false if the request did not pass
// through BearerAuth.
func IdentityFromContext(ctx context.Context) (auth.Identity, bool) {
	identity, ok := ctx.Value(identityKey).(auth.Identity)
	return identity, ok
}
