// Package http provides HTTP routing and middleware configuration
// for the TaskKeeper service.
package http

import (
	"net/http"

	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/atinyakov/TaskKeeper/internal/middleware"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
)

// NewRouter constructs and returns an HTTP handler that serves the
// TaskKeeper API. It applies CORS for the configured web client origin,
// JSON content-type enforcement, and request logging, and mounts the
// public auth endpoints and the bearer-token protected todo endpoints
// under /api.
//
// Routes:
//
//	POST   /api/auth/register   → authHandler.Register
//	POST   /api/auth/login      → authHandler.Login
//	GET    /api/todo            → todoHandler.GetAll      (protected)
//	GET    /api/todo/filter     → todoHandler.Filter      (protected)
//	GET    /api/todo/summary    → todoHandler.Summary     (protected)
//	GET    /api/todo/{id}       → todoHandler.GetByID     (protected)
//	POST   /api/todo            → todoHandler.Create      (protected)
//	PUT    /api/todo/{id}       → todoHandler.Update      (protected)
//	DELETE /api/todo/{id}       → todoHandler.Delete      (protected)
//	PATCH  /api/todo/{id}/toggle → todoHandler.Toggle     (protected)
func NewRouter(
	authHandler *AuthHandler,
	todoHandler *TodoHandler,
	authenticator middleware.Authenticator,
	corsOrigin string,
	logger *zap.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Allow the web client origin to call the API from the browser.
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{corsOrigin},
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	}))

	// Only allow requests with Content-Type: application/json
	r.Use(chiMiddleware.AllowContentType("application/json"))

	// Log each request and its metadata
	r.Use(middleware.WithRequestLogging(logger))

	// Mount API routes
	r.Route("/api", func(r chi.Router) {
		// Public endpoints
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)

		// Protected group: requires a valid bearer token
		r.Group(func(r chi.Router) {
			r.Use(middleware.BearerAuth(authenticator))

			r.Route("/todo", func(r chi.Router) {
				r.Get("/", todoHandler.GetAll)
				r.Get("/filter", todoHandler.Filter)
				r.Get("/summary", todoHandler.Summary)
				r.Get("/{id}", todoHandler.GetByID)
				r.Post("/", todoHandler.Create)
				r.Put("/{id}", todoHandler.Update)
				r.Delete("/{id}", todoHandler.Delete)
				r.Patch("/{id}/toggle", todoHandler.Toggle)
			})
		})
	})

	return r
}
