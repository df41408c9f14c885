// Package http provides HTTP routing and middleware configuration
// for the account API.
package http

import (
	"net/http"

	"github.com/atinyakov/AccountKeeper/internal/middleware"
	"go.uber.org/zap"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
)

// NewRouter constructs and returns an HTTP handler that serves
// the account API. It applies JSON content-type enforcement and
// request logging, and mounts the account endpoints under /api.
//
// Routes:
//
//	GET    /api/accounts              → accountHandler.List
//	POST   /api/accounts              → accountHandler.Add
//	GET    /api/accounts/can-add      → accountHandler.CanAdd
//	PATCH  /api/accounts/{id}         → accountHandler.Update
//	DELETE /api/accounts/{id}         → accountHandler.Remove
//	GET    /api/accounts/{id}/errors  → accountHandler.Errors
//
// Middleware chain (applied in order):
//  1. AllowContentType("application/json") — rejects non-JSON request bodies
//  2. WithRequestLogging(logger)         — logs requests with a request id
//  3. Recoverer                          — turns handler panics into 500s
func NewRouter(accountHandler *AccountHandler, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	// Only allow requests with Content-Type: application/json
	r.Use(chiMiddleware.AllowContentType("application/json"))

	// Log each request and its metadata
	r.Use(middleware.WithRequestLogging(logger))
	r.Use(chiMiddleware.Recoverer)

	r.Route("/api/accounts", func(r chi.Router) {
		r.Get("/", accountHandler.List)
		r.Post("/", accountHandler.Add)
		r.Get("/can-add", accountHandler.CanAdd)

		r.Route("/{id}", func(r chi.Router) {
			r.Patch("/", accountHandler.Update)
			r.Delete("/", accountHandler.Remove)
			r.Get("/errors", accountHandler.Errors)
		})
	})

	return r
}
