/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the HTTP router (chi), middleware stack, and route definitions.
  This is the wiring layer that connects URLs to handlers.

MIDDLEWARE STACK:
  1. Logger:     Request logging
  2. Recoverer:  Panic recovery (500 instead of crash)
  3. RequestID:  Unique ID per request for tracing
  4. CORS:       Cross-origin requests for frontend

ROUTE GROUPS:
  /api/tool-brand/*     Brands
  /api/tool-type/*      Tool types
  /api/tool/*           Tools
  /api/rental/*         Quotes, checkouts, agreements
  /healthz              Liveness

SECURITY NOTE:
  No authentication middleware. All endpoints are public.

SEE ALSO:
  - handlers.go: Handler implementations
  - cmd/server/main.go: Server startup
*/
package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter creates a new router with all routes configured.
func NewRouter(h *Handler, allowedOrigins []string) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		ExposedHeaders:   []string{"Location"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/healthz", h.Health)

	r.Route("/api", func(r chi.Router) {
		r.Route("/tool-brand", func(r chi.Router) {
			r.Get("/", h.ListBrands)
			r.Post("/", h.CreateBrand)
		})

		r.Route("/tool-type", func(r chi.Router) {
			r.Get("/", h.ListToolTypes)
			r.Post("/", h.CreateToolType)
		})

		r.Route("/tool", func(r chi.Router) {
			r.Get("/", h.ListTools)
			r.Post("/", h.CreateTool)
			r.Get("/{toolId}", h.GetTool)
			r.Get("/{toolId}/rentals", h.ListToolRentals)
		})

		r.Route("/rental", func(r chi.Router) {
			r.Post("/", h.Checkout)
			r.Post("/quote", h.QuoteRental)
			r.Get("/{rentalId}", h.GetRental)
			r.Get("/{rentalId}/agreement", h.GetAgreementDocument)
		})
	})

	return r
}
