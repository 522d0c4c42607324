/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the chi router, middleware stack, and route definitions.
  This is the wiring layer that connects URLs to handlers.

MIDDLEWARE STACK:
  1. Logger:     Request logging
  2. Recoverer:  Panic recovery (500 instead of crash)
  3. RequestID:  Unique ID per request for tracing
  4. CORS:       Cross-origin requests for the SPA frontend
  5. Auth:       Bearer-token identity (per-route group)

ROUTES:
  /api/punches               Clock in/out and today's punch state
  /api/attendance/*          Month view and per-day corrections
  /api/workrule              Personal work rule
  /api/reports/*             Printable monthly report

SEE ALSO:
  - handlers.go: Handler implementations
  - auth.go: Identity middleware
  - cmd/server/main.go: Server startup
*/
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter creates a router with all routes configured.
func NewRouter(h *Handler, auth *Authenticator) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:8080"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	r.Route("/api", func(r chi.Router) {
		r.Use(auth.Middleware)

		r.Route("/punches", func(r chi.Router) {
			r.Post("/", h.CreatePunch)
			r.Get("/", h.ListPunches)
		})

		r.Route("/attendance", func(r chi.Router) {
			r.Get("/{year}/{month}", h.GetMonth)
			r.Put("/{date}/category", h.SetCategory)
		})

		r.Route("/workrule", func(r chi.Router) {
			r.Get("/", h.GetWorkRule)
			r.Put("/", h.SaveWorkRule)
		})

		r.Get("/reports/{year}/{month}", h.MonthlyReport)
	})

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	return r
}
