// Package routes wires HTTP routes to their handlers.
package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"jobtracker/internal/auth"
	"jobtracker/internal/handlers"
	"jobtracker/internal/metrics"
	"jobtracker/internal/middleware"
)

// Deps carries the constructed handlers and middleware dependencies.
type Deps struct {
	Health        *handlers.HealthHandler
	Auth          *handlers.AuthHandler
	PasswordReset *handlers.PasswordResetHandler
	Applications  *handlers.ApplicationHandler
	TokenIssuer   *auth.TokenIssuer
	RateLimiter   *middleware.RateLimiter
	Metrics       *metrics.Metrics
	Logger        *zap.Logger
}

// New configures all application routes. Application-scoped routes require
// a valid bearer token; registration, login, and the reset-password flow
// are unauthenticated.
func New(d Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestLogger(d.Logger))
	r.Use(d.Metrics.Middleware())

	r.Get("/api/health", d.Health.HealthCheck)
	r.Get("/readyz", d.Health.ReadinessCheck)
	r.Method(http.MethodGet, "/metrics", d.Metrics.Handler())

	r.Route("/api/auth", func(r chi.Router) {
		// Public endpoints, throttled per client IP
		r.Group(func(r chi.Router) {
			r.Use(d.RateLimiter.Middleware())
			r.Post("/register", d.Auth.Register)
			r.Post("/login", d.Auth.Login)
			r.Post("/forgot-password", d.PasswordReset.ForgotPassword)
			r.Post("/verify-reset-token", d.PasswordReset.VerifyResetToken)
			r.Post("/reset-password", d.PasswordReset.ResetPassword)
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(d.TokenIssuer))
			r.Get("/me", d.Auth.Me)
		})
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(d.TokenIssuer))
		r.Get("/api/applications", d.Applications.List)
		r.Post("/api/applications", d.Applications.Create)
		r.Get("/api/applications/{id}", d.Applications.Get)
		r.Put("/api/applications/{id}", d.Applications.Update)
		r.Delete("/api/applications/{id}", d.Applications.Delete)
		r.Get("/api/stats", d.Applications.Stats)
	})

	return r
}
