package main

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/fundflow/fundflow/internal/auth"
	"github.com/fundflow/fundflow/internal/config"
	"github.com/fundflow/fundflow/internal/handlers"
	"github.com/fundflow/fundflow/internal/middleware"
	"github.com/fundflow/fundflow/internal/repo"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// newRouter builds the full API handler chain. Split from main so the
// integration test can run the router against a mock database.
func newRouter(db *sql.DB, cfg config.Config) http.Handler {
	tokens := auth.NewTokenService(
		[]byte(cfg.JWTSecret),
		time.Duration(cfg.JWTExpireHours)*time.Hour,
	)

	authHandler := &handlers.AuthHandler{
		UserRepo: repo.NewUserRepo(db),
		Tokens:   tokens,
	}
	projectHandler := &handlers.ProjectHandler{
		Repo: repo.NewProjectRepo(db),
	}

	hsts := cfg.TLSCertFile != "" && cfg.TLSKeyFile != ""

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestLog)
	r.Use(middleware.Prometheus)
	r.Use(middleware.SecurityHeaders(hsts))
	r.Use(middleware.CORS(cfg.CORSAllowedOrigins))
	r.Use(middleware.MaxBytes(middleware.DefaultMaxBodyBytes))

	r.Get("/health", handlers.Health)
	r.Handle("/metrics", promhttp.Handler())

	// Auth endpoints, rate limited per IP.
	authLimiter := middleware.AuthRateLimiter()
	r.Group(func(r chi.Router) {
		r.Use(authLimiter.Middleware)
		r.Post("/register", authHandler.Register)
		r.Post("/login", authHandler.Login)
	})

	// Public project surface.
	r.Get("/projects", projectHandler.ListProjects)
	r.Post("/projects/{id}/donate", projectHandler.Donate)

	// Project creation requires a valid token.
	r.Group(func(r chi.Router) {
		r.Use(middleware.JWTMiddleware(tokens))
		r.Post("/projects", projectHandler.CreateProject)
	})

	return r
}
