package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	"github.com/iho/exemptledger/internal/adapter/http/handler"
	"github.com/iho/exemptledger/internal/adapter/http/middleware"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	ProfileHandler      *handler.ProfileHandler
	IncomeHandler       *handler.IncomeHandler
	ExportHandler       *handler.ExportHandler
	RateHandler         *handler.RateHandler
	NotificationHandler *handler.NotificationHandler
	TaskHandler         *handler.TaskHandler
	HealthHandler       *handler.HealthHandler

	Authenticator *middleware.Authenticator
	Idempotency   *middleware.IdempotencyMiddleware
	RateLimiter   *middleware.RateLimiter

	// MetricsHandler serves /metrics when set.
	MetricsHandler http.Handler
	Logger         zerolog.Logger
	CORSOrigins    []string
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewLoggingMiddleware(cfg.Logger).Wrap)
	r.Use(middleware.Recovery)
	r.Use(middleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   corsOrigins(cfg.CORSOrigins),
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", middleware.UserIDHeader, middleware.IdempotencyKeyHeader},
		ExposedHeaders:   []string{"Content-Disposition", middleware.IdempotencyReplayHeader},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	if cfg.RateLimiter != nil {
		r.Use(cfg.RateLimiter.Limit)
	}

	// Health endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	if cfg.MetricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", cfg.MetricsHandler)
	}

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		authenticator := cfg.Authenticator
		if authenticator == nil {
			authenticator = middleware.NewAuthenticator(nil, nil)
		}
		r.Use(authenticator.Wrap)

		// Idempotency middleware for mutating requests
		if cfg.Idempotency != nil {
			r.Use(cfg.Idempotency.Wrap)
		}

		r.Route("/profile", func(r chi.Router) {
			r.Post("/", cfg.ProfileHandler.Create)
			r.Get("/", cfg.ProfileHandler.Get)
		})

		r.Route("/income", func(r chi.Router) {
			r.Post("/", cfg.IncomeHandler.Add)
			r.Get("/", cfg.IncomeHandler.List)
			r.Get("/summary", cfg.IncomeHandler.Summary)
			r.Get("/monthly", cfg.IncomeHandler.Monthly)
			r.Get("/currencies", cfg.IncomeHandler.Currencies)
			r.Get("/export", cfg.ExportHandler.Export)
		})

		r.Get("/petition", cfg.ExportHandler.Petition)
		r.Get("/rates", cfg.RateHandler.List)

		r.Route("/notifications", func(r chi.Router) {
			r.Get("/", cfg.NotificationHandler.List)
			r.Delete("/", cfg.NotificationHandler.Clear)
			r.Post("/{id}/read", cfg.NotificationHandler.MarkRead)
		})

		r.Route("/tasks", func(r chi.Router) {
			r.Get("/", cfg.TaskHandler.List)
			r.Post("/{id}/toggle", cfg.TaskHandler.Toggle)
		})

		r.Get("/calendar", cfg.TaskHandler.Calendar)
	})

	return r
}

func corsOrigins(origins []string) []string {
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}
