package rest

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/bibbank/leapneo/internal/domain/apperror"
	"github.com/bibbank/leapneo/pkg/auth"
)

// RouterConfig assembles the HTTP surface. Metrics, Auth, RateLimiter and
// CORSOrigins are optional.
type RouterConfig struct {
	Handler     *Handler
	Health      *HealthHandler
	Metrics     http.Handler
	Auth        *auth.JWTService
	RateLimiter *RateLimiter
	Errs        *apperror.Registry
	Logger      *slog.Logger
	CORSOrigins []string
}

func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(LoggingMiddleware(cfg.Logger))
	r.Use(Recoverer(cfg.Errs, cfg.Logger))

	if len(cfg.CORSOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: cfg.CORSOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-Request-Id"},
			MaxAge:         300,
		}))
	}

	r.Get("/healthz", cfg.Health.Liveness)
	r.Get("/readyz", cfg.Health.Readiness)
	if cfg.Metrics != nil {
		r.Handle("/metrics", cfg.Metrics)
	}

	r.Route("/api/v1/leapneo", func(r chi.Router) {
		if cfg.RateLimiter != nil {
			r.Use(RateLimitMiddleware(cfg.RateLimiter, cfg.Errs))
		}
		reject := UnauthorizedReject(cfg.Errs, cfg.Logger)
		scoped := func(scope string) func(http.Handler) http.Handler {
			if cfg.Auth == nil {
				return func(next http.Handler) http.Handler { return next }
			}
			return auth.RequireScope(scope, reject)
		}
		if cfg.Auth != nil {
			r.Use(auth.Middleware(cfg.Auth, nil, reject))
		}

		r.With(scoped(auth.ScopeEligibility)).Post("/check-eligibility", cfg.Handler.CheckEligibility)
		r.With(scoped(auth.ScopeBookLoan)).Post("/book-loan", cfg.Handler.BookLoan)
		r.With(scoped(auth.ScopeRead)).Get("/transactions/{transactionID}", cfg.Handler.GetTransaction)
	})

	return r
}
