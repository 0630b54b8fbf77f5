package rest

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"
	"sync"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/bibbank/leapneo/internal/application/usecase"
	"github.com/bibbank/leapneo/internal/domain/apperror"
	"github.com/bibbank/leapneo/pkg/auth"
)

// RateLimiter implements a simple token bucket rate limiter.
type RateLimiter struct {
	mu         sync.Mutex
	tokens     float64
	maxTokens  float64
	refillRate float64 // tokens per second
	lastRefill time.Time
}

// NewRateLimiter allows rps requests per second with bursts up to burst.
// A burst below one defaults to rps.
func NewRateLimiter(rps, burst int) *RateLimiter {
	if burst < 1 {
		burst = rps
	}
	return &RateLimiter{
		tokens:     float64(burst),
		maxTokens:  float64(burst),
		refillRate: float64(rps),
		lastRefill: time.Now(),
	}
}

// Allow reports whether a single request is permitted.
// It consumes one token if available.
func (rl *RateLimiter) Allow() bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	rl.tokens += now.Sub(rl.lastRefill).Seconds() * rl.refillRate
	if rl.tokens > rl.maxTokens {
		rl.tokens = rl.maxTokens
	}
	rl.lastRefill = now

	if rl.tokens >= 1 {
		rl.tokens--
		return true
	}
	return false
}

// RateLimitMiddleware answers throttled requests with 429 and the
// UNABLE_TO_PROCESS_REQUEST body.
func RateLimitMiddleware(limiter *RateLimiter, errs *apperror.Registry) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				appErr := errs.Error(apperror.KindUnableToProcessRequest, apperror.ClassValidation, nil)
				writeJSON(w, http.StatusTooManyRequests, usecase.ErrorBody(appErr))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// responseWriter wraps http.ResponseWriter to capture the status code.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// LoggingMiddleware logs every HTTP request with its status and duration.
func LoggingMiddleware(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
			next.ServeHTTP(rw, r)
			logger.Info("request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", rw.statusCode,
				"duration_ms", time.Since(start).Milliseconds(),
				"remote_addr", r.RemoteAddr,
				"request_id", middleware.GetReqID(r.Context()),
			)
		})
	}
}

// Recoverer turns a panic into the INTERNAL_SERVER_ERROR body.
func Recoverer(errs *apperror.Registry, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				logger.Error("panic serving request",
					"path", r.URL.Path,
					"request_id", middleware.GetReqID(r.Context()),
					"panic", fmt.Sprint(rec),
					"stack", string(debug.Stack()),
				)
				appErr := errs.Error(apperror.KindInternalServerError, apperror.ClassDispatch, fmt.Errorf("panic: %v", rec))
				writeJSON(w, appErr.Entry.HTTPStatus, usecase.ErrorBody(appErr))
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// UnauthorizedReject writes the canonical UNAUTHORIZED body for auth.Middleware.
func UnauthorizedReject(errs *apperror.Registry, logger *slog.Logger) auth.RejectFunc {
	return func(w http.ResponseWriter, r *http.Request, err error) {
		logger.Warn("request rejected", "path", r.URL.Path, "error", err)
		appErr := errs.Error(apperror.KindUnauthorized, apperror.ClassValidation, err)
		writeJSON(w, appErr.Entry.HTTPStatus, usecase.ErrorBody(appErr))
	}
}
