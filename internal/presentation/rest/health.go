package rest

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sort"
	"time"
)

// Pinger is a dependency the readiness probe checks.
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingFunc adapts a function to Pinger.
type PingFunc func(ctx context.Context) error

func (f PingFunc) Ping(ctx context.Context) error { return f(ctx) }

// HealthHandler provides HTTP health check endpoints.
type HealthHandler struct {
	service string
	checks  map[string]Pinger
	logger  *slog.Logger
}

// NewHealthHandler creates a HealthHandler. Nil checks are skipped.
func NewHealthHandler(service string, checks map[string]Pinger, logger *slog.Logger) *HealthHandler {
	active := make(map[string]Pinger, len(checks))
	for name, p := range checks {
		if p != nil {
			active[name] = p
		}
	}
	return &HealthHandler{service: service, checks: active, logger: logger}
}

type healthResponse struct {
	Status    string            `json:"status"`
	Service   string            `json:"service"`
	Timestamp string            `json:"timestamp"`
	Checks    map[string]string `json:"checks,omitempty"`
}

// Liveness returns 200 if the process is alive.
func (h *HealthHandler) Liveness(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		Status:    "UP",
		Service:   h.service,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

// Readiness returns 200 when every dependency answers a ping.
func (h *HealthHandler) Readiness(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	names := make([]string, 0, len(h.checks))
	for name := range h.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	status, code := "UP", http.StatusOK
	checks := make(map[string]string, len(names))
	for _, name := range names {
		if err := h.checks[name].Ping(ctx); err != nil {
			checks[name] = fmt.Sprintf("DOWN: %v", err)
			status, code = "DOWN", http.StatusServiceUnavailable
			h.logger.Warn("readiness check failed", "dependency", name, "error", err)
			continue
		}
		checks[name] = "UP"
	}

	writeJSON(w, code, healthResponse{
		Status:    status,
		Service:   h.service,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Checks:    checks,
	})
}
