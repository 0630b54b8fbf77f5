package rest

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadiness(t *testing.T) {
	up := PingFunc(func(context.Context) error { return nil })
	down := PingFunc(func(context.Context) error { return errors.New("connection refused") })

	tests := []struct {
		name       string
		checks     map[string]Pinger
		wantCode   int
		wantStatus string
	}{
		{name: "all up", checks: map[string]Pinger{"postgres": up, "redis": up}, wantCode: http.StatusOK, wantStatus: "UP"},
		{name: "redis down", checks: map[string]Pinger{"postgres": up, "redis": down}, wantCode: http.StatusServiceUnavailable, wantStatus: "DOWN"},
		{name: "nil check skipped", checks: map[string]Pinger{"postgres": up, "redis": nil}, wantCode: http.StatusOK, wantStatus: "UP"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHealthHandler("leapneo", tt.checks, discardLogger())
			rec := httptest.NewRecorder()
			h.Readiness(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))

			assert.Equal(t, tt.wantCode, rec.Code)
			var body healthResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.wantStatus, body.Status)
			assert.Equal(t, "leapneo", body.Service)
			assert.Equal(t, "UP", body.Checks["postgres"])
		})
	}
}

func TestLiveness(t *testing.T) {
	rec := httptest.NewRecorder()
	NewHealthHandler("leapneo", nil, discardLogger()).Liveness(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"UP"`)
}
