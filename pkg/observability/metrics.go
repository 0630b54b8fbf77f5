package observability

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	promexporter "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
)

const instrumentationName = "github.com/bibbank/leapneo"

// MetricsConfig holds metrics configuration.
type MetricsConfig struct {
	ServiceName string
}

// InitMetrics initializes the Prometheus metrics exporter and installs the
// resulting MeterProvider globally. Returns the provider and an HTTP handler
// for the /metrics endpoint.
func InitMetrics(cfg MetricsConfig) (*sdkmetric.MeterProvider, http.Handler, error) {
	exporter, err := promexporter.New()
	if err != nil {
		return nil, nil, fmt.Errorf("observability: prometheus exporter: %w", err)
	}

	provider := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(exporter),
		sdkmetric.WithResource(resource.NewSchemaless(
			attribute.String("service.name", cfg.ServiceName),
		)),
	)
	otel.SetMeterProvider(provider)

	return provider, promhttp.Handler(), nil
}

// PartnerMetrics records outbound partner-bank calls. A nil *PartnerMetrics
// is valid and records nothing.
type PartnerMetrics struct {
	calls   metric.Int64Counter
	latency metric.Float64Histogram
}

// NewPartnerMetrics creates the partner call instruments on the global meter
// provider.
func NewPartnerMetrics() (*PartnerMetrics, error) {
	meter := otel.Meter(instrumentationName)

	calls, err := meter.Int64Counter("leapneo_partner_calls_total",
		metric.WithDescription("Outbound partner bank calls by bank, operation and outcome."),
	)
	if err != nil {
		return nil, fmt.Errorf("observability: partner call counter: %w", err)
	}

	latency, err := meter.Float64Histogram("leapneo_partner_call_duration_seconds",
		metric.WithDescription("Latency of outbound partner bank calls."),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("observability: partner call histogram: %w", err)
	}

	return &PartnerMetrics{calls: calls, latency: latency}, nil
}

// Record adds one observation for a partner call.
func (m *PartnerMetrics) Record(ctx context.Context, bank, operation, outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	attrs := metric.WithAttributes(
		attribute.String("bank", bank),
		attribute.String("operation", operation),
		attribute.String("outcome", outcome),
	)
	m.calls.Add(ctx, 1, attrs)
	m.latency.Record(ctx, elapsed.Seconds(), attrs)
}
