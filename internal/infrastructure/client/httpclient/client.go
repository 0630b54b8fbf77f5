// Package httpclient posts JSON to partner REST endpoints.
package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/bibbank/leapneo/internal/infrastructure/client/transport"
	"github.com/bibbank/leapneo/pkg/observability"
)

const (
	defaultResponseTimeout = 30 * time.Second
	maxErrorBody           = 512
)

// Config configures a client for one partner.
type Config struct {
	Name            string
	APIKeyHeader    string
	APIKey          string
	Security        transport.SecurityConfig
	ConnectTimeout  time.Duration
	ResponseTimeout time.Duration
}

// Client posts JSON bodies and decodes JSON replies.
type Client struct {
	cfg     Config
	lazy    *transport.LazyClient
	logger  *slog.Logger
	metrics *observability.PartnerMetrics
	tracer  trace.Tracer
}

// New returns a client. The underlying *http.Client is built on first use or
// by Init.
func New(cfg Config, logger *slog.Logger, metrics *observability.PartnerMetrics) *Client {
	if cfg.ResponseTimeout <= 0 {
		cfg.ResponseTimeout = defaultResponseTimeout
	}
	return &Client{
		cfg: cfg,
		lazy: transport.NewLazyClient(transport.Builder{
			Security:       cfg.Security,
			ConnectTimeout: cfg.ConnectTimeout,
		}),
		logger:  logger,
		metrics: metrics,
		tracer:  observability.Tracer(),
	}
}

// Init builds the underlying client and reports a construction failure.
func (c *Client) Init() error {
	return c.lazy.Init()
}

// PostJSON sends body to url and decodes the reply into out. op labels the
// call in metrics and traces. Every error is a *transport.Error.
func (c *Client) PostJSON(ctx context.Context, op, url string, body, out any) (err error) {
	start := time.Now()
	ctx, span := c.tracer.Start(ctx, c.cfg.Name+" "+op, trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("partner.bank", c.cfg.Name),
			attribute.String("partner.operation", op),
		))
	defer func() {
		outcome := "success"
		if err != nil {
			outcome = "error"
			if te, ok := transport.AsError(err); ok {
				outcome = te.Kind.String()
			}
			span.RecordError(err)
			span.SetStatus(codes.Error, outcome)
		}
		c.metrics.Record(ctx, c.cfg.Name, op, outcome, time.Since(start))
		span.End()
	}()

	client, err := c.lazy.Get()
	if err != nil {
		return err
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return &transport.Error{Kind: transport.KindConstruction, Op: op, Err: fmt.Errorf("encode request: %w", err)}
	}

	ctx, cancel := context.WithTimeout(ctx, c.cfg.ResponseTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return &transport.Error{Kind: transport.KindConstruction, Op: op, Err: fmt.Errorf("create request: %w", err)}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set(transport.HeaderRequestID, transport.RequestID(ctx))
	if c.cfg.APIKeyHeader != "" && c.cfg.APIKey != "" {
		req.Header.Set(c.cfg.APIKeyHeader, c.cfg.APIKey)
	}

	resp, err := client.Do(req)
	if err != nil {
		return transport.Classify(op, err)
	}
	defer resp.Body.Close()

	raw, err := transport.ReadBody(op, resp.Body)
	if err != nil {
		return err
	}
	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Warn(c.cfg.Name+": partner returned error status", "operation", op, "status", resp.StatusCode)
		return &transport.Error{
			Kind:       transport.KindStatus,
			Op:         op,
			StatusCode: resp.StatusCode,
			Body:       snippet(raw),
			Err:        fmt.Errorf("unexpected status %d", resp.StatusCode),
		}
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return &transport.Error{Kind: transport.KindDecode, Op: op, Body: snippet(raw), Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

func snippet(b []byte) string {
	if len(b) > maxErrorBody {
		b = b[:maxErrorBody]
	}
	return string(b)
}
