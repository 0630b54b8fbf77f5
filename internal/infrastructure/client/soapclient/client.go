// Package soapclient exchanges SOAP 1.1 envelopes with partner endpoints.
package soapclient

import (
	"bytes"
	"context"
	"encoding/xml"
	"errors"
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
	envelopeNS             = "http://schemas.xmlsoap.org/soap/envelope/"
	defaultResponseTimeout = 30 * time.Second
	maxErrorBody           = 512
)

// Config configures a SOAP client for one partner.
type Config struct {
	Name            string
	Security        transport.SecurityConfig
	ConnectTimeout  time.Duration
	ResponseTimeout time.Duration
}

type requestEnvelope struct {
	XMLName xml.Name `xml:"soapenv:Envelope"`
	NS      string   `xml:"xmlns:soapenv,attr"`
	Header  struct{} `xml:"soapenv:Header"`
	Body    struct {
		Payload any
	} `xml:"soapenv:Body"`
}

type responseEnvelope struct {
	XMLName xml.Name `xml:"Envelope"`
	Body    struct {
		Fault *Fault `xml:"Fault"`
		Inner []byte `xml:",innerxml"`
	} `xml:"Body"`
}

// Fault is a SOAP 1.1 fault element.
type Fault struct {
	Code   string `xml:"faultcode"`
	String string `xml:"faultstring"`
	Detail string `xml:"detail"`
}

func (f *Fault) Error() string {
	return fmt.Sprintf("soap fault %s: %s", f.Code, f.String)
}

// Client posts SOAP requests. Payload encryption is the caller's concern.
type Client struct {
	cfg     Config
	lazy    *transport.LazyClient
	logger  *slog.Logger
	metrics *observability.PartnerMetrics
	tracer  trace.Tracer
}

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

// Call wraps payload in an envelope, posts it with the given SOAPAction and
// unmarshals the body element of the reply into out. payload must carry its
// own XMLName. Every error is a *transport.Error.
func (c *Client) Call(ctx context.Context, url, action string, payload, out any) (err error) {
	start := time.Now()
	ctx, span := c.tracer.Start(ctx, c.cfg.Name+" "+action, trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("partner.bank", c.cfg.Name),
			attribute.String("soap.action", action),
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
		c.metrics.Record(ctx, c.cfg.Name, action, outcome, time.Since(start))
		span.End()
	}()

	client, err := c.lazy.Get()
	if err != nil {
		return err
	}

	env := requestEnvelope{NS: envelopeNS}
	env.Body.Payload = payload
	body, err := xml.Marshal(env)
	if err != nil {
		return &transport.Error{Kind: transport.KindConstruction, Op: action, Err: fmt.Errorf("encode envelope: %w", err)}
	}

	ctx, cancel := context.WithTimeout(ctx, c.cfg.ResponseTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(append([]byte(xml.Header), body...)))
	if err != nil {
		return &transport.Error{Kind: transport.KindConstruction, Op: action, Err: fmt.Errorf("create request: %w", err)}
	}
	req.Header.Set("Content-Type", "text/xml; charset=utf-8")
	req.Header.Set("SOAPAction", action)
	req.Header.Set(transport.HeaderRequestID, transport.RequestID(ctx))

	resp, err := client.Do(req)
	if err != nil {
		return transport.Classify(action, err)
	}
	defer resp.Body.Close()

	raw, err := transport.ReadBody(action, resp.Body)
	if err != nil {
		return err
	}

	// SOAP 1.1 faults arrive with status 500, so the envelope is parsed first.
	var reply responseEnvelope
	decodeErr := xml.Unmarshal(raw, &reply)
	if decodeErr == nil && reply.Body.Fault != nil {
		c.logger.Warn(c.cfg.Name+": soap fault", "action", action, "faultcode", reply.Body.Fault.Code)
		return &transport.Error{Kind: transport.KindFault, Op: action, StatusCode: resp.StatusCode, Err: reply.Body.Fault}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &transport.Error{
			Kind:       transport.KindStatus,
			Op:         action,
			StatusCode: resp.StatusCode,
			Body:       snippet(raw),
			Err:        fmt.Errorf("unexpected status %d", resp.StatusCode),
		}
	}
	if decodeErr != nil {
		return &transport.Error{Kind: transport.KindDecode, Op: action, Body: snippet(raw), Err: fmt.Errorf("decode envelope: %w", decodeErr)}
	}
	if len(bytes.TrimSpace(reply.Body.Inner)) == 0 {
		return &transport.Error{Kind: transport.KindDecode, Op: action, Err: errors.New("empty soap body")}
	}
	if err := xml.Unmarshal(reply.Body.Inner, out); err != nil {
		return &transport.Error{Kind: transport.KindDecode, Op: action, Body: snippet(reply.Body.Inner), Err: fmt.Errorf("decode body: %w", err)}
	}
	return nil
}

func snippet(b []byte) string {
	if len(b) > maxErrorBody {
		b = b[:maxErrorBody]
	}
	return string(b)
}
