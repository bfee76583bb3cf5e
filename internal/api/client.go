// Package api is the REST client for the BudgetBox backend.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/Vincent-Ngobeh/budgetbox-frontend/internal/logger"
)

const (
	// DefaultTimeout bounds every request when Config.Timeout is unset.
	DefaultTimeout = 15 * time.Second

	instrumentationName = "github.com/Vincent-Ngobeh/budgetbox-frontend/internal/api"
	maxResponseBytes    = 10 << 20
)

var errBaseURLRequired = errors.New("api base URL is required")

// Config configures a Client. Nil providers fall back to the otel globals.
type Config struct {
	BaseURL        string
	Timeout        time.Duration
	Transport      http.RoundTripper
	TracerProvider trace.TracerProvider
	MeterProvider  metric.MeterProvider
}

// Client talks to the BudgetBox REST API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tracer     trace.Tracer
	duration   metric.Float64Histogram

	mu    sync.RWMutex
	token string
}

// New creates a Client. The base URL is the API root, e.g.
// "http://localhost:8000/api".
func New(cfg Config) (*Client, error) {
	trimmed := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if trimmed == "" {
		return nil, errBaseURLRequired
	}
	if _, err := url.Parse(trimmed); err != nil {
		return nil, fmt.Errorf("failed to parse api base URL: %w", err)
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	tp := cfg.TracerProvider
	if tp == nil {
		tp = otel.GetTracerProvider()
	}
	mp := cfg.MeterProvider
	if mp == nil {
		mp = otel.GetMeterProvider()
	}

	base := cfg.Transport
	if base == nil {
		base = http.DefaultTransport
	}

	duration, err := mp.Meter(instrumentationName).Float64Histogram(
		"budgetbox.api.request.duration",
		metric.WithDescription("Duration of BudgetBox API calls"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create request duration histogram: %w", err)
	}

	return &Client{
		baseURL: trimmed,
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: otelhttp.NewTransport(base,
				otelhttp.WithTracerProvider(tp),
				otelhttp.WithMeterProvider(mp),
			),
		},
		tracer:   tp.Tracer(instrumentationName),
		duration: duration,
	}, nil
}

// SetToken sets the auth token sent with every request. An empty token
// sends no Authorization header.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

// Token returns the current auth token.
func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// do performs one API call. op names the call for tracing and logs; body is
// JSON-encoded when non-nil; out is decoded from a successful response when
// non-nil. Failures are always *Error.
func (c *Client) do(ctx context.Context, op, method, path string, query url.Values, body, out any) (err error) {
	ctx, span := c.tracer.Start(ctx, "budgetbox."+op,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.request.method", method),
			attribute.String("budgetbox.operation", op),
		),
	)
	start := time.Now()
	status := 0
	defer func() {
		elapsed := time.Since(start)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.SetAttributes(attribute.Int("http.response.status_code", status))
		span.End()

		c.duration.Record(ctx, elapsed.Seconds(), metric.WithAttributes(
			attribute.String("budgetbox.operation", op),
			attribute.Int("http.response.status_code", status),
		))
		logger.Log.Debug().
			Str("method", method).
			Str("path", path).
			Int("status", status).
			Dur("duration", elapsed).
			Msg("API request")
	}()

	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return &Error{Kind: KindGeneral, Message: GenericErrorMessage, Err: fmt.Errorf("failed to encode %s request: %w", op, err)}
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return &Error{Kind: KindGeneral, Message: GenericErrorMessage, Err: fmt.Errorf("failed to create %s request: %w", op, err)}
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.Token(); token != "" {
		req.Header.Set("Authorization", "Token "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return networkError(fmt.Errorf("failed to call %s: %w", op, err))
	}
	defer func() { _ = resp.Body.Close() }()
	status = resp.StatusCode

	payload, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return networkError(fmt.Errorf("failed to read %s response: %w", op, err))
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return classify(resp.StatusCode, payload)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent || len(bytes.TrimSpace(payload)) == 0 {
		return nil
	}
	if err := json.Unmarshal(payload, out); err != nil {
		return &Error{Kind: KindGeneral, Status: status, Message: GenericErrorMessage, Err: fmt.Errorf("failed to decode %s response: %w", op, err)}
	}
	return nil
}

func (c *Client) get(ctx context.Context, op, path string, query url.Values, out any) error {
	return c.do(ctx, op, http.MethodGet, path, query, nil, out)
}

func (c *Client) post(ctx context.Context, op, path string, body, out any) error {
	return c.do(ctx, op, http.MethodPost, path, nil, body, out)
}

func (c *Client) patch(ctx context.Context, op, path string, body, out any) error {
	return c.do(ctx, op, http.MethodPatch, path, nil, body, out)
}

func (c *Client) delete(ctx context.Context, op, path string) error {
	return c.do(ctx, op, http.MethodDelete, path, nil, nil, nil)
}
