package resilience

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/collabhub/platform/shared/logger"
	"github.com/collabhub/platform/shared/telemetry"
	"github.com/pkg/errors"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const maxResponseBody = 1 << 20

// Request is a single call to a dependency. Path is joined to the client's
// base URL; Body, when set, is sent as JSON.
type Request struct {
	Method string
	Path   string
	Body   interface{}
}

// Response holds a successful (2xx) reply.
type Response struct {
	StatusCode int
	Body       []byte
}

// Decode unmarshals the JSON body into v. An empty body is a no-op.
func (r *Response) Decode(v interface{}) error {
	if len(r.Body) == 0 {
		return nil
	}
	return errors.Wrap(json.Unmarshal(r.Body, v), "failed to decode response body")
}

// Caller performs breaker-guarded calls to one dependency.
type Caller interface {
	Call(ctx context.Context, req Request) (*Response, error)
	Dependency() DependencyName
}

// Client calls one dependency through its circuit breaker with a per-call
// timeout. Every failure, including a timeout, is recorded on the breaker.
type Client struct {
	dependency DependencyName
	baseURL    string
	timeout    time.Duration
	breaker    *CircuitBreaker
	httpClient *http.Client
}

// NewClient creates a client for dependency. A nil httpClient gets an
// otelhttp-instrumented default.
func NewClient(dependency DependencyName, baseURL string, timeout time.Duration, breaker *CircuitBreaker, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)}
	}

	return &Client{
		dependency: dependency,
		baseURL:    strings.TrimRight(baseURL, "/"),
		timeout:    timeout,
		breaker:    breaker,
		httpClient: httpClient,
	}
}

func (c *Client) Dependency() DependencyName {
	return c.dependency
}

// Breaker returns the breaker guarding this client.
func (c *Client) Breaker() *CircuitBreaker {
	return c.breaker
}

// Call performs req. It fails fast with ErrCircuitOpen when the breaker is
// open, and returns ErrRemoteCallFailed on transport errors, timeouts and
// non-2xx statuses. Errors building the request, and calls abandoned by the
// caller's own context, leave the breaker untouched.
func (c *Client) Call(ctx context.Context, req Request) (*Response, error) {
	ctx, span := telemetry.StartSpan(ctx, "remote."+string(c.dependency),
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("dependency", string(c.dependency)),
			attribute.String("http.method", req.Method),
			attribute.String("http.route", req.Path),
		),
	)
	defer span.End()

	start := time.Now()

	if !c.breaker.CanExecute() {
		err := &CallError{Dependency: c.dependency, CircuitOpen: true}
		c.observe(ctx, span, start, err)
		return nil, err
	}

	callCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	httpReq, err := c.newRequest(callCtx, req)
	if err != nil {
		c.observe(ctx, span, start, err)
		return nil, err
	}

	resp, err := c.do(httpReq)
	if err != nil {
		if !callerGaveUp(ctx, callCtx) {
			c.breaker.RecordFailure()
		}
		c.observe(ctx, span, start, err)
		return nil, err
	}

	c.breaker.RecordSuccess()
	c.observe(ctx, span, start, nil)
	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))

	return resp, nil
}

// callerGaveUp reports whether the call ended because the parent context was
// cancelled rather than because the per-call timeout expired.
func callerGaveUp(ctx, callCtx context.Context) bool {
	return ctx.Err() != nil && !errors.Is(callCtx.Err(), context.DeadlineExceeded)
}

func (c *Client) newRequest(ctx context.Context, req Request) (*http.Request, error) {
	var body io.Reader
	if req.Body != nil {
		payload, err := json.Marshal(req.Body)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to marshal %s request body", c.dependency)
		}
		body = bytes.NewReader(payload)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, c.baseURL+req.Path, body)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to build %s request", c.dependency)
	}
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	httpReq.Header.Set("Accept", "application/json")

	return httpReq, nil
}

func (c *Client) do(httpReq *http.Request) (*Response, error) {
	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, &CallError{Dependency: c.dependency, Err: err}
	}
	defer httpResp.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(httpResp.Body, maxResponseBody))
	if err != nil {
		return nil, &CallError{Dependency: c.dependency, Err: errors.Wrap(err, "failed to read response body")}
	}

	if httpResp.StatusCode < 200 || httpResp.StatusCode >= 300 {
		return nil, &CallError{
			Dependency: c.dependency,
			StatusCode: httpResp.StatusCode,
			Detail:     truncate(string(payload), 256),
		}
	}

	return &Response{StatusCode: httpResp.StatusCode, Body: payload}, nil
}

func (c *Client) observe(ctx context.Context, span trace.Span, start time.Time, err error) {
	outcome := OutcomeOf(err)
	attrs := []attribute.KeyValue{
		attribute.String("dependency", string(c.dependency)),
		attribute.String("outcome", string(outcome)),
	}

	telemetry.RecordCounter(ctx, "remote_calls_total", "Remote calls by dependency and outcome", 1, attrs...)
	telemetry.RecordHistogram(ctx, "remote_call_duration_seconds", "Remote call latency", time.Since(start).Seconds(), attrs...)

	openValue := 0.0
	if c.breaker.Snapshot().IsOpen() {
		openValue = 1
	}
	telemetry.RecordGauge(ctx, "circuit_breaker_open", "1 while the dependency breaker rejects calls", openValue,
		attribute.String("dependency", string(c.dependency)),
	)

	if err == nil {
		return
	}

	span.RecordError(err)
	span.SetStatus(codes.Error, string(outcome))

	if outcome == OutcomeCircuitOpen {
		logger.Warn("remote call rejected by open circuit", zap.String("dependency", string(c.dependency)))
		return
	}
	logger.Error("remote call failed",
		zap.String("dependency", string(c.dependency)),
		zap.Error(err),
	)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
