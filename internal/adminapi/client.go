// Package adminapi is the console's single access point to the AgriCure
// backend. Every request carries the stored credential as a bearer token.
package adminapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/RahulGalipelli/AdminApp/internal/session"
	apperrors "github.com/RahulGalipelli/AdminApp/pkg/errors"
	"github.com/RahulGalipelli/AdminApp/pkg/httpclient"
	"github.com/RahulGalipelli/AdminApp/pkg/tracing"
)

const (
	serviceName = "admin-api"
	tracerName  = "github.com/RahulGalipelli/AdminApp/internal/adminapi"

	// maxResponseBody caps decoded success bodies.
	maxResponseBody = 16 << 20
)

// TokenSource supplies the credential attached to each request.
// session.CredentialStore satisfies it.
type TokenSource interface {
	Load(ctx context.Context) (string, error)
}

// UnauthorizedFunc is called when the backend rejects a credential. token is
// the credential the rejected request carried, "" if none.
type UnauthorizedFunc func(ctx context.Context, token string)

// Client calls the backend admin endpoints. Each call is one round trip with
// no retry and no caching.
type Client struct {
	baseURL string
	http    httpclient.Doer
	tokens  TokenSource
	logger  *slog.Logger
	tracer  trace.Tracer

	mu             sync.RWMutex
	onUnauthorized UnauthorizedFunc
}

// New creates a client for the backend at baseURL.
func New(baseURL string, doer httpclient.Doer, tokens TokenSource, logger *slog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    doer,
		tokens:  tokens,
		logger:  logger,
		tracer:  tracing.Tracer(tracerName),
	}
}

// OnUnauthorized registers the hook run when any call except Login gets a 401.
func (c *Client) OnUnauthorized(fn UnauthorizedFunc) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onUnauthorized = fn
}

// BaseURL returns the backend root the client talks to.
func (c *Client) BaseURL() string { return c.baseURL }

// request describes one backend call.
type request struct {
	endpoint string // metric and span label
	method   string
	path     string
	body     any

	// login is exempt from the unauthorized hook: a 401 there means bad
	// credentials, not a stale session.
	login bool
}

func (c *Client) do(ctx context.Context, r request, out any) (err error) {
	ctx, span := c.tracer.Start(ctx, "adminapi."+r.endpoint,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.request.method", r.method),
			attribute.String("url.path", r.path),
		),
	)
	start := time.Now()
	status := "error"
	defer func() {
		apiRequestsTotal.WithLabelValues(r.endpoint, status).Inc()
		apiRequestDuration.WithLabelValues(r.endpoint).Observe(time.Since(start).Seconds())
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	var body io.Reader = http.NoBody
	if r.body != nil {
		data, err := json.Marshal(r.body)
		if err != nil {
			return fmt.Errorf("marshal %s request: %w", r.endpoint, err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, r.method, c.baseURL+r.path, body)
	if err != nil {
		return fmt.Errorf("create %s request: %w", r.endpoint, err)
	}
	req.Header.Set("Accept", "application/json")
	if r.body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	token := c.credential(ctx)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(ctx, req)
	if err != nil {
		return c.transportError(ctx, r.endpoint, err)
	}
	defer func() { _ = resp.Body.Close() }()

	status = strconv.Itoa(resp.StatusCode)
	span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))

	if resp.StatusCode == http.StatusUnauthorized && !r.login {
		c.unauthorized(ctx, token)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return httpclient.ParseResponseError(resp, serviceName)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseBody))
		return nil
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBody)).Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return apperrors.Upstream(fmt.Sprintf("%s: malformed %s response", serviceName, r.endpoint), err)
	}
	return nil
}

func (c *Client) credential(ctx context.Context) string {
	token, err := c.tokens.Load(ctx)
	if err != nil {
		if !errors.Is(err, session.ErrNoCredential) {
			c.logger.WarnContext(ctx, "credential unreadable, sending request without it",
				slog.String("error", err.Error()),
			)
		}
		return ""
	}
	return token
}

func (c *Client) unauthorized(ctx context.Context, token string) {
	c.mu.RLock()
	fn := c.onUnauthorized
	c.mu.RUnlock()
	if fn != nil {
		fn(ctx, token)
	}
}

func (c *Client) transportError(ctx context.Context, endpoint string, err error) error {
	switch {
	case ctx.Err() != nil:
		return fmt.Errorf("%s: %w", endpoint, ctx.Err())
	case errors.Is(err, httpclient.ErrCircuitOpen):
		return &apperrors.AppError{
			Code:    "SERVICE_UNAVAILABLE",
			Message: "backend is temporarily unavailable",
			Status:  http.StatusServiceUnavailable,
			Err:     fmt.Errorf("%w: %w", apperrors.ErrServiceUnavail, err),
		}
	default:
		return apperrors.Upstream(fmt.Sprintf("%s: %s request failed", serviceName, endpoint), err)
	}
}

// Ping reports whether the backend answers HTTP at all. Any status below 500
// counts as reachable; the check sends no credential.
func (c *Client) Ping(ctx context.Context, path string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, http.NoBody)
	if err != nil {
		return fmt.Errorf("create ping request: %w", err)
	}
	resp, err := c.http.Do(ctx, req)
	if err != nil {
		return fmt.Errorf("backend unreachable: %w", err)
	}
	_ = resp.Body.Close()
	if resp.StatusCode >= 500 {
		return fmt.Errorf("backend unhealthy: status %d", resp.StatusCode)
	}
	return nil
}
