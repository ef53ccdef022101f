// Package proxy forwards /api/* to the backend with the prefix stripped,
// the way the dashboard's development server did.
package proxy

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"net/http/httputil"
	"net/url"
	"strings"
	"time"

	"github.com/RahulGalipelli/AdminApp/internal/adminapi"
	pkghttputil "github.com/RahulGalipelli/AdminApp/pkg/httputil"
	"github.com/RahulGalipelli/AdminApp/pkg/logger"
)

// Prefix is stripped from every proxied path.
const Prefix = "/api"

// Config holds proxy transport settings.
type Config struct {
	DialTimeout     time.Duration
	ResponseTimeout time.Duration
	IdleTimeout     time.Duration
	MaxIdleConns    int
}

// DefaultConfig returns the proxy transport defaults.
func DefaultConfig() Config {
	return Config{
		DialTimeout:     5 * time.Second,
		ResponseTimeout: 30 * time.Second,
		IdleTimeout:     90 * time.Second,
		MaxIdleConns:    100,
	}
}

// BackendProxy is a reverse proxy to the backend that attaches the stored
// credential to requests that carry none.
type BackendProxy struct {
	proxy          *httputil.ReverseProxy
	tokens         adminapi.TokenSource
	onUnauthorized adminapi.UnauthorizedFunc
	logger         *slog.Logger
}

type tokenKey struct{}

// New creates a proxy to backendURL. onUnauthorized may be nil.
func New(backendURL string, cfg Config, tokens adminapi.TokenSource, onUnauthorized adminapi.UnauthorizedFunc, log *slog.Logger) (*BackendProxy, error) {
	target, err := url.Parse(backendURL)
	if err != nil {
		return nil, fmt.Errorf("parse backend url: %w", err)
	}
	if target.Scheme == "" || target.Host == "" {
		return nil, fmt.Errorf("backend url %q must be absolute", backendURL)
	}

	bp := &BackendProxy{tokens: tokens, onUnauthorized: onUnauthorized, logger: log}
	bp.proxy = &httputil.ReverseProxy{
		Rewrite: func(pr *httputil.ProxyRequest) {
			pr.SetURL(target)
			pr.SetXForwarded()
			pr.Out.URL.Path = singleSlash(target.Path, strip(pr.In.URL.Path))
			pr.Out.URL.RawPath = ""
			pr.Out.Host = target.Host

			if pr.Out.Header.Get("Authorization") == "" {
				if token, err := tokens.Load(pr.In.Context()); err == nil && token != "" {
					pr.Out.Header.Set("Authorization", "Bearer "+token)
					pr.Out = pr.Out.WithContext(context.WithValue(pr.Out.Context(), tokenKey{}, token))
				}
			}
			if id := logger.CorrelationIDFromContext(pr.In.Context()); id != "" {
				pr.Out.Header.Set("X-Correlation-ID", id)
			}
		},
		Transport: &http.Transport{
			Proxy: http.ProxyFromEnvironment,
			DialContext: (&net.Dialer{
				Timeout:   cfg.DialTimeout,
				KeepAlive: 30 * time.Second,
			}).DialContext,
			MaxIdleConns:          cfg.MaxIdleConns,
			IdleConnTimeout:       cfg.IdleTimeout,
			ResponseHeaderTimeout: cfg.ResponseTimeout,
		},
		ModifyResponse: bp.modifyResponse,
		ErrorHandler:   bp.errorHandler,
	}

	log.Info("registered backend proxy",
		slog.String("prefix", Prefix),
		slog.String("target", target.String()),
	)
	return bp, nil
}

// ServeHTTP proxies the request.
func (bp *BackendProxy) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	bp.proxy.ServeHTTP(w, r)
}

// modifyResponse ends the session when the backend rejects the credential
// the proxy attached.
func (bp *BackendProxy) modifyResponse(resp *http.Response) error {
	if resp.StatusCode != http.StatusUnauthorized || bp.onUnauthorized == nil {
		return nil
	}
	token, ok := resp.Request.Context().Value(tokenKey{}).(string)
	if !ok {
		return nil
	}
	bp.onUnauthorized(resp.Request.Context(), token)
	return nil
}

func (bp *BackendProxy) errorHandler(w http.ResponseWriter, r *http.Request, err error) {
	if r.Context().Err() != nil {
		w.WriteHeader(pkghttputil.StatusClientClosedRequest)
		return
	}
	logger.WithContext(r.Context(), bp.logger).ErrorContext(r.Context(), "proxy error",
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.String("error", err.Error()),
	)
	pkghttputil.WriteJSON(w, http.StatusBadGateway, pkghttputil.Response{
		Error: &pkghttputil.ErrorResponse{Code: "BAD_GATEWAY", Message: "backend unavailable"},
	})
}

// strip removes Prefix from path, keeping a leading slash.
func strip(path string) string {
	p := strings.TrimPrefix(path, Prefix)
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return p
}

func singleSlash(a, b string) string {
	switch {
	case a == "" || a == "/":
		return b
	case strings.HasSuffix(a, "/"):
		return a + strings.TrimPrefix(b, "/")
	default:
		return a + b
	}
}
