package middleware

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })
}

func send(h http.Handler, remote string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/session/login", nil)
	req.RemoteAddr = remote
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestRateLimiter_WithinBurst(t *testing.T) {
	rl := NewRateLimiter(10, 10, newTestLogger())
	defer rl.Close()
	h := rl.Handler(okHandler())

	for i := 0; i < 5; i++ {
		assert.Equal(t, http.StatusOK, send(h, "192.168.1.1:1234").Code, "request %d", i+1)
	}
}

func TestRateLimiter_ExceedingBurst(t *testing.T) {
	rl := NewRateLimiter(PerMinute(5), 2, newTestLogger())
	defer rl.Close()
	h := rl.Handler(okHandler())

	assert.Equal(t, http.StatusOK, send(h, "10.0.0.1:1").Code)
	assert.Equal(t, http.StatusOK, send(h, "10.0.0.1:1").Code)

	rr := send(h, "10.0.0.1:1")
	require.Equal(t, http.StatusTooManyRequests, rr.Code)
	assert.Contains(t, rr.Body.String(), "RATE_LIMITED")
	assert.Equal(t, "12", rr.Header().Get("Retry-After"))

	// Another client has its own bucket.
	assert.Equal(t, http.StatusOK, send(h, "10.0.0.2:1").Code)
}

func TestRateLimiter_Cleanup(t *testing.T) {
	rl := newRateLimiter(1, 1, time.Minute, newTestLogger())
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	rl.nowFunc = func() time.Time { return now }

	rl.get("10.0.0.1")
	rl.get("10.0.0.2")
	assert.Equal(t, 2, rl.len())

	now = now.Add(30 * time.Second)
	rl.get("10.0.0.2")
	now = now.Add(45 * time.Second)
	rl.cleanup()
	assert.Equal(t, 1, rl.len(), "only the idle visitor is evicted")
}

func TestPerMinute(t *testing.T) {
	assert.Equal(t, rate.Inf, PerMinute(0))
	assert.InDelta(t, 0.5, float64(PerMinute(30)), 1e-9)
}

func TestRateLimiter_CloseTwice(t *testing.T) {
	rl := NewRateLimiter(1, 1, newTestLogger())
	rl.Close()
	assert.NotPanics(t, rl.Close)
}
