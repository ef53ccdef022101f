package app

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RahulGalipelli/AdminApp/internal/config"
	"github.com/RahulGalipelli/AdminApp/internal/session"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testConfig(backendURL string) *config.Config {
	return &config.Config{
		Environment:         "development",
		LogLevel:            "error",
		HTTPPort:            0,
		RequestTimeout:      5 * time.Second,
		BackendURL:          backendURL,
		BackendHealthPath:   "/",
		BackendTimeout:      2 * time.Second,
		BackendMaxConns:     4,
		BreakerEnabled:      true,
		BreakerTimeout:      time.Second,
		BreakerFailureRatio: 0.5,
		BreakerMinRequests:  5,
		CredentialStore:     config.CredentialStoreMemory,
		CORSAllowedOrigins:  []string{"http://localhost:3002"},
		MetricsAllowedCIDRs: []string{"127.0.0.0/8"},
		PprofAllowedCIDRs:   []string{"127.0.0.0/8"},
		RateLimitRPS:        50,
		RateLimitBurst:      100,
		LoginPerMinute:      10,
	}
}

func TestNewCredentialStore(t *testing.T) {
	ctx := context.Background()

	t.Run("memory", func(t *testing.T) {
		cfg := testConfig("http://localhost:8000")
		store, rdb, err := newCredentialStore(ctx, cfg)
		require.NoError(t, err)
		assert.IsType(t, &session.MemoryStore{}, store)
		assert.Nil(t, rdb)
	})

	t.Run("file", func(t *testing.T) {
		cfg := testConfig("http://localhost:8000")
		cfg.CredentialStore = config.CredentialStoreFile
		cfg.CredentialFile = filepath.Join(t.TempDir(), "credentials.json")

		store, rdb, err := newCredentialStore(ctx, cfg)
		require.NoError(t, err)
		require.IsType(t, &session.FileStore{}, store)
		assert.Equal(t, cfg.CredentialFile, store.(*session.FileStore).Path())
		assert.Nil(t, rdb)
	})

	t.Run("redis", func(t *testing.T) {
		mr := miniredis.RunT(t)
		port, err := strconv.Atoi(mr.Port())
		require.NoError(t, err)

		cfg := testConfig("http://localhost:8000")
		cfg.CredentialStore = config.CredentialStoreRedis
		cfg.RedisHost = mr.Host()
		cfg.RedisPort = port
		cfg.RedisPrefix = "test:"

		store, rdb, err := newCredentialStore(ctx, cfg)
		require.NoError(t, err)
		require.NotNil(t, rdb)
		t.Cleanup(func() { _ = rdb.Close() })

		require.NoError(t, store.Save(ctx, "tok1"))
		got, err := mr.Get("test:" + session.StorageKey)
		require.NoError(t, err)
		assert.Equal(t, "tok1", got)
	})

	t.Run("redis unreachable", func(t *testing.T) {
		mr := miniredis.RunT(t)
		port, err := strconv.Atoi(mr.Port())
		require.NoError(t, err)
		mr.Close()

		cfg := testConfig("http://localhost:8000")
		cfg.CredentialStore = config.CredentialStoreRedis
		cfg.RedisHost = "127.0.0.1"
		cfg.RedisPort = port

		_, _, err = newCredentialStore(ctx, cfg)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "connect to redis")
	})

	t.Run("unknown", func(t *testing.T) {
		cfg := testConfig("http://localhost:8000")
		cfg.CredentialStore = "cookie"
		_, _, err := newCredentialStore(ctx, cfg)
		assert.Error(t, err)
	})
}

func TestApp_RunRestoresSessionAndShutsDown(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(backend.Close)

	a, err := NewApp(testConfig(backend.URL), newTestLogger())
	require.NoError(t, err)
	assert.True(t, a.session.Snapshot().Loading)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.Run(ctx) }()

	require.Eventually(t, func() bool {
		return !a.session.Snapshot().Loading
	}, 2*time.Second, 10*time.Millisecond)
	assert.False(t, a.session.Snapshot().Authenticated)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestNewApp_RejectsRelativeBackend(t *testing.T) {
	cfg := testConfig("backend:8000")
	_, err := NewApp(cfg, newTestLogger())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "create backend proxy")
}
