package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"

	"github.com/RahulGalipelli/AdminApp/internal/adminapi"
	"github.com/RahulGalipelli/AdminApp/internal/config"
	"github.com/RahulGalipelli/AdminApp/internal/event"
	handler "github.com/RahulGalipelli/AdminApp/internal/handler/http"
	"github.com/RahulGalipelli/AdminApp/internal/middleware"
	"github.com/RahulGalipelli/AdminApp/internal/proxy"
	"github.com/RahulGalipelli/AdminApp/internal/service"
	"github.com/RahulGalipelli/AdminApp/internal/session"
	"github.com/RahulGalipelli/AdminApp/pkg/database"
	"github.com/RahulGalipelli/AdminApp/pkg/health"
	"github.com/RahulGalipelli/AdminApp/pkg/httpclient"
	pkgkafka "github.com/RahulGalipelli/AdminApp/pkg/kafka"
	pkgmiddleware "github.com/RahulGalipelli/AdminApp/pkg/middleware"
	"github.com/RahulGalipelli/AdminApp/pkg/tracing"
)

const serviceName = "admin-console"

// App wires together all dependencies and runs the admin console.
type App struct {
	cfg            *config.Config
	logger         *slog.Logger
	session        *session.Store
	scopes         *service.Scopes
	rdb            *redis.Client
	producer       *pkgkafka.Producer
	limiters       []*middleware.RateLimiter
	httpServer     *http.Server
	tracerShutdown func(context.Context) error
}

// NewApp creates a new application instance, initializing all dependencies.
// The session is not restored until Run.
func NewApp(cfg *config.Config, logger *slog.Logger) (*App, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Initialize OpenTelemetry tracing.
	tracerShutdown, err := tracing.InitTracer(ctx, tracing.Config{
		ServiceName:    serviceName,
		ServiceVersion: "0.1.0",
		Environment:    cfg.Environment,
		OTLPEndpoint:   cfg.OTELEndpoint,
		Insecure:       cfg.OTELInsecure,
		SampleRate:     cfg.OTELSampleRate,
		Enabled:        cfg.OTELEnabled,
	})
	if err != nil {
		return nil, fmt.Errorf("init tracer: %w", err)
	}

	a := &App{
		cfg:            cfg,
		logger:         logger,
		tracerShutdown: tracerShutdown,
	}

	// Credential persistence.
	creds, rdb, err := newCredentialStore(ctx, cfg)
	if err != nil {
		_ = tracerShutdown(context.Background())
		return nil, err
	}
	a.rdb = rdb
	logger.Info("credential store initialized", slog.String("type", cfg.CredentialStore))

	// Audit events.
	var publisher event.Publisher
	if cfg.KafkaEnabled {
		a.producer = pkgkafka.NewProducer(pkgkafka.DefaultProducerConfig(cfg.KafkaBrokers), logger)
		publisher = a.producer
		logger.Info("kafka producer initialized", slog.Any("brokers", cfg.KafkaBrokers))
	}
	eventProducer := event.NewProducer(publisher, logger)

	// Backend client: pooled transport behind a circuit breaker.
	var doer httpclient.Doer = httpclient.New(httpclient.Config{
		Timeout:         cfg.BackendTimeout,
		MaxConnsPerHost: cfg.BackendMaxConns,
	})
	if cfg.BreakerEnabled {
		cbCfg := httpclient.DefaultCircuitBreakerConfig("admin-api")
		cbCfg.Timeout = cfg.BreakerTimeout
		cbCfg.FailureRatio = cfg.BreakerFailureRatio
		cbCfg.MinRequests = cfg.BreakerMinRequests
		doer = httpclient.NewCircuitBreakerClient(doer, cbCfg, logger)
	}
	client := adminapi.New(cfg.BackendURL, doer, creds, logger)

	// Session, with every rejected credential ending it.
	a.session = session.NewStore(client, creds, logger, session.WithAuditor(eventProducer))
	client.OnUnauthorized(a.session.HandleUnauthorized)

	// Page services.
	a.scopes = service.NewScopes()
	svcs := handler.Services{
		Scopes:    a.scopes,
		Dashboard: service.NewDashboardService(client, a.scopes, logger),
		Uploads:   service.NewUploadService(client, a.scopes, logger),
		Products:  service.NewProductService(client, eventProducer, a.scopes, logger),
		Orders:    service.NewOrderService(client, eventProducer, a.scopes, logger),
		Support:   service.NewSupportService(client, eventProducer, a.scopes, logger),
		Analytics: service.NewAnalyticsService(client, a.scopes, logger),
		Settings:  service.NewSettingsService(client, eventProducer, logger),
	}

	apiProxy, err := proxy.New(cfg.BackendURL, proxy.DefaultConfig(), creds, a.session.HandleUnauthorized, logger)
	if err != nil {
		_ = a.closeResources()
		return nil, fmt.Errorf("create backend proxy: %w", err)
	}

	// Health checks.
	healthHandler := health.NewHandler()
	healthHandler.RegisterCritical("backend", func(ctx context.Context) error {
		return client.Ping(ctx, cfg.BackendHealthPath)
	})
	if a.rdb != nil {
		healthHandler.RegisterCritical("redis", database.RedisHealthCheck(a.rdb))
	}
	if a.producer != nil {
		healthHandler.RegisterNonCritical("kafka", a.producer.Ping)
	}

	// Edge rate limiting.
	var rl, loginRL *middleware.RateLimiter
	if cfg.RateLimitRPS > 0 {
		rl = middleware.NewRateLimiter(rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst, logger)
		a.limiters = append(a.limiters, rl)
	}
	if cfg.LoginPerMinute > 0 {
		loginRL = middleware.NewRateLimiter(middleware.PerMinute(cfg.LoginPerMinute), cfg.LoginPerMinute, logger)
		a.limiters = append(a.limiters, loginRL)
	}

	cors := pkgmiddleware.DefaultCORSConfig()
	cors.AllowedOrigins = cfg.CORSAllowedOrigins
	router := handler.NewRouter(handler.RouterConfig{
		CORS:                cors,
		MetricsAllowedCIDRs: cfg.MetricsAllowedCIDRs,
		PprofAllowedCIDRs:   cfg.PprofAllowedCIDRs,
		RequestTimeout:      cfg.RequestTimeout,
		RateLimiter:         rl,
		LoginLimiter:        loginRL,
	}, a.session, svcs, apiProxy, healthHandler, logger)

	a.httpServer = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           router,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      cfg.RequestTimeout + 5*time.Second,
		IdleTimeout:       60 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return a, nil
}

// Run restores the session, starts the HTTP server and blocks until the
// context is canceled. Page routes answer 503 until the restore settles.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		a.logger.Info("starting HTTP server",
			slog.String("addr", a.httpServer.Addr),
			slog.String("backend", a.cfg.BackendURL),
		)
		if err := a.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	go func() {
		restoreCtx, cancel := context.WithTimeout(ctx, a.cfg.BackendTimeout)
		defer cancel()
		a.session.Restore(restoreCtx)
		snap := a.session.Snapshot()
		a.logger.Info("session restored",
			slog.Bool("authenticated", snap.Authenticated),
			slog.String("admin_id", snap.AdminID()),
		)
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("shutdown signal received")
	case err := <-errCh:
		_ = a.Shutdown()
		return err
	}

	return a.Shutdown()
}

// Shutdown gracefully stops all components in order:
// 1. HTTP server (drain in-flight requests)
// 2. Open view scopes and rate limiters
// 3. Kafka producer and Redis client
// 4. Tracer (flush pending spans from drained requests)
func (a *App) Shutdown() error {
	a.logger.Info("shutting down application...")

	var errs []error

	httpCtx, httpCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer httpCancel()
	if err := a.httpServer.Shutdown(httpCtx); err != nil {
		a.logger.Error("http server shutdown error", slog.String("error", err.Error()))
		errs = append(errs, err)
	}

	a.scopes.TeardownAll()
	for _, rl := range a.limiters {
		rl.Close()
	}

	if err := a.closeResources(); err != nil {
		errs = append(errs, err)
	}

	a.logger.Info("application shutdown complete")
	return errors.Join(errs...)
}

// closeResources releases the broker, store and tracer connections.
func (a *App) closeResources() error {
	var errs []error

	if a.producer != nil {
		if err := a.producer.Close(); err != nil {
			a.logger.Error("kafka producer close error", slog.String("error", err.Error()))
			errs = append(errs, err)
		}
	}

	if a.rdb != nil {
		if err := a.rdb.Close(); err != nil {
			a.logger.Error("redis close error", slog.String("error", err.Error()))
			errs = append(errs, err)
		}
	}

	if a.tracerShutdown != nil {
		tracerCtx, tracerCancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer tracerCancel()
		if err := a.tracerShutdown(tracerCtx); err != nil {
			a.logger.Error("tracer shutdown error", slog.String("error", err.Error()))
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

// newCredentialStore builds the configured credential store. The Redis
// client is returned so the caller can health-check and close it.
func newCredentialStore(ctx context.Context, cfg *config.Config) (session.CredentialStore, *redis.Client, error) {
	switch cfg.CredentialStore {
	case config.CredentialStoreMemory:
		return session.NewMemoryStore(), nil, nil
	case config.CredentialStoreRedis:
		rdb, err := database.NewRedisClient(ctx, database.RedisConfig{
			Host:        cfg.RedisHost,
			Port:        cfg.RedisPort,
			Password:    cfg.RedisPass,
			DB:          cfg.RedisDB,
			DialTimeout: 5 * time.Second,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("connect to redis: %w", err)
		}
		return session.NewRedisStore(rdb, cfg.RedisPrefix, cfg.CredentialTTL), rdb, nil
	case config.CredentialStoreFile:
		return session.NewFileStore(cfg.CredentialFile), nil, nil
	default:
		return nil, nil, fmt.Errorf("unknown credential store %q", cfg.CredentialStore)
	}
}
