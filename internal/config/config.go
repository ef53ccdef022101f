package config

import (
	"fmt"
	"net/url"
	"slices"
	"strings"
	"time"

	pkgconfig "github.com/RahulGalipelli/AdminApp/pkg/config"
)

// Credential store backends.
const (
	CredentialStoreFile   = "file"
	CredentialStoreRedis  = "redis"
	CredentialStoreMemory = "memory"
)

// Config holds all configuration for the admin console.
type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	// HTTP server
	HTTPPort       int           `env:"CONSOLE_HTTP_PORT" envDefault:"3002"`
	RequestTimeout time.Duration `env:"CONSOLE_REQUEST_TIMEOUT" envDefault:"30s"`

	// AgriCure backend
	BackendURL        string        `env:"BACKEND_URL" envDefault:"http://localhost:8000"`
	BackendHealthPath string        `env:"BACKEND_HEALTH_PATH" envDefault:"/"`
	BackendTimeout    time.Duration `env:"BACKEND_TIMEOUT" envDefault:"30s"`
	BackendMaxConns   int           `env:"BACKEND_MAX_CONNS" envDefault:"32"`

	// Circuit breaker around backend calls
	BreakerEnabled      bool          `env:"BREAKER_ENABLED" envDefault:"true"`
	BreakerTimeout      time.Duration `env:"BREAKER_OPEN_TIMEOUT" envDefault:"30s"`
	BreakerFailureRatio float64       `env:"BREAKER_FAILURE_RATIO" envDefault:"0.5"`
	BreakerMinRequests  uint32        `env:"BREAKER_MIN_REQUESTS" envDefault:"5"`

	// Credential persistence
	CredentialStore string        `env:"CREDENTIAL_STORE" envDefault:"file"`
	CredentialFile  string        `env:"CREDENTIAL_FILE" envDefault:".agricure/credentials.json"`
	RedisHost       string        `env:"REDIS_HOST" envDefault:"localhost"`
	RedisPort       int           `env:"REDIS_PORT" envDefault:"6379"`
	RedisPass       string        `env:"REDIS_PASSWORD" envDefault:""`
	RedisDB         int           `env:"REDIS_DB" envDefault:"0"`
	RedisPrefix     string        `env:"REDIS_KEY_PREFIX" envDefault:"agricure:console:"`
	CredentialTTL   time.Duration `env:"CREDENTIAL_TTL" envDefault:"0s"`

	// Kafka audit events
	KafkaEnabled bool     `env:"KAFKA_ENABLED" envDefault:"false"`
	KafkaBrokers []string `env:"KAFKA_BROKERS" envDefault:"localhost:9092" envSeparator:","`

	// Tracing
	OTELEnabled    bool    `env:"OTEL_ENABLED" envDefault:"false"`
	OTELEndpoint   string  `env:"OTEL_EXPORTER_OTLP_ENDPOINT" envDefault:"localhost:4318"`
	OTELInsecure   bool    `env:"OTEL_EXPORTER_OTLP_INSECURE" envDefault:"true"`
	OTELSampleRate float64 `env:"OTEL_SAMPLE_RATE" envDefault:"1.0"`

	// Edge
	CORSAllowedOrigins  []string `env:"CORS_ALLOWED_ORIGINS" envDefault:"http://localhost:3002" envSeparator:","`
	MetricsAllowedCIDRs []string `env:"METRICS_ALLOWED_CIDRS" envDefault:"127.0.0.0/8,::1/128" envSeparator:","`
	PprofAllowedCIDRs   []string `env:"PPROF_ALLOWED_CIDRS" envDefault:"127.0.0.0/8,::1/128" envSeparator:","`
	RateLimitRPS        int      `env:"RATE_LIMIT_RPS" envDefault:"50"`
	RateLimitBurst      int      `env:"RATE_LIMIT_BURST" envDefault:"100"`
	LoginPerMinute      int      `env:"LOGIN_RATE_PER_MINUTE" envDefault:"10"`
}

// Load reads configuration from a .env file, when present, and environment
// variables. Variables already set in the environment win.
func Load() (*Config, error) {
	if err := pkgconfig.LoadDotEnv(".env"); err != nil {
		return nil, fmt.Errorf("load console config: %w", err)
	}
	cfg := &Config{}
	if err := pkgconfig.Load(cfg); err != nil {
		return nil, fmt.Errorf("load console config: %w", err)
	}
	cfg.CredentialStore = strings.ToLower(strings.TrimSpace(cfg.CredentialStore))
	cfg.BackendURL = strings.TrimRight(cfg.BackendURL, "/")
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// IsDevelopment reports whether the console runs in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// validate checks configuration invariants.
func (c *Config) validate() error {
	if c.HTTPPort < 1 || c.HTTPPort > 65535 {
		return fmt.Errorf("invalid HTTP port: %d", c.HTTPPort)
	}

	u, err := url.Parse(c.BackendURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("BACKEND_URL must be an absolute URL, got %q", c.BackendURL)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("BACKEND_URL scheme must be http or https, got %q", u.Scheme)
	}
	if !strings.HasPrefix(c.BackendHealthPath, "/") {
		return fmt.Errorf("BACKEND_HEALTH_PATH must start with /, got %q", c.BackendHealthPath)
	}
	if c.BackendTimeout <= 0 {
		return fmt.Errorf("BACKEND_TIMEOUT must be positive")
	}

	stores := []string{CredentialStoreFile, CredentialStoreRedis, CredentialStoreMemory}
	if !slices.Contains(stores, c.CredentialStore) {
		return fmt.Errorf("CREDENTIAL_STORE must be one of %s, got %q", strings.Join(stores, ", "), c.CredentialStore)
	}
	if c.CredentialStore == CredentialStoreFile && c.CredentialFile == "" {
		return fmt.Errorf("CREDENTIAL_FILE is required when CREDENTIAL_STORE=file")
	}
	if c.CredentialTTL < 0 {
		return fmt.Errorf("CREDENTIAL_TTL must not be negative")
	}

	if c.BreakerFailureRatio <= 0 || c.BreakerFailureRatio > 1 {
		return fmt.Errorf("BREAKER_FAILURE_RATIO must be in (0, 1], got %v", c.BreakerFailureRatio)
	}
	if c.OTELSampleRate < 0 || c.OTELSampleRate > 1 {
		return fmt.Errorf("OTEL_SAMPLE_RATE must be in [0, 1], got %v", c.OTELSampleRate)
	}
	if c.KafkaEnabled && len(c.KafkaBrokers) == 0 {
		return fmt.Errorf("KAFKA_BROKERS is required when KAFKA_ENABLED=true")
	}
	if c.RateLimitRPS < 0 || c.RateLimitBurst < 0 || c.LoginPerMinute < 0 {
		return fmt.Errorf("rate limits must not be negative")
	}
	if !c.IsDevelopment() && slices.Contains(c.CORSAllowedOrigins, "*") {
		return fmt.Errorf("CORS_ALLOWED_ORIGINS must not contain * in %s environment", c.Environment)
	}
	return nil
}
