package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/RahulGalipelli/AdminApp/internal/middleware"
	"github.com/RahulGalipelli/AdminApp/internal/proxy"
	"github.com/RahulGalipelli/AdminApp/internal/service"
	"github.com/RahulGalipelli/AdminApp/pkg/health"
	pkgmiddleware "github.com/RahulGalipelli/AdminApp/pkg/middleware"
)

// RouterConfig carries the edge settings of the console router.
type RouterConfig struct {
	CORS                pkgmiddleware.CORSConfig
	MetricsAllowedCIDRs []string
	PprofAllowedCIDRs   []string
	RequestTimeout      time.Duration

	// RateLimiter guards every route; LoginLimiter additionally guards
	// POST /session/login. Either may be nil.
	RateLimiter  *middleware.RateLimiter
	LoginLimiter *middleware.RateLimiter
}

// Services bundles the page services behind the console routes.
type Services struct {
	Scopes    *service.Scopes
	Dashboard *service.DashboardService
	Uploads   *service.UploadService
	Products  *service.ProductService
	Orders    *service.OrderService
	Support   *service.SupportService
	Analytics *service.AnalyticsService
	Settings  *service.SettingsService
}

// NewRouter creates a chi router with the global middleware, health and
// metrics endpoints, the session routes, the page routes behind the session
// gate, and the raw backend proxy under /api.
func NewRouter(cfg RouterConfig, sess SessionManager, svcs Services, apiProxy http.Handler, healthHandler *health.Handler, logger *slog.Logger) http.Handler {
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 30 * time.Second
	}

	r := chi.NewRouter()

	r.Use(pkgmiddleware.CORS(cfg.CORS))
	if cfg.RateLimiter != nil {
		r.Use(cfg.RateLimiter.Handler)
	}
	r.Use(pkgmiddleware.Recovery(logger))
	r.Use(chimw.Compress(5))
	r.Use(chimw.Timeout(cfg.RequestTimeout))
	r.Use(pkgmiddleware.RequestLogging(logger))
	r.Use(pkgmiddleware.PrometheusMetrics())
	r.Use(pkgmiddleware.Tracing())
	r.Use(pkgmiddleware.RequestLogger(logger, AdminID(sess)))

	r.Get("/health/live", healthHandler.LivenessHandler())
	r.Get("/health/ready", healthHandler.ReadinessHandler())

	r.With(pkgmiddleware.IPAllowlist(cfg.MetricsAllowedCIDRs, logger)).
		Handle("/metrics", promhttp.Handler())

	pkgmiddleware.RegisterPprof(r, cfg.PprofAllowedCIDRs, logger)

	sessionHandler := NewSessionHandler(sess, svcs.Scopes, logger)
	r.Route("/session", func(r chi.Router) {
		r.Get("/", sessionHandler.Get)
		login := http.Handler(http.HandlerFunc(sessionHandler.Login))
		if cfg.LoginLimiter != nil {
			login = cfg.LoginLimiter.Handler(login)
		}
		r.Method(http.MethodPost, "/login", login)
		r.Post("/logout", sessionHandler.Logout)
	})

	reports := NewReportHandler(svcs.Dashboard, svcs.Uploads, svcs.Analytics, logger)
	products := NewProductHandler(svcs.Products, logger)
	orders := NewOrderHandler(svcs.Orders, logger)
	support := NewSupportHandler(svcs.Support, sess, logger)
	settings := NewSettingsHandler(svcs.Settings, logger)
	views := NewViewHandler(svcs.Scopes)

	r.Group(func(r chi.Router) {
		r.Use(RequireSession(sess))

		r.Get("/dashboard", reports.Dashboard)
		r.Get("/uploads", reports.Uploads)
		r.Get("/analytics", reports.Analytics)

		r.Route("/products", func(r chi.Router) {
			r.Get("/", products.List)
			r.Post("/", products.Create)
			r.Get("/{id}/form", products.Form)
			r.Put("/{id}", products.Update)
			r.Delete("/{id}", products.Delete)
		})

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", orders.List)
			r.Get("/{id}", orders.Get)
			r.Put("/{id}/status", orders.UpdateStatus)
		})

		r.Route("/support/calls", func(r chi.Router) {
			r.Get("/", support.List)
			r.Put("/{id}/assign", support.Assign)
			r.Put("/{id}/resolve", support.Resolve)
		})

		r.Get("/settings", settings.Get)
		r.Put("/settings", settings.Save)

		r.Get("/views", views.Active)
		r.Delete("/views/{view}", views.Teardown)
	})

	if apiProxy != nil {
		r.Handle(proxy.Prefix, apiProxy)
		r.Handle(proxy.Prefix+"/*", apiProxy)
	}

	return r
}
