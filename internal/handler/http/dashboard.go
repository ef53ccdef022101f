package http

import (
	"log/slog"
	"net/http"

	"github.com/RahulGalipelli/AdminApp/internal/service"
	"github.com/RahulGalipelli/AdminApp/pkg/httputil"
)

// ReportHandler serves the read-only pages.
type ReportHandler struct {
	dashboard *service.DashboardService
	uploads   *service.UploadService
	analytics *service.AnalyticsService
	logger    *slog.Logger
}

// NewReportHandler creates a handler for the dashboard, uploads and analytics pages.
func NewReportHandler(dashboard *service.DashboardService, uploads *service.UploadService, analytics *service.AnalyticsService, logger *slog.Logger) *ReportHandler {
	return &ReportHandler{dashboard: dashboard, uploads: uploads, analytics: analytics, logger: logger}
}

// Dashboard handles GET /dashboard.
func (h *ReportHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	view, err := h.dashboard.View(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteData(w, http.StatusOK, view)
}

// Uploads handles GET /uploads.
func (h *ReportHandler) Uploads(w http.ResponseWriter, r *http.Request) {
	uploads, err := h.uploads.List(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteData(w, http.StatusOK, uploads)
}

// Analytics handles GET /analytics?region=.
func (h *ReportHandler) Analytics(w http.ResponseWriter, r *http.Request) {
	view, err := h.analytics.View(r.Context(), r.URL.Query().Get("region"))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteData(w, http.StatusOK, view)
}
