package http

import (
	"log/slog"
	"net/http"

	"github.com/RahulGalipelli/AdminApp/internal/domain"
	"github.com/RahulGalipelli/AdminApp/internal/service"
	"github.com/RahulGalipelli/AdminApp/pkg/httputil"
)

// SettingsHandler handles HTTP requests for the settings page.
type SettingsHandler struct {
	service *service.SettingsService
	logger  *slog.Logger
}

// NewSettingsHandler creates a new settings HTTP handler.
func NewSettingsHandler(svc *service.SettingsService, logger *slog.Logger) *SettingsHandler {
	return &SettingsHandler{service: svc, logger: logger}
}

// Get handles GET /settings.
func (h *SettingsHandler) Get(w http.ResponseWriter, _ *http.Request) {
	httputil.WriteData(w, http.StatusOK, h.service.Get())
}

// Save handles PUT /settings. A backend failure still answers 200 with the
// failure message, as the page shows it inline.
func (h *SettingsHandler) Save(w http.ResponseWriter, r *http.Request) {
	var req domain.Settings
	if !decode(w, r, &req) {
		return
	}
	view, err := h.service.Save(r.Context(), req)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteData(w, http.StatusOK, view)
}
