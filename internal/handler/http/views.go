package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/RahulGalipelli/AdminApp/internal/service"
	apperrors "github.com/RahulGalipelli/AdminApp/pkg/errors"
	"github.com/RahulGalipelli/AdminApp/pkg/httputil"
)

// ViewHandler lets the client tear down a page so its in-flight fetch is
// abandoned.
type ViewHandler struct {
	scopes *service.Scopes
}

// NewViewHandler creates a new view HTTP handler.
func NewViewHandler(scopes *service.Scopes) *ViewHandler {
	return &ViewHandler{scopes: scopes}
}

type teardownResponse struct {
	View      string `json:"view"`
	Cancelled bool   `json:"cancelled"`
}

// Active handles GET /views, listing views with a fetch in flight.
func (h *ViewHandler) Active(w http.ResponseWriter, _ *http.Request) {
	httputil.WriteData(w, http.StatusOK, h.scopes.Active())
}

// Teardown handles DELETE /views/{view}.
func (h *ViewHandler) Teardown(w http.ResponseWriter, r *http.Request) {
	view := chi.URLParam(r, "view")
	if !service.IsView(view) {
		httputil.WriteError(w, r, apperrors.NotFound("view", view), nil)
		return
	}
	httputil.WriteData(w, http.StatusOK, teardownResponse{View: view, Cancelled: h.scopes.Teardown(view)})
}
