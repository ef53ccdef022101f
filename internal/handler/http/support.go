package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/RahulGalipelli/AdminApp/internal/service"
	"github.com/RahulGalipelli/AdminApp/pkg/httputil"
)

// SupportHandler handles HTTP requests for the support page.
type SupportHandler struct {
	service *service.SupportService
	session SessionReader
	logger  *slog.Logger
}

// NewSupportHandler creates a new support HTTP handler.
func NewSupportHandler(svc *service.SupportService, sess SessionReader, logger *slog.Logger) *SupportHandler {
	return &SupportHandler{service: svc, session: sess, logger: logger}
}

// AssignRequest is the optional JSON body for PUT /support/calls/{id}/assign.
type AssignRequest struct {
	StaffID string `json:"staff_id"`
}

// List handles GET /support/calls.
func (h *SupportHandler) List(w http.ResponseWriter, r *http.Request) {
	calls, err := h.service.List(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteData(w, http.StatusOK, calls)
}

// Assign handles PUT /support/calls/{id}/assign. Without a staff_id the call
// goes to the signed-in operator.
func (h *SupportHandler) Assign(w http.ResponseWriter, r *http.Request) {
	var req AssignRequest
	if !decodeOptional(w, r, &req) {
		return
	}
	if req.StaffID == "" {
		req.StaffID = h.session.Snapshot().AdminID()
	}

	calls, err := h.service.Assign(r.Context(), chi.URLParam(r, "id"), req.StaffID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteData(w, http.StatusOK, calls)
}

// Resolve handles PUT /support/calls/{id}/resolve.
func (h *SupportHandler) Resolve(w http.ResponseWriter, r *http.Request) {
	calls, err := h.service.Resolve(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteData(w, http.StatusOK, calls)
}
