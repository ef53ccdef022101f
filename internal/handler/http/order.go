package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/RahulGalipelli/AdminApp/internal/service"
	"github.com/RahulGalipelli/AdminApp/pkg/httputil"
	"github.com/RahulGalipelli/AdminApp/pkg/validator"
)

// OrderHandler handles HTTP requests for the orders page.
type OrderHandler struct {
	service *service.OrderService
	logger  *slog.Logger
}

// NewOrderHandler creates a new order HTTP handler.
func NewOrderHandler(svc *service.OrderService, logger *slog.Logger) *OrderHandler {
	return &OrderHandler{service: svc, logger: logger}
}

// UpdateStatusRequest is the JSON body for PUT /orders/{id}/status.
type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// List handles GET /orders?status=.
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	view, err := h.service.List(r.Context(), r.URL.Query().Get("status"))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteData(w, http.StatusOK, view)
}

// Get handles GET /orders/{id}.
func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	order, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteData(w, http.StatusOK, order)
}

// UpdateStatus handles PUT /orders/{id}/status. The ?status= filter of the
// page is kept for the refreshed list.
func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req UpdateStatusRequest
	if !decode(w, r, &req) {
		return
	}
	if err := validator.Validate(req); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	view, err := h.service.UpdateStatus(r.Context(), chi.URLParam(r, "id"), req.Status, r.URL.Query().Get("status"))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteData(w, http.StatusOK, view)
}
