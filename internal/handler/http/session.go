package http

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/RahulGalipelli/AdminApp/internal/domain"
	"github.com/RahulGalipelli/AdminApp/internal/service"
	"github.com/RahulGalipelli/AdminApp/pkg/httputil"
	"github.com/RahulGalipelli/AdminApp/pkg/validator"
)

// SessionManager is the session as the HTTP layer drives it.
// *session.Store satisfies it.
type SessionManager interface {
	SessionReader
	Login(ctx context.Context, email, password string) (domain.Identity, error)
	Logout(ctx context.Context) error
}

// SessionHandler handles login, logout and session reads.
type SessionHandler struct {
	session SessionManager
	scopes  *service.Scopes
	logger  *slog.Logger
}

// NewSessionHandler creates a new session HTTP handler.
func NewSessionHandler(sess SessionManager, scopes *service.Scopes, logger *slog.Logger) *SessionHandler {
	return &SessionHandler{session: sess, scopes: scopes, logger: logger}
}

// LoginRequest is the JSON request body for POST /session/login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Login handles POST /session/login. It answers 503 until the startup
// restore has settled the session.
func (h *SessionHandler) Login(w http.ResponseWriter, r *http.Request) {
	if h.session.Snapshot().Loading {
		writeLoading(w)
		return
	}

	var req LoginRequest
	if !decode(w, r, &req) {
		return
	}
	if err := validator.Validate(req); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	if _, err := h.session.Login(r.Context(), req.Email, req.Password); err != nil {
		h.logger.InfoContext(r.Context(), "login failed",
			slog.String("email", req.Email),
			slog.String("error", err.Error()),
		)
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteData(w, http.StatusOK, h.session.Snapshot())
}

// Logout handles POST /session/logout. It always signs the operator out.
func (h *SessionHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.scopes.TeardownAll()
	if err := h.session.Logout(r.Context()); err != nil {
		h.logger.ErrorContext(r.Context(), "failed to remove stored credential on logout",
			slog.String("error", err.Error()),
		)
	}
	httputil.WriteData(w, http.StatusOK, h.session.Snapshot())
}

// Get handles GET /session.
func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	httputil.WriteData(w, http.StatusOK, h.session.Current(r.Context()))
}
