package http

import (
	"context"
	"net/http"

	"github.com/RahulGalipelli/AdminApp/internal/domain"
	"github.com/RahulGalipelli/AdminApp/pkg/httputil"
)

// SessionReader exposes the current session. *session.Store satisfies it.
type SessionReader interface {
	Snapshot() domain.Snapshot
	// Current is Snapshot after checking the credential is still stored.
	Current(ctx context.Context) domain.Snapshot
}

// RequireSession answers 401 unless an operator is signed in, and 503 while
// the startup restore is still running.
func RequireSession(sess SessionReader) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			snap := sess.Current(r.Context())
			switch {
			case snap.Loading:
				writeLoading(w)
			case !snap.Authenticated:
				httputil.WriteJSON(w, http.StatusUnauthorized, httputil.Response{
					Error: &httputil.ErrorResponse{Code: "UNAUTHORIZED", Message: "login required"},
				})
			default:
				next.ServeHTTP(w, r)
			}
		})
	}
}

func writeLoading(w http.ResponseWriter) {
	w.Header().Set("Retry-After", "1")
	httputil.WriteJSON(w, http.StatusServiceUnavailable, httputil.Response{
		Error: &httputil.ErrorResponse{Code: "SESSION_LOADING", Message: "session is being restored"},
	})
}

// AdminID returns the signed-in operator's ID for request logging.
func AdminID(sess SessionReader) func(context.Context) string {
	return func(context.Context) string {
		return sess.Snapshot().AdminID()
	}
}
