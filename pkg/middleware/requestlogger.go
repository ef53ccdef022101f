package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/RahulGalipelli/AdminApp/pkg/logger"
)

// AdminIDFunc reports the identity ID of the signed-in operator, or "" when
// nobody is signed in.
type AdminIDFunc func(ctx context.Context) string

// RequestLogger stores a request-scoped logger in the context carrying the
// correlation ID, the operator's admin ID and the active trace. Mount it after
// RequestLogging and Tracing.
func RequestLogger(base *slog.Logger, adminID AdminIDFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			if adminID != nil {
				if id := adminID(ctx); id != "" {
					ctx = logger.WithAdminID(ctx, id)
				}
			}
			ctx = logger.NewContext(ctx, logger.WithContext(ctx, base))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
