package service

import (
	"context"
	"errors"
	"log/slog"

	apperrors "github.com/RahulGalipelli/AdminApp/pkg/errors"
	"github.com/RahulGalipelli/AdminApp/pkg/validator"
)

// fetchFailed applies the list-fetch policy: failures are logged and the
// page falls back to an empty view. A rejected credential and a cancelled
// scope are returned so the caller can end the session or drop the result.
func fetchFailed(ctx context.Context, logger *slog.Logger, view string, err error) error {
	if errors.Is(err, context.Canceled) {
		return err
	}
	if apperrors.IsUnauthorized(err) {
		return err
	}
	logger.ErrorContext(ctx, "failed to fetch view, showing empty",
		slog.String("view", view),
		slog.String("error", err.Error()),
	)
	return nil
}

// mutationFailed logs a failed mutation and returns err unchanged. The
// displayed state is left as it was.
func mutationFailed(ctx context.Context, logger *slog.Logger, op, id string, err error) error {
	level := slog.LevelError
	var valErr *validator.ValidationError
	if errors.As(err, &valErr) || errors.Is(err, apperrors.ErrInvalidInput) || errors.Is(err, context.Canceled) {
		level = slog.LevelWarn
	}
	logger.Log(ctx, level, "admin mutation failed",
		slog.String("op", op),
		slog.String("id", id),
		slog.String("error", err.Error()),
	)
	return err
}

// fetchView runs fetch in view's scope and applies the list-fetch policy.
// empty is returned whenever the fetch fails or is discarded.
func fetchView[T any](ctx context.Context, scopes *Scopes, logger *slog.Logger, view string, empty T, fetch func(context.Context) (T, error)) (T, error) {
	ctx, done := scopes.Begin(ctx, view)
	defer done()

	result, err := fetch(ctx)
	if cause := discarded(ctx); cause != nil {
		logger.DebugContext(ctx, "view fetch discarded",
			slog.String("view", view),
			slog.String("cause", cause.Error()),
		)
		return empty, cause
	}
	if err != nil {
		return empty, fetchFailed(ctx, logger, view, err)
	}
	return result, nil
}
