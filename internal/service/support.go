package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/RahulGalipelli/AdminApp/internal/domain"
	"github.com/RahulGalipelli/AdminApp/internal/event"
	apperrors "github.com/RahulGalipelli/AdminApp/pkg/errors"
)

// SupportService handles farmer call-back requests.
type SupportService struct {
	api      SupportBackend
	producer *event.Producer
	scopes   *Scopes
	logger   *slog.Logger
}

// NewSupportService creates a new support service.
func NewSupportService(api SupportBackend, producer *event.Producer, scopes *Scopes, logger *slog.Logger) *SupportService {
	return &SupportService{api: api, producer: producer, scopes: scopes, logger: logger}
}

// List returns every support call.
func (s *SupportService) List(ctx context.Context) ([]domain.SupportCall, error) {
	return fetchView(ctx, s.scopes, s.logger, ViewSupport, []domain.SupportCall{}, s.api.ListSupportCalls)
}

// Assign gives call id to staffID and returns the refreshed list.
func (s *SupportService) Assign(ctx context.Context, id, staffID string) ([]domain.SupportCall, error) {
	staffID = strings.TrimSpace(staffID)
	if staffID == "" {
		return nil, mutationFailed(ctx, s.logger, "assign_support_call", id, apperrors.InvalidInput("staff_id is required"))
	}

	if err := s.api.AssignSupportCall(ctx, id, staffID); err != nil {
		return nil, mutationFailed(ctx, s.logger, "assign_support_call", id, err)
	}

	if err := s.producer.PublishSupportCallAssigned(ctx, id, staffID); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish support_call_assigned event",
			slog.String("call_id", id),
			slog.String("error", err.Error()),
		)
	}
	s.logger.InfoContext(ctx, "support call assigned",
		slog.String("call_id", id),
		slog.String("staff_id", staffID),
	)

	return s.List(ctx)
}

// Resolve closes call id and returns the refreshed list.
func (s *SupportService) Resolve(ctx context.Context, id string) ([]domain.SupportCall, error) {
	if err := s.api.ResolveSupportCall(ctx, id); err != nil {
		return nil, mutationFailed(ctx, s.logger, "resolve_support_call", id, err)
	}

	if err := s.producer.PublishSupportCallResolved(ctx, id); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish support_call_resolved event",
			slog.String("call_id", id),
			slog.String("error", err.Error()),
		)
	}
	s.logger.InfoContext(ctx, "support call resolved", slog.String("call_id", id))

	return s.List(ctx)
}
