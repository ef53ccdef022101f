package service

import (
	"context"
	"log/slog"

	"github.com/RahulGalipelli/AdminApp/internal/domain"
)

// AnalyticsService shapes the analytics page for a region selection.
type AnalyticsService struct {
	api    AnalyticsBackend
	scopes *Scopes
	logger *slog.Logger
}

// NewAnalyticsService creates a new analytics service.
func NewAnalyticsService(api AnalyticsBackend, scopes *Scopes, logger *slog.Logger) *AnalyticsService {
	return &AnalyticsService{api: api, scopes: scopes, logger: logger}
}

// View fetches analytics and selects region ("all" or empty for every region).
func (s *AnalyticsService) View(ctx context.Context, region string) (domain.AnalyticsView, error) {
	data, err := fetchView(ctx, s.scopes, s.logger, ViewAnalytics, domain.AnalyticsData{}, s.api.Analytics)
	return domain.NewAnalyticsView(data, region), err
}
