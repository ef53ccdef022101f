package service

import (
	"context"
	"log/slog"

	"github.com/RahulGalipelli/AdminApp/internal/domain"
)

// DashboardService builds the dashboard page.
type DashboardService struct {
	api    DashboardBackend
	scopes *Scopes
	logger *slog.Logger
}

// NewDashboardService creates a new dashboard service.
func NewDashboardService(api DashboardBackend, scopes *Scopes, logger *slog.Logger) *DashboardService {
	return &DashboardService{api: api, scopes: scopes, logger: logger}
}

// View fetches the headline stats. On failure the counters are zero.
func (s *DashboardService) View(ctx context.Context) (domain.DashboardView, error) {
	stats, err := fetchView(ctx, s.scopes, s.logger, ViewDashboard, domain.DashboardStats{}, s.api.DashboardStats)
	return domain.NewDashboardView(stats), err
}
