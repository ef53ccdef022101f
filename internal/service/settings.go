package service

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/RahulGalipelli/AdminApp/internal/domain"
	"github.com/RahulGalipelli/AdminApp/internal/event"
	apperrors "github.com/RahulGalipelli/AdminApp/pkg/errors"
	"github.com/RahulGalipelli/AdminApp/pkg/validator"
)

// SettingsService edits platform integrations. The backend only accepts
// writes, so the last saved settings are kept here for read-back.
type SettingsService struct {
	api      SettingsBackend
	producer *event.Producer
	logger   *slog.Logger

	mu      sync.RWMutex
	current domain.Settings
}

// NewSettingsService creates a settings service starting from the defaults.
func NewSettingsService(api SettingsBackend, producer *event.Producer, logger *slog.Logger) *SettingsService {
	return &SettingsService{
		api:      api,
		producer: producer,
		logger:   logger,
		current:  domain.DefaultSettings(),
	}
}

// Get returns the settings with secrets masked.
func (s *SettingsService) Get() domain.SettingsView {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return domain.SettingsView{Settings: s.current.Redacted()}
}

// Save validates and stores settings. Masked secrets keep their previous
// values. A backend failure is reported through the view's message; only
// validation failures and a rejected credential are returned as errors.
func (s *SettingsService) Save(ctx context.Context, settings domain.Settings) (domain.SettingsView, error) {
	if err := validator.Validate(settings); err != nil {
		return s.Get(), mutationFailed(ctx, s.logger, "save_settings", "settings", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	merged := settings.KeepSecrets(s.current)
	if err := s.api.SaveSettings(ctx, merged); err != nil {
		_ = mutationFailed(ctx, s.logger, "save_settings", "settings", err)
		view := domain.SettingsView{Settings: s.current.Redacted(), Message: domain.SettingsFailedMessage}
		if apperrors.IsUnauthorized(err) || errors.Is(err, context.Canceled) {
			return view, err
		}
		return view, nil
	}
	s.current = merged

	if err := s.producer.PublishSettingsSaved(ctx, merged); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish settings_saved event",
			slog.String("error", err.Error()),
		)
	}
	s.logger.InfoContext(ctx, "settings saved",
		slog.String("payment_provider", merged.PaymentGateway.Provider),
		slog.String("courier_provider", merged.CourierAPI.Provider),
	)

	return domain.SettingsView{Settings: merged.Redacted(), Message: domain.SettingsSavedMessage}, nil
}
