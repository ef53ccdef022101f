package service

import (
	"context"
	"log/slog"

	"github.com/RahulGalipelli/AdminApp/internal/domain"
)

// UploadService lists crop image uploads.
type UploadService struct {
	api    UploadBackend
	scopes *Scopes
	logger *slog.Logger
}

// NewUploadService creates a new upload service.
func NewUploadService(api UploadBackend, scopes *Scopes, logger *slog.Logger) *UploadService {
	return &UploadService{api: api, scopes: scopes, logger: logger}
}

// List returns every upload, newest first as the backend orders them.
func (s *UploadService) List(ctx context.Context) ([]domain.Upload, error) {
	return fetchView(ctx, s.scopes, s.logger, ViewUploads, []domain.Upload{}, s.api.ListUploads)
}
