package service

import (
	"context"

	"github.com/RahulGalipelli/AdminApp/internal/domain"
)

// The interfaces below are the slices of the admin API each page needs.
// *adminapi.Client satisfies all of them.

type DashboardBackend interface {
	DashboardStats(ctx context.Context) (domain.DashboardStats, error)
}

type UploadBackend interface {
	ListUploads(ctx context.Context) ([]domain.Upload, error)
}

type ProductBackend interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
	CreateProduct(ctx context.Context, in domain.ProductInput) (domain.Product, error)
	UpdateProduct(ctx context.Context, id string, in domain.ProductInput) (domain.Product, error)
	DeleteProduct(ctx context.Context, id string) error
}

type OrderBackend interface {
	ListOrders(ctx context.Context) ([]domain.Order, error)
	UpdateOrderStatus(ctx context.Context, id, status string) error
}

type SupportBackend interface {
	ListSupportCalls(ctx context.Context) ([]domain.SupportCall, error)
	AssignSupportCall(ctx context.Context, id, staffID string) error
	ResolveSupportCall(ctx context.Context, id string) error
}

type AnalyticsBackend interface {
	Analytics(ctx context.Context) (domain.AnalyticsData, error)
}

type SettingsBackend interface {
	SaveSettings(ctx context.Context, s domain.Settings) error
}
