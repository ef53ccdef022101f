package service

import (
	"context"
	"io"
	"log/slog"

	"github.com/stretchr/testify/mock"

	"github.com/RahulGalipelli/AdminApp/internal/domain"
	"github.com/RahulGalipelli/AdminApp/internal/event"
	pkgkafka "github.com/RahulGalipelli/AdminApp/pkg/kafka"
)

// --- Mock admin API ---

type mockAPI struct {
	mock.Mock
}

func (m *mockAPI) DashboardStats(ctx context.Context) (domain.DashboardStats, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.DashboardStats), args.Error(1)
}

func (m *mockAPI) ListUploads(ctx context.Context) ([]domain.Upload, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Upload), args.Error(1)
}

func (m *mockAPI) ListProducts(ctx context.Context) ([]domain.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Product), args.Error(1)
}

func (m *mockAPI) CreateProduct(ctx context.Context, in domain.ProductInput) (domain.Product, error) {
	args := m.Called(ctx, in)
	return args.Get(0).(domain.Product), args.Error(1)
}

func (m *mockAPI) UpdateProduct(ctx context.Context, id string, in domain.ProductInput) (domain.Product, error) {
	args := m.Called(ctx, id, in)
	return args.Get(0).(domain.Product), args.Error(1)
}

func (m *mockAPI) DeleteProduct(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockAPI) ListOrders(ctx context.Context) ([]domain.Order, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Order), args.Error(1)
}

func (m *mockAPI) UpdateOrderStatus(ctx context.Context, id, status string) error {
	return m.Called(ctx, id, status).Error(0)
}

func (m *mockAPI) ListSupportCalls(ctx context.Context) ([]domain.SupportCall, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SupportCall), args.Error(1)
}

func (m *mockAPI) AssignSupportCall(ctx context.Context, id, staffID string) error {
	return m.Called(ctx, id, staffID).Error(0)
}

func (m *mockAPI) ResolveSupportCall(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockAPI) Analytics(ctx context.Context) (domain.AnalyticsData, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.AnalyticsData), args.Error(1)
}

func (m *mockAPI) SaveSettings(ctx context.Context, s domain.Settings) error {
	return m.Called(ctx, s).Error(0)
}

// --- Mock publisher ---

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) Publish(ctx context.Context, topic string, ev *pkgkafka.Event) error {
	return m.Called(ctx, topic, ev).Error(0)
}

// --- Test Helpers ---

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newDisabledProducer() *event.Producer {
	return event.NewProducer(nil, newTestLogger())
}
