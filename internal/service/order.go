package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/RahulGalipelli/AdminApp/internal/domain"
	"github.com/RahulGalipelli/AdminApp/internal/event"
	apperrors "github.com/RahulGalipelli/AdminApp/pkg/errors"
)

// OrderService lists orders and moves them through their lifecycle.
type OrderService struct {
	api      OrderBackend
	producer *event.Producer
	scopes   *Scopes
	logger   *slog.Logger
}

// NewOrderService creates a new order service.
func NewOrderService(api OrderBackend, producer *event.Producer, scopes *Scopes, logger *slog.Logger) *OrderService {
	return &OrderService{api: api, producer: producer, scopes: scopes, logger: logger}
}

// List returns orders matching filter ("all" or empty for every order).
func (s *OrderService) List(ctx context.Context, filter string) (domain.OrdersView, error) {
	orders, err := fetchView(ctx, s.scopes, s.logger, ViewOrders, []domain.Order{}, s.api.ListOrders)
	return domain.NewOrdersView(orders, filter), err
}

// Get returns one order for the details panel.
func (s *OrderService) Get(ctx context.Context, id string) (domain.Order, error) {
	orders, err := s.api.ListOrders(ctx)
	if err != nil {
		return domain.Order{}, err
	}
	order, ok := domain.FindOrder(orders, id)
	if !ok {
		return domain.Order{}, apperrors.NotFound("order", id)
	}
	return order, nil
}

// UpdateStatus sets the status of order id, then refetches the list. The
// updated order is returned as the selection, patched to the new status.
func (s *OrderService) UpdateStatus(ctx context.Context, id, status, filter string) (domain.OrdersView, error) {
	status = strings.ToLower(strings.TrimSpace(status))
	if !domain.IsOrderStatus(status) {
		err := apperrors.InvalidInput("status must be one of: " + strings.Join(domain.OrderStatuses, ", "))
		return domain.OrdersView{}, mutationFailed(ctx, s.logger, "update_order_status", id, err)
	}

	if err := s.api.UpdateOrderStatus(ctx, id, status); err != nil {
		return domain.OrdersView{}, mutationFailed(ctx, s.logger, "update_order_status", id, err)
	}

	if err := s.producer.PublishOrderStatusChanged(ctx, id, status); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish order_status_changed event",
			slog.String("order_id", id),
			slog.String("error", err.Error()),
		)
	}
	s.logger.InfoContext(ctx, "order status updated",
		slog.String("order_id", id),
		slog.String("status", status),
	)

	orders, err := fetchView(ctx, s.scopes, s.logger, ViewOrders, []domain.Order{}, s.api.ListOrders)
	view := domain.NewOrdersView(orders, filter)
	if err != nil {
		return view, err
	}
	if order, ok := domain.FindOrder(orders, id); ok {
		order.Status = status
		view.Selected = &order
	}
	return view, nil
}
