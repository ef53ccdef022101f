package domain

import (
	"slices"
	"strings"

	"github.com/shopspring/decimal"
)

// Order statuses accepted by the backend.
const (
	OrderPlaced    = "placed"
	OrderConfirmed = "confirmed"
	OrderShipped   = "shipped"
	OrderDelivered = "delivered"
	OrderCancelled = "cancelled"
)

// FilterAll selects every order regardless of status.
const FilterAll = "all"

// OrderStatuses lists the statuses in lifecycle order.
var OrderStatuses = []string{OrderPlaced, OrderConfirmed, OrderShipped, OrderDelivered, OrderCancelled}

// IsOrderStatus reports whether s names a known status, ignoring case.
func IsOrderStatus(s string) bool {
	return slices.Contains(OrderStatuses, strings.ToLower(s))
}

// OrderItem is one line of an order.
type OrderItem struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
}

// Subtotal is price times quantity.
func (i OrderItem) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Order is a farmer's purchase.
type Order struct {
	ID            string          `json:"id"`
	UserID        string          `json:"user_id"`
	Status        string          `json:"status"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	Address       string          `json:"address"`
	PaymentMethod string          `json:"payment_method"`
	CreatedAt     string          `json:"created_at"`
	Items         []OrderItem     `json:"items"`
}

// ItemsTotal sums the line subtotals.
func (o Order) ItemsTotal() decimal.Decimal {
	total := decimal.Zero
	for _, it := range o.Items {
		total = total.Add(it.Subtotal())
	}
	return total
}

// FilterOrders returns the orders whose status equals status, ignoring case.
// An empty status or FilterAll returns every order. The result is never nil.
func FilterOrders(orders []Order, status string) []Order {
	status = strings.TrimSpace(status)
	if status == "" || strings.EqualFold(status, FilterAll) {
		if orders == nil {
			return []Order{}
		}
		return orders
	}
	out := make([]Order, 0, len(orders))
	for _, o := range orders {
		if strings.EqualFold(o.Status, status) {
			out = append(out, o)
		}
	}
	return out
}

// FindOrder returns the order with id.
func FindOrder(orders []Order, id string) (Order, bool) {
	for _, o := range orders {
		if o.ID == id {
			return o, true
		}
	}
	return Order{}, false
}

// OrdersView is the orders page model.
type OrdersView struct {
	Orders   []Order  `json:"orders"`
	Filter   string   `json:"filter"`
	Statuses []string `json:"statuses"`
	Selected *Order   `json:"selected,omitempty"`
}

// NewOrdersView applies the status filter to orders.
func NewOrdersView(orders []Order, filter string) OrdersView {
	filter = strings.ToLower(strings.TrimSpace(filter))
	if filter == "" {
		filter = FilterAll
	}
	return OrdersView{
		Orders:   FilterOrders(orders, filter),
		Filter:   filter,
		Statuses: OrderStatuses,
	}
}
