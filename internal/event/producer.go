package event

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/RahulGalipelli/AdminApp/internal/domain"
	pkgkafka "github.com/RahulGalipelli/AdminApp/pkg/kafka"
	"github.com/RahulGalipelli/AdminApp/pkg/logger"
)

// Kafka topics for admin audit events.
var (
	TopicSessionStarted      = pkgkafka.Topic("admin", "session_started")
	TopicSessionEnded        = pkgkafka.Topic("admin", "session_ended")
	TopicProductCreated      = pkgkafka.Topic("admin", "product_created")
	TopicProductUpdated      = pkgkafka.Topic("admin", "product_updated")
	TopicProductDeleted      = pkgkafka.Topic("admin", "product_deleted")
	TopicOrderStatusChanged  = pkgkafka.Topic("admin", "order_status_changed")
	TopicSupportCallAssigned = pkgkafka.Topic("admin", "support_call_assigned")
	TopicSupportCallResolved = pkgkafka.Topic("admin", "support_call_resolved")
	TopicSettingsSaved       = pkgkafka.Topic("admin", "settings_saved")
)

// Aggregate types.
const (
	AggregateSession     = "session"
	AggregateProduct     = "product"
	AggregateOrder       = "order"
	AggregateSupportCall = "support_call"
	AggregateSettings    = "settings"
)

// SourceConsole identifies events originating from the admin console.
const SourceConsole = "admin-console"

// SessionData is the payload for session events.
type SessionData struct {
	AdminID string `json:"admin_id"`
	Email   string `json:"email"`
	Role    string `json:"role"`
	Reason  string `json:"reason,omitempty"`
}

// ProductData is the payload for product events.
type ProductData struct {
	ProductID     string `json:"product_id"`
	Name          string `json:"name,omitempty"`
	Price         string `json:"price,omitempty"`
	StockQuantity int    `json:"stock_quantity,omitempty"`
	IsActive      bool   `json:"is_active,omitempty"`
}

// OrderStatusData is the payload for order.status_changed.
type OrderStatusData struct {
	OrderID string `json:"order_id"`
	Status  string `json:"status"`
}

// SupportCallData is the payload for support call events.
type SupportCallData struct {
	CallID  string `json:"call_id"`
	StaffID string `json:"staff_id,omitempty"`
}

// Publisher sends an event to a topic. *pkgkafka.Producer satisfies it.
type Publisher interface {
	Publish(ctx context.Context, topic string, event *pkgkafka.Event) error
}

// Producer publishes admin audit events. A nil publisher disables it.
type Producer struct {
	kafka  Publisher
	logger *slog.Logger
}

// NewProducer creates an audit producer. Pass a nil publisher to disable
// publishing.
func NewProducer(kafka Publisher, logger *slog.Logger) *Producer {
	return &Producer{kafka: kafka, logger: logger}
}

// Enabled reports whether events are actually published.
func (p *Producer) Enabled() bool {
	return p != nil && p.kafka != nil
}

func (p *Producer) publish(ctx context.Context, topic, aggregateID, aggregateType string, data any) error {
	if !p.Enabled() {
		return nil
	}

	ev, err := pkgkafka.NewEvent(topic, aggregateID, aggregateType, SourceConsole, data)
	if err != nil {
		return fmt.Errorf("create %s event: %w", topic, err)
	}
	if id := logger.CorrelationIDFromContext(ctx); id != "" {
		ev.WithCorrelationID(id)
	}
	if actor := logger.AdminIDFromContext(ctx); actor != "" {
		ev.WithActor(actor)
	}

	if err := p.kafka.Publish(ctx, topic, ev); err != nil {
		return fmt.Errorf("publish %s event: %w", topic, err)
	}

	p.logger.DebugContext(ctx, "published audit event",
		slog.String("topic", topic),
		slog.String("aggregate_id", aggregateID),
	)
	return nil
}

// SessionStarted records a login or restored session. Failures are logged.
func (p *Producer) SessionStarted(ctx context.Context, user domain.Identity) {
	data := SessionData{AdminID: user.ID, Email: user.Email, Role: user.Role}
	if err := p.publish(logger.WithAdminID(ctx, user.ID), TopicSessionStarted, user.ID, AggregateSession, data); err != nil {
		p.logger.WarnContext(ctx, "audit event dropped", slog.String("error", err.Error()))
	}
}

// SessionEnded records a logout or invalidated session. Failures are logged.
func (p *Producer) SessionEnded(ctx context.Context, user domain.Identity, reason string) {
	data := SessionData{AdminID: user.ID, Email: user.Email, Role: user.Role, Reason: reason}
	if err := p.publish(logger.WithAdminID(ctx, user.ID), TopicSessionEnded, user.ID, AggregateSession, data); err != nil {
		p.logger.WarnContext(ctx, "audit event dropped", slog.String("error", err.Error()))
	}
}

func productData(id string, in domain.ProductInput) ProductData {
	return ProductData{
		ProductID:     id,
		Name:          in.Name,
		Price:         in.Price.StringFixed(2),
		StockQuantity: in.StockQuantity,
		IsActive:      in.IsActive,
	}
}

// PublishProductCreated publishes a product_created event. id may be empty
// when the backend did not echo the new record.
func (p *Producer) PublishProductCreated(ctx context.Context, id string, in domain.ProductInput) error {
	return p.publish(ctx, TopicProductCreated, id, AggregateProduct, productData(id, in))
}

func (p *Producer) PublishProductUpdated(ctx context.Context, id string, in domain.ProductInput) error {
	return p.publish(ctx, TopicProductUpdated, id, AggregateProduct, productData(id, in))
}

func (p *Producer) PublishProductDeleted(ctx context.Context, id string) error {
	return p.publish(ctx, TopicProductDeleted, id, AggregateProduct, ProductData{ProductID: id})
}

func (p *Producer) PublishOrderStatusChanged(ctx context.Context, id, status string) error {
	return p.publish(ctx, TopicOrderStatusChanged, id, AggregateOrder, OrderStatusData{OrderID: id, Status: status})
}

func (p *Producer) PublishSupportCallAssigned(ctx context.Context, id, staffID string) error {
	return p.publish(ctx, TopicSupportCallAssigned, id, AggregateSupportCall, SupportCallData{CallID: id, StaffID: staffID})
}

func (p *Producer) PublishSupportCallResolved(ctx context.Context, id string) error {
	return p.publish(ctx, TopicSupportCallResolved, id, AggregateSupportCall, SupportCallData{CallID: id})
}

// PublishSettingsSaved publishes the saved settings with secrets masked.
func (p *Producer) PublishSettingsSaved(ctx context.Context, s domain.Settings) error {
	return p.publish(ctx, TopicSettingsSaved, "settings", AggregateSettings, s.Redacted())
}
