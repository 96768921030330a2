package events

import (
	"context"
	"encoding/json"
	"time"

	pubsub "cloud.google.com/go/pubsub/v2"
	"github.com/bakeria/bakeria-backend/pkg/logger"
	"github.com/shopspring/decimal"
)

// Event types carried on the orders topic.
const (
	TypeOrderCreated       = "order.created"
	TypeOrderStatusChanged = "order.status_changed"
)

// Envelope wraps every published event.
type Envelope struct {
	Type       string    `json:"type"`
	OccurredAt time.Time `json:"occurred_at"`
	Data       any       `json:"data"`
}

// OrderCreated is emitted after a cart is converted into an order.
type OrderCreated struct {
	UserID    string          `json:"user_id"`
	OrderID   string          `json:"order_id"`
	UserName  string          `json:"user_name"`
	Total     decimal.Decimal `json:"total"`
	Status    string          `json:"status"`
	CreatedAt time.Time       `json:"created_at"`
}

// OrderStatusChanged is emitted after a staff status overwrite.
type OrderStatusChanged struct {
	UserID  string `json:"user_id"`
	OrderID string `json:"order_id"`
	Status  string `json:"status"`
}

// Publisher emits order lifecycle events. Publishing is best-effort:
// failures are logged and never surfaced to the caller.
type Publisher interface {
	OrderCreated(ctx context.Context, event OrderCreated)
	OrderStatusChanged(ctx context.Context, event OrderStatusChanged)
}

type publisher struct {
	topic *pubsub.Publisher
	logg  *logger.Logger
}

// NewPublisher wraps a Pub/Sub topic publisher. A nil topic disables
// publishing entirely, which keeps single-binary deployments working.
func NewPublisher(topic *pubsub.Publisher, logg *logger.Logger) Publisher {
	return &publisher{topic: topic, logg: logg}
}

func (p *publisher) OrderCreated(ctx context.Context, event OrderCreated) {
	p.publish(ctx, TypeOrderCreated, event)
}

func (p *publisher) OrderStatusChanged(ctx context.Context, event OrderStatusChanged) {
	p.publish(ctx, TypeOrderStatusChanged, event)
}

func (p *publisher) publish(ctx context.Context, eventType string, data any) {
	if p == nil || p.topic == nil {
		return
	}

	payload, err := json.Marshal(Envelope{
		Type:       eventType,
		OccurredAt: time.Now().UTC(),
		Data:       data,
	})
	if err != nil {
		p.logError(ctx, eventType, err)
		return
	}

	result := p.topic.Publish(ctx, &pubsub.Message{
		Data:       payload,
		Attributes: map[string]string{"type": eventType},
	})
	if _, err := result.Get(ctx); err != nil {
		p.logError(ctx, eventType, err)
	}
}

func (p *publisher) logError(ctx context.Context, eventType string, err error) {
	if p.logg == nil {
		return
	}
	ctx = p.logg.WithField(ctx, "event_type", eventType)
	p.logg.Error(ctx, "publish order event failed", err)
}
