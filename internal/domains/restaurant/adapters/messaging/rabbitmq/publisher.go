package rabbitmq

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/shopspring/decimal"

	"github.com/Apurer/go-gin-restaurant-api/internal/domains/restaurant/domain"
	"github.com/Apurer/go-gin-restaurant-api/internal/domains/restaurant/ports"
)

var _ ports.EventPublisher = (*Publisher)(nil)

const publishTimeout = 10 * time.Second

// Channel is the subset of an AMQP channel the publisher needs.
type Channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

// Publisher sends restaurant events to a topic exchange, routed by event name.
type Publisher struct {
	channel  Channel
	exchange string
	logger   *slog.Logger
	newID    func() string
}

// NewPublisher builds a publisher over an open channel.
func NewPublisher(ch Channel, exchange string, logger *slog.Logger) *Publisher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Publisher{channel: ch, exchange: exchange, logger: logger, newID: uuid.NewString}
}

type envelope struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	OccurredAt time.Time `json:"occurred_at"`
	Payload    any       `json:"payload"`
}

type orderPlacedPayload struct {
	OrderID    int64           `json:"order_id"`
	CustomerID int64           `json:"customer_id"`
	ItemCount  int             `json:"item_count"`
	Total      decimal.Decimal `json:"total"`
}

type orderDeletedPayload struct {
	OrderID int64 `json:"order_id"`
}

type customerDeletedPayload struct {
	CustomerID int64   `json:"customer_id"`
	OrderIDs   []int64 `json:"order_ids"`
}

// Publish sends each event as a persistent JSON message. All events are attempted; failures are joined.
func (p *Publisher) Publish(ctx context.Context, events ...domain.Event) error {
	if p == nil || p.channel == nil {
		return errors.New("rabbitmq publisher not configured")
	}
	var errs []error
	for _, event := range events {
		if err := p.publish(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (p *Publisher) publish(ctx context.Context, event domain.Event) error {
	payload, err := payloadFor(event)
	if err != nil {
		return err
	}
	id := p.newID()
	body, err := json.Marshal(envelope{
		ID:         id,
		Name:       event.EventName(),
		OccurredAt: event.OccurredAt().UTC(),
		Payload:    payload,
	})
	if err != nil {
		return fmt.Errorf("marshal %s: %w", event.EventName(), err)
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()
	err = p.channel.PublishWithContext(ctx, p.exchange, event.EventName(), false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    id,
		Type:         event.EventName(),
		Timestamp:    event.OccurredAt(),
		Body:         body,
	})
	if err != nil {
		p.logger.ErrorContext(ctx, "event publish failed",
			slog.String("event.name", event.EventName()),
			slog.String("exchange", p.exchange),
			slog.Any("error", err),
		)
		return fmt.Errorf("publish %s: %w", event.EventName(), err)
	}
	p.logger.DebugContext(ctx, "event published",
		slog.String("event.name", event.EventName()),
		slog.String("event.id", id),
		slog.Int("message.size", len(body)),
	)
	return nil
}

func payloadFor(event domain.Event) (any, error) {
	switch e := event.(type) {
	case domain.OrderPlaced:
		return orderPlacedPayload{OrderID: e.OrderID, CustomerID: e.CustomerID, ItemCount: e.ItemCount, Total: e.Total}, nil
	case domain.OrderDeleted:
		return orderDeletedPayload{OrderID: e.OrderID}, nil
	case domain.CustomerDeleted:
		ids := e.OrderIDs
		if ids == nil {
			ids = []int64{}
		}
		return customerDeletedPayload{CustomerID: e.CustomerID, OrderIDs: ids}, nil
	default:
		return nil, fmt.Errorf("unsupported event %T", event)
	}
}
