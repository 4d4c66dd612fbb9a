package ports

import (
	"context"

	"github.com/Apurer/go-gin-restaurant-api/internal/domains/restaurant/domain"
)

// EventPublisher forwards committed domain events to interested parties.
type EventPublisher interface {
	Publish(ctx context.Context, events ...domain.Event) error
}

// NoopPublisher drops every event.
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, ...domain.Event) error { return nil }
