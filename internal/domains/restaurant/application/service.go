package application

import (
	"context"
	"log/slog"
	"time"

	"github.com/Apurer/go-gin-restaurant-api/internal/domains/restaurant/domain"
	"github.com/Apurer/go-gin-restaurant-api/internal/domains/restaurant/ports"
)

var _ ports.Service = (*Service)(nil)

// Service orchestrates the restaurant use cases. Every method runs inside a single
// gateway unit of work; events are published only after it commits.
type Service struct {
	gateway ports.Gateway
	sizes   domain.SizePolicy
	events  ports.EventPublisher
	logger  *slog.Logger
	now     func() time.Time

	idempotency ports.IdempotencyStore
}

// Option customises a Service.
type Option func(*Service)

// WithSizePolicy overrides which categories require a size.
func WithSizePolicy(policy domain.SizePolicy) Option {
	return func(s *Service) {
		s.sizes = policy
	}
}

// WithEventPublisher sets where committed domain events are sent.
func WithEventPublisher(publisher ports.EventPublisher) Option {
	return func(s *Service) {
		if publisher != nil {
			s.events = publisher
		}
	}
}

// WithLogger sets the logger used for failures that do not reach the caller.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithClock sets the time source used to date orders and events.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithIdempotencyStore makes order placement replay the first order placed under an idempotency key.
func WithIdempotencyStore(store ports.IdempotencyStore) Option {
	return func(s *Service) {
		s.idempotency = store
	}
}

// NewService wires the restaurant service with its dependencies.
func NewService(gateway ports.Gateway, opts ...Option) *Service {
	s := &Service{
		gateway: gateway,
		sizes:   domain.DefaultSizePolicy(),
		events:  ports.NoopPublisher{},
		logger:  slog.Default(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// unit gives a unit of work its manager and viewer.
type unit struct {
	tx     ports.Gateway
	manage *Manager
	view   *Viewer
}

func (s *Service) inTx(ctx context.Context, fn func(u unit) error) error {
	return s.gateway.InTx(ctx, func(tx ports.Gateway) error {
		m := NewManager(tx, s.sizes)
		m.now = s.now
		return fn(unit{tx: tx, manage: m, view: NewViewer(tx)})
	})
}

func (s *Service) publish(ctx context.Context, events ...domain.Event) {
	if len(events) == 0 {
		return
	}
	if err := s.events.Publish(ctx, events...); err != nil {
		for _, event := range events {
			s.logger.LogAttrs(ctx, slog.LevelWarn, "event publish failed",
				slog.String("event", event.EventName()),
				slog.String("error", err.Error()),
			)
		}
	}
}

func (s *Service) base() domain.BaseEvent {
	return domain.BaseEvent{Timestamp: s.now().UTC()}
}
