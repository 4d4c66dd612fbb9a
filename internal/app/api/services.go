package api

import (
	"context"
	"fmt"
	"log/slog"

	restaurantmemory "github.com/Apurer/go-gin-restaurant-api/internal/domains/restaurant/adapters/memory"
	restaurantrabbit "github.com/Apurer/go-gin-restaurant-api/internal/domains/restaurant/adapters/messaging/rabbitmq"
	restaurantobs "github.com/Apurer/go-gin-restaurant-api/internal/domains/restaurant/adapters/observability"
	restaurantpostgres "github.com/Apurer/go-gin-restaurant-api/internal/domains/restaurant/adapters/persistence/postgres"
	restaurantapp "github.com/Apurer/go-gin-restaurant-api/internal/domains/restaurant/application"
	"github.com/Apurer/go-gin-restaurant-api/internal/domains/restaurant/ports"
	"github.com/Apurer/go-gin-restaurant-api/internal/platform/migrations"
	platformobservability "github.com/Apurer/go-gin-restaurant-api/internal/platform/observability"
	platformpostgres "github.com/Apurer/go-gin-restaurant-api/internal/platform/postgres"
	platformrabbitmq "github.com/Apurer/go-gin-restaurant-api/internal/platform/rabbitmq"
)

// BuildService wires persistence, event publishing and observability around the restaurant
// service. The returned cleanup releases every connection that was opened.
func BuildService(ctx context.Context, cfg Config, instruments *platformobservability.Instruments) (ports.Service, func(), error) {
	logger := effectiveLogger(instruments)

	gateway, idempotency, closeGateway, err := buildGateway(ctx, cfg, logger)
	if err != nil {
		return nil, func() {}, err
	}
	publisher, closePublisher := buildPublisher(ctx, cfg, logger)
	cleanup := func() {
		closePublisher()
		closeGateway()
	}

	core := restaurantapp.NewService(
		gateway,
		restaurantapp.WithSizePolicy(cfg.SizePolicy()),
		restaurantapp.WithEventPublisher(publisher),
		restaurantapp.WithLogger(logger),
		restaurantapp.WithIdempotencyStore(idempotency),
	)
	service := restaurantobs.New(
		core,
		restaurantobs.WithLogger(logger),
		restaurantobs.WithTracer(instruments.Tracer("internal.restaurant.application")),
		restaurantobs.WithMeter(instruments.Meter("internal.restaurant.application")),
	)
	return service, cleanup, nil
}

func buildGateway(ctx context.Context, cfg Config, logger *slog.Logger) (ports.Gateway, ports.IdempotencyStore, func(), error) {
	db, cleanup, err := platformpostgres.ConnectDSN(ctx, cfg.PostgresDSN, logger)
	if err != nil {
		return nil, nil, cleanup, err
	}
	if db == nil {
		return restaurantmemory.NewGateway(), restaurantmemory.NewIdempotencyStore(), cleanup, nil
	}
	if err := migrations.Run(db); err != nil {
		cleanup()
		return nil, nil, func() {}, fmt.Errorf("migrate restaurant schema: %w", err)
	}
	logger.Info("restaurant gateway configured with postgres")
	return restaurantpostgres.NewGateway(db), restaurantpostgres.NewIdempotencyStore(db), cleanup, nil
}

func buildPublisher(ctx context.Context, cfg Config, logger *slog.Logger) (ports.EventPublisher, func()) {
	if cfg.RabbitMQURL == "" {
		logger.Info("RABBITMQ_URL not set, restaurant events are not published")
		return ports.NoopPublisher{}, func() {}
	}
	conn, err := platformrabbitmq.Connect(ctx, cfg.RabbitMQURL, cfg.RabbitMQExchange, logger)
	if err != nil {
		logger.Warn("rabbitmq unavailable, restaurant events are not published", slog.String("error", err.Error()))
		return ports.NoopPublisher{}, func() {}
	}
	logger.Info("restaurant events published to rabbitmq", slog.String("exchange", conn.Exchange()))
	return restaurantrabbit.NewPublisher(conn, conn.Exchange(), logger), func() { _ = conn.Close() }
}

func effectiveLogger(instruments *platformobservability.Instruments) *slog.Logger {
	if instruments != nil && instruments.Logger != nil {
		return instruments.Logger
	}
	return slog.Default()
}
