package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.temporal.io/sdk/client"

	restaurantserver "github.com/Apurer/go-gin-restaurant-api/go"

	restaurantworkflows "github.com/Apurer/go-gin-restaurant-api/internal/domains/restaurant/adapters/workflows"
	"github.com/Apurer/go-gin-restaurant-api/internal/domains/restaurant/ports"
	platformobservability "github.com/Apurer/go-gin-restaurant-api/internal/platform/observability"
	platformtemporal "github.com/Apurer/go-gin-restaurant-api/internal/platform/temporal"
	apierrors "github.com/Apurer/go-gin-restaurant-api/internal/shared/errors"
)

const serviceName = "restaurant-api"

// Run boots the restaurant HTTP API with observability, persistence, events and workflows wired.
// It returns when ctx is cancelled or the server fails.
func Run(ctx context.Context, cfg Config) error {
	instruments, shutdown, err := platformobservability.Init(ctx, cfg.Observability(serviceName))
	if err != nil {
		return fmt.Errorf("failed to initialize observability: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	service, cleanup, err := BuildService(ctx, cfg, instruments)
	if err != nil {
		return err
	}
	defer cleanup()

	orderWorkflows, closeWorkflows := buildOrderWorkflows(cfg, service, func() (client.Client, error) {
		return platformtemporal.Dial(platformtemporal.ClientConfig{
			Address:   cfg.TemporalAddress,
			Namespace: cfg.TemporalNamespace,
			Disabled:  cfg.TemporalDisabled,
		}, instruments.Tracer("temporal-client"), logger)
	}, logger)
	defer closeWorkflows()

	responder := apierrors.NewResponder(logger, cfg.SilentErrorCodes...)
	handlers := restaurantserver.ApiHandleFunctions{
		MenuAPI:     restaurantserver.NewMenuAPI(service, responder),
		CustomerAPI: restaurantserver.NewCustomerAPI(service, orderWorkflows, responder),
		OrderAPI:    restaurantserver.NewOrderAPI(service, responder),
	}
	router := restaurantserver.NewRouterWithGinEngine(gin.New(), handlers,
		gin.Recovery(),
		otelgin.Middleware(serviceName),
	)

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		logger.Info("Restaurant API listening", slog.String("addr", server.Addr))
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		logger.Error("Restaurant API server exited", slog.String("addr", server.Addr), slog.String("error", err.Error()))
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		logger.Info("Restaurant API shutting down")
		return server.Shutdown(shutdownCtx)
	}
}

// buildOrderWorkflows picks Temporal placement only when the worker can share the API's
// store. Without Postgres each process holds its own memory gateway, so orders are placed inline.
func buildOrderWorkflows(cfg Config, service ports.Creator, dial func() (client.Client, error), logger *slog.Logger) (ports.OrderWorkflows, func()) {
	inline := restaurantworkflows.NewInlineOrderWorkflows(service)
	if !cfg.SharedStore() {
		logger.Info("POSTGRES_DSN not set, placing orders inline")
		return inline, func() {}
	}
	temporalClient, err := dial()
	if err != nil {
		logger.Warn("Temporal workflows unavailable, placing orders inline", slog.String("error", err.Error()))
		return inline, func() {}
	}
	logger.Info("Temporal workflows enabled", slog.String("namespace", cfg.TemporalNamespace))
	return restaurantworkflows.NewTemporalOrderWorkflows(temporalClient), temporalClient.Close
}
