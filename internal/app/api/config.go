package api

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"go.temporal.io/sdk/client"

	"github.com/Apurer/go-gin-restaurant-api/internal/domains/restaurant/domain"
	platformobservability "github.com/Apurer/go-gin-restaurant-api/internal/platform/observability"
	apierrors "github.com/Apurer/go-gin-restaurant-api/internal/shared/errors"
)

// Config carries environment-driven settings for the API and worker processes.
type Config struct {
	Port                   string
	PostgresDSN            string
	TemporalAddress        string
	TemporalNamespace      string
	TemporalDisabled       bool
	RabbitMQURL            string
	RabbitMQExchange       string
	SilentErrorCodes       []int
	SizeRequiredCategories []string
	Environment            string
	OTLPEndpoint           string
	OTLPInsecure           bool
	LogLevel               slog.Level
}

// LoadConfig reads environment variables, applies defaults, and validates basic constraints.
func LoadConfig() (Config, error) {
	cfg := Config{
		Port:              envDefault("PORT", "8080"),
		PostgresDSN:       strings.TrimSpace(os.Getenv("POSTGRES_DSN")),
		TemporalAddress:   envDefault("TEMPORAL_ADDRESS", client.DefaultHostPort),
		TemporalNamespace: envDefault("TEMPORAL_NAMESPACE", client.DefaultNamespace),
		TemporalDisabled:  isTruthy(os.Getenv("TEMPORAL_DISABLED")),
		RabbitMQURL:       strings.TrimSpace(os.Getenv("RABBITMQ_URL")),
		RabbitMQExchange:  envDefault("RABBITMQ_EXCHANGE", "restaurant_events"),
		Environment:       envDefault("ENVIRONMENT", "local"),
		OTLPEndpoint:      strings.TrimSpace(os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT")),
		OTLPInsecure:      strings.TrimSpace(os.Getenv("OTEL_EXPORTER_OTLP_INSECURE")) != "0",
	}
	if port, err := strconv.Atoi(cfg.Port); err != nil || port <= 0 || port > 65535 {
		return Config{}, fmt.Errorf("PORT must be a valid TCP port, got %q", cfg.Port)
	}

	codes, err := parseCodes(envDefault("SILENT_ERROR_CODES",
		fmt.Sprintf("%d,%d", apierrors.CodeMissingEntryData, apierrors.CodeEntryNotFound)))
	if err != nil {
		return Config{}, err
	}
	cfg.SilentErrorCodes = codes

	if err := cfg.LogLevel.UnmarshalText([]byte(envDefault("LOG_LEVEL", "info"))); err != nil {
		return Config{}, fmt.Errorf("LOG_LEVEL must be one of debug, info, warn, error: %w", err)
	}

	cfg.SizeRequiredCategories = splitList(os.Getenv("SIZE_REQUIRED_CATEGORIES"))
	if len(cfg.SizeRequiredCategories) == 0 {
		cfg.SizeRequiredCategories = append([]string(nil), domain.DefaultSizeRequiredCategories...)
	}
	return cfg, nil
}

// SizePolicy builds the size rule from the configured categories.
func (c Config) SizePolicy() domain.SizePolicy {
	return domain.NewSizePolicy(c.SizeRequiredCategories...)
}

// ErrWorkerNeedsPostgres is returned when the worker would run against a private memory store.
var ErrWorkerNeedsPostgres = errors.New("the order placement worker requires POSTGRES_DSN")

// SharedStore reports whether separate processes see the same restaurant data.
func (c Config) SharedStore() bool {
	return c.PostgresDSN != ""
}

// ValidateWorker checks the settings the Temporal worker cannot run without.
func (c Config) ValidateWorker() error {
	if !c.SharedStore() {
		return ErrWorkerNeedsPostgres
	}
	return nil
}

// Observability returns the telemetry settings for the named process.
func (c Config) Observability(serviceName string) platformobservability.Settings {
	return platformobservability.Settings{
		ServiceName:  serviceName,
		Environment:  c.Environment,
		OTLPEndpoint: c.OTLPEndpoint,
		OTLPInsecure: c.OTLPInsecure,
		LogLevel:     c.LogLevel,
	}
}

func parseCodes(raw string) ([]int, error) {
	var codes []int
	for _, part := range splitList(raw) {
		code, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("SILENT_ERROR_CODES must be a comma separated list of integers, got %q", part)
		}
		codes = append(codes, code)
	}
	return codes, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func envDefault(key, fallback string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return fallback
}

func isTruthy(value string) bool {
	value = strings.TrimSpace(strings.ToLower(value))
	return value == "1" || value == "true" || value == "yes"
}
