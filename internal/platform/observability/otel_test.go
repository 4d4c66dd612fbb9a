package observability

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitTagsLogsWithServiceAndEnvironment(t *testing.T) {
	var out bytes.Buffer
	instruments, shutdown, err := Init(context.Background(), Settings{
		ServiceName: "restaurant-worker",
		Environment: "staging",
		LogLevel:    slog.LevelWarn,
		LogOutput:   &out,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = shutdown(context.Background()) })

	instruments.Logger.Info("dropped below configured level")
	instruments.Logger.Warn("order placement slow", slog.Int64("order.id", 3))

	var record map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &record))
	assert.Equal(t, "order placement slow", record["msg"])
	assert.Equal(t, "restaurant-worker", record["service"])
	assert.Equal(t, "staging", record["environment"])
	assert.EqualValues(t, 3, record["order.id"])
}

func TestSettingsDefaults(t *testing.T) {
	settings := Settings{}.withDefaults()
	assert.Equal(t, "restaurant-api", settings.ServiceName)
	assert.Equal(t, "local", settings.Environment)
	assert.NotNil(t, settings.LogOutput)
}

func TestNilInstrumentsFallBackToGlobalProviders(t *testing.T) {
	var instruments *Instruments
	assert.NotNil(t, instruments.Tracer("restaurant"))
	assert.NotNil(t, instruments.Meter("restaurant"))
}
