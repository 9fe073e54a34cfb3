package telemetry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/donaldgifford/loss-valuation/internal/config"
)

func TestSetup_Disabled(t *testing.T) {
	t.Parallel()

	shutdown, err := Setup(context.Background(), config.TracingConfig{}, "test")
	require.NoError(t, err)
	require.NotNil(t, shutdown)
	assert.NoError(t, shutdown(context.Background()))
}

func TestNewProvider_RecordsSpans(t *testing.T) {
	t.Parallel()

	exporter := tracetest.NewInMemoryExporter()
	tp := NewProvider(exporter, config.TracingConfig{
		ServiceName: "loss-valuation-test",
		SampleRatio: 1,
	}, "v0.0.0-test")

	_, span := tp.Tracer(instrumentationName).Start(context.Background(), "engine.value")
	span.End()
	require.NoError(t, tp.ForceFlush(context.Background()))

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, "engine.value", spans[0].Name)

	var service string
	for _, kv := range spans[0].Resource.Attributes() {
		if kv.Key == "service.name" {
			service = kv.Value.AsString()
		}
	}
	assert.Equal(t, "loss-valuation-test", service)
	require.NoError(t, tp.Shutdown(context.Background()))
}

func TestNewProvider_ZeroRatioDropsSpans(t *testing.T) {
	t.Parallel()

	exporter := tracetest.NewInMemoryExporter()
	tp := NewProvider(exporter, config.TracingConfig{ServiceName: "x", SampleRatio: 0}, "dev")

	_, span := tp.Tracer(instrumentationName).Start(context.Background(), "dropped")
	span.End()
	require.NoError(t, tp.ForceFlush(context.Background()))

	assert.Empty(t, exporter.GetSpans())
}
