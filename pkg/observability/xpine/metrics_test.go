package xpine_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/omeyang/xpine/pkg/observability/xpine"
)

func collectSums(t *testing.T, reader *sdkmetric.ManualReader) map[string]int64 {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	sums := make(map[string]int64)
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			data, ok := m.Data.(metricdata.Sum[int64])
			if !ok {
				continue
			}
			for _, dp := range data.DataPoints {
				sums[m.Name] += dp.Value
			}
		}
	}
	return sums
}

func TestEngine_Metrics(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })

	rec := &recorder{}
	e := newTestEngine(t, rec, func(b *xpine.Builder) {
		b.SetMeterProvider(provider)
	})

	ctx := context.Background()
	require.NoError(t, e.Info(ctx, "a"))
	require.NoError(t, e.Warn(ctx, "b"))
	require.NoError(t, e.Info(ctx, "stale {$5$}"))

	sums := collectSums(t, reader)
	assert.Equal(t, int64(3), sums["xpine.log.total"])
	assert.Equal(t, int64(1), sums["xpine.placeholder.stale"])
}

func TestEngine_MetricsSkippedOnStackShape(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })

	e := newTestEngine(t, &recorder{}, func(b *xpine.Builder) {
		b.SetMeterProvider(provider).SetCallerSkip(30)
	})
	assert.ErrorIs(t, e.Info(context.Background(), "x"), xpine.ErrStackShape)

	assert.Zero(t, collectSums(t, reader)["xpine.log.total"])
}
