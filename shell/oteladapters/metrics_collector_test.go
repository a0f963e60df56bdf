package oteladapters_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/AntonStoeckl/library-circulation-go/shell"
	"github.com/AntonStoeckl/library-circulation-go/shell/oteladapters"
)

func collect(t *testing.T, reader *sdkmetric.ManualReader) map[string]metricdata.Metrics {
	t.Helper()

	var resourceMetrics metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &resourceMetrics))

	byName := make(map[string]metricdata.Metrics)
	for _, scopeMetrics := range resourceMetrics.ScopeMetrics {
		for _, m := range scopeMetrics.Metrics {
			byName[m.Name] = m
		}
	}

	return byName
}

func Test_MetricsCollector_RecordsAllKinds(t *testing.T) {
	// arrange
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	collector := oteladapters.NewMetricsCollector(provider.Meter("test"))
	labels := shell.BuildCommandLabels("AddBook", shell.StatusSuccess)

	// act
	collector.RecordDuration(shell.CommandHandlerDurationMetric, 250*time.Millisecond, labels)
	collector.IncrementCounter(shell.CommandHandlerCallsMetric, labels)
	collector.IncrementCounter(shell.CommandHandlerCallsMetric, labels)
	collector.RecordValue("library_books_borrowed", 4, nil)

	// assert
	metrics := collect(t, reader)

	histogram, ok := metrics[shell.CommandHandlerDurationMetric].Data.(metricdata.Histogram[float64])
	require.True(t, ok)
	require.Len(t, histogram.DataPoints, 1)
	assert.Equal(t, uint64(1), histogram.DataPoints[0].Count)
	assert.InDelta(t, 0.25, histogram.DataPoints[0].Sum, 0.0001)

	counter, ok := metrics[shell.CommandHandlerCallsMetric].Data.(metricdata.Sum[int64])
	require.True(t, ok)
	require.Len(t, counter.DataPoints, 1)
	assert.Equal(t, int64(2), counter.DataPoints[0].Value)

	commandType, ok := counter.DataPoints[0].Attributes.Value(shell.LogAttrCommandType)
	require.True(t, ok)
	assert.Equal(t, "AddBook", commandType.AsString())

	gauge, ok := metrics["library_books_borrowed"].Data.(metricdata.Gauge[float64])
	require.True(t, ok)
	require.Len(t, gauge.DataPoints, 1)
	assert.Equal(t, 4.0, gauge.DataPoints[0].Value)
}
