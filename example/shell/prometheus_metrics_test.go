package shell_test

import (
	"log/slog"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/entity-change-events-go/example/shell"
	"github.com/AntonStoeckl/entity-change-events-go/testutil/helper"
)

const testNamespace = "ece_test"

type gatheredMetric struct {
	counter        float64
	gauge          float64
	histogramCount uint64
	histogramSum   float64
}

func gather(t *testing.T, registry *prometheus.Registry, name string) []gatheredMetric {
	t.Helper()

	families, err := registry.Gather()
	require.NoError(t, err)

	var metrics []gatheredMetric
	for _, family := range families {
		if family.GetName() != testNamespace+"_"+name {
			continue
		}

		for _, metric := range family.GetMetric() {
			metrics = append(metrics, gatheredMetric{
				counter:        metric.GetCounter().GetValue(),
				gauge:          metric.GetGauge().GetValue(),
				histogramCount: metric.GetHistogram().GetSampleCount(),
				histogramSum:   metric.GetHistogram().GetSampleSum(),
			})
		}
	}

	return metrics
}

func Test_PrometheusMetricsCollector_IncrementCounter(t *testing.T) {
	// arrange
	registry := prometheus.NewRegistry()
	collector := shell.NewPrometheusMetricsCollector(registry, testNamespace, nil)
	labels := map[string]string{shell.LogAttrEventType: "A"}

	// act
	collector.IncrementCounter(shell.PublishedEventsMetric, labels)
	collector.IncrementCounter(shell.PublishedEventsMetric, labels)
	collector.IncrementCounter(shell.PublishedEventsMetric, map[string]string{shell.LogAttrEventType: "B"})

	// assert
	metrics := gather(t, registry, shell.PublishedEventsMetric)
	require.Len(t, metrics, 2)
	assert.ElementsMatch(t, []float64{2, 1}, []float64{metrics[0].counter, metrics[1].counter})
}

func Test_PrometheusMetricsCollector_RecordDuration(t *testing.T) {
	// arrange
	registry := prometheus.NewRegistry()
	collector := shell.NewPrometheusMetricsCollector(registry, testNamespace, nil)

	// act
	collector.RecordDuration(shell.TransactionDurationMetric, 250*time.Millisecond, map[string]string{shell.LogAttrStatus: shell.StatusSuccess})

	// assert
	metrics := gather(t, registry, shell.TransactionDurationMetric)
	require.Len(t, metrics, 1)
	assert.Equal(t, uint64(1), metrics[0].histogramCount)
	assert.InDelta(t, 0.25, metrics[0].histogramSum, 1e-9)
}

func Test_PrometheusMetricsCollector_RecordValue(t *testing.T) {
	// arrange
	registry := prometheus.NewRegistry()
	collector := shell.NewPrometheusMetricsCollector(registry, testNamespace, nil)
	labels := map[string]string{shell.LogAttrStatus: shell.StatusSuccess}

	// act
	collector.RecordValue(shell.DispatchedEventsMetric, 3, labels)
	collector.RecordValue(shell.DispatchedEventsMetric, 2, labels)

	// assert
	metrics := gather(t, registry, shell.DispatchedEventsMetric)
	require.Len(t, metrics, 1)
	assert.InDelta(t, 2.0, metrics[0].gauge, 1e-9)
}

func Test_PrometheusMetricsCollector_SharesMetricsRegisteredBefore(t *testing.T) {
	// arrange
	registry := prometheus.NewRegistry()
	first := shell.NewPrometheusMetricsCollector(registry, testNamespace, nil)
	second := shell.NewPrometheusMetricsCollector(registry, testNamespace, nil)
	labels := map[string]string{shell.LogAttrStatus: shell.StatusSuccess}

	// act
	first.IncrementCounter(shell.TransactionsMetric, labels)
	second.IncrementCounter(shell.TransactionsMetric, labels)

	// assert
	metrics := gather(t, registry, shell.TransactionsMetric)
	require.Len(t, metrics, 1)
	assert.InDelta(t, 2.0, metrics[0].counter, 1e-9)
}

func Test_PrometheusMetricsCollector_RejectsUnknownLabels(t *testing.T) {
	// arrange
	registry := prometheus.NewRegistry()
	logger, logSpy := helper.NewSpyLogger()
	collector := shell.NewPrometheusMetricsCollector(registry, testNamespace, logger)
	collector.IncrementCounter(shell.TransactionsMetric, map[string]string{shell.LogAttrStatus: shell.StatusSuccess})

	// act
	collector.IncrementCounter(shell.TransactionsMetric, map[string]string{"unknown": "x"})

	// assert
	assert.True(t, logSpy.HasLogWithAttr(slog.LevelWarn, "metric observation rejected", shell.LogAttrError))

	metrics := gather(t, registry, shell.TransactionsMetric)
	require.Len(t, metrics, 1)
	assert.InDelta(t, 1.0, metrics[0].counter, 1e-9)
}
