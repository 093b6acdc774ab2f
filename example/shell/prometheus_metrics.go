package shell

import (
	"errors"
	"slices"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const logMsgMetricRejected = "metric observation rejected"

// PrometheusMetricsCollector implements MetricsCollector on top of Prometheus.
//
// Vectors are created on first use of a metric name, with the label names seen on that first use.
// Durations become histograms in seconds, counters become counters and values become gauges.
type PrometheusMetricsCollector struct {
	registerer prometheus.Registerer
	namespace  string
	logger     Logger

	mu         sync.Mutex
	histograms map[string]*prometheus.HistogramVec
	counters   map[string]*prometheus.CounterVec
	gauges     map[string]*prometheus.GaugeVec
}

// NewPrometheusMetricsCollector creates a PrometheusMetricsCollector registering its metrics on reg.
// A nil logger silences rejected observations.
func NewPrometheusMetricsCollector(reg prometheus.Registerer, namespace string, logger Logger) *PrometheusMetricsCollector {
	return &PrometheusMetricsCollector{
		registerer: reg,
		namespace:  namespace,
		logger:     logger,
		histograms: make(map[string]*prometheus.HistogramVec),
		counters:   make(map[string]*prometheus.CounterVec),
		gauges:     make(map[string]*prometheus.GaugeVec),
	}
}

// RecordDuration observes duration in seconds.
func (c *PrometheusMetricsCollector) RecordDuration(metric string, duration time.Duration, labels map[string]string) {
	c.mu.Lock()
	vec, found := c.histograms[metric]
	if !found {
		vec = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: c.namespace,
			Name:      metric,
			Help:      "Duration of " + metric + " in seconds",
			Buckets:   prometheus.DefBuckets,
		}, labelNames(labels))
		vec = registerOrExisting(c.registerer, vec)
		c.histograms[metric] = vec
	}
	c.mu.Unlock()

	observer, err := vec.GetMetricWith(labels)
	if err != nil {
		c.reject(metric, err)
		return
	}

	observer.Observe(duration.Seconds())
}

// IncrementCounter increments a counter by one.
func (c *PrometheusMetricsCollector) IncrementCounter(metric string, labels map[string]string) {
	c.mu.Lock()
	vec, found := c.counters[metric]
	if !found {
		vec = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: c.namespace,
			Name:      metric,
			Help:      "Total of " + metric,
		}, labelNames(labels))
		vec = registerOrExisting(c.registerer, vec)
		c.counters[metric] = vec
	}
	c.mu.Unlock()

	counter, err := vec.GetMetricWith(labels)
	if err != nil {
		c.reject(metric, err)
		return
	}

	counter.Inc()
}

// RecordValue sets a gauge.
func (c *PrometheusMetricsCollector) RecordValue(metric string, value float64, labels map[string]string) {
	c.mu.Lock()
	vec, found := c.gauges[metric]
	if !found {
		vec = prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: c.namespace,
			Name:      metric,
			Help:      "Latest value of " + metric,
		}, labelNames(labels))
		vec = registerOrExisting(c.registerer, vec)
		c.gauges[metric] = vec
	}
	c.mu.Unlock()

	gauge, err := vec.GetMetricWith(labels)
	if err != nil {
		c.reject(metric, err)
		return
	}

	gauge.Set(value)
}

func (c *PrometheusMetricsCollector) reject(metric string, err error) {
	if c.logger != nil {
		c.logger.Warn(logMsgMetricRejected, "metric", metric, LogAttrError, err.Error())
	}
}

func labelNames(labels map[string]string) []string {
	names := make([]string, 0, len(labels))
	for name := range labels {
		names = append(names, name)
	}
	slices.Sort(names)

	return names
}

// registerOrExisting registers collector, or returns the collector registered before under the same descriptor.
func registerOrExisting[C prometheus.Collector](reg prometheus.Registerer, collector C) C {
	if reg == nil {
		return collector
	}

	if err := reg.Register(collector); err != nil {
		var alreadyRegistered prometheus.AlreadyRegisteredError
		if errors.As(err, &alreadyRegistered) {
			if existing, ok := alreadyRegistered.ExistingCollector.(C); ok {
				return existing
			}
		}
	}

	return collector
}
