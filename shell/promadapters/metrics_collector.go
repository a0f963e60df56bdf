package promadapters

import (
	"maps"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/AntonStoeckl/library-circulation-go/shell"
)

// MetricsCollector implements shell.MetricsCollector on a prometheus.Registerer.
//
// Prometheus needs the label names of a vector up front, so a vector is registered lazily
// per metric name and label name set. Recording the same metric with a different label set
// registers a second vector, which the registry rejects; such measurements are dropped.
type MetricsCollector struct {
	registerer prometheus.Registerer
	namespace  string
	mu         sync.Mutex
	histograms map[string]*prometheus.HistogramVec
	counters   map[string]*prometheus.CounterVec
	gauges     map[string]*prometheus.GaugeVec
}

// Option configures a MetricsCollector.
type Option func(*MetricsCollector)

// WithNamespace prefixes every metric name with namespace.
func WithNamespace(namespace string) Option {
	return func(c *MetricsCollector) {
		c.namespace = namespace
	}
}

// NewMetricsCollector creates a MetricsCollector registering its vectors on registerer.
func NewMetricsCollector(registerer prometheus.Registerer, opts ...Option) *MetricsCollector {
	c := &MetricsCollector{
		registerer: registerer,
		histograms: make(map[string]*prometheus.HistogramVec),
		counters:   make(map[string]*prometheus.CounterVec),
		gauges:     make(map[string]*prometheus.GaugeVec),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

func (c *MetricsCollector) RecordDuration(metric string, duration time.Duration, labels map[string]string) {
	names := labelNames(labels)
	key := vectorKey(metric, names)

	c.mu.Lock()
	vec, ok := c.histograms[key]
	if !ok {
		vec = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: c.namespace,
			Name:      metric,
			Help:      helpFor(metric),
			Buckets:   prometheus.DefBuckets,
		}, names)

		if !c.register(vec) {
			c.mu.Unlock()
			return
		}

		c.histograms[key] = vec
	}
	c.mu.Unlock()

	vec.With(labels).Observe(duration.Seconds())
}

func (c *MetricsCollector) IncrementCounter(metric string, labels map[string]string) {
	names := labelNames(labels)
	key := vectorKey(metric, names)

	c.mu.Lock()
	vec, ok := c.counters[key]
	if !ok {
		vec = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: c.namespace,
			Name:      metric,
			Help:      helpFor(metric),
		}, names)

		if !c.register(vec) {
			c.mu.Unlock()
			return
		}

		c.counters[key] = vec
	}
	c.mu.Unlock()

	vec.With(labels).Inc()
}

func (c *MetricsCollector) RecordValue(metric string, value float64, labels map[string]string) {
	names := labelNames(labels)
	key := vectorKey(metric, names)

	c.mu.Lock()
	vec, ok := c.gauges[key]
	if !ok {
		vec = prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: c.namespace,
			Name:      metric,
			Help:      helpFor(metric),
		}, names)

		if !c.register(vec) {
			c.mu.Unlock()
			return
		}

		c.gauges[key] = vec
	}
	c.mu.Unlock()

	vec.With(labels).Set(value)
}

func (c *MetricsCollector) register(collector prometheus.Collector) bool {
	return c.registerer.Register(collector) == nil
}

func labelNames(labels map[string]string) []string {
	return slices.Sorted(maps.Keys(labels))
}

func vectorKey(metric string, names []string) string {
	return metric + "|" + strings.Join(names, ",")
}

func helpFor(metric string) string {
	return strings.ReplaceAll(metric, "_", " ")
}

var _ shell.MetricsCollector = (*MetricsCollector)(nil)
