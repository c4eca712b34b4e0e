// Package metrics provides Prometheus metrics for timeline generation runs.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Result labels for metadata fetches.
const (
	ResultOK    = "ok"
	ResultError = "error"
)

// Manager owns the metrics of a single generation run.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         *prometheus.Registry

	metadataFetches *prometheus.CounterVec
	labelFallbacks  prometheus.Counter
	eventsRendered  prometheus.Gauge
	renderDuration  prometheus.Histogram
}

// NewManager creates a Manager on its own registry unless one is supplied.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "autotimeline",
		subsystem:        "generator",
		histogramBuckets: prometheus.DefBuckets,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.registry == nil {
		m.registry = prometheus.NewRegistry()
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.metadataFetches = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "metadata_fetch_total",
		Help:      "Video metadata fetches by result",
	}, []string{"result"})

	m.labelFallbacks = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "label_fallback_total",
		Help:      "Labels placed on lane 0 because every lane was occupied",
	})

	m.eventsRendered = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "events_rendered",
		Help:      "Events drawn on the last rendered timeline",
	})

	m.renderDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "render_duration_seconds",
		Help:      "Time spent rendering the page",
		Buckets:   m.histogramBuckets,
	})
}

// RecordMetadataFetch counts one fetch outcome.
func (m *Manager) RecordMetadataFetch(ok bool) {
	if m == nil {
		return
	}
	result := ResultOK
	if !ok {
		result = ResultError
	}
	m.metadataFetches.WithLabelValues(result).Inc()
}

// RecordLabelFallbacks adds n fallback placements.
func (m *Manager) RecordLabelFallbacks(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.labelFallbacks.Add(float64(n))
}

// SetEventsRendered records how many events the timeline drew.
func (m *Manager) SetEventsRendered(n int) {
	if m == nil {
		return
	}
	m.eventsRendered.Set(float64(n))
}

// ObserveRender records the duration of a render.
func (m *Manager) ObserveRender(d time.Duration) {
	if m == nil {
		return
	}
	m.renderDuration.Observe(d.Seconds())
}

// Registry exposes the underlying registry.
func (m *Manager) Registry() *prometheus.Registry {
	return m.registry
}

// WriteTextfile writes all metrics in the node exporter textfile format.
func (m *Manager) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteTextfile, err)
	}
	return nil
}
