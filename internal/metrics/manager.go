// Package metrics exposes Prometheus counters/histograms/gauges for
// permission resolution and lifecycle events: resolve call volume and
// latency, event counts by kind, and live holder counts.
package metrics

import (
	"net/http"
	"time"

	"github.com/permlattice/permlattice/internal/permission"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Manager records resolution-core activity and serves it over HTTP.
type Manager interface {
	RecordResolve(operation string, success bool, duration time.Duration)
	RecordEvent(e permission.Event)
	UpdateHolderCount(kind string, count int)
	Handler() http.Handler
}

type manager struct {
	registry *prometheus.Registry

	resolveTotal    *prometheus.CounterVec
	resolveDuration *prometheus.HistogramVec
	eventsTotal     *prometheus.CounterVec
	holderCount     *prometheus.GaugeVec
}

// NewManager builds a Manager with its own private Prometheus
// registry, so a caller can mount Handler() without colliding with
// the global default registry.
func NewManager() Manager {
	registry := prometheus.NewRegistry()

	m := &manager{
		registry: registry,
		resolveTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "permlattice",
			Name:      "resolve_total",
			Help:      "Total permission resolution operations by operation and outcome.",
		}, []string{"operation", "success"}),
		resolveDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "permlattice",
			Name:      "resolve_duration_seconds",
			Help:      "Duration of permission resolution operations.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation"}),
		eventsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "permlattice",
			Name:      "events_total",
			Help:      "Total permission lifecycle events emitted, by kind.",
		}, []string{"kind"}),
		holderCount: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "permlattice",
			Name:      "holders",
			Help:      "Number of known holders by kind (user/group).",
		}, []string{"kind"}),
	}

	registry.MustRegister(m.resolveTotal, m.resolveDuration, m.eventsTotal, m.holderCount)
	return m
}

func (m *manager) RecordResolve(operation string, success bool, duration time.Duration) {
	label := "true"
	if !success {
		label = "false"
	}
	m.resolveTotal.WithLabelValues(operation, label).Inc()
	m.resolveDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

func (m *manager) RecordEvent(e permission.Event) {
	m.eventsTotal.WithLabelValues(e.Kind.String()).Inc()
}

func (m *manager) UpdateHolderCount(kind string, count int) {
	m.holderCount.WithLabelValues(kind).Set(float64(count))
}

func (m *manager) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Sink adapts a Manager to permission.EventSink so it can be
// registered directly on an eventbus.Dispatcher.
type Sink struct {
	Manager Manager
}

func (s Sink) Emit(e permission.Event) { s.Manager.RecordEvent(e) }
