// Package metrics exports cache events to Prometheus.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/krisalay/storefront-cache/types"
)

// Prometheus implements types.Metrics on its own registry.
// A nil *Prometheus is valid and records nothing.
type Prometheus struct {
	registry      *prometheus.Registry
	lookups       *prometheus.CounterVec
	removals      *prometheus.CounterVec
	writeFailures prometheus.Counter
	entries       *prometheus.GaugeVec
	bytes         prometheus.Gauge
}

var _ types.Metrics = (*Prometheus)(nil)

// NewPrometheus registers the cache collectors on a fresh registry.
func NewPrometheus() *Prometheus {
	registry := prometheus.NewRegistry()

	lookups := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "storefront_cache_lookups_total",
		Help: "Total cache lookups by result",
	}, []string{"result"})

	removals := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "storefront_cache_removals_total",
		Help: "Total entries removed by the cache itself, by reason",
	}, []string{"reason"})

	writeFailures := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "storefront_cache_write_failures_total",
		Help: "Total cache writes dropped after retry",
	})

	entries := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "storefront_cache_entries",
		Help: "Owned cache entries at the last stats scan, by state",
	}, []string{"state"})

	bytes := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "storefront_cache_bytes",
		Help: "UTF-16 size of owned cache entries at the last stats scan",
	})

	registry.MustRegister(lookups, removals, writeFailures, entries, bytes)

	return &Prometheus{
		registry:      registry,
		lookups:       lookups,
		removals:      removals,
		writeFailures: writeFailures,
		entries:       entries,
		bytes:         bytes,
	}
}

// Registry exposes the underlying registry.
func (m *Prometheus) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// Handler serves the registry in the Prometheus text format.
func (m *Prometheus) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Prometheus) Hit() {
	if m == nil {
		return
	}
	m.lookups.WithLabelValues("hit").Inc()
}

func (m *Prometheus) Miss() {
	if m == nil {
		return
	}
	m.lookups.WithLabelValues("miss").Inc()
}

func (m *Prometheus) Expire() {
	if m == nil {
		return
	}
	m.removals.WithLabelValues("expired").Inc()
}

func (m *Prometheus) Corrupt() {
	if m == nil {
		return
	}
	m.removals.WithLabelValues("corrupt").Inc()
}

func (m *Prometheus) WriteFailure() {
	if m == nil {
		return
	}
	m.writeFailures.Inc()
}

func (m *Prometheus) Swept(removed int) {
	if m == nil || removed <= 0 {
		return
	}
	m.removals.WithLabelValues("swept").Add(float64(removed))
}

func (m *Prometheus) Invalidated(removed int) {
	if m == nil || removed <= 0 {
		return
	}
	m.removals.WithLabelValues("invalidated").Add(float64(removed))
}

func (m *Prometheus) ObserveStats(st types.Stats) {
	if m == nil {
		return
	}
	m.entries.WithLabelValues("active").Set(float64(st.ActiveEntries))
	m.entries.WithLabelValues("expired").Set(float64(st.ExpiredEntries))
	m.bytes.Set(float64(st.TotalBytes))
}
