// Package monitor serves live training progress over HTTP: Prometheus
// metrics, JSON status endpoints and a WebSocket feed of finished episodes.
package monitor

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the trainer's collectors. Each Metrics owns its registry so
// several monitors (and tests) can coexist in one process.
type Metrics struct {
	registry *prometheus.Registry

	episodes    *prometheus.CounterVec
	fitness     prometheus.Histogram
	loss        prometheus.Histogram
	ticks       prometheus.Counter
	generation  prometheus.Gauge
	bestFitness prometheus.Gauge
	meanFitness prometheus.Gauge

	wsClients  prometheus.Gauge
	wsMessages prometheus.Counter
	rejected   *prometheus.CounterVec
}

// NewMetrics registers the collectors on a fresh registry.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)

	return &Metrics{
		registry: reg,
		// Bounded: "train", "score"
		episodes: f.NewCounterVec(prometheus.CounterOpts{
			Name: "shippu_episodes_total",
			Help: "Finished episodes by kind",
		}, []string{"kind"}),
		fitness: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "shippu_episode_fitness",
			Help:    "Fitness of scoring episodes",
			Buckets: prometheus.ExponentialBuckets(1, 4, 10),
		}),
		loss: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "shippu_training_loss",
			Help:    "Mean loss of each training pass",
			Buckets: prometheus.ExponentialBuckets(1e-6, 10, 10),
		}),
		ticks: f.NewCounter(prometheus.CounterOpts{
			Name: "shippu_ticks_total",
			Help: "Simulation ticks played by all episodes",
		}),
		generation: f.NewGauge(prometheus.GaugeOpts{
			Name: "shippu_generation",
			Help: "Last finished generation",
		}),
		bestFitness: f.NewGauge(prometheus.GaugeOpts{
			Name: "shippu_best_fitness",
			Help: "Best fitness of the last generation",
		}),
		meanFitness: f.NewGauge(prometheus.GaugeOpts{
			Name: "shippu_mean_fitness",
			Help: "Mean fitness of the last generation",
		}),
		wsClients: f.NewGauge(prometheus.GaugeOpts{
			Name: "websocket_connections_active",
			Help: "Currently active WebSocket connections",
		}),
		wsMessages: f.NewCounter(prometheus.CounterOpts{
			Name: "websocket_messages_total",
			Help: "Total WebSocket messages sent",
		}),
		// Bounded: "rate_limit", "origin", "ws_limit"
		rejected: f.NewCounterVec(prometheus.CounterOpts{
			Name: "connection_rejected_total",
			Help: "Requests rejected by rate limiter or origin check",
		}, []string{"reason"}),
	}
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry exposes the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// RecordRejected increments the rejection counter.
func (m *Metrics) RecordRejected(reason string) {
	m.rejected.WithLabelValues(reason).Inc()
}
