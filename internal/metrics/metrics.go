package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the bot's Prometheus collectors.
type Metrics struct {
	registry *prometheus.Registry

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPDurationSeconds *prometheus.HistogramVec
	CogsEnabled         prometheus.Gauge
	ProductionMode      prometheus.Gauge
}

// New registers all collectors on registry. A nil registry gets a fresh one.
func New(registry *prometheus.Registry) *Metrics {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	return &Metrics{
		registry: registry,

		HTTPRequestsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "lux_http_requests_total",
				Help: "Total number of status API requests by method and status code",
			},
			[]string{"method", "status"},
		),

		HTTPDurationSeconds: promauto.With(registry).NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "lux_http_request_duration_seconds",
				Help:    "Status API request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method"},
		),

		CogsEnabled: promauto.With(registry).NewGauge(
			prometheus.GaugeOpts{
				Name: "lux_cogs_enabled",
				Help: "Number of cogs currently enabled",
			},
		),

		ProductionMode: promauto.With(registry).NewGauge(
			prometheus.GaugeOpts{
				Name: "lux_production_mode",
				Help: "1 when the bot runs in production mode, 0 in debug mode",
			},
		),
	}
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
