// Package metrics defines the Prometheus collectors of the service and the
// handler that exposes them.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "logistics"

// ServerMetrics groups every collector. Create it once per registry.
type ServerMetrics struct {
	Requests      *prometheus.CounterVec
	LatencyMS     *prometheus.HistogramVec
	OrdersByState *prometheus.GaugeVec
	EventsRelayed prometheus.Counter
	RelayFailures prometheus.Counter
	OutboxPending prometheus.Gauge

	gatherer prometheus.Gatherer
}

// NewServerMetrics registers the collectors with reg. Passing nil uses a
// fresh private registry.
func NewServerMetrics(service string, reg *prometheus.Registry) *ServerMetrics {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}

	m := &ServerMetrics{
		Requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: service,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests.",
		}, []string{"handler", "method", "status"}),
		LatencyMS: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: service,
			Name:      "http_request_duration_ms",
			Help:      "HTTP request latency in milliseconds.",
			Buckets:   []float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000},
		}, []string{"handler", "method"}),
		OrdersByState: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: service,
			Name:      "orders",
			Help:      "Number of stored orders by status.",
		}, []string{"status"}),
		EventsRelayed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: service,
			Name:      "outbox_events_relayed_total",
			Help:      "Order events handed from the outbox to the publisher.",
		}),
		RelayFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: service,
			Name:      "outbox_relay_failures_total",
			Help:      "Outbox relay runs that failed to publish.",
		}),
		OutboxPending: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: service,
			Name:      "outbox_pending_events",
			Help:      "Order events waiting in the outbox.",
		}),
		gatherer: reg,
	}

	reg.MustRegister(
		m.Requests,
		m.LatencyMS,
		m.OrdersByState,
		m.EventsRelayed,
		m.RelayFailures,
		m.OutboxPending,
		prometheus.NewGoCollector(),
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
	)
	return m
}

// Handler serves the registry in the Prometheus text format.
func (m *ServerMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
