package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type ClientMetrics struct {
	service  string
	registry *prometheus.Registry

	operationTotal    *prometheus.CounterVec
	operationDuration *prometheus.HistogramVec
	operationInFlight prometheus.Gauge
}

func NewClientMetrics(service string) *ClientMetrics {
	registry := prometheus.NewRegistry()

	operationTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "docqa",
			Subsystem: "client",
			Name:      "operations_total",
			Help:      "Total upload and ask operations by outcome.",
		},
		[]string{"service", "operation", "outcome"},
	)
	operationDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "docqa",
			Subsystem: "client",
			Name:      "operation_duration_seconds",
			Help:      "Operation duration in seconds, including the remote round trip.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60, 120},
		},
		[]string{"service", "operation"},
	)
	operationInFlight := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "docqa",
			Subsystem: "client",
			Name:      "operations_in_flight",
			Help:      "Number of in-flight operations.",
			ConstLabels: prometheus.Labels{
				"service": service,
			},
		},
	)

	registry.MustRegister(operationTotal, operationDuration, operationInFlight)

	return &ClientMetrics{
		service:           service,
		registry:          registry,
		operationTotal:    operationTotal,
		operationDuration: operationDuration,
		operationInFlight: operationInFlight,
	}
}

func (m *ClientMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *ClientMetrics) StartOperation(string) {
	m.operationInFlight.Inc()
}

func (m *ClientMetrics) FinishOperation(operation, outcome string, duration time.Duration) {
	m.operationInFlight.Dec()

	if outcome == "" {
		outcome = "unknown"
	}
	m.operationTotal.WithLabelValues(m.service, operation, outcome).Inc()
	m.operationDuration.WithLabelValues(m.service, operation).Observe(duration.Seconds())
}
