// Package middleware provides cross-cutting concerns for the rating engine.
package middleware

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/soumenkm/TranslateApp/internal/ports"
)

// PrometheusMetrics implements the MetricsCollector interface using Prometheus.
// It provides real-time monitoring of submission throughput, sink
// health, and rating activity for the rating engine.
type PrometheusMetrics struct {
	storeLatency     *prometheus.HistogramVec
	storeCounter     *prometheus.CounterVec
	operationLatency *prometheus.HistogramVec
	operationCounter *prometheus.CounterVec
	systemGauges     *prometheus.GaugeVec
}

// NewPrometheusMetrics creates a new PrometheusMetrics instance and registers
// all required metrics in the global Prometheus registry.
func NewPrometheusMetrics() *PrometheusMetrics {
	return &PrometheusMetrics{
		// Sink-specific metrics.
		storeLatency: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "sink_store_duration_seconds",
				Help:    "Time spent persisting one submission to a sink.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"sink", "status"},
		),
		storeCounter: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sink_store_total",
				Help: "Total number of submission stores attempted per sink.",
			},
			[]string{"sink", "status"},
		),

		// General execution metrics for comprehensive observability.
		operationLatency: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "rating_operation_duration_seconds",
				Help:    "Execution time of rating engine operations.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		operationCounter: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rating_operations_total",
				Help: "Total number of operations performed by the rating engine.",
			},
			[]string{"operation", "status"},
		),
		systemGauges: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "rating_system_state",
				Help: "Current system state values for the rating engine.",
			},
			[]string{"metric"},
		),
	}
}

// RecordLatency implements the MetricsCollector interface by recording
// execution latency in a Prometheus histogram.
func (pm *PrometheusMetrics) RecordLatency(
	operation string,
	duration time.Duration,
	labels map[string]string,
) {
	pm.operationLatency.WithLabelValues(operation).Observe(duration.Seconds())
}

// RecordCounter implements the MetricsCollector interface by incrementing
// Prometheus counters.
func (pm *PrometheusMetrics) RecordCounter(
	metric string, value float64, labels map[string]string,
) {
	status, ok := labels["status"]
	if !ok {
		status = "success"
	}

	switch metric {
	case "sink_store_total":
		pm.storeCounter.WithLabelValues(sinkLabel(labels), status).Add(value)
	default:
		pm.operationCounter.WithLabelValues(metric, status).Add(value)
	}
}

// RecordGauge implements the MetricsCollector interface by setting
// Prometheus gauge values.
func (pm *PrometheusMetrics) RecordGauge(
	metric string, value float64, labels map[string]string,
) {
	pm.systemGauges.WithLabelValues(metric).Set(value)
}

// RecordHistogram implements the MetricsCollector interface by recording
// values in a Prometheus histogram.
func (pm *PrometheusMetrics) RecordHistogram(
	metric string, value float64, labels map[string]string,
) {
	status, ok := labels["status"]
	if !ok {
		status = "success"
	}

	switch metric {
	case "sink_store_duration_seconds":
		pm.storeLatency.WithLabelValues(sinkLabel(labels), status).Observe(value)
	default:
		pm.operationLatency.WithLabelValues(metric).Observe(value)
	}
}

func sinkLabel(labels map[string]string) string {
	if sink, ok := labels["sink"]; ok {
		return sink
	}
	return "unknown"
}

// Compile-time verification that PrometheusMetrics implements MetricsCollector.
var _ ports.MetricsCollector = (*PrometheusMetrics)(nil)
