package testutils

import (
	"sync"
	"time"

	"github.com/soumenkm/TranslateApp/internal/ports"
)

// MetricPoint captures one recorded observation with its labels.
type MetricPoint struct {
	Name   string
	Value  float64
	Labels map[string]string
}

// MockMetrics implements MetricsCollector by remembering every
// observation, so tests can assert on metric names, values, and
// labels without a live Prometheus registry.
type MockMetrics struct {
	mu sync.Mutex

	counters   []MetricPoint
	histograms []MetricPoint
	gauges     []MetricPoint
	latencies  []MetricPoint
}

var _ ports.MetricsCollector = (*MockMetrics)(nil)

// NewMockMetrics creates an empty recording collector.
func NewMockMetrics() *MockMetrics { return &MockMetrics{} }

// RecordLatency implements MetricsCollector.RecordLatency.
func (m *MockMetrics) RecordLatency(operation string, duration time.Duration, labels map[string]string) {
	m.record(&m.latencies, operation, duration.Seconds(), labels)
}

// RecordCounter implements MetricsCollector.RecordCounter.
func (m *MockMetrics) RecordCounter(name string, value float64, labels map[string]string) {
	m.record(&m.counters, name, value, labels)
}

// RecordGauge implements MetricsCollector.RecordGauge.
func (m *MockMetrics) RecordGauge(name string, value float64, labels map[string]string) {
	m.record(&m.gauges, name, value, labels)
}

// RecordHistogram implements MetricsCollector.RecordHistogram.
func (m *MockMetrics) RecordHistogram(name string, value float64, labels map[string]string) {
	m.record(&m.histograms, name, value, labels)
}

func (m *MockMetrics) record(dst *[]MetricPoint, name string, value float64, labels map[string]string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	copied := make(map[string]string, len(labels))
	for k, v := range labels {
		copied[k] = v
	}
	*dst = append(*dst, MetricPoint{Name: name, Value: value, Labels: copied})
}

// Counters returns the recorded counter observations in order.
func (m *MockMetrics) Counters() []MetricPoint {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]MetricPoint(nil), m.counters...)
}

// Histograms returns the recorded histogram observations in order.
func (m *MockMetrics) Histograms() []MetricPoint {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]MetricPoint(nil), m.histograms...)
}

// Gauges returns the recorded gauge observations in order.
func (m *MockMetrics) Gauges() []MetricPoint {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]MetricPoint(nil), m.gauges...)
}

// Latencies returns the recorded latency observations in seconds.
func (m *MockMetrics) Latencies() []MetricPoint {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]MetricPoint(nil), m.latencies...)
}
