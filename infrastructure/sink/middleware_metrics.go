package sink

import (
	"context"
	"errors"
	"time"

	"github.com/soumenkm/TranslateApp/internal/domain"
	"github.com/soumenkm/TranslateApp/internal/ports"
)

// metricsSink collects store latency and outcome metrics.
// This provides observability into submission throughput and failure
// modes per destination.
type metricsSink struct {
	next      ports.RatingsSink
	collector ports.MetricsCollector
}

// MetricsMiddleware creates middleware that records store metrics
// through the given collector.
func MetricsMiddleware(collector ports.MetricsCollector) Middleware {
	return func(next ports.RatingsSink) ports.RatingsSink {
		return &metricsSink{
			next:      next,
			collector: collector,
		}
	}
}

// Store executes the store while recording latency and outcome.
func (m *metricsSink) Store(ctx context.Context, submission *domain.ValidatedSubmission) error {
	start := time.Now()
	err := m.next.Store(ctx, submission)

	labels := map[string]string{
		"sink":   m.next.Name(),
		"status": storeStatus(ctx, err),
	}

	if m.collector != nil {
		m.collector.RecordHistogram("sink_store_duration_seconds", time.Since(start).Seconds(), labels)
		m.collector.RecordCounter("sink_store_total", 1, labels)
	}

	return err
}

func storeStatus(ctx context.Context, err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, ports.ErrTimeout), errors.Is(ctx.Err(), context.DeadlineExceeded):
		return "timeout"
	case errors.Is(err, ports.ErrUnauthorized):
		return "unauthorized"
	case errors.Is(err, ports.ErrInvalidRecord):
		return "invalid"
	case errors.Is(err, ports.ErrSinkUnavailable):
		return "unavailable"
	default:
		return "error"
	}
}

// Name reports the wrapped sink's name.
func (m *metricsSink) Name() string { return m.next.Name() }
