package sink

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/soumenkm/TranslateApp/internal/domain"
	"github.com/soumenkm/TranslateApp/internal/ports"
)

// tracedSink emits an OpenTelemetry span per store for debugging
// submission flows across sinks and collectors.
type tracedSink struct {
	next   ports.RatingsSink
	tracer trace.Tracer
}

// TracingMiddleware creates middleware that wraps each store in a
// span named after the given service.
func TracingMiddleware(serviceName string) Middleware {
	tracer := otel.Tracer(serviceName)

	return func(next ports.RatingsSink) ports.RatingsSink {
		return &tracedSink{
			next:   next,
			tracer: tracer,
		}
	}
}

// Store executes the store within a trace span carrying the sink name
// and submission attributes.
func (t *tracedSink) Store(ctx context.Context, submission *domain.ValidatedSubmission) error {
	ctx, span := t.tracer.Start(ctx, "RatingsSink.Store",
		trace.WithAttributes(
			attribute.String("sink.name", t.next.Name()),
			attribute.String("submission.key", submission.Key),
			attribute.Int("submission.examples", len(submission.Ratings)),
		),
	)
	defer span.End()

	err := t.next.Store(ctx, submission)
	if err != nil {
		span.RecordError(err)
	}
	return err
}

// Name reports the wrapped sink's name.
func (t *tracedSink) Name() string { return t.next.Name() }
