package sink

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/soumenkm/TranslateApp/internal/domain"
	"github.com/soumenkm/TranslateApp/internal/ports"
)

// timeoutSink bounds each store attempt with a deadline so a stalled
// destination cannot hang a submission indefinitely.
type timeoutSink struct {
	next    ports.RatingsSink
	timeout time.Duration
}

// TimeoutMiddleware creates middleware that enforces a per-attempt
// store timeout. A deadline hit surfaces as a retryable timeout error.
func TimeoutMiddleware(timeout time.Duration) Middleware {
	return func(next ports.RatingsSink) ports.RatingsSink {
		return &timeoutSink{
			next:    next,
			timeout: timeout,
		}
	}
}

// Store executes the store under a timeout context.
func (t *timeoutSink) Store(ctx context.Context, submission *domain.ValidatedSubmission) error {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()

	err := t.next.Store(ctx, submission)
	if err != nil && errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("%w after %s: %v", ports.ErrTimeout, t.timeout, err)
	}
	return err
}

// Name reports the wrapped sink's name.
func (t *timeoutSink) Name() string { return t.next.Name() }
