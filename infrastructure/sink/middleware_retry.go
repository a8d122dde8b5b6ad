package sink

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/soumenkm/TranslateApp/internal/domain"
	"github.com/soumenkm/TranslateApp/internal/ports"
)

// retrySink implements automatic retry with exponential backoff for
// transient store failures. Non-retryable failures, such as rejected
// records or authentication errors, pass through untouched.
type retrySink struct {
	next       ports.RatingsSink
	maxRetries int
	baseDelay  time.Duration
	maxDelay   time.Duration
}

// RetryMiddleware creates middleware that retries transient store
// failures up to maxRetries additional times with exponential backoff.
func RetryMiddleware(maxRetries int, baseDelay, maxDelay time.Duration) Middleware {
	return func(next ports.RatingsSink) ports.RatingsSink {
		return &retrySink{
			next:       next,
			maxRetries: maxRetries,
			baseDelay:  baseDelay,
			maxDelay:   maxDelay,
		}
	}
}

// Store executes the store with automatic retry logic. Only transient
// failures are retried, and context cancellation stops the loop
// immediately.
func (r *retrySink) Store(ctx context.Context, submission *domain.ValidatedSubmission) error {
	for attempt := 0; ; attempt++ {
		err := r.next.Store(ctx, submission)
		if err == nil {
			return nil
		}

		if !isRetryable(err) || ctx.Err() != nil {
			return err
		}

		if attempt == r.maxRetries {
			return fmt.Errorf("store failed after %d attempts: %w", r.maxRetries+1, err)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(r.calculateDelay(attempt)):
			// Continue to next attempt.
		}
	}
}

func (r *retrySink) calculateDelay(attempt int) time.Duration {
	// Exponential backoff with jitter.
	if attempt < 0 {
		attempt = 0
	}
	if attempt > 30 {
		attempt = 30
	}
	// #nosec G115 - attempt is bounded between 0 and 30
	multiplier := 1 << uint(attempt)
	delay := time.Duration(float64(r.baseDelay) * float64(multiplier))

	// Add jitter (±25%)
	// #nosec G404 - Using weak RNG is acceptable for jitter calculation
	jitter := time.Duration(rand.Float64() * float64(delay) * 0.5)
	delay = delay + jitter - (delay / 4)

	if delay > r.maxDelay {
		delay = r.maxDelay
	}

	return delay
}

// Name reports the wrapped sink's name.
func (r *retrySink) Name() string { return r.next.Name() }
