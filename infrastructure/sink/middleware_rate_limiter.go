package sink

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"

	"github.com/soumenkm/TranslateApp/internal/domain"
	"github.com/soumenkm/TranslateApp/internal/ports"
)

// rateLimitedSink paces stores with a token bucket so a burst of
// submissions cannot overwhelm a shared destination.
type rateLimitedSink struct {
	next    ports.RatingsSink
	limiter *rate.Limiter
}

// RateLimitMiddleware creates middleware that enforces a sustained
// store rate with a token bucket. The limit parameter sets stores per
// second, while burst allows temporary spikes above the sustained
// rate.
func RateLimitMiddleware(limit rate.Limit, burst int) Middleware {
	limiter := rate.NewLimiter(limit, burst)

	return func(next ports.RatingsSink) ports.RatingsSink {
		return &rateLimitedSink{
			next:    next,
			limiter: limiter,
		}
	}
}

// Store waits for rate limit permission before forwarding the store.
func (r *rateLimitedSink) Store(ctx context.Context, submission *domain.ValidatedSubmission) error {
	if err := r.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit: %w", err)
	}
	return r.next.Store(ctx, submission)
}

// Name reports the wrapped sink's name.
func (r *rateLimitedSink) Name() string { return r.next.Name() }
