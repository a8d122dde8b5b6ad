// Package sink persists validated rating submissions to their
// destination stores.
//
// Every sink implements ports.RatingsSink and stores exactly one
// submission per call, keyed by the submission key. Cross-cutting
// concerns are layered on through a middleware chain rather than
// baked into individual sinks, so any destination gains retries,
// timeouts, rate limiting, metrics, and tracing the same way.
//
// Basic usage:
//
//	base, err := sink.NewFile("output")
//	store := sink.Chain(base,
//	    sink.MetricsMiddleware(collector),
//	    sink.RetryMiddleware(3, time.Second, 30*time.Second),
//	    sink.TimeoutMiddleware(10*time.Second),
//	)
//	err = store.Store(ctx, submission)
package sink

import (
	"errors"

	"github.com/soumenkm/TranslateApp/internal/ports"
)

// Middleware wraps a ports.RatingsSink to add cross-cutting behavior.
// This pattern allows composition of retries, timeouts, rate limiting,
// metrics, and tracing without modifying destination-specific logic.
type Middleware func(ports.RatingsSink) ports.RatingsSink

// Chain applies middleware to a sink in reverse order so the first
// middleware listed becomes the outermost layer.
func Chain(s ports.RatingsSink, middleware ...Middleware) ports.RatingsSink {
	for i := len(middleware) - 1; i >= 0; i-- {
		s = middleware[i](s)
	}
	return s
}

// isRetryable reports whether a store failure is transient.
// Typed persist errors carry their own classification; bare errors
// are matched against the transient sentinels directly.
func isRetryable(err error) bool {
	var persistErr *ports.PersistError
	if errors.As(err, &persistErr) {
		return persistErr.IsRetryable()
	}
	return errors.Is(err, ports.ErrSinkUnavailable) || errors.Is(err, ports.ErrTimeout)
}
