// Package ports defines the contracts between the rating core and its
// external collaborators. The core depends on these interfaces only;
// concrete adapters live under infrastructure.
package ports

import (
	"context"

	"github.com/soumenkm/TranslateApp/internal/domain"
)

// ExampleSource loads the corpus of translation examples to rate.
// Implementations decide where examples come from (a JSON file, a
// fabricated demo corpus); the core treats the sequence as immutable
// once loaded.
type ExampleSource interface {
	// LoadExamples returns the ordered example sequence. An empty corpus
	// is an error: a rating run needs data. Individually malformed
	// records degrade to placeholders rather than failing the load.
	LoadExamples(ctx context.Context) ([]domain.Example, error)

	// Name identifies the source for logs and errors.
	Name() string
}

// RatingsSink persists validated submissions. Implementations own their
// transport and durability details; retry, timeout, and rate policies
// wrap a sink rather than living in the submission pipeline.
//
// Store must be atomic per record: after a failure the sink holds either
// the whole record or nothing.
type RatingsSink interface {
	// Store persists one submission under its key. Implementations
	// should be idempotent per key so a retried store cannot duplicate a
	// record.
	Store(ctx context.Context, submission *domain.ValidatedSubmission) error

	// Name identifies the sink for errors, logs, and metrics labels.
	Name() string
}

// HealthChecker is implemented by sinks that can verify connectivity to
// their backing store. Hosts use it for readiness checks.
type HealthChecker interface {
	// Ping verifies the backing store is reachable.
	Ping(ctx context.Context) error
}
