// Package application orchestrates rating runs: it loads configuration
// and catalogs, owns the session over a loaded corpus, and submits
// rating tables through the ratings sink.
package application

import (
	"context"
	"fmt"

	"github.com/soumenkm/TranslateApp/internal/domain"
	"github.com/soumenkm/TranslateApp/internal/ports"
)

// Rater owns one rating run: the catalog, the loaded example corpus,
// the rater's session, and the submission pipeline. Hosts drive it from
// a single goroutine; the session inside is single-writer.
type Rater struct {
	catalog  *domain.Catalog
	examples []domain.Example
	session  *domain.Session
	pipeline *SubmissionPipeline
}

// NewRater loads the corpus from the example source and assembles a
// ready-to-use run. Loading failures and an empty corpus are fatal; a
// run without examples has nothing to rate.
func NewRater(ctx context.Context, catalog *domain.Catalog, source ports.ExampleSource, sink ports.RatingsSink) (*Rater, error) {
	examples, err := source.LoadExamples(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load examples: %w", err)
	}
	if len(examples) == 0 {
		return nil, ports.NewSourceError(source.Name(), "", domain.ErrNoExamples)
	}

	session, err := domain.NewSession(catalog, len(examples))
	if err != nil {
		return nil, err
	}
	pipeline, err := NewSubmissionPipeline(sink)
	if err != nil {
		return nil, err
	}

	return &Rater{
		catalog:  catalog,
		examples: examples,
		session:  session,
		pipeline: pipeline,
	}, nil
}

// Catalog returns the catalog this run rates against.
func (r *Rater) Catalog() *domain.Catalog { return r.catalog }

// Session returns the run's session. The caller owns all mutation; only
// the goroutine driving the host may touch it.
func (r *Rater) Session() *domain.Session { return r.session }

// ExampleCount returns the corpus size.
func (r *Rater) ExampleCount() int { return len(r.examples) }

// Examples returns a copy of the loaded corpus.
func (r *Rater) Examples() []domain.Example {
	out := make([]domain.Example, len(r.examples))
	copy(out, r.examples)
	return out
}

// Example returns the example at the given index.
func (r *Rater) Example(index int) (domain.Example, error) {
	if index < 0 || index >= len(r.examples) {
		return domain.Example{}, domain.NewSessionError("example", index, domain.ErrIndexOutOfRange)
	}
	return r.examples[index], nil
}

// Scores computes both candidates' weighted scores for one rating set.
func (r *Rater) Scores(set domain.ExampleRatingSet) (y1, y2 float64) {
	return domain.WeightedScore(set, r.catalog, domain.CandidateY1),
		domain.WeightedScore(set, r.catalog, domain.CandidateY2)
}

// Averages computes the corpus averages over the session's committed
// table. A zero count means nothing has been rated yet.
func (r *Rater) Averages() (avgY1, avgY2 float64, rated int) {
	return domain.CorpusAverage(r.session.Table(), r.catalog)
}

// Submit sends the session's committed ratings through the submission
// pipeline under the session's username. The session is left untouched:
// the rater may review, re-rate, or submit again, and an explicit Reset
// is the only way to clear the table.
func (r *Rater) Submit(ctx context.Context) (*domain.ValidatedSubmission, error) {
	return r.pipeline.Submit(ctx, r.session.Username(), r.session.Table())
}
