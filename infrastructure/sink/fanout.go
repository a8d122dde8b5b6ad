package sink

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/soumenkm/TranslateApp/internal/domain"
	"github.com/soumenkm/TranslateApp/internal/ports"
)

// Fanout stores each submission in every target sink concurrently.
// Targets are independently idempotent per key, so a partial failure
// can be retried end to end without duplicating the records that did
// land.
type Fanout struct {
	targets []ports.RatingsSink
}

var _ ports.RatingsSink = (*Fanout)(nil)

// NewFanout creates a fanout over the given targets.
func NewFanout(targets ...ports.RatingsSink) (*Fanout, error) {
	if len(targets) == 0 {
		return nil, fmt.Errorf("fanout requires at least one target sink")
	}
	return &Fanout{targets: targets}, nil
}

// Name identifies this sink in errors, metrics, and traces.
func (f *Fanout) Name() string { return "fanout" }

// Store forwards the submission to all targets and returns the first
// failure, if any.
func (f *Fanout) Store(ctx context.Context, submission *domain.ValidatedSubmission) error {
	g, ctx := errgroup.WithContext(ctx)

	for _, target := range f.targets {
		g.Go(func() error {
			return target.Store(ctx, submission)
		})
	}

	return g.Wait()
}
