package application

import (
	"context"
	"errors"
	"time"

	"github.com/soumenkm/TranslateApp/internal/domain"
	"github.com/soumenkm/TranslateApp/internal/ports"
)

// SubmissionPipeline validates rating tables and persists them through
// the configured ratings sink.
//
// The pipeline performs exactly one store per Submit call. It never
// retries and sets no deadlines of its own; those policies belong to the
// sink and wrap it from the outside. Sink failures surface verbatim so
// the host can distinguish them from the rater-recoverable validation
// errors.
type SubmissionPipeline struct {
	sink ports.RatingsSink

	// now stamps submissions; overridable in tests.
	now func() time.Time
}

// NewSubmissionPipeline creates a pipeline storing through the given
// sink.
func NewSubmissionPipeline(sink ports.RatingsSink) (*SubmissionPipeline, error) {
	if sink == nil {
		return nil, errors.New("sink must not be nil")
	}
	return &SubmissionPipeline{sink: sink, now: time.Now}, nil
}

// Submit prepares a submission from the username and table snapshot and
// stores it under a fresh submission key.
//
// Validation failures (domain.ErrMissingUsername,
// domain.ErrEmptySubmission) mean nothing was sent and the rater can
// correct the input. A store failure means the submission validated but
// did not persist; the returned error carries the sink's own diagnosis
// and the rater's table is untouched for a later attempt.
func (p *SubmissionPipeline) Submit(ctx context.Context, username string, table domain.RatingTable) (*domain.ValidatedSubmission, error) {
	submission, err := domain.PrepareSubmission(username, table, p.now())
	if err != nil {
		return nil, err
	}

	if err := p.sink.Store(ctx, submission); err != nil {
		return nil, err
	}
	return submission, nil
}
