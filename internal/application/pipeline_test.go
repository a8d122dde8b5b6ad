package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soumenkm/TranslateApp/internal/domain"
	"github.com/soumenkm/TranslateApp/internal/ports"
	"github.com/soumenkm/TranslateApp/internal/testutils"
)

// TestSubmissionPipeline_Submit tests the single-store contract: one
// prepared submission per call, validation before any persistence, and
// sink errors surfaced verbatim without retries.
func TestSubmissionPipeline_Submit(t *testing.T) {
	rated := domain.RatingTable{
		0: domain.ExampleRatingSet{"Fluency": {Y1: 7, Y2: 4}},
		1: domain.ExampleRatingSet{},
	}

	t.Run("valid submission is stored once", func(t *testing.T) {
		sink := testutils.NewMockSink("mock")
		pipeline, err := NewSubmissionPipeline(sink)
		require.NoError(t, err)

		sub, err := pipeline.Submit(context.Background(), "  Alice  ", rated)

		require.NoError(t, err)
		assert.Equal(t, "Alice", sub.Username, "The username should be trimmed.")
		assert.Len(t, sub.Ratings, 1, "Unrated entries should be filtered out.")

		stored := sink.Stored()
		require.Len(t, stored, 1)
		assert.Same(t, sub, stored[0], "The stored record should be the prepared submission.")
		assert.Equal(t, 1, sink.Calls(), "Submit() must store exactly once.")
	})

	t.Run("missing username never reaches the sink", func(t *testing.T) {
		sink := testutils.NewMockSink("mock")
		pipeline, err := NewSubmissionPipeline(sink)
		require.NoError(t, err)

		_, err = pipeline.Submit(context.Background(), "   ", rated)

		assert.ErrorIs(t, err, domain.ErrMissingUsername)
		assert.Zero(t, sink.Calls(), "Validation failures must not touch the sink.")
	})

	t.Run("empty table never reaches the sink", func(t *testing.T) {
		sink := testutils.NewMockSink("mock")
		pipeline, err := NewSubmissionPipeline(sink)
		require.NoError(t, err)

		_, err = pipeline.Submit(context.Background(), "alice", domain.RatingTable{
			0: domain.ExampleRatingSet{},
		})

		assert.ErrorIs(t, err, domain.ErrEmptySubmission)
		assert.Zero(t, sink.Calls())
	})

	t.Run("sink errors surface verbatim without retry", func(t *testing.T) {
		sink := testutils.NewMockSink("mock")
		storeErr := ports.NewPersistError("mock", "alice_1", ports.ErrSinkUnavailable)
		sink.AlwaysFail(storeErr)
		pipeline, err := NewSubmissionPipeline(sink)
		require.NoError(t, err)

		_, err = pipeline.Submit(context.Background(), "alice", rated)

		require.Error(t, err)
		assert.Equal(t, storeErr, err, "The sink's error should pass through unchanged.")
		assert.Equal(t, 1, sink.Calls(), "The pipeline itself never retries.")
	})

	t.Run("nil sink is rejected at construction", func(t *testing.T) {
		_, err := NewSubmissionPipeline(nil)
		require.Error(t, err)
	})
}

// TestSubmissionPipeline_UniqueKeys verifies that repeated submits of
// the same table produce distinct record keys.
func TestSubmissionPipeline_UniqueKeys(t *testing.T) {
	sink := testutils.NewMockSink("mock")
	pipeline, err := NewSubmissionPipeline(sink)
	require.NoError(t, err)

	// Pin distinct timestamps so the test cannot depend on clock
	// granularity.
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	times := []time.Time{base, base.Add(time.Nanosecond)}
	pipeline.now = func() time.Time {
		at := times[0]
		times = times[1:]
		return at
	}

	table := domain.RatingTable{0: domain.ExampleRatingSet{"Fluency": {Y1: 7, Y2: 4}}}

	first, err := pipeline.Submit(context.Background(), "alice", table)
	require.NoError(t, err)
	second, err := pipeline.Submit(context.Background(), "alice", table)
	require.NoError(t, err)

	assert.NotEqual(t, first.Key, second.Key, "Every submission attempt gets its own key.")
}
