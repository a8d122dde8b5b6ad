package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSession(t *testing.T, exampleCount int) *Session {
	t.Helper()
	session, err := NewSession(DefaultCatalog(), exampleCount)
	require.NoError(t, err, "NewSession() should succeed with a valid catalog.")
	return session
}

// TestNewSession verifies the initial session state and constructor
// validation.
func TestNewSession(t *testing.T) {
	session := newTestSession(t, 3)

	assert.Equal(t, 0, session.CurrentIndex(), "A new session should start at the first example.")
	assert.Empty(t, session.Username(), "A new session should have no username.")
	assert.Empty(t, session.Table(), "A new session should have an empty table.")

	_, err := NewSession(nil, 3)
	assert.ErrorIs(t, err, ErrEmptyCatalog, "NewSession() should reject a nil catalog.")

	_, err = NewSession(DefaultCatalog(), 0)
	assert.ErrorIs(t, err, ErrNoExamples, "NewSession() should reject an empty corpus.")
}

// TestSession_Navigation verifies that navigation clamps at both corpus
// boundaries instead of erroring.
func TestSession_Navigation(t *testing.T) {
	session := newTestSession(t, 3)

	session.GoPrevious()
	assert.Equal(t, 0, session.CurrentIndex(), "GoPrevious() at the first example should be a no-op.")

	session.GoNext()
	session.GoNext()
	assert.Equal(t, 2, session.CurrentIndex(), "GoNext() should advance one example at a time.")

	session.GoNext()
	session.GoNext()
	assert.Equal(t, 2, session.CurrentIndex(), "GoNext() at the last example should be a no-op.")

	session.GoPrevious()
	assert.Equal(t, 1, session.CurrentIndex(), "GoPrevious() should move back one example.")
}

// TestSession_StageRating covers scratch writes and their validation.
func TestSession_StageRating(t *testing.T) {
	tests := []struct {
		name      string
		index     int
		dimension string
		rating    Rating
		wantErr   error
	}{
		{
			name:      "valid rating",
			index:     0,
			dimension: "Fluency",
			rating:    Rating{Y1: 7, Y2: 4},
		},
		{
			name:      "negative index",
			index:     -1,
			dimension: "Fluency",
			rating:    Rating{Y1: 7, Y2: 4},
			wantErr:   ErrIndexOutOfRange,
		},
		{
			name:      "index past corpus",
			index:     3,
			dimension: "Fluency",
			rating:    Rating{Y1: 7, Y2: 4},
			wantErr:   ErrIndexOutOfRange,
		},
		{
			name:      "unknown dimension",
			index:     0,
			dimension: "Sparkle",
			rating:    Rating{Y1: 7, Y2: 4},
			wantErr:   ErrDimensionNotFound,
		},
		{
			name:      "value below range",
			index:     0,
			dimension: "Fluency",
			rating:    Rating{Y1: 0, Y2: 4},
			wantErr:   ErrRatingOutOfRange,
		},
		{
			name:      "value above range",
			index:     0,
			dimension: "Fluency",
			rating:    Rating{Y1: 7, Y2: 11},
			wantErr:   ErrRatingOutOfRange,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			session := newTestSession(t, 3)

			err := session.StageRating(tt.index, tt.dimension, tt.rating)

			if tt.wantErr == nil {
				require.NoError(t, err, "StageRating() should accept a valid rating.")
				staged := session.Staged(tt.index)
				assert.Equal(t, tt.rating, staged[tt.dimension], "Staged() should return the staged rating.")
				assert.Empty(t, session.Table(), "Staging should not touch the committed table.")
				return
			}

			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr, "StageRating() returned the wrong sentinel.")
			var sessErr *SessionError
			assert.ErrorAs(t, err, &sessErr, "StageRating() should wrap failures in a SessionError.")
		})
	}
}

// TestSession_CommitExample verifies the copy-on-commit contract: commit
// is the only table mutation, replaces prior entries, and is idempotent.
func TestSession_CommitExample(t *testing.T) {
	session := newTestSession(t, 3)

	require.NoError(t, session.StageRating(0, "Fluency", Rating{Y1: 8, Y2: 3}))
	require.NoError(t, session.StageRating(0, "Conciseness", Rating{Y1: 6, Y2: 6}))

	committed, err := session.CommitExample(0)
	require.NoError(t, err, "CommitExample() should succeed for a staged example.")
	assert.Len(t, committed, 2, "CommitExample() should return the full committed set.")

	// Committing again without further staging must reproduce the entry.
	again, err := session.CommitExample(0)
	require.NoError(t, err)
	assert.Equal(t, committed, again, "CommitExample() should be idempotent.")
	assert.Equal(t, 1, session.Table().RatedCount(), "Repeated commits should not duplicate entries.")

	// Restaging and committing replaces the whole entry.
	require.NoError(t, session.StageRating(0, "Fluency", Rating{Y1: 2, Y2: 9}))
	replaced, err := session.CommitExample(0)
	require.NoError(t, err)
	assert.Equal(t, Rating{Y1: 2, Y2: 9}, replaced["Fluency"], "Commit should replace the prior entry.")

	_, err = session.CommitExample(7)
	assert.ErrorIs(t, err, ErrIndexOutOfRange, "CommitExample() should reject an out-of-range index.")
}

// TestSession_CommitUntouched verifies that committing an example with
// nothing staged records a visited-but-unrated entry.
func TestSession_CommitUntouched(t *testing.T) {
	session := newTestSession(t, 2)

	committed, err := session.CommitExample(1)
	require.NoError(t, err, "CommitExample() should allow committing an untouched example.")
	assert.Empty(t, committed, "An untouched commit should produce an empty set.")

	set, ok := session.Committed(1)
	assert.True(t, ok, "The empty entry should appear in the table.")
	assert.Empty(t, set)
	assert.Equal(t, 0, session.Table().RatedCount(), "Empty entries should not count as rated.")
}

// TestSession_TableSnapshot verifies that Table() returns an independent
// copy that later mutations cannot reach.
func TestSession_TableSnapshot(t *testing.T) {
	session := newTestSession(t, 2)
	require.NoError(t, session.StageRating(0, "Fluency", Rating{Y1: 8, Y2: 3}))
	_, err := session.CommitExample(0)
	require.NoError(t, err)

	snapshot := session.Table()

	require.NoError(t, session.StageRating(0, "Fluency", Rating{Y1: 1, Y2: 1}))
	_, err = session.CommitExample(0)
	require.NoError(t, err)

	assert.Equal(t, Rating{Y1: 8, Y2: 3}, snapshot[0]["Fluency"],
		"Mutations after Table() should not reach the snapshot.")

	snapshot[0]["Fluency"] = Rating{Y1: 5, Y2: 5}
	current := session.Table()
	assert.Equal(t, Rating{Y1: 1, Y2: 1}, current[0]["Fluency"],
		"Mutating a snapshot should not reach the session.")
}

// TestSession_SetUsername verifies that the username is stored raw and
// only normalized at submission time.
func TestSession_SetUsername(t *testing.T) {
	session := newTestSession(t, 1)

	session.SetUsername("  Alice  ")
	assert.Equal(t, "  Alice  ", session.Username(), "SetUsername() should store the input unchanged.")
}

// TestSession_Reset verifies that Reset clears ratings and position but
// keeps the rater's identity.
func TestSession_Reset(t *testing.T) {
	session := newTestSession(t, 3)
	session.SetUsername("alice")
	session.GoNext()
	require.NoError(t, session.StageRating(1, "Fluency", Rating{Y1: 8, Y2: 3}))
	_, err := session.CommitExample(1)
	require.NoError(t, err)

	session.Reset()

	assert.Equal(t, 0, session.CurrentIndex(), "Reset() should return to the first example.")
	assert.Empty(t, session.Table(), "Reset() should clear the committed table.")
	assert.Empty(t, session.Staged(1), "Reset() should clear staged ratings.")
	assert.Equal(t, "alice", session.Username(), "Reset() should keep the username.")
}
