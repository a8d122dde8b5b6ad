package sink

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soumenkm/TranslateApp/internal/ports"
	"github.com/soumenkm/TranslateApp/internal/testutils"
)

func TestFanout_StoreReachesAllTargets(t *testing.T) {
	first := testutils.NewMockSink("first")
	second := testutils.NewMockSink("second")
	fanout, err := NewFanout(first, second)
	require.NoError(t, err)
	submission := newTestSubmission(t)

	err = fanout.Store(context.Background(), submission)

	require.NoError(t, err)
	require.Len(t, first.Stored(), 1)
	require.Len(t, second.Stored(), 1)
	assert.Equal(t, submission.Key, first.Stored()[0].Key)
	assert.Equal(t, submission.Key, second.Stored()[0].Key)
}

func TestFanout_StorePropagatesTargetFailure(t *testing.T) {
	healthy := testutils.NewMockSink("healthy")
	broken := testutils.NewMockSink("broken")
	broken.AlwaysFail(ports.NewPersistError("broken", "key",
		fmt.Errorf("%w: connection refused", ports.ErrSinkUnavailable)))
	fanout, err := NewFanout(healthy, broken)
	require.NoError(t, err)

	err = fanout.Store(context.Background(), newTestSubmission(t))

	require.Error(t, err)
	assert.ErrorIs(t, err, ports.ErrSinkUnavailable, "the target's failure surfaces from the fanout")
}

func TestNewFanout_RequiresTargets(t *testing.T) {
	_, err := NewFanout()
	require.Error(t, err)
}
