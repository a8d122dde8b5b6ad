// Package testutils provides shared test doubles for the rating
// engine's collaborator interfaces.
package testutils

import (
	"context"
	"sync"

	"github.com/soumenkm/TranslateApp/internal/domain"
	"github.com/soumenkm/TranslateApp/internal/ports"
)

// MockSink implements the RatingsSink interface with an in-memory
// record of every stored submission. It can be programmed to fail a
// fixed number of times or permanently, which makes it suitable for
// pipeline, retry, and fanout tests.
//
// MockSink is safe for concurrent use; fanout stores hit it from
// multiple goroutines.
type MockSink struct {
	mu sync.Mutex

	name     string
	stored   []*domain.ValidatedSubmission
	calls    int
	failures int
	failWith error
	pingErr  error
}

// NewMockSink creates a MockSink that accepts every store.
func NewMockSink(name string) *MockSink {
	return &MockSink{name: name}
}

// FailTimes programs the sink to reject the next n stores with err,
// then succeed. Use it to exercise retry paths.
func (m *MockSink) FailTimes(n int, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failures = n
	m.failWith = err
}

// AlwaysFail programs the sink to reject every store with err.
func (m *MockSink) AlwaysFail(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failures = -1
	m.failWith = err
}

// SetPingError programs the health check result.
func (m *MockSink) SetPingError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pingErr = err
}

// Store implements RatingsSink.Store, recording the submission unless a
// programmed failure is due.
func (m *MockSink) Store(ctx context.Context, submission *domain.ValidatedSubmission) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls++
	if m.failures != 0 {
		if m.failures > 0 {
			m.failures--
		}
		return m.failWith
	}
	m.stored = append(m.stored, submission)
	return nil
}

// Name implements RatingsSink.Name.
func (m *MockSink) Name() string { return m.name }

// Ping implements HealthChecker.Ping.
func (m *MockSink) Ping(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.pingErr
}

// Calls returns how many stores were attempted, including failed ones.
func (m *MockSink) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// Stored returns the submissions accepted so far in store order.
func (m *MockSink) Stored() []*domain.ValidatedSubmission {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*domain.ValidatedSubmission, len(m.stored))
	copy(out, m.stored)
	return out
}

// Verify interface compliance at compile time.
var (
	_ ports.RatingsSink   = (*MockSink)(nil)
	_ ports.HealthChecker = (*MockSink)(nil)
)
