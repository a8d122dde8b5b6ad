package testutils

import (
	"context"

	"github.com/soumenkm/TranslateApp/internal/domain"
	"github.com/soumenkm/TranslateApp/internal/ports"
)

// MockSource implements the ExampleSource interface with a fixed corpus
// or a programmed failure.
type MockSource struct {
	name     string
	examples []domain.Example
	err      error
}

// NewMockSource creates a MockSource serving the given examples.
func NewMockSource(examples ...domain.Example) *MockSource {
	return &MockSource{name: "mock", examples: examples}
}

// Fail programs the source to return err instead of examples.
func (m *MockSource) Fail(err error) { m.err = err }

// LoadExamples implements ExampleSource.LoadExamples.
func (m *MockSource) LoadExamples(ctx context.Context) ([]domain.Example, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if m.err != nil {
		return nil, m.err
	}
	out := make([]domain.Example, len(m.examples))
	copy(out, m.examples)
	return out, nil
}

// Name implements ExampleSource.Name.
func (m *MockSource) Name() string { return m.name }

// Verify interface compliance at compile time.
var _ ports.ExampleSource = (*MockSource)(nil)
