package source

import (
	"context"
	"errors"
	"fmt"

	"github.com/soumenkm/TranslateApp/internal/domain"
	"github.com/soumenkm/TranslateApp/internal/ports"
)

var _ ports.ExampleSource = (*Demo)(nil)

// Demo fabricates a placeholder corpus so the rating flow can be
// exercised without a data file. Hosts fall back to it when the corpus
// file is missing and the configuration allows.
type Demo struct {
	count int
}

// NewDemo creates a demo source producing count examples.
func NewDemo(count int) (*Demo, error) {
	if count <= 0 {
		return nil, errors.New("count must be positive")
	}
	return &Demo{count: count}, nil
}

// Name implements ExampleSource.Name.
func (s *Demo) Name() string { return "demo" }

// LoadExamples fabricates the corpus. It never fails beyond context
// cancellation.
func (s *Demo) LoadExamples(ctx context.Context) ([]domain.Example, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	examples := make([]domain.Example, s.count)
	for i := range examples {
		examples[i] = domain.Example{
			Source: fmt.Sprintf("This is original sentence number %d. It might be long to test wrapping.", i+1),
			Y1:     fmt.Sprintf("This is translation one for sentence %d, potentially also quite long.", i+1),
			Y2:     fmt.Sprintf("This is translation two for sentence %d, different from the first one.", i+1),
		}
	}
	return examples, nil
}
