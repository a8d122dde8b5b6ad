// Package source provides example source adapters: the JSON corpus
// file, the fabricated demo corpus, and data-quality inspection over a
// loaded corpus.
package source

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/soumenkm/TranslateApp/internal/domain"
	"github.com/soumenkm/TranslateApp/internal/ports"
)

var _ ports.ExampleSource = (*JSONFile)(nil)

// JSONFile loads the example corpus from a JSON array of {x, y1, y2}
// objects. The array order is the rating order.
type JSONFile struct {
	path string
}

// NewJSONFile creates a source reading the corpus at path.
func NewJSONFile(path string) (*JSONFile, error) {
	if path == "" {
		return nil, errors.New("path must not be empty")
	}
	return &JSONFile{path: filepath.Clean(path)}, nil
}

// Name implements ExampleSource.Name.
func (s *JSONFile) Name() string { return "jsonfile" }

// LoadExamples reads and decodes the corpus. A missing file, a document
// that is not a JSON array, or an empty array fail the load; an
// individually malformed record degrades to placeholder fields so one
// bad row cannot abort the whole run.
func (s *JSONFile) LoadExamples(ctx context.Context) ([]domain.Example, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, ports.NewSourceError(s.Name(), s.path, err)
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, ports.NewSourceError(s.Name(), s.path, fmt.Errorf("corpus must be a JSON array: %w", err))
	}
	if len(raw) == 0 {
		return nil, ports.NewSourceError(s.Name(), s.path, domain.ErrNoExamples)
	}

	examples := make([]domain.Example, len(raw))
	for i, record := range raw {
		var example domain.Example
		// A record that does not decode keeps zero fields and degrades
		// to placeholders below.
		_ = json.Unmarshal(record, &example)
		examples[i] = example.Sanitize()
	}
	return examples, nil
}
