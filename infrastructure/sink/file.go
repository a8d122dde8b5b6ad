package sink

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/soumenkm/TranslateApp/internal/domain"
	"github.com/soumenkm/TranslateApp/internal/ports"
)

// File persists each submission as a pretty-printed JSON document at
// <dir>/<key>.json. Writes go through a temp file and rename so a
// crash mid-write never leaves a partial record behind.
type File struct {
	dir string
}

var _ ports.RatingsSink = (*File)(nil)
var _ ports.HealthChecker = (*File)(nil)

// NewFile creates a file sink rooted at dir, creating the directory
// if it does not exist.
func NewFile(dir string) (*File, error) {
	if dir == "" {
		return nil, fmt.Errorf("output directory is required")
	}
	dir = filepath.Clean(dir)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}
	return &File{dir: dir}, nil
}

// Name identifies this sink in errors, metrics, and traces.
func (f *File) Name() string { return "file" }

// Store writes the submission to <dir>/<key>.json atomically.
// Storing the same key twice overwrites the identical record, so the
// operation stays idempotent per key.
func (f *File) Store(ctx context.Context, submission *domain.ValidatedSubmission) error {
	if err := ctx.Err(); err != nil {
		return ports.NewPersistError(f.Name(), submission.Key, err)
	}

	payload, err := json.MarshalIndent(submission, "", "  ")
	if err != nil {
		return ports.NewPersistError(f.Name(), submission.Key,
			fmt.Errorf("%w: %v", ports.ErrInvalidRecord, err))
	}

	tmp, err := os.CreateTemp(f.dir, "."+submission.Key+"-*.tmp")
	if err != nil {
		return ports.NewPersistError(f.Name(), submission.Key,
			fmt.Errorf("%w: %v", ports.ErrSinkUnavailable, err))
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(payload); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return ports.NewPersistError(f.Name(), submission.Key,
			fmt.Errorf("%w: %v", ports.ErrSinkUnavailable, err))
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return ports.NewPersistError(f.Name(), submission.Key,
			fmt.Errorf("%w: %v", ports.ErrSinkUnavailable, err))
	}

	final := filepath.Join(f.dir, submission.Key+".json")
	if err := os.Rename(tmpName, final); err != nil {
		os.Remove(tmpName)
		return ports.NewPersistError(f.Name(), submission.Key,
			fmt.Errorf("%w: %v", ports.ErrSinkUnavailable, err))
	}

	return nil
}

// Ping verifies the output directory is still writable.
func (f *File) Ping(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	info, err := os.Stat(f.dir)
	if err != nil {
		return fmt.Errorf("%w: %v", ports.ErrSinkUnavailable, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s is not a directory", ports.ErrSinkUnavailable, f.dir)
	}
	return nil
}
