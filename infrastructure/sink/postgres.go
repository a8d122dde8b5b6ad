package sink

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/soumenkm/TranslateApp/internal/domain"
	"github.com/soumenkm/TranslateApp/internal/ports"
)

const insertSubmission = `
INSERT INTO translation_ratings (id, submission_key, username, submitted_at, ratings)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (submission_key) DO NOTHING`

// Postgres persists submissions into the translation_ratings table.
// The submission key carries a unique constraint, so replaying a
// submission is a no-op rather than a duplicate row.
type Postgres struct {
	pool *pgxpool.Pool
}

var _ ports.RatingsSink = (*Postgres)(nil)
var _ ports.HealthChecker = (*Postgres)(nil)

// NewPostgres connects a pool to the given DSN and verifies the
// connection before returning.
func NewPostgres(ctx context.Context, dsn string) (*Postgres, error) {
	if dsn == "" {
		return nil, fmt.Errorf("postgres DSN is required")
	}

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Postgres{pool: pool}, nil
}

// Name identifies this sink in errors, metrics, and traces.
func (p *Postgres) Name() string { return "postgres" }

// Store inserts the submission, treating a key conflict as success.
func (p *Postgres) Store(ctx context.Context, submission *domain.ValidatedSubmission) error {
	_, err := p.Insert(ctx, submission)
	return err
}

// Insert inserts the submission and reports whether a new row was
// written. A false result with a nil error means the key was already
// present, which callers such as the collector surface as a replay.
func (p *Postgres) Insert(ctx context.Context, submission *domain.ValidatedSubmission) (bool, error) {
	ratings, err := json.Marshal(submission.Ratings)
	if err != nil {
		return false, ports.NewPersistError(p.Name(), submission.Key,
			fmt.Errorf("%w: %v", ports.ErrInvalidRecord, err))
	}

	tag, err := p.pool.Exec(ctx, insertSubmission,
		uuid.New(),
		submission.Key,
		submission.Username,
		submission.SubmittedAt,
		ratings,
	)
	if err != nil {
		return false, ports.NewPersistError(p.Name(), submission.Key,
			fmt.Errorf("%w: %v", ports.ErrSinkUnavailable, err))
	}

	return tag.RowsAffected() > 0, nil
}

// Ping verifies database connectivity.
func (p *Postgres) Ping(ctx context.Context) error {
	if err := p.pool.Ping(ctx); err != nil {
		return fmt.Errorf("%w: %v", ports.ErrSinkUnavailable, err)
	}
	return nil
}

// Close releases the underlying connection pool.
func (p *Postgres) Close() { p.pool.Close() }
