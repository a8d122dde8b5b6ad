package domain

import (
	"strconv"
	"strings"
	"time"
)

// ValidatedSubmission is a submission that passed the pre-persist
// checks: trimmed username, unique key, and only rated examples. Its
// JSON form is the record body sinks persist.
type ValidatedSubmission struct {
	// Username is the rater's identifier with surrounding whitespace
	// removed.
	Username string `json:"username"`

	// Key uniquely identifies this submission attempt. It serves as the
	// record identifier at the sink (file name, object key, row key) and
	// is not part of the record body.
	Key string `json:"-"`

	// SubmittedAt is when the submission was assembled.
	SubmittedAt time.Time `json:"submittedAt"`

	// Ratings holds the rated examples only; empty sets are filtered out
	// before the submission is built.
	Ratings RatingTable `json:"ratings"`
}

// SubmissionKey derives the record identifier for a submission: the
// lowercased username with whitespace runs collapsed to underscores,
// joined with the submission time in nanoseconds. The rater stays
// readable in the key and two calls never collide. The key orders
// records and names them; it is not a cryptographic identifier.
func SubmissionKey(username string, at time.Time) string {
	slug := strings.Join(strings.Fields(strings.ToLower(username)), "_")
	return slug + "_" + strconv.FormatInt(at.UnixNano(), 10)
}

// PrepareSubmission validates and assembles a submission from the
// rater's username and a rating table snapshot, stamped with the given
// time.
//
// It fails with ErrMissingUsername when the trimmed username is empty
// and with ErrEmptySubmission when no example carries at least one
// rating. Both are rater-recoverable: fix the input and try again.
func PrepareSubmission(username string, table RatingTable, at time.Time) (*ValidatedSubmission, error) {
	trimmed := strings.TrimSpace(username)
	if trimmed == "" {
		return nil, ErrMissingUsername
	}

	rated := table.FilterRated()
	if len(rated) == 0 {
		return nil, ErrEmptySubmission
	}

	return &ValidatedSubmission{
		Username:    trimmed,
		Key:         SubmissionKey(trimmed, at),
		SubmittedAt: at,
		Ratings:     rated,
	}, nil
}
