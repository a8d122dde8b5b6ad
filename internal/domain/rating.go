package domain

import "maps"

// Rating holds one rater's values for both candidates on a single
// dimension. Values are validated against the dimension's range when
// staged into a session.
type Rating struct {
	// Y1 is the value assigned to the first candidate.
	Y1 int `json:"y1"`

	// Y2 is the value assigned to the second candidate.
	Y2 int `json:"y2"`
}

// Value returns the rating for the given candidate.
func (r Rating) Value(c Candidate) int {
	if c == CandidateY2 {
		return r.Y2
	}
	return r.Y1
}

// ExampleRatingSet maps dimension names to ratings for one example.
// A dimension absent from the set has not been touched by the rater and
// contributes nothing to scores.
type ExampleRatingSet map[string]Rating

// IsEmpty reports whether no dimension has been rated.
func (s ExampleRatingSet) IsEmpty() bool { return len(s) == 0 }

// Clone returns an independent copy of the set. Cloning a nil set
// returns nil.
func (s ExampleRatingSet) Clone() ExampleRatingSet {
	if s == nil {
		return nil
	}
	out := make(ExampleRatingSet, len(s))
	maps.Copy(out, s)
	return out
}

// RatingTable maps example indices to their committed rating sets.
// An entry holding an empty set marks an example that was visited but
// never rated; such entries are excluded from aggregation and dropped
// before submission.
type RatingTable map[int]ExampleRatingSet

// Clone returns a deep copy of the table. Aggregation and submission
// work on snapshots so the owning session can keep mutating its state.
func (t RatingTable) Clone() RatingTable {
	out := make(RatingTable, len(t))
	for idx, set := range t {
		out[idx] = set.Clone()
	}
	return out
}

// FilterRated returns a copy of the table holding only examples with at
// least one rating.
func (t RatingTable) FilterRated() RatingTable {
	out := make(RatingTable)
	for idx, set := range t {
		if set.IsEmpty() {
			continue
		}
		out[idx] = set.Clone()
	}
	return out
}

// RatedCount returns the number of examples with at least one rating.
func (t RatingTable) RatedCount() int {
	var n int
	for _, set := range t {
		if !set.IsEmpty() {
			n++
		}
	}
	return n
}
