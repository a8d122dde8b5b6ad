package domain

// Session is the mutable rating state for one rater working through a
// corpus: the current example position, the rater's username, staged
// ratings not yet committed, and the committed rating table.
//
// A Session is a single-writer structure. Exactly one goroutine owns it
// and calls its methods; there is no internal locking. Aggregation and
// submission read through Table, which returns an independent snapshot,
// so they never observe a half-applied mutation.
type Session struct {
	catalog      *Catalog
	exampleCount int

	currentIndex int
	username     string
	table        RatingTable
	scratch      RatingTable
}

// NewSession creates a session over a corpus of exampleCount examples,
// positioned at the first example with an empty rating table. The
// catalog defines which dimensions may be rated and their bounds.
func NewSession(catalog *Catalog, exampleCount int) (*Session, error) {
	if catalog == nil || catalog.Len() == 0 {
		return nil, ErrEmptyCatalog
	}
	if exampleCount <= 0 {
		return nil, ErrNoExamples
	}

	return &Session{
		catalog:      catalog,
		exampleCount: exampleCount,
		table:        make(RatingTable),
		scratch:      make(RatingTable),
	}, nil
}

// Catalog returns the catalog this session rates against.
func (s *Session) Catalog() *Catalog { return s.catalog }

// ExampleCount returns the number of examples in the corpus.
func (s *Session) ExampleCount() int { return s.exampleCount }

// CurrentIndex returns the index of the example the rater is viewing.
func (s *Session) CurrentIndex() int { return s.currentIndex }

// Username returns the username exactly as entered.
func (s *Session) Username() string { return s.username }

// SetUsername stores the rater's username as-is. Trimming and validation
// happen at submission time, so the rater sees their input unchanged
// while editing.
func (s *Session) SetUsername(name string) { s.username = name }

// GoNext advances to the next example. At the last example it does
// nothing; navigating past either end is a no-op, never an error.
func (s *Session) GoNext() {
	if s.currentIndex < s.exampleCount-1 {
		s.currentIndex++
	}
}

// GoPrevious moves back to the previous example. At the first example it
// does nothing.
func (s *Session) GoPrevious() {
	if s.currentIndex > 0 {
		s.currentIndex--
	}
}

// StageRating records a rating for one dimension of one example in the
// session's uncommitted scratch area. It fails when the index is outside
// the corpus, the dimension is not in the catalog, or either value falls
// outside the dimension's range. Staged ratings do not affect the
// committed table until CommitExample.
func (s *Session) StageRating(index int, dimension string, rating Rating) error {
	const op = "stage_rating"

	if index < 0 || index >= s.exampleCount {
		return NewSessionError(op, index, ErrIndexOutOfRange)
	}

	dim, err := s.catalog.Lookup(dimension)
	if err != nil {
		return NewSessionError(op, index, err)
	}
	if !dim.Range.Contains(rating.Y1) || !dim.Range.Contains(rating.Y2) {
		return NewSessionError(op, index, ErrRatingOutOfRange)
	}

	set, ok := s.scratch[index]
	if !ok {
		set = make(ExampleRatingSet)
		s.scratch[index] = set
	}
	set[dimension] = rating
	return nil
}

// Staged returns a copy of the uncommitted rating set for the given
// example. The copy is empty when nothing has been staged.
func (s *Session) Staged(index int) ExampleRatingSet {
	set := s.scratch[index].Clone()
	if set == nil {
		set = make(ExampleRatingSet)
	}
	return set
}

// CommitExample copies the staged ratings for the given example into the
// committed table, replacing any earlier entry for that example. This is
// the only operation that changes the table short of Reset.
//
// The scratch area is left untouched, so committing the same example
// again without further staging reproduces the identical entry.
// Committing an example with nothing staged records an empty set: the
// example was visited but never rated, and it stays out of scores and
// submissions.
//
// The returned set is a copy the caller may inspect or score freely.
func (s *Session) CommitExample(index int) (ExampleRatingSet, error) {
	if index < 0 || index >= s.exampleCount {
		return nil, NewSessionError("commit_example", index, ErrIndexOutOfRange)
	}

	set := s.scratch[index].Clone()
	if set == nil {
		set = make(ExampleRatingSet)
	}
	s.table[index] = set

	return set.Clone(), nil
}

// Committed returns a copy of the committed rating set for the given
// example and whether the example has been committed at all.
func (s *Session) Committed(index int) (ExampleRatingSet, bool) {
	set, ok := s.table[index]
	if !ok {
		return nil, false
	}
	out := set.Clone()
	if out == nil {
		out = make(ExampleRatingSet)
	}
	return out, true
}

// Table returns an independent snapshot of the committed rating table.
// Scoring and submission operate on snapshots; later session mutations
// do not reach them.
func (s *Session) Table() RatingTable { return s.table.Clone() }

// Reset discards all committed and staged ratings and returns to the
// first example. The username is kept: the same rater may start a fresh
// pass. Reset is never invoked implicitly; after a submission the table
// stays intact so the rater can review or resubmit.
func (s *Session) Reset() {
	s.currentIndex = 0
	s.table = make(RatingTable)
	s.scratch = make(RatingTable)
}
