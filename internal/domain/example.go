package domain

// PlaceholderText fills fields that were missing or malformed in the
// source data. A degraded example is still presented to the rater
// rather than aborting the run.
const PlaceholderText = "N/A"

// Candidate identifies one of the two translations under comparison.
type Candidate string

const (
	// CandidateY1 is the first candidate translation.
	CandidateY1 Candidate = "y1"

	// CandidateY2 is the second candidate translation.
	CandidateY2 Candidate = "y2"
)

// Example is one source text paired with its two candidate translations.
// Examples are identified by their ordinal position in the corpus and
// are immutable once loaded.
type Example struct {
	// Source is the original text being translated.
	Source string `json:"x"`

	// Y1 is the first candidate translation.
	Y1 string `json:"y1"`

	// Y2 is the second candidate translation.
	Y2 string `json:"y2"`
}

// Sanitize returns a copy of the example with empty fields replaced by
// PlaceholderText so every example renders completely.
func (e Example) Sanitize() Example {
	if e.Source == "" {
		e.Source = PlaceholderText
	}
	if e.Y1 == "" {
		e.Y1 = PlaceholderText
	}
	if e.Y2 == "" {
		e.Y2 = PlaceholderText
	}
	return e
}

// Degraded reports whether any field carries the placeholder.
func (e Example) Degraded() bool {
	return e.Source == PlaceholderText || e.Y1 == PlaceholderText || e.Y2 == PlaceholderText
}

// Text returns the candidate translation identified by c.
func (e Example) Text(c Candidate) string {
	if c == CandidateY2 {
		return e.Y2
	}
	return e.Y1
}
