// Package domain contains pure, dependency-free domain models and types
// for the translation rating engine.
package domain

import (
	"fmt"
	"strings"
)

// Direction describes how a dimension's numeric scale should be read.
type Direction string

const (
	// HigherIsBetter means larger values indicate better quality.
	HigherIsBetter Direction = "higher_is_better"

	// LowerIsBetter means smaller values indicate better quality.
	LowerIsBetter Direction = "lower_is_better"
)

// Valid reports whether the direction is one of the known values.
func (d Direction) Valid() bool {
	return d == HigherIsBetter || d == LowerIsBetter
}

// Label returns the human-readable form of the direction shown next to
// a dimension name.
func (d Direction) Label() string {
	if d == LowerIsBetter {
		return "lower is better"
	}
	return "higher is better"
}

// RatingRange defines the inclusive bounds of a dimension's scale.
type RatingRange struct {
	// Min is the lowest value a rater may assign.
	Min int `json:"min" yaml:"min"`

	// Max is the highest value a rater may assign.
	Max int `json:"max" yaml:"max"`
}

// Contains reports whether v falls within the inclusive range.
func (r RatingRange) Contains(v int) bool { return v >= r.Min && v <= r.Max }

// Clamp returns v forced into the inclusive range.
func (r RatingRange) Clamp(v int) int {
	if v < r.Min {
		return r.Min
	}
	if v > r.Max {
		return r.Max
	}
	return v
}

// Midpoint returns the middle of the range, rounding down. Rating
// controls start here before the rater touches a dimension.
func (r RatingRange) Midpoint() int { return (r.Min + r.Max) / 2 }

// QualityDimension describes one axis along which candidate translations
// are judged. Dimensions are immutable once their catalog is built.
type QualityDimension struct {
	// Name uniquely identifies the dimension within a catalog.
	Name string `json:"name" yaml:"name"`

	// Weight is the dimension's multiplier in the weighted score.
	// Weights across a catalog should sum to 1.0; this is not enforced,
	// and partial coverage deliberately deflates scores.
	Weight float64 `json:"weight" yaml:"weight"`

	// Range bounds the values raters may assign on this dimension.
	Range RatingRange `json:"range" yaml:"range"`

	// Direction states whether high or low values are desirable.
	Direction Direction `json:"direction" yaml:"direction"`

	// Description is a one-line summary shown alongside the dimension.
	Description string `json:"description,omitempty" yaml:"description,omitempty"`

	// DetailedDescription is the long-form rater guidance for the
	// dimension, shown on demand.
	DetailedDescription string `json:"detailed_description,omitempty" yaml:"detailed_description,omitempty"`
}

// Catalog is an ordered, read-only collection of quality dimensions.
// The slice order is the display order; lookups by name go through an
// internal index. A catalog is safe for concurrent reads once built.
type Catalog struct {
	dims  []QualityDimension
	index map[string]int
}

// NewCatalog builds a catalog from the given dimensions, validating each
// entry. It returns ErrEmptyCatalog when dims is empty and a
// CatalogError describing the first malformed entry otherwise.
func NewCatalog(dims []QualityDimension) (*Catalog, error) {
	if len(dims) == 0 {
		return nil, ErrEmptyCatalog
	}

	index := make(map[string]int, len(dims))
	for i, dim := range dims {
		if strings.TrimSpace(dim.Name) == "" {
			return nil, NewCatalogError(dim.Name, "name must not be empty")
		}
		if _, dup := index[dim.Name]; dup {
			return nil, NewCatalogError(dim.Name, "duplicate name")
		}
		if dim.Weight < 0 {
			return nil, NewCatalogError(dim.Name, fmt.Sprintf("weight must not be negative, got %g", dim.Weight))
		}
		if dim.Range.Min >= dim.Range.Max {
			return nil, NewCatalogError(dim.Name, fmt.Sprintf("range min %d must be below max %d", dim.Range.Min, dim.Range.Max))
		}
		if !dim.Direction.Valid() {
			return nil, NewCatalogError(dim.Name, fmt.Sprintf("unknown direction %q", dim.Direction))
		}
		index[dim.Name] = i
	}

	// Own a copy so later mutation of the caller's slice cannot reach
	// into the catalog.
	owned := make([]QualityDimension, len(dims))
	copy(owned, dims)

	return &Catalog{dims: owned, index: index}, nil
}

// Len returns the number of dimensions in the catalog.
func (c *Catalog) Len() int { return len(c.dims) }

// Dimensions returns the catalog's dimensions in display order.
// The returned slice is a copy and may be modified freely.
func (c *Catalog) Dimensions() []QualityDimension {
	out := make([]QualityDimension, len(c.dims))
	copy(out, c.dims)
	return out
}

// Lookup returns the dimension with the given name, or an error wrapping
// ErrDimensionNotFound when the name is not in the catalog.
func (c *Catalog) Lookup(name string) (QualityDimension, error) {
	i, ok := c.index[name]
	if !ok {
		return QualityDimension{}, fmt.Errorf("dimension %q: %w", name, ErrDimensionNotFound)
	}
	return c.dims[i], nil
}

// TotalWeight returns the sum of all dimension weights. Loaders use it
// to warn when a catalog's weights do not sum to 1.0.
func (c *Catalog) TotalWeight() float64 {
	var sum float64
	for _, dim := range c.dims {
		sum += dim.Weight
	}
	return sum
}

// DefaultCatalog returns the built-in translation quality catalog used
// when no catalog file is configured: five dimensions on a 1-10 scale
// whose weights sum to 1.0.
func DefaultCatalog() *Catalog {
	catalog, err := NewCatalog(defaultDimensions)
	if err != nil {
		// The built-in dimensions are fixed; failing to build them is a
		// programming error.
		panic(fmt.Sprintf("default catalog: %v", err))
	}
	return catalog
}

var defaultDimensions = []QualityDimension{
	{
		Name:        "Adequacy (Meaning Preservation)",
		Description: "Measures how accurately the translation preserves the meaning of the original text.",
		Weight:      0.30,
		Range:       RatingRange{Min: 1, Max: 10},
		Direction:   HigherIsBetter,
		DetailedDescription: "Adequacy measures how accurately the translation preserves the meaning of the original text. " +
			"A high score (closer to 10) indicates that the translated text conveys nearly the exact meaning of the source. " +
			"For example, if the English sentence is 'I am happy' and the Hindi translation is 'मैं खुश हूँ', " +
			"a score of 9 or 10 would suggest almost perfect meaning preservation, whereas a lower score (e.g., 3 or 4) " +
			"would indicate significant loss or distortion of meaning.",
	},
	{
		Name:        "Fluency",
		Description: "Evaluates how naturally and smoothly the translation reads.",
		Weight:      0.30,
		Range:       RatingRange{Min: 1, Max: 10},
		Direction:   HigherIsBetter,
		DetailedDescription: "Fluency evaluates the natural flow and readability of the translation. " +
			"A higher score indicates that the translation reads smoothly and naturally without awkward phrasing. " +
			"For example, if the English sentence 'The cat sat on the mat' is translated into Hindi as " +
			"'बिल्ली चटाई पर आराम से बैठी', the translation is fluent and would receive a high score. " +
			"An awkward or stilted translation would be rated lower.",
	},
	{
		Name:        "Grammatical Correctness",
		Description: "Assesses proper grammar, punctuation, and sentence structure.",
		Weight:      0.20,
		Range:       RatingRange{Min: 1, Max: 10},
		Direction:   HigherIsBetter,
		DetailedDescription: "Grammatical Correctness checks whether the translation employs proper grammar, punctuation, and sentence structure. " +
			"A higher score means the translation is essentially error-free. " +
			"For instance, if the English sentence 'She goes to school' is translated as 'वह स्कूल जाती है' in Hindi, " +
			"this demonstrates correct grammar. Any grammatical mistakes or punctuation errors would lower the score.",
	},
	{
		Name:        "Style Consistency",
		Description: "Assesses whether the translation maintains the tone and style of the original text.",
		Weight:      0.10,
		Range:       RatingRange{Min: 1, Max: 10},
		Direction:   HigherIsBetter,
		DetailedDescription: "Style Consistency evaluates if the translation preserves the tone and stylistic nuances of the original text. " +
			"A high score means that the translated text matches the formal or informal register of the source. " +
			"For example, if a formal English document is translated into Hindi using a formal tone consistently, it would receive a high score.",
	},
	{
		Name:        "Conciseness",
		Description: "Determines if the translation is succinct without unnecessary verbosity.",
		Weight:      0.10,
		Range:       RatingRange{Min: 1, Max: 10},
		Direction:   HigherIsBetter,
		DetailedDescription: "Conciseness evaluates whether the translation is brief yet complete, avoiding unnecessary verbosity while retaining full meaning. " +
			"A higher score indicates an optimal balance of brevity and completeness. " +
			"For example, if the English sentence 'Please turn off the light when you leave the room' is translated into Hindi as " +
			"'कमरा छोड़ते समय लाइट बंद करें', it would be considered concise and score highly.",
	},
}
