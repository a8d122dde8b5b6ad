package source

import (
	"fmt"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
	"golang.org/x/text/cases"

	"github.com/soumenkm/TranslateApp/internal/domain"
)

// foldCaser is a package-level Unicode case folder for performance.
// This avoids creating a new caser for each comparison.
var foldCaser = cases.Fold()

// nearIdenticalThreshold is the case-folded similarity above which a
// candidate pair is flagged. Rating two near-identical translations
// against each other wastes rater effort.
const nearIdenticalThreshold = 0.95

// Finding describes a data-quality condition in one loaded example.
type Finding struct {
	// Index is the example's position in the corpus.
	Index int

	// Message describes the condition in host-log form.
	Message string
}

// Inspect scans a loaded corpus for conditions worth surfacing before a
// rating run: placeholder-degraded fields and near-identical candidate
// pairs. Findings are advisory; the run proceeds either way.
func Inspect(examples []domain.Example) []Finding {
	var findings []Finding
	for i, example := range examples {
		if example.Degraded() {
			findings = append(findings, Finding{
				Index:   i,
				Message: "missing fields were filled with placeholders",
			})
			continue
		}

		if sim := candidateSimilarity(example.Y1, example.Y2); sim >= nearIdenticalThreshold {
			findings = append(findings, Finding{
				Index:   i,
				Message: fmt.Sprintf("candidate translations are %.0f%% similar", sim*100),
			})
		}
	}
	return findings
}

// candidateSimilarity computes the case-folded Levenshtein similarity
// between two candidate translations. Returns a value between 0.0 and
// 1.0 where 1.0 indicates identical strings.
func candidateSimilarity(y1, y2 string) float64 {
	a := foldCaser.String(y1)
	b := foldCaser.String(y2)
	if a == b {
		return 1.0
	}

	// The levenshtein library operates on runes, so normalize by rune
	// count for multi-byte correctness.
	distance := levenshtein.ComputeDistance(a, b)
	maxLen := utf8.RuneCountInString(a)
	if n := utf8.RuneCountInString(b); n > maxLen {
		maxLen = n
	}
	if maxLen == 0 {
		return 1.0
	}

	similarity := 1.0 - float64(distance)/float64(maxLen)
	if similarity < 0 {
		similarity = 0
	}
	return similarity
}
