package application

import (
	"fmt"
	"math"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/soumenkm/TranslateApp/internal/domain"
)

// catalogFile is the YAML shape of a dimension catalog file.
type catalogFile struct {
	Dimensions []dimensionConfig `yaml:"dimensions" validate:"required,min=1,dive"`
}

// dimensionConfig declares one quality dimension in a catalog file.
type dimensionConfig struct {
	// Name uniquely identifies the dimension.
	Name string `yaml:"name" validate:"required,min=1,max=255"`
	// Weight is the dimension's multiplier in the weighted score.
	Weight float64 `yaml:"weight" validate:"min=0,max=1"`
	// Range bounds the values raters may assign.
	Range rangeConfig `yaml:"range"`
	// Direction states whether high or low values are desirable.
	// Defaults to higher_is_better.
	Direction string `yaml:"direction" validate:"omitempty,oneof=higher_is_better lower_is_better"`
	// Description is a one-line summary shown alongside the dimension.
	Description string `yaml:"description" validate:"max=1000"`
	// DetailedDescription is the long-form rater guidance.
	DetailedDescription string `yaml:"detailed_description" validate:"max=5000"`
}

// rangeConfig declares the inclusive scale bounds of a dimension.
type rangeConfig struct {
	Min int `yaml:"min"`
	Max int `yaml:"max"`
}

// weightSumTolerance bounds how far catalog weights may drift from 1.0
// before the loader warns. Deflated or inflated scores are legal but
// almost always a configuration mistake.
const weightSumTolerance = 1e-9

// LoadCatalog reads a dimension catalog from a YAML file and returns it
// together with non-fatal warnings. An empty path returns the built-in
// translation quality catalog.
//
// Malformed catalogs are configuration errors and abort the run: a
// dimension list the raters cannot trust produces scores nobody can
// trust either.
func LoadCatalog(path string) (*domain.Catalog, []string, error) {
	if path == "" {
		return domain.DefaultCatalog(), nil, nil
	}

	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read catalog: %w", err)
	}
	return parseCatalog(data)
}

// parseCatalog unmarshals and validates a catalog document, then builds
// the domain catalog from it.
func parseCatalog(data []byte) (*domain.Catalog, []string, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	if err := validate.Struct(&file); err != nil {
		return nil, nil, fmt.Errorf("catalog validation failed: %w", err)
	}

	dims := make([]domain.QualityDimension, 0, len(file.Dimensions))
	for _, dc := range file.Dimensions {
		direction := domain.Direction(dc.Direction)
		if dc.Direction == "" {
			direction = domain.HigherIsBetter
		}
		dims = append(dims, domain.QualityDimension{
			Name:                dc.Name,
			Weight:              dc.Weight,
			Range:               domain.RatingRange{Min: dc.Range.Min, Max: dc.Range.Max},
			Direction:           direction,
			Description:         dc.Description,
			DetailedDescription: dc.DetailedDescription,
		})
	}

	catalog, err := domain.NewCatalog(dims)
	if err != nil {
		return nil, nil, fmt.Errorf("catalog validation failed: %w", err)
	}

	var warnings []string
	if total := catalog.TotalWeight(); math.Abs(total-1.0) > weightSumTolerance {
		warnings = append(warnings, fmt.Sprintf("catalog weights sum to %g, not 1.0; weighted scores will not span the rating range", total))
	}
	return catalog, warnings, nil
}
