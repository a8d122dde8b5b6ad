package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNewCatalog verifies validation of dimension lists at construction.
func TestNewCatalog(t *testing.T) {
	valid := QualityDimension{
		Name:      "Fluency",
		Weight:    0.5,
		Range:     RatingRange{Min: 1, Max: 10},
		Direction: HigherIsBetter,
	}

	tests := []struct {
		name    string
		dims    []QualityDimension
		wantErr error
	}{
		{
			name: "valid single dimension",
			dims: []QualityDimension{valid},
		},
		{
			name:    "empty dimension list",
			dims:    nil,
			wantErr: ErrEmptyCatalog,
		},
		{
			name: "blank name",
			dims: []QualityDimension{{
				Name:      "   ",
				Weight:    0.5,
				Range:     RatingRange{Min: 1, Max: 10},
				Direction: HigherIsBetter,
			}},
		},
		{
			name: "duplicate name",
			dims: []QualityDimension{valid, valid},
		},
		{
			name: "negative weight",
			dims: []QualityDimension{{
				Name:      "Fluency",
				Weight:    -0.1,
				Range:     RatingRange{Min: 1, Max: 10},
				Direction: HigherIsBetter,
			}},
		},
		{
			name: "inverted range",
			dims: []QualityDimension{{
				Name:      "Fluency",
				Weight:    0.5,
				Range:     RatingRange{Min: 10, Max: 1},
				Direction: HigherIsBetter,
			}},
		},
		{
			name: "unknown direction",
			dims: []QualityDimension{{
				Name:      "Fluency",
				Weight:    0.5,
				Range:     RatingRange{Min: 1, Max: 10},
				Direction: Direction("sideways"),
			}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			catalog, err := NewCatalog(tt.dims)

			if tt.name == "valid single dimension" {
				require.NoError(t, err, "NewCatalog() should accept a valid dimension.")
				assert.Equal(t, 1, catalog.Len(), "Catalog should hold one dimension.")
				return
			}

			require.Error(t, err, "NewCatalog() should reject malformed input.")
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr, "NewCatalog() returned the wrong sentinel.")
			} else {
				var catErr *CatalogError
				assert.ErrorAs(t, err, &catErr, "NewCatalog() should return a CatalogError.")
			}
		})
	}
}

// TestCatalog_Lookup verifies name resolution against the catalog index.
func TestCatalog_Lookup(t *testing.T) {
	catalog, err := NewCatalog([]QualityDimension{
		{Name: "Fluency", Weight: 0.6, Range: RatingRange{Min: 1, Max: 10}, Direction: HigherIsBetter},
		{Name: "Adequacy", Weight: 0.4, Range: RatingRange{Min: 1, Max: 5}, Direction: HigherIsBetter},
	})
	require.NoError(t, err)

	dim, err := catalog.Lookup("Adequacy")
	require.NoError(t, err, "Lookup() should find an existing dimension.")
	assert.Equal(t, 0.4, dim.Weight, "Lookup() returned the wrong dimension.")
	assert.Equal(t, 5, dim.Range.Max, "Lookup() returned the wrong range.")

	_, err = catalog.Lookup("Sparkle")
	assert.ErrorIs(t, err, ErrDimensionNotFound, "Lookup() should fail for an unknown name.")
}

// TestCatalog_Dimensions verifies that the accessor preserves order and
// returns an independent copy.
func TestCatalog_Dimensions(t *testing.T) {
	catalog, err := NewCatalog([]QualityDimension{
		{Name: "B", Weight: 0.5, Range: RatingRange{Min: 1, Max: 10}, Direction: HigherIsBetter},
		{Name: "A", Weight: 0.5, Range: RatingRange{Min: 1, Max: 10}, Direction: HigherIsBetter},
	})
	require.NoError(t, err)

	dims := catalog.Dimensions()
	require.Len(t, dims, 2)
	assert.Equal(t, "B", dims[0].Name, "Dimensions() should preserve declaration order.")

	dims[0].Name = "mutated"
	again, err := catalog.Lookup("B")
	require.NoError(t, err)
	assert.Equal(t, "B", again.Name, "Mutating the returned slice should not affect the catalog.")
}

// TestRatingRange exercises the scale helpers rating controls rely on.
func TestRatingRange(t *testing.T) {
	r := RatingRange{Min: 1, Max: 10}

	assert.True(t, r.Contains(1), "Min should be inside the range.")
	assert.True(t, r.Contains(10), "Max should be inside the range.")
	assert.False(t, r.Contains(0), "Below min should be outside the range.")
	assert.False(t, r.Contains(11), "Above max should be outside the range.")

	assert.Equal(t, 1, r.Clamp(-3), "Clamp() should raise values below min.")
	assert.Equal(t, 10, r.Clamp(42), "Clamp() should lower values above max.")
	assert.Equal(t, 7, r.Clamp(7), "Clamp() should pass through in-range values.")

	assert.Equal(t, 5, r.Midpoint(), "Midpoint of 1-10 should be 5.")
}

// TestDefaultCatalog verifies the built-in translation quality catalog.
func TestDefaultCatalog(t *testing.T) {
	catalog := DefaultCatalog()

	require.Equal(t, 5, catalog.Len(), "Default catalog should have five dimensions.")
	assert.InDelta(t, 1.0, catalog.TotalWeight(), 1e-9, "Default weights should sum to 1.0.")

	adequacy, err := catalog.Lookup("Adequacy (Meaning Preservation)")
	require.NoError(t, err)
	assert.Equal(t, 0.30, adequacy.Weight)
	assert.Equal(t, RatingRange{Min: 1, Max: 10}, adequacy.Range)
	assert.Equal(t, HigherIsBetter, adequacy.Direction)
	assert.NotEmpty(t, adequacy.DetailedDescription, "Built-in dimensions should carry rater guidance.")

	for _, dim := range catalog.Dimensions() {
		assert.Equal(t, 5, dim.Range.Midpoint(), "Every default dimension should start controls at 5.")
	}
}
