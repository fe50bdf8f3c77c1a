package listing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChips(t *testing.T) {
	categories := []CategoryOption{
		{ID: "seafood", Names: map[string]string{"en": "Seafood", "es": "Mariscos"}},
		{ID: "mexican", Names: map[string]string{"en": "Mexican", "es": "Mexicana"}},
	}
	neighborhoods := []NeighborhoodOption{{ID: "roma", Name: "Roma Norte"}}
	l := Locked{Categories: []string{"mexican"}}
	s := State{
		Categories:    []string{"seafood", "mexican", "ghost"},
		Neighborhoods: []string{"roma"},
		PriceTiers:    []PriceTier{TierUpscale},
	}

	got := Chips(s, l, categories, neighborhoods, "es")

	assert.Equal(t, []Chip{
		{Dimension: DimensionCategory, Value: "seafood", Label: "Mariscos", Removable: true},
		{Dimension: DimensionCategory, Value: "mexican", Label: "Mexicana", Locked: true},
		{Dimension: DimensionCategory, Value: "ghost", Label: "ghost", Removable: true},
		{Dimension: DimensionNeighborhood, Value: "roma", Label: "Roma Norte", Removable: true},
		{Dimension: DimensionPrice, Value: "$$$", Label: "$$$", Removable: true},
	}, got)
}

func TestChips_EmptyState(t *testing.T) {
	assert.Empty(t, Chips(State{Search: "taco"}, Locked{}, nil, nil, "en"))
}

func TestParseDimension(t *testing.T) {
	d, ok := ParseDimension("price")
	assert.True(t, ok)
	assert.Equal(t, DimensionPrice, d)

	_, ok = ParseDimension("rating")
	assert.False(t, ok)
}
