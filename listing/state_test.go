package listing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMerge_ReplacesOnlyPresentDimensions(t *testing.T) {
	base := State{
		Search:        "mole",
		Categories:    []string{"oaxacan"},
		Neighborhoods: []string{"roma"},
		PriceTiers:    []PriceTier{TierModerate},
	}

	got := Merge(base, Partial{Categories: strs("seafood", "seafood", "", "bakery")})

	assert.Equal(t, "mole", got.Search)
	assert.Equal(t, []string{"seafood", "bakery"}, got.Categories)
	assert.Equal(t, []string{"roma"}, got.Neighborhoods)
	assert.Equal(t, []PriceTier{TierModerate}, got.PriceTiers)
	assert.Equal(t, []string{"oaxacan"}, base.Categories, "base must not be touched")
}

func TestMerge_DropsUnknownPriceTiers(t *testing.T) {
	tiers := []PriceTier{"$", "$$$$$", "cheap", "$$"}
	got := Merge(State{}, Partial{PriceTiers: &tiers})
	assert.Equal(t, []PriceTier{TierBudget, TierModerate}, got.PriceTiers)
}

func TestIsEmpty(t *testing.T) {
	assert.True(t, State{}.IsEmpty())
	assert.True(t, State{Search: "   "}.IsEmpty())
	assert.False(t, State{Search: "taco"}.IsEmpty())
	assert.False(t, State{Categories: []string{"x"}}.IsEmpty())
	assert.False(t, State{Neighborhoods: []string{"roma"}}.IsEmpty())
	assert.False(t, State{PriceTiers: []PriceTier{TierFine}}.IsEmpty())
}

func TestEqual_IgnoresSetOrder(t *testing.T) {
	a := State{Search: "x", Categories: []string{"a", "b"}, PriceTiers: []PriceTier{"$", "$$"}}
	b := State{Search: "x", Categories: []string{"b", "a"}, PriceTiers: []PriceTier{"$$", "$"}}
	assert.True(t, a.Equal(b))

	b.Search = "X"
	assert.False(t, a.Equal(b))
}

func TestEnforceLocked_IsUnion(t *testing.T) {
	l := Locked{Categories: []string{"mexican"}, Neighborhoods: []string{"condesa"}}

	got := EnforceLocked(State{Categories: []string{"seafood"}}, l)

	assert.Equal(t, []string{"seafood", "mexican"}, got.Categories)
	assert.Equal(t, []string{"condesa"}, got.Neighborhoods)
}

func TestEnforceLocked_Idempotent(t *testing.T) {
	gen := newStateGen(7)
	for i := 0; i < 500; i++ {
		s, l := gen.state(), gen.locked()
		once := EnforceLocked(s, l)
		twice := EnforceLocked(once, l)
		assert.True(t, once.Equal(twice), "iteration %d: %+v vs %+v", i, once, twice)
		for _, id := range l.Categories {
			if id != "" {
				assert.Contains(t, once.Categories, id)
			}
		}
	}
}

func TestLockedDefaults(t *testing.T) {
	l := Locked{Categories: []string{"a", "a", ""}}
	assert.Equal(t, State{Categories: []string{"a"}, Neighborhoods: []string{}}, l.Defaults())
	assert.False(t, l.IsZero())
	assert.True(t, Locked{}.IsZero())
}
