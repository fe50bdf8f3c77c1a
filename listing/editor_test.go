package listing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEditor_RefusesLockedRemoval(t *testing.T) {
	l := Locked{Categories: []string{"mexican"}}
	ed := NewEditor(l)
	cur := EnforceLocked(State{Categories: []string{"seafood"}}, l)

	_, ok := ed.RemoveCategory(cur, "mexican")
	assert.False(t, ok)
	_, ok = ed.ToggleCategory(cur, "mexican")
	assert.False(t, ok, "toggling a locked value off is a removal")
	assert.False(t, ed.CanRemoveCategory("mexican"))

	p, ok := ed.RemoveCategory(cur, "seafood")
	assert.True(t, ok)
	assert.Equal(t, []string{"mexican"}, Merge(cur, p).Categories)
}

func TestEditor_LockedValueSurvivesWholeDimensionReplacement(t *testing.T) {
	l := Locked{Categories: []string{"mexican"}}
	ed := NewEditor(l)
	cur := l.Defaults()

	next := EnforceLocked(Merge(cur, ed.SetCategories([]string{"bakery"})), l)
	assert.ElementsMatch(t, []string{"bakery", "mexican"}, next.Categories)

	// An update that bypasses the editor is still corrected by enforcement.
	next = EnforceLocked(Merge(cur, Partial{Categories: strs()}), l)
	assert.Equal(t, []string{"mexican"}, next.Categories)
}

func TestEditor_Toggle(t *testing.T) {
	ed := NewEditor(Locked{Neighborhoods: []string{"roma"}})
	cur := State{Neighborhoods: []string{"roma"}}

	p, ok := ed.ToggleNeighborhood(cur, "condesa")
	assert.True(t, ok)
	cur = Merge(cur, p)
	assert.Equal(t, []string{"roma", "condesa"}, cur.Neighborhoods)

	p, ok = ed.ToggleNeighborhood(cur, "condesa")
	assert.True(t, ok)
	cur = Merge(cur, p)
	assert.Equal(t, []string{"roma"}, cur.Neighborhoods)

	_, ok = ed.ToggleNeighborhood(cur, "roma")
	assert.False(t, ok)
	_, ok = ed.ToggleNeighborhood(cur, "")
	assert.False(t, ok)
}

func TestEditor_PriceTiers(t *testing.T) {
	ed := NewEditor(Locked{})
	cur := State{}

	p, ok := ed.TogglePriceTier(cur, TierModerate)
	assert.True(t, ok)
	cur = Merge(cur, p)
	assert.Equal(t, []PriceTier{TierModerate}, cur.PriceTiers)

	_, ok = ed.TogglePriceTier(cur, "$$$$$")
	assert.False(t, ok)

	_, ok = ed.RemovePriceTier(cur, TierFine)
	assert.False(t, ok, "removing an unselected tier is a no-op")

	p, ok = ed.RemovePriceTier(cur, TierModerate)
	assert.True(t, ok)
	assert.Empty(t, Merge(cur, p).PriceTiers)
}

func TestEditor_ClearKeepsLockedDefaults(t *testing.T) {
	l := Locked{Neighborhoods: []string{"polanco"}}
	ed := NewEditor(l)
	cur := State{
		Search:        "mole",
		Categories:    []string{"oaxacan"},
		Neighborhoods: []string{"polanco", "roma"},
		PriceTiers:    []PriceTier{TierBudget},
	}

	got := Merge(cur, ed.Clear())

	assert.True(t, got.Equal(l.Defaults()))
	assert.False(t, got.IsEmpty(), "the locked neighborhood stays selected")
}

func TestEditor_SetSearch(t *testing.T) {
	p := NewEditor(Locked{}).SetSearch("Taco")
	assert.Equal(t, "Taco", Merge(State{Search: "T"}, p).Search)
}
