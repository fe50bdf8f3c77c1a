package listing

import "slices"

// Editor turns filter gestures into whole-dimension updates. Every method
// takes the current state and returns the update to hand to the controller;
// ok is false when the gesture would remove a locked value and must be
// ignored.
type Editor struct {
	locked Locked
}

// NewEditor returns an editor constrained by l.
func NewEditor(l Locked) Editor {
	return Editor{locked: l}
}

// Locked returns the values the editor refuses to remove.
func (e Editor) Locked() Locked {
	return e.locked
}

// CanRemoveCategory reports whether id may be deselected.
func (e Editor) CanRemoveCategory(id string) bool {
	return !e.locked.HasCategory(id)
}

// CanRemoveNeighborhood reports whether id may be deselected.
func (e Editor) CanRemoveNeighborhood(id string) bool {
	return !e.locked.HasNeighborhood(id)
}

// SetSearch replaces the search text as typed.
func (e Editor) SetSearch(text string) Partial {
	return Partial{Search: &text}
}

// SetCategories replaces the category selection, keeping locked ids.
func (e Editor) SetCategories(ids []string) Partial {
	c := union(normalize(ids), normalize(e.locked.Categories))
	return Partial{Categories: &c}
}

// ToggleCategory selects id, or deselects it when already selected.
func (e Editor) ToggleCategory(cur State, id string) (Partial, bool) {
	if id == "" {
		return Partial{}, false
	}
	if slices.Contains(cur.Categories, id) {
		return e.RemoveCategory(cur, id)
	}
	c := append(cloneSet(cur.Categories), id)
	return Partial{Categories: &c}, true
}

// RemoveCategory deselects id unless it is locked or not selected.
func (e Editor) RemoveCategory(cur State, id string) (Partial, bool) {
	if !e.CanRemoveCategory(id) || !slices.Contains(cur.Categories, id) {
		return Partial{}, false
	}
	c := without(cur.Categories, id)
	return Partial{Categories: &c}, true
}

// SetNeighborhoods replaces the neighborhood selection, keeping locked ids.
func (e Editor) SetNeighborhoods(ids []string) Partial {
	n := union(normalize(ids), normalize(e.locked.Neighborhoods))
	return Partial{Neighborhoods: &n}
}

// ToggleNeighborhood selects id, or deselects it when already selected.
func (e Editor) ToggleNeighborhood(cur State, id string) (Partial, bool) {
	if id == "" {
		return Partial{}, false
	}
	if slices.Contains(cur.Neighborhoods, id) {
		return e.RemoveNeighborhood(cur, id)
	}
	n := append(cloneSet(cur.Neighborhoods), id)
	return Partial{Neighborhoods: &n}, true
}

// RemoveNeighborhood deselects id unless it is locked or not selected.
func (e Editor) RemoveNeighborhood(cur State, id string) (Partial, bool) {
	if !e.CanRemoveNeighborhood(id) || !slices.Contains(cur.Neighborhoods, id) {
		return Partial{}, false
	}
	n := without(cur.Neighborhoods, id)
	return Partial{Neighborhoods: &n}, true
}

// SetPriceTiers replaces the tier selection.
func (e Editor) SetPriceTiers(tiers []PriceTier) Partial {
	p := cloneSet(tiers)
	return Partial{PriceTiers: &p}
}

// TogglePriceTier selects tier, or deselects it when already selected.
// Values outside the four tiers are refused.
func (e Editor) TogglePriceTier(cur State, tier PriceTier) (Partial, bool) {
	if _, ok := ParsePriceTier(string(tier)); !ok {
		return Partial{}, false
	}
	if slices.Contains(cur.PriceTiers, tier) {
		return e.RemovePriceTier(cur, tier)
	}
	p := append(cloneSet(cur.PriceTiers), tier)
	return Partial{PriceTiers: &p}, true
}

// RemovePriceTier deselects tier. Tiers are never locked.
func (e Editor) RemovePriceTier(cur State, tier PriceTier) (Partial, bool) {
	if !slices.Contains(cur.PriceTiers, tier) {
		return Partial{}, false
	}
	p := without(cur.PriceTiers, tier)
	return Partial{PriceTiers: &p}, true
}

// Clear resets every dimension to the locked defaults.
func (e Editor) Clear() Partial {
	d := e.locked.Defaults()
	search := ""
	tiers := []PriceTier{}
	return Partial{
		Search:        &search,
		Categories:    &d.Categories,
		Neighborhoods: &d.Neighborhoods,
		PriceTiers:    &tiers,
	}
}
