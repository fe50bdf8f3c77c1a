package listing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApply_EmptyStateIsIdentity(t *testing.T) {
	entities := []place{tacoStand, pujol}
	e := NewEngine[place]("en")

	got := e.Apply(entities, State{Search: "  ", Categories: []string{}})

	require.Len(t, got, len(entities))
	assert.Same(t, &entities[0], &got[0], "the input slice itself is returned")
	assert.Equal(t, []string{"Taco Stand", "Pujol"}, names(got))
}

func TestApply_Scenarios(t *testing.T) {
	entities := []place{pujol, tacoStand}
	e := NewEngine[place]("en")

	tests := []struct {
		name  string
		state State
		want  []string
	}{
		{"category", State{Categories: []string{"fine-dining"}}, []string{"Pujol"}},
		{"search by name", State{Search: "taco"}, []string{"Taco Stand"}},
		{"search is case-insensitive", State{Search: "PUJOL"}, []string{"Pujol"}},
		{"search description", State{Search: "trompo"}, []string{"Taco Stand"}},
		{"search miss", State{Search: "zzz"}, []string{}},
		{"search keeps spaces", State{Search: "taco st"}, []string{"Taco Stand"}},
		{"trailing space is part of the term", State{Search: "pujol "}, []string{}},
		{"neighborhood", State{Neighborhoods: []string{"roma", "juarez"}}, []string{"Taco Stand"}},
		{"price tiers", State{PriceTiers: []PriceTier{TierFine, TierUpscale}}, []string{"Pujol"}},
		{"dimensions AND", State{Categories: []string{"fine-dining"}, Neighborhoods: []string{"roma"}}, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, names(e.Apply(entities, tt.state)))
		})
	}
}

func TestApply_AndOfOrs(t *testing.T) {
	a := place{name: "A", cats: []string{"X"}, hood: "1", tier: TierBudget}
	b := place{name: "B", cats: []string{"Y"}, hood: "1", tier: TierBudget}
	e := NewEngine[place]("en")

	got := e.Apply([]place{a, b}, State{Categories: []string{"X"}, Neighborhoods: []string{"1"}})
	assert.Equal(t, []string{"A"}, names(got))

	got = e.Apply([]place{a, b}, State{Categories: []string{"X", "Y"}, Neighborhoods: []string{"1"}})
	assert.Equal(t, []string{"A", "B"}, names(got))
}

func TestApply_SearchUsesEngineLocale(t *testing.T) {
	entities := []place{pujol, tacoStand}

	assert.Equal(t, []string{"Pujol"}, names(NewEngine[place]("es").Apply(entities, State{Search: "DEGUSTACIÓN"})))
	assert.Empty(t, NewEngine[place]("en").Apply(entities, State{Search: "degustación"}))
}

func TestApply_PreservesInputOrder(t *testing.T) {
	entities := []place{
		{name: "c", tier: TierBudget},
		{name: "a", tier: TierFine},
		{name: "b", tier: TierBudget},
		{name: "d", tier: TierBudget},
	}
	got := NewEngine[place]("en").Apply(entities, State{PriceTiers: []PriceTier{TierBudget}})
	assert.Equal(t, []string{"c", "b", "d"}, names(got))
}

func TestMatch(t *testing.T) {
	e := NewEngine[place]("en")
	assert.True(t, e.Match(pujol, State{}))
	assert.True(t, e.Match(pujol, State{Search: "mole", PriceTiers: []PriceTier{TierFine}}))
	assert.False(t, e.Match(pujol, State{Search: "mole", PriceTiers: []PriceTier{TierBudget}}))
}
