package models

import (
	"testing"

	"bestcdmx/i18n"
	"bestcdmx/listing"

	"github.com/stretchr/testify/assert"
)

var _ listing.Entity = Restaurant{}

func TestRestaurantEntity(t *testing.T) {
	r := Restaurant{
		Name:         "Contramar",
		Description:  i18n.Text{"en": "Tuna tostadas", "es": "Tostadas de atún"},
		PriceRange:   "$$$",
		Neighborhood: Neighborhood{ID: "n-roma", Name: "Roma Norte"},
		Categories: []Category{
			{ID: "c-seafood", Name: i18n.Text{"en": "Seafood", "es": "Mariscos"}},
			{ID: "c-mexican"},
		},
	}

	assert.Equal(t, []string{"c-seafood", "c-mexican"}, r.CategoryIDs())
	assert.Equal(t, "n-roma", r.NeighborhoodID())
	assert.Equal(t, listing.TierUpscale, r.PriceTier())
	assert.Equal(t, []string{"Contramar", "Tostadas de atún"}, r.SearchText("es"))
	assert.Equal(t, []string{"Contramar", "Tuna tostadas"}, r.SearchText("fr"))
}

func TestRestaurantUnknownPriceRange(t *testing.T) {
	assert.Equal(t, listing.PriceTier(""), Restaurant{PriceRange: "$$$$$"}.PriceTier())
	assert.Empty(t, Restaurant{}.CategoryIDs())
}

func TestOptions(t *testing.T) {
	cats := CategoryOptions([]Category{{ID: "c1", Name: i18n.Text{"es": "Mariscos"}}})
	assert.Equal(t, "Mariscos", cats[0].Name("es"))
	assert.Equal(t, "c1", cats[0].Name("en"))

	hoods := NeighborhoodOptions([]Neighborhood{{ID: "n1", Name: "Condesa"}})
	assert.Equal(t, []listing.NeighborhoodOption{{ID: "n1", Name: "Condesa"}}, hoods)
}

func TestGuide_Title(t *testing.T) {
	g := Guide{
		Name:      i18n.Text{"en": "Best tacos", "es": "Mejores tacos"},
		MetaTitle: i18n.Text{"en": "The 10 best taquerias in CDMX"},
	}
	assert.Equal(t, "The 10 best taquerias in CDMX", g.Title("en"))
	assert.Equal(t, "The 10 best taquerias in CDMX", g.Title("es"), "meta title falls back to English")

	g.MetaTitle = nil
	assert.Equal(t, "Mejores tacos", g.Title("es"))
}
