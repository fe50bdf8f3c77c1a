package pages

import (
	"context"
	"errors"
	"testing"
	"time"

	"bestcdmx/database"
	"bestcdmx/i18n"
	"bestcdmx/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGuides struct {
	guides []models.Guide
	err    error
}

func (f fakeGuides) Guides(context.Context) ([]models.Guide, error) {
	return f.guides, f.err
}

func (f fakeGuides) GuideBySlug(_ context.Context, slug string) (models.Guide, error) {
	if f.err != nil {
		return models.Guide{}, f.err
	}
	for _, g := range f.guides {
		if g.Slug == slug {
			return g, nil
		}
	}
	return models.Guide{}, database.ErrNotFound
}

var tacoGuide = models.Guide{
	ID:        "g1",
	Slug:      "best-tacos",
	Name:      i18n.Text{"en": "Best tacos", "es": "Mejores tacos"},
	CreatedAt: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
	ItemCount: 3,
	Items: []models.GuideItem{
		{RestaurantID: "r2", Rank: 1, Highlight: i18n.Text{"en": "Get the pastor"}},
		{RestaurantID: "r-unpublished", Rank: 2},
		{RestaurantID: "r1", Rank: 3},
	},
}

func TestResolver_Home(t *testing.T) {
	c := *testCatalog
	c.Restaurants = append([]models.Restaurant(nil), testCatalog.Restaurants...)
	c.Restaurants[1].CustomScore = 9
	r := Resolver{Catalogs: staticCatalog{&c}}

	p, err := r.Home("es")
	require.NoError(t, err)
	assert.Equal(t, "BestCDMX - Descubre lo Mejor de la Ciudad de México", p.Title)
	require.Len(t, p.Featured, 2)
	assert.Equal(t, "Taco Stand", p.Featured[0].Name)
	assert.Equal(t, 2, p.Restaurants)
	assert.Equal(t, 2, p.Cuisines)

	_, err = Resolver{Catalogs: staticCatalog{}}.Home("en")
	assert.ErrorIs(t, err, ErrCatalogUnavailable)
}

func TestResolver_Restaurant(t *testing.T) {
	r := Resolver{Catalogs: staticCatalog{testCatalog}}
	c := *testCatalog
	c.Restaurants = []models.Restaurant{{ID: "r1", Slug: "pujol", Name: "Pujol"}}

	p, err := Resolver{Catalogs: staticCatalog{&c}}.Restaurant("en", "pujol")
	require.NoError(t, err)
	assert.Equal(t, "Pujol", p.Title)
	assert.Equal(t, "r1", p.Restaurant.ID)

	_, err = r.Restaurant("en", "ghost")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestResolver_GuideList(t *testing.T) {
	p, err := Resolver{}.GuideList(context.Background(), "en")
	require.NoError(t, err)
	assert.NotNil(t, p.Guides)
	assert.Empty(t, p.Guides)

	r := Resolver{Guides: fakeGuides{guides: []models.Guide{tacoGuide}}}
	p, err = r.GuideList(context.Background(), "es")
	require.NoError(t, err)
	assert.Equal(t, "Guías | BestCDMX", p.Title)
	require.Len(t, p.Guides, 1)

	boom := errors.New("connection reset")
	_, err = Resolver{Guides: fakeGuides{err: boom}}.GuideList(context.Background(), "en")
	assert.ErrorIs(t, err, boom)
}

func TestResolver_GuideAttachesCatalogRestaurants(t *testing.T) {
	c := *testCatalog
	c.Restaurants = []models.Restaurant{
		{ID: "r1", Slug: "pujol", Name: "Pujol"},
		{ID: "r2", Slug: "taco-stand", Name: "Taco Stand"},
	}
	r := Resolver{Catalogs: staticCatalog{&c}, Guides: fakeGuides{guides: []models.Guide{tacoGuide}}}

	p, err := r.Guide(context.Background(), "es", "best-tacos")
	require.NoError(t, err)
	assert.Equal(t, "Mejores tacos", p.Title)
	require.Len(t, p.Guide.Items, 2, "items outside the catalog are dropped")
	assert.Equal(t, "Taco Stand", p.Guide.Items[0].Restaurant.Name)
	assert.Equal(t, 1, p.Guide.Items[0].Rank)
	assert.Equal(t, "Pujol", p.Guide.Items[1].Restaurant.Name)
	assert.Len(t, tacoGuide.Items, 3, "the source guide is not modified")

	_, err = r.Guide(context.Background(), "en", "ghost")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = Resolver{Catalogs: staticCatalog{&c}}.Guide(context.Background(), "en", "best-tacos")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = Resolver{Catalogs: staticCatalog{}, Guides: fakeGuides{}}.Guide(context.Background(), "en", "best-tacos")
	assert.ErrorIs(t, err, ErrCatalogUnavailable)
}
