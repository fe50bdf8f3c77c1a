package pages

import (
	"context"
	"errors"
	"fmt"

	"bestcdmx/database"
	"bestcdmx/i18n"
	"bestcdmx/models"
)

// FeaturedCount is how many restaurants the home page features.
const FeaturedCount = 3

// HomePage features the best scored restaurants and sizes the directory.
type HomePage struct {
	Locale        string              `json:"locale"`
	Title         string              `json:"title"`
	Featured      []models.Restaurant `json:"featured"`
	Restaurants   int                 `json:"restaurants"`
	Cuisines      int                 `json:"cuisines"`
	Neighborhoods int                 `json:"neighborhoods"`
}

// RestaurantPage is one published restaurant.
type RestaurantPage struct {
	Locale     string            `json:"locale"`
	Title      string            `json:"title"`
	Restaurant models.Restaurant `json:"restaurant"`
}

// GuidesPage lists every guide.
type GuidesPage struct {
	Locale string         `json:"locale"`
	Title  string         `json:"title"`
	Guides []models.Guide `json:"guides"`
}

// GuidePage is one guide with its ranked restaurants.
type GuidePage struct {
	Locale string       `json:"locale"`
	Title  string       `json:"title"`
	Guide  models.Guide `json:"guide"`
}

// Home builds the landing page.
func (r Resolver) Home(locale string) (HomePage, error) {
	c, err := r.catalog()
	if err != nil {
		return HomePage{}, err
	}
	return HomePage{
		Locale:        locale,
		Title:         i18n.T(locale, i18n.HomeTitle),
		Featured:      c.Featured(FeaturedCount),
		Restaurants:   len(c.Restaurants),
		Cuisines:      len(c.Categories),
		Neighborhoods: len(c.Neighborhoods),
	}, nil
}

// Restaurant finds a published restaurant by slug.
func (r Resolver) Restaurant(locale, slug string) (RestaurantPage, error) {
	c, err := r.catalog()
	if err != nil {
		return RestaurantPage{}, err
	}
	rest, ok := c.RestaurantBySlug(slug)
	if !ok {
		return RestaurantPage{}, ErrNotFound
	}
	return RestaurantPage{Locale: locale, Title: rest.Name, Restaurant: rest}, nil
}

// GuideList lists the guides, newest first.
func (r Resolver) GuideList(ctx context.Context, locale string) (GuidesPage, error) {
	p := GuidesPage{Locale: locale, Title: i18n.T(locale, i18n.GuidesTitle), Guides: []models.Guide{}}
	if r.Guides == nil {
		return p, nil
	}
	guides, err := r.Guides.Guides(ctx)
	if err != nil {
		return GuidesPage{}, fmt.Errorf("guides: %w", err)
	}
	p.Guides = guides
	return p, nil
}

// Guide loads one guide and attaches each item's restaurant from the
// catalog. Items whose restaurant is not in the catalog are dropped.
func (r Resolver) Guide(ctx context.Context, locale, slug string) (GuidePage, error) {
	c, err := r.catalog()
	if err != nil {
		return GuidePage{}, err
	}
	if r.Guides == nil {
		return GuidePage{}, ErrNotFound
	}
	g, err := r.Guides.GuideBySlug(ctx, slug)
	if errors.Is(err, database.ErrNotFound) {
		return GuidePage{}, ErrNotFound
	}
	if err != nil {
		return GuidePage{}, fmt.Errorf("guide %q: %w", slug, err)
	}

	items := make([]models.GuideItem, 0, len(g.Items))
	for _, item := range g.Items {
		rest, ok := c.RestaurantByID(item.RestaurantID)
		if !ok {
			continue
		}
		item.Restaurant = &rest
		items = append(items, item)
	}
	g.Items = items
	return GuidePage{Locale: locale, Title: g.Title(locale), Guide: g}, nil
}
