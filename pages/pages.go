// Package pages resolves the three listing contexts (all restaurants, one
// cuisine, one neighborhood) and renders their payload. HTTP handlers and
// live sessions share it.
package pages

import (
	"context"
	"errors"
	"fmt"

	"bestcdmx/database"
	"bestcdmx/i18n"
	"bestcdmx/listing"
	"bestcdmx/models"
)

var (
	// ErrNotFound means the cuisine or neighborhood slug is unknown.
	ErrNotFound = errors.New("page not found")
	// ErrCatalogUnavailable means no catalog has been loaded yet.
	ErrCatalogUnavailable = errors.New("catalog not loaded")
)

// CatalogSource returns the current catalog snapshot, nil before the first load.
type CatalogSource interface {
	Catalog() *models.Catalog
}

// Lookup finds records that are not part of the catalog snapshot, such as a
// neighborhood without published restaurants. *database.Store implements it.
type Lookup interface {
	CategoryBySlug(ctx context.Context, slug string) (models.Category, error)
	NeighborhoodBySlug(ctx context.Context, slug string) (models.Neighborhood, error)
}

// GuideSource loads editorial guides. *database.Store implements it.
type GuideSource interface {
	Guides(ctx context.Context) ([]models.Guide, error)
	GuideBySlug(ctx context.Context, slug string) (models.Guide, error)
}

// Page is a resolved listing context.
type Page struct {
	Locale  string
	Title   string
	Locked  listing.Locked
	Catalog *models.Catalog
}

// Input returns the controller input for p.
func (p Page) Input() listing.Input[models.Restaurant] {
	return listing.Input[models.Restaurant]{
		Entities:      p.Catalog.Restaurants,
		Categories:    models.CategoryOptions(p.Catalog.Categories),
		Neighborhoods: models.NeighborhoodOptions(p.Catalog.Neighborhoods),
		Locked:        p.Locked,
		Locale:        p.Locale,
	}
}

// Resolver builds pages from the current catalog.
type Resolver struct {
	Catalogs CatalogSource
	Lookup   Lookup
	// Guides may be nil, in which case there are no guides.
	Guides GuideSource
}

func (r Resolver) catalog() (*models.Catalog, error) {
	c := r.Catalogs.Catalog()
	if c == nil {
		return nil, ErrCatalogUnavailable
	}
	return c, nil
}

// Restaurants is the unlocked listing of every published restaurant.
func (r Resolver) Restaurants(locale string) (Page, error) {
	c, err := r.catalog()
	if err != nil {
		return Page{}, err
	}
	return Page{Locale: locale, Title: i18n.T(locale, i18n.RestaurantsTitle), Catalog: c}, nil
}

// Cuisine is the listing with the category slug locked.
func (r Resolver) Cuisine(ctx context.Context, locale, slug string) (Page, error) {
	c, err := r.catalog()
	if err != nil {
		return Page{}, err
	}
	cat, ok := c.CategoryBySlug(slug)
	if !ok {
		if cat, err = r.lookupCategory(ctx, slug); err != nil {
			return Page{}, err
		}
	}
	return Page{
		Locale:  locale,
		Title:   i18n.T(locale, i18n.CuisineTitle, cat.Name.In(locale)),
		Locked:  listing.Locked{Categories: []string{cat.ID}},
		Catalog: c,
	}, nil
}

// Neighborhood is the listing with the neighborhood slug locked.
func (r Resolver) Neighborhood(ctx context.Context, locale, slug string) (Page, error) {
	c, err := r.catalog()
	if err != nil {
		return Page{}, err
	}
	n, ok := c.NeighborhoodBySlug(slug)
	if !ok {
		if n, err = r.lookupNeighborhood(ctx, slug); err != nil {
			return Page{}, err
		}
	}
	return Page{
		Locale:  locale,
		Title:   i18n.T(locale, i18n.NeighborhoodTitle, n.Name),
		Locked:  listing.Locked{Neighborhoods: []string{n.ID}},
		Catalog: c,
	}, nil
}

func (r Resolver) lookupCategory(ctx context.Context, slug string) (models.Category, error) {
	if r.Lookup == nil {
		return models.Category{}, ErrNotFound
	}
	cat, err := r.Lookup.CategoryBySlug(ctx, slug)
	if errors.Is(err, database.ErrNotFound) {
		return cat, ErrNotFound
	}
	if err != nil {
		return cat, fmt.Errorf("cuisine %q: %w", slug, err)
	}
	return cat, nil
}

func (r Resolver) lookupNeighborhood(ctx context.Context, slug string) (models.Neighborhood, error) {
	if r.Lookup == nil {
		return models.Neighborhood{}, ErrNotFound
	}
	n, err := r.Lookup.NeighborhoodBySlug(ctx, slug)
	if errors.Is(err, database.ErrNotFound) {
		return n, ErrNotFound
	}
	if err != nil {
		return n, fmt.Errorf("neighborhood %q: %w", slug, err)
	}
	return n, nil
}
