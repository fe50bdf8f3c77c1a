package models

import (
	"cmp"
	"slices"
	"time"
)

// Catalog is one load of everything a listing page is built from. It is
// never modified after it has been published.
type Catalog struct {
	Restaurants   []Restaurant   `json:"restaurants"`
	Categories    []Category     `json:"categories"`
	Neighborhoods []Neighborhood `json:"neighborhoods"`
	LoadedAt      time.Time      `json:"loaded_at"`
}

// CategoryBySlug finds a category of the catalog.
func (c *Catalog) CategoryBySlug(slug string) (Category, bool) {
	for _, cat := range c.Categories {
		if cat.Slug == slug {
			return cat, true
		}
	}
	return Category{}, false
}

// NeighborhoodBySlug finds one of the catalog's active neighborhoods.
func (c *Catalog) NeighborhoodBySlug(slug string) (Neighborhood, bool) {
	for _, n := range c.Neighborhoods {
		if n.Slug == slug {
			return n, true
		}
	}
	return Neighborhood{}, false
}

// RestaurantBySlug finds a published restaurant of the catalog.
func (c *Catalog) RestaurantBySlug(slug string) (Restaurant, bool) {
	for _, r := range c.Restaurants {
		if r.Slug == slug {
			return r, true
		}
	}
	return Restaurant{}, false
}

// RestaurantByID finds a published restaurant of the catalog.
func (c *Catalog) RestaurantByID(id string) (Restaurant, bool) {
	for _, r := range c.Restaurants {
		if r.ID == id {
			return r, true
		}
	}
	return Restaurant{}, false
}

// Featured returns the n restaurants with the highest custom score. Ties
// keep catalog (name) order.
func (c *Catalog) Featured(n int) []Restaurant {
	ranked := slices.Clone(c.Restaurants)
	slices.SortStableFunc(ranked, func(a, b Restaurant) int {
		return cmp.Compare(b.CustomScore, a.CustomScore)
	})
	if n < len(ranked) {
		ranked = ranked[:n]
	}
	if ranked == nil {
		ranked = []Restaurant{}
	}
	return ranked
}

// CategoryCounts returns the number of restaurants per category id.
func (c *Catalog) CategoryCounts() map[string]int {
	counts := make(map[string]int, len(c.Categories))
	for _, r := range c.Restaurants {
		for _, cat := range r.Categories {
			counts[cat.ID]++
		}
	}
	return counts
}

// NeighborhoodCounts returns the number of restaurants per neighborhood id.
func (c *Catalog) NeighborhoodCounts() map[string]int {
	counts := make(map[string]int, len(c.Neighborhoods))
	for _, r := range c.Restaurants {
		counts[r.Neighborhood.ID]++
	}
	return counts
}
