package models

import (
	"time"

	"bestcdmx/i18n"
	"bestcdmx/listing"
)

// Restaurant is a published restaurant together with the category and
// neighborhood records a listing needs to filter and label it.
type Restaurant struct {
	ID          string    `json:"id"`
	Slug        string    `json:"slug"`
	Name        string    `json:"name"`
	Description i18n.Text `json:"description"`
	Tagline     string    `json:"tagline,omitempty"`
	ImageURL    string    `json:"image_url,omitempty"`
	PriceRange  string    `json:"price_range"`
	Rating      float64   `json:"rating"`
	CustomScore float64   `json:"custom_score"`
	Latitude    float64   `json:"latitude"`
	Longitude   float64   `json:"longitude"`
	Features    []string  `json:"features,omitempty"`

	Neighborhood Neighborhood `json:"neighborhood"`
	Categories   []Category   `json:"categories"`
}

// CategoryIDs implements listing.Entity.
func (r Restaurant) CategoryIDs() []string {
	ids := make([]string, 0, len(r.Categories))
	for _, c := range r.Categories {
		ids = append(ids, c.ID)
	}
	return ids
}

// NeighborhoodID implements listing.Entity.
func (r Restaurant) NeighborhoodID() string {
	return r.Neighborhood.ID
}

// PriceTier implements listing.Entity. A price_range that is not one of the
// four tiers yields the zero tier, which no tier filter matches.
func (r Restaurant) PriceTier() listing.PriceTier {
	t, _ := listing.ParsePriceTier(r.PriceRange)
	return t
}

// SearchText implements listing.Entity: the name and the description in locale.
func (r Restaurant) SearchText(locale string) []string {
	return []string{r.Name, r.Description.In(locale)}
}

// Category is a cuisine. Names are localized.
type Category struct {
	ID          string    `json:"id"`
	Slug        string    `json:"slug,omitempty"`
	Name        i18n.Text `json:"name"`
	Description i18n.Text `json:"description,omitempty"`
}

// Option returns the filter option for c.
func (c Category) Option() listing.CategoryOption {
	return listing.CategoryOption{ID: c.ID, Names: c.Name}
}

// Neighborhood is a colonia. Its name is the same in every locale.
type Neighborhood struct {
	ID          string    `json:"id"`
	Slug        string    `json:"slug"`
	Name        string    `json:"name"`
	Description i18n.Text `json:"description,omitempty"`
}

// Option returns the filter option for n.
func (n Neighborhood) Option() listing.NeighborhoodOption {
	return listing.NeighborhoodOption{ID: n.ID, Name: n.Name}
}

// CategoryOptions maps categories to filter options, keeping order.
func CategoryOptions(cs []Category) []listing.CategoryOption {
	out := make([]listing.CategoryOption, 0, len(cs))
	for _, c := range cs {
		out = append(out, c.Option())
	}
	return out
}

// NeighborhoodOptions maps neighborhoods to filter options, keeping order.
func NeighborhoodOptions(ns []Neighborhood) []listing.NeighborhoodOption {
	out := make([]listing.NeighborhoodOption, 0, len(ns))
	for _, n := range ns {
		out = append(out, n.Option())
	}
	return out
}

// Guide is an editorial list of restaurants.
type Guide struct {
	ID              string    `json:"id"`
	Slug            string    `json:"slug"`
	Type            string    `json:"type"`
	Name            i18n.Text `json:"name"`
	Content         i18n.Text `json:"content,omitempty"`
	MetaTitle       i18n.Text `json:"meta_title,omitempty"`
	MetaDescription i18n.Text `json:"meta_description,omitempty"`
	CoverImagePath  string    `json:"cover_image_path,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	ItemCount       int       `json:"item_count"`

	Items []GuideItem `json:"items,omitempty"`
}

// Title is the meta title in locale, else the name.
func (g Guide) Title(locale string) string {
	if t := g.MetaTitle.In(locale); t != "" {
		return t
	}
	return g.Name.In(locale)
}

// GuideItem is one ranked restaurant of a guide. Restaurant is filled in
// from the catalog.
type GuideItem struct {
	RestaurantID string      `json:"restaurant_id"`
	Rank         int         `json:"rank"`
	Highlight    i18n.Text   `json:"highlight,omitempty"`
	Restaurant   *Restaurant `json:"restaurant,omitempty"`
}
