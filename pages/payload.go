package pages

import (
	"bestcdmx/listing"
	"bestcdmx/models"
)

// Option is a filter choice labelled for the page locale.
type Option struct {
	ID     string `json:"id"`
	Slug   string `json:"slug"`
	Label  string `json:"label"`
	Count  int    `json:"count"`
	Locked bool   `json:"locked,omitempty"`
}

// Payload is what a listing page renders.
type Payload struct {
	Locale        string              `json:"locale"`
	Title         string              `json:"title"`
	Restaurants   []models.Restaurant `json:"restaurants"`
	Count         int                 `json:"count"`
	State         listing.State       `json:"state"`
	Locked        listing.Locked      `json:"locked"`
	Chips         []listing.Chip      `json:"chips"`
	Query         string              `json:"query"`
	Categories    []Option            `json:"categories"`
	Neighborhoods []Option            `json:"neighborhoods"`
	Phase         string              `json:"phase"`
	Busy          bool                `json:"busy"`
	Seq           uint64              `json:"seq"`
}

// NewPayload renders snap for p. Counts are over the whole catalog.
func NewPayload(p Page, snap listing.Snapshot[models.Restaurant]) Payload {
	visible := snap.Visible
	if visible == nil {
		visible = []models.Restaurant{}
	}
	return Payload{
		Locale:        p.Locale,
		Title:         p.Title,
		Restaurants:   visible,
		Count:         snap.Count,
		State:         snap.Pending,
		Locked:        snap.Locked,
		Chips:         snap.Chips,
		Query:         snap.Query,
		Categories:    CategoryOptions(p.Catalog, p.Locale, p.Locked),
		Neighborhoods: NeighborhoodOptions(p.Catalog, p.Locked),
		Phase:         snap.Phase.String(),
		Busy:          snap.Busy,
		Seq:           snap.Seq,
	}
}

// CategoryOptions labels every category of c in locale.
func CategoryOptions(c *models.Catalog, locale string, l listing.Locked) []Option {
	counts := c.CategoryCounts()
	out := make([]Option, 0, len(c.Categories))
	for _, cat := range c.Categories {
		out = append(out, Option{
			ID:     cat.ID,
			Slug:   cat.Slug,
			Label:  cat.Name.In(locale),
			Count:  counts[cat.ID],
			Locked: l.HasCategory(cat.ID),
		})
	}
	return out
}

// NeighborhoodOptions lists the active neighborhoods of c.
func NeighborhoodOptions(c *models.Catalog, l listing.Locked) []Option {
	counts := c.NeighborhoodCounts()
	out := make([]Option, 0, len(c.Neighborhoods))
	for _, n := range c.Neighborhoods {
		out = append(out, Option{
			ID:     n.ID,
			Slug:   n.Slug,
			Label:  n.Name,
			Count:  counts[n.ID],
			Locked: l.HasNeighborhood(n.ID),
		})
	}
	return out
}
