package handlers

import (
	"net/http"
	"time"

	"bestcdmx/i18n"
	"bestcdmx/listing"
	"bestcdmx/pages"
)

// Descriptors lists the filter options of one dimension for a locale.
type Descriptors struct {
	Locale  string         `json:"locale"`
	Title   string         `json:"title"`
	Options []pages.Option `json:"options"`
}

// CuisinesHandler lists every cuisine with its localized name and the number
// of published restaurants serving it.
func CuisinesHandler(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := d.Pages.Catalogs.Catalog()
		if c == nil {
			writePageError(w, r, pages.ErrCatalogUnavailable)
			return
		}
		locale := Locale(r)
		writeJSON(w, http.StatusOK, Descriptors{
			Locale:  locale,
			Title:   i18n.T(locale, i18n.CuisinesTitle),
			Options: pages.CategoryOptions(c, locale, listing.Locked{}),
		})
	}
}

// NeighborhoodsHandler lists the neighborhoods that have at least one
// published restaurant.
func NeighborhoodsHandler(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := d.Pages.Catalogs.Catalog()
		if c == nil {
			writePageError(w, r, pages.ErrCatalogUnavailable)
			return
		}
		locale := Locale(r)
		writeJSON(w, http.StatusOK, Descriptors{
			Locale:  locale,
			Title:   i18n.T(locale, i18n.NeighborhoodsTitle),
			Options: pages.NeighborhoodOptions(c, listing.Locked{}),
		})
	}
}

// Health is the /healthz body.
type Health struct {
	Status      string     `json:"status"`
	LoadedAt    *time.Time `json:"loaded_at,omitempty"`
	Age         string     `json:"age,omitempty"`
	Restaurants int        `json:"restaurants"`
}

// HealthHandler reports whether a catalog is loaded and how old it is.
// It answers 503 until the first refresh succeeds.
func HealthHandler(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := d.Pages.Catalogs.Catalog()
		if c == nil {
			writeJSON(w, http.StatusServiceUnavailable, Health{Status: "loading"})
			return
		}
		writeJSON(w, http.StatusOK, Health{
			Status:      "ok",
			LoadedAt:    &c.LoadedAt,
			Age:         time.Since(c.LoadedAt).Round(time.Second).String(),
			Restaurants: len(c.Restaurants),
		})
	}
}
