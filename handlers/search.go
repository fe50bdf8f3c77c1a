package handlers

import (
	"context"
	"net/http"

	"bestcdmx/listing"
	"bestcdmx/models"
	"bestcdmx/pages"

	"github.com/go-chi/chi/v5"
)

// pageFunc resolves the page a request is for.
type pageFunc func(ctx context.Context, d Deps, locale string, r *http.Request) (pages.Page, error)

func restaurantsPage(_ context.Context, d Deps, locale string, _ *http.Request) (pages.Page, error) {
	return d.Pages.Restaurants(locale)
}

func cuisinePage(ctx context.Context, d Deps, locale string, r *http.Request) (pages.Page, error) {
	return d.Pages.Cuisine(ctx, locale, chi.URLParam(r, "slug"))
}

func neighborhoodPage(ctx context.Context, d Deps, locale string, r *http.Request) (pages.Page, error) {
	return d.Pages.Neighborhood(ctx, locale, chi.URLParam(r, "slug"))
}

// RestaurantsHandler serves the unlocked listing of every published
// restaurant filtered by the q, c, n and p query parameters.
func RestaurantsHandler(d Deps) http.HandlerFunc {
	return listingHandler(d, restaurantsPage)
}

// CuisineHandler serves the listing with the {slug} cuisine locked.
func CuisineHandler(d Deps) http.HandlerFunc {
	return listingHandler(d, cuisinePage)
}

// NeighborhoodHandler serves the listing with the {slug} neighborhood locked.
func NeighborhoodHandler(d Deps) http.HandlerFunc {
	return listingHandler(d, neighborhoodPage)
}

// listingHandler mounts a controller on the request query, renders its
// first snapshot and closes it. Nothing is debounced on this path.
func listingHandler(d Deps, resolve pageFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		locale := Locale(r)
		page, err := resolve(r.Context(), d, locale, r)
		if err != nil {
			writePageError(w, r, err)
			return
		}

		ctrl := listing.NewController(page.Input(), r.URL.Query(), listing.Options[models.Restaurant]{})
		defer ctrl.Close()
		snap := ctrl.Snapshot()
		if d.Metrics != nil {
			d.Metrics.VisibleCount.Observe(float64(snap.Count))
		}

		writeJSON(w, http.StatusOK, pages.NewPayload(page, snap))
	}
}

// LiveHandler upgrades to a live session for the page resolve returns.
func LiveHandler(d Deps, resolve pageFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, err := resolve(r.Context(), d, Locale(r), r)
		if err != nil {
			writePageError(w, r, err)
			return
		}
		d.Live.Serve(w, r, page)
	}
}
