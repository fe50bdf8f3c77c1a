package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// HomeHandler serves the landing page with the featured restaurants.
func HomeHandler(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, err := d.Pages.Home(Locale(r))
		if err != nil {
			writePageError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, page)
	}
}

// RestaurantHandler serves one published restaurant by {slug}.
func RestaurantHandler(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, err := d.Pages.Restaurant(Locale(r), chi.URLParam(r, "slug"))
		if err != nil {
			writePageError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, page)
	}
}

// GuidesHandler lists the guides, newest first.
func GuidesHandler(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, err := d.Pages.GuideList(r.Context(), Locale(r))
		if err != nil {
			writePageError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, page)
	}
}

// GuideHandler serves one guide by {slug} with its ranked restaurants.
func GuideHandler(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, err := d.Pages.Guide(r.Context(), Locale(r), chi.URLParam(r, "slug"))
		if err != nil {
			writePageError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, page)
	}
}
