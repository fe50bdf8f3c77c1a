package handlers

import (
	"net/http"
	"strings"

	"bestcdmx/i18n"

	"github.com/go-chi/chi/v5"
)

// Locale is the {lang} of the matched route, the default locale outside
// one.
func Locale(r *http.Request) string {
	if l := chi.URLParam(r, "lang"); i18n.IsSupported(l) {
		return l
	}
	return i18n.DefaultLocale
}

// RequireLocale answers 404 when {lang} is not a supported locale.
func RequireLocale(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !i18n.IsSupported(chi.URLParam(r, "lang")) {
			writeError(w, http.StatusNotFound, "unsupported locale")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// LocaleRedirect sends paths without a locale prefix to the same path under
// the locale negotiated from Accept-Language. Any two-letter first segment
// counts as a prefix, so unsupported ones reach RequireLocale and 404.
// /api, /healthz, /metrics and paths with a file extension pass through.
func LocaleRedirect(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := r.URL.Path
		if !needsLocale(path) {
			next.ServeHTTP(w, r)
			return
		}

		target := "/" + i18n.Negotiate(r.Header.Get("Accept-Language"))
		if path != "/" {
			target += path
		}
		if r.URL.RawQuery != "" {
			target += "?" + r.URL.RawQuery
		}
		w.Header().Add("Vary", "Accept-Language")
		http.Redirect(w, r, target, http.StatusTemporaryRedirect)
	})
}

func needsLocale(path string) bool {
	first, _, _ := strings.Cut(strings.TrimPrefix(path, "/"), "/")
	switch first {
	case "api", "healthz", "metrics":
		return false
	}
	if strings.Contains(path[strings.LastIndex(path, "/")+1:], ".") {
		return false
	}
	return len(first) != 2
}
