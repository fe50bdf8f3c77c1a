// Package handlers exposes the listing pages over HTTP.
package handlers

import (
	"errors"
	"net/http"

	"bestcdmx/live"
	"bestcdmx/logging"
	"bestcdmx/metrics"
	"bestcdmx/pages"

	"github.com/goccy/go-json"
)

// Deps is what the handlers need. Live and Metrics may be nil.
type Deps struct {
	Pages   pages.Resolver
	Live    *live.Server
	Metrics *metrics.Metrics
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		logging.Error().Err(err).Msg("failed to encode response")
		http.Error(w, `{"error":"internal error"}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func writePageError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, pages.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	case errors.Is(err, pages.ErrCatalogUnavailable):
		writeError(w, http.StatusServiceUnavailable, "catalog is loading")
	default:
		logging.Ctx(r.Context()).Error().Err(err).Str("path", r.URL.Path).Msg("page lookup failed")
		writeError(w, http.StatusInternalServerError, "something went wrong")
	}
}
