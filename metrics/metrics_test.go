package metrics

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveRefresh(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.ObserveRefresh(nil, 42, time.Unix(1700000000, 0))
	m.ObserveRefresh(errors.New("db down"), 0, time.Now())

	assert.Equal(t, 1.0, testutil.ToFloat64(m.CatalogRefreshes.WithLabelValues("ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CatalogRefreshes.WithLabelValues("error")))
	assert.Equal(t, 42.0, testutil.ToFloat64(m.CatalogRestaurants), "a failed load keeps the last size")
	assert.Equal(t, 1700000000.0, testutil.ToFloat64(m.CatalogLastSuccess))
}

func TestMiddlewareUsesRoutePattern(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	r := chi.NewRouter()
	r.Use(m.Middleware)
	r.Get("/{lang}/cuisines/{slug}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	r.Handle("/metrics", m.Handler())

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/es/cuisines/ghost", nil))

	assert.Equal(t, 1, testutil.CollectAndCount(m.HTTPRequestDuration))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `route="/{lang}/cuisines/{slug}"`)
	assert.Contains(t, string(body), `status="404"`)
}
