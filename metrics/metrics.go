// Package metrics defines the service's Prometheus instruments.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "bestcdmx"

// Metrics groups every instrument. Build it once per registry.
type Metrics struct {
	HTTPRequestDuration *prometheus.HistogramVec

	// Listing engine.
	RecomputeDuration prometheus.Histogram
	VisibleCount      prometheus.Histogram
	Edits             *prometheus.CounterVec
	LiveSessions      prometheus.Gauge

	// Catalog refresher.
	CatalogRefreshes   *prometheus.CounterVec
	CatalogRestaurants prometheus.Gauge
	CatalogLastSuccess prometheus.Gauge

	gatherer prometheus.Gatherer
}

// New registers the instruments with reg. When reg is also a Gatherer,
// Handler serves it; otherwise Handler serves the default gatherer.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	m := &Metrics{
		HTTPRequestDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route and status.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),

		RecomputeDuration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "listing_recompute_duration_seconds",
			Help:      "Time spent applying a filter state to the catalog.",
			Buckets:   prometheus.ExponentialBuckets(0.00001, 4, 10),
		}),
		VisibleCount: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "listing_visible_restaurants",
			Help:      "Number of restaurants left after filtering.",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 12),
		}),
		Edits: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "listing_edits_total",
			Help:      "Live filter edits by outcome.",
		}, []string{"outcome"}),
		LiveSessions: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "live_sessions",
			Help:      "Open live listing sessions.",
		}),

		CatalogRefreshes: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "catalog_refreshes_total",
			Help:      "Catalog loads by result.",
		}, []string{"result"}),
		CatalogRestaurants: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "catalog_restaurants",
			Help:      "Published restaurants in the current catalog snapshot.",
		}),
		CatalogLastSuccess: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "catalog_last_success_timestamp_seconds",
			Help:      "Unix time of the last successful catalog load.",
		}),
	}
	if g, ok := reg.(prometheus.Gatherer); ok {
		m.gatherer = g
	} else {
		m.gatherer = prometheus.DefaultGatherer
	}
	return m
}

// ObserveRecompute records one engine run.
func (m *Metrics) ObserveRecompute(elapsed time.Duration, visible int) {
	m.RecomputeDuration.Observe(elapsed.Seconds())
	m.VisibleCount.Observe(float64(visible))
}

// ObserveRefresh records a catalog load.
func (m *Metrics) ObserveRefresh(err error, restaurants int, at time.Time) {
	if err != nil {
		m.CatalogRefreshes.WithLabelValues("error").Inc()
		return
	}
	m.CatalogRefreshes.WithLabelValues("ok").Inc()
	m.CatalogRestaurants.Set(float64(restaurants))
	m.CatalogLastSuccess.Set(float64(at.Unix()))
}

// Middleware records request latency labelled with the chi route pattern.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if p := rctx.RoutePattern(); p != "" {
				route = p
			}
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		m.HTTPRequestDuration.
			WithLabelValues(r.Method, route, strconv.Itoa(status)).
			Observe(time.Since(start).Seconds())
	})
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
