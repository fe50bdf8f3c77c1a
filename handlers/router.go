package handlers

import (
	"net/http"

	"bestcdmx/config"
	"bestcdmx/logging"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
	"github.com/rs/cors"
)

// NewRouter wires every route and the middleware stack.
func NewRouter(cfg *config.Config, d Deps) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RealIP)
	r.Use(logging.RequestID)
	r.Use(logging.AccessLog)
	r.Use(middleware.Recoverer)
	if d.Metrics != nil {
		r.Use(d.Metrics.Middleware)
	}
	r.Use(cors.New(cors.Options{
		AllowedOrigins:   cfg.Server.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Accept-Language", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
	}).Handler)
	if !cfg.RateLimit.Disabled {
		r.Use(httprate.LimitByIP(cfg.RateLimit.Requests, cfg.RateLimit.Window))
	}
	r.Use(LocaleRedirect)

	r.Get("/healthz", HealthHandler(d))
	if d.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", d.Metrics.Handler())
	}

	r.Route("/{lang}", func(r chi.Router) {
		r.Use(RequireLocale)

		r.Get("/", HomeHandler(d))
		r.Get("/restaurants", RestaurantsHandler(d))
		r.Get("/restaurants/{slug}", RestaurantHandler(d))
		r.Get("/cuisines", CuisinesHandler(d))
		r.Get("/cuisines/{slug}", CuisineHandler(d))
		r.Get("/neighborhoods", NeighborhoodsHandler(d))
		r.Get("/neighborhoods/{slug}", NeighborhoodHandler(d))
		r.Get("/guides", GuidesHandler(d))
		r.Get("/guides/{slug}", GuideHandler(d))

		if d.Live != nil {
			r.Route("/live", func(r chi.Router) {
				r.Get("/restaurants", LiveHandler(d, restaurantsPage))
				r.Get("/cuisines/{slug}", LiveHandler(d, cuisinePage))
				r.Get("/neighborhoods/{slug}", LiveHandler(d, neighborhoodPage))
			})
		}
	})

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, "not found")
	})

	return r
}
