package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"

	"bestcdmx/config"
	"bestcdmx/database"
	"bestcdmx/handlers"
	"bestcdmx/live"
	"bestcdmx/logging"
	"bestcdmx/metrics"
	"bestcdmx/pages"
	"bestcdmx/worker"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
)

// main loads the configuration, starts the catalog refresher and serves the
// listing pages until SIGINT or SIGTERM.
func main() {
	_ = godotenv.Load()

	cfg, err := config.Load(".")
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to load configuration")
	}
	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.Connect(ctx, cfg.Database)
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	m := metrics.New(prometheus.DefaultRegisterer)
	store := database.NewStore(db, cfg.Database.QueryTimeout)
	refresher := worker.NewRefresher(store, cfg.Catalog.RefreshInterval, worker.WithObserver(m.ObserveRefresh))
	if err := refresher.Refresh(ctx); err != nil {
		logging.Warn().Err(err).Msg("initial catalog load failed, serving 503 until the next refresh")
	}
	go refresher.Run(ctx)

	router := handlers.NewRouter(cfg, handlers.Deps{
		Pages: pages.Resolver{Catalogs: refresher, Lookup: store, Guides: store},
		Live: live.NewServer(live.Config{
			DebounceWindow: cfg.Listing.DebounceWindow,
			Metrics:        m,
			AllowedOrigins: cfg.Server.AllowedOrigins,
		}),
		Metrics: m,
	})

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		logging.Info().Str("port", cfg.Server.Port).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	logging.Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logging.Error().Err(err).Msg("server forced to shut down")
	}
	logging.Info().Msg("server exited")
}
