package worker

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"bestcdmx/logging"
	"bestcdmx/models"

	"golang.org/x/sync/errgroup"
	"k8s.io/utils/clock"
)

// DefaultRefreshInterval matches how long listing pages may serve a stale
// catalog.
const DefaultRefreshInterval = time.Hour

// Source loads the three parts of a catalog. *database.Store implements it.
type Source interface {
	PublishedRestaurants(ctx context.Context) ([]models.Restaurant, error)
	Categories(ctx context.Context) ([]models.Category, error)
	ActiveNeighborhoods(ctx context.Context) ([]models.Neighborhood, error)
}

// Option configures a Refresher.
type Option func(*Refresher)

// WithClock replaces the wall clock driving the refresh ticker.
func WithClock(c clock.WithTicker) Option {
	return func(r *Refresher) { r.clock = c }
}

// WithObserver is called after every load attempt with its error, the
// number of restaurants loaded and the attempt time.
func WithObserver(fn func(err error, restaurants int, at time.Time)) Option {
	return func(r *Refresher) { r.observe = fn }
}

// Refresher keeps an in-memory catalog and reloads it on an interval.
// Readers get the last successfully loaded snapshot; a failed load leaves
// it in place.
type Refresher struct {
	source   Source
	interval time.Duration
	clock    clock.WithTicker
	observe  func(error, int, time.Time)

	current atomic.Pointer[models.Catalog]
}

func NewRefresher(source Source, interval time.Duration, opts ...Option) *Refresher {
	if interval <= 0 {
		interval = DefaultRefreshInterval
	}
	r := &Refresher{
		source:   source,
		interval: interval,
		clock:    clock.RealClock{},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Catalog returns the current snapshot, or nil before the first successful
// load.
func (r *Refresher) Catalog() *models.Catalog {
	return r.current.Load()
}

// Refresh loads restaurants, categories and active neighborhoods
// concurrently and publishes them as one snapshot.
func (r *Refresher) Refresh(ctx context.Context) error {
	var c models.Catalog
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		c.Restaurants, err = r.source.PublishedRestaurants(gctx)
		return err
	})
	g.Go(func() (err error) {
		c.Categories, err = r.source.Categories(gctx)
		return err
	})
	g.Go(func() (err error) {
		c.Neighborhoods, err = r.source.ActiveNeighborhoods(gctx)
		return err
	})

	err := g.Wait()
	now := r.clock.Now()
	if err != nil {
		err = fmt.Errorf("refresh catalog: %w", err)
	} else {
		c.LoadedAt = now
		r.current.Store(&c)
	}
	if r.observe != nil {
		r.observe(err, len(c.Restaurants), now)
	}
	return err
}

// Run reloads the catalog every interval until ctx is done.
func (r *Refresher) Run(ctx context.Context) {
	log := logging.WithComponent("catalog")
	log.Info().Dur("interval", r.interval).Msg("catalog refresher started")

	ticker := r.clock.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("catalog refresher stopped")
			return
		case <-ticker.C():
			if err := r.Refresh(ctx); err != nil {
				log.Error().Err(err).Msg("catalog refresh failed, keeping previous snapshot")
				continue
			}
			c := r.Catalog()
			log.Info().
				Int("restaurants", len(c.Restaurants)).
				Int("categories", len(c.Categories)).
				Int("neighborhoods", len(c.Neighborhoods)).
				Msg("catalog refreshed")
		}
	}
}
