package worker

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"bestcdmx/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	testingclock "k8s.io/utils/clock/testing"
)

type fakeSource struct {
	mu    sync.Mutex
	fail  error
	name  string
	loads chan struct{}
}

func newFakeSource() *fakeSource {
	return &fakeSource{name: "Pujol", loads: make(chan struct{}, 16)}
}

func (f *fakeSource) set(name string, fail error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.name, f.fail = name, fail
}

func (f *fakeSource) PublishedRestaurants(context.Context) ([]models.Restaurant, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	defer func() { f.loads <- struct{}{} }()
	if f.fail != nil {
		return nil, f.fail
	}
	return []models.Restaurant{{ID: "r1", Name: f.name}}, nil
}

func (f *fakeSource) Categories(context.Context) ([]models.Category, error) {
	return []models.Category{{ID: "c1", Slug: "fine-dining"}}, nil
}

func (f *fakeSource) ActiveNeighborhoods(context.Context) ([]models.Neighborhood, error) {
	return []models.Neighborhood{{ID: "n1", Slug: "polanco"}}, nil
}

func TestRefresh_PublishesSnapshot(t *testing.T) {
	fc := testingclock.NewFakeClock(time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC))
	var observed []error
	r := NewRefresher(newFakeSource(), time.Hour, WithClock(fc), WithObserver(func(err error, n int, _ time.Time) {
		observed = append(observed, err)
		if err == nil {
			assert.Equal(t, 1, n)
		}
	}))

	assert.Nil(t, r.Catalog())
	require.NoError(t, r.Refresh(context.Background()))

	c := r.Catalog()
	require.NotNil(t, c)
	assert.Equal(t, "Pujol", c.Restaurants[0].Name)
	assert.Len(t, c.Categories, 1)
	assert.Len(t, c.Neighborhoods, 1)
	assert.Equal(t, fc.Now(), c.LoadedAt)
	assert.Equal(t, []error{nil}, observed)
}

func TestRefresh_FailureKeepsPreviousSnapshot(t *testing.T) {
	src := newFakeSource()
	r := NewRefresher(src, time.Hour)
	require.NoError(t, r.Refresh(context.Background()))
	before := r.Catalog()

	boom := errors.New("connection refused")
	src.set("Contramar", boom)
	err := r.Refresh(context.Background())

	require.ErrorIs(t, err, boom)
	assert.Same(t, before, r.Catalog())
}

func TestRun_RefreshesOnInterval(t *testing.T) {
	fc := testingclock.NewFakeClock(time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC))
	src := newFakeSource()
	r := NewRefresher(src, 10*time.Minute, WithClock(fc))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		r.Run(ctx)
		close(done)
	}()

	require.Eventually(t, fc.HasWaiters, time.Second, time.Millisecond, "ticker armed")
	assert.Nil(t, r.Catalog(), "Run does not load before the first tick")

	src.set("Rosetta", nil)
	fc.Step(10 * time.Minute)
	select {
	case <-src.loads:
	case <-time.After(time.Second):
		t.Fatal("no load after one interval")
	}
	require.Eventually(t, func() bool { return r.Catalog() != nil }, time.Second, time.Millisecond)
	assert.Equal(t, "Rosetta", r.Catalog().Restaurants[0].Name)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestNewRefresher_DefaultInterval(t *testing.T) {
	r := NewRefresher(newFakeSource(), 0)
	assert.Equal(t, DefaultRefreshInterval, r.interval)
}
