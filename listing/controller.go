package listing

import (
	"net/url"
	"sync"
	"time"

	"bestcdmx/debounce"

	"k8s.io/utils/clock"
)

// Phase is the state of a Controller's recompute cycle.
type Phase int

const (
	// Idle: the visible set reflects the last committed state.
	Idle Phase = iota
	// Debouncing: an edit is pending; the visible set is still the old one.
	Debouncing
	// Recomputing: the engine is running.
	Recomputing
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Debouncing:
		return "debouncing"
	case Recomputing:
		return "recomputing"
	}
	return "unknown"
}

// Navigator receives the query string of every committed state. Writes are
// fire and forget.
type Navigator interface {
	Navigate(query string)
}

// NavigatorFunc adapts a function to Navigator.
type NavigatorFunc func(query string)

func (f NavigatorFunc) Navigate(query string) { f(query) }

// Input is everything a listing page is built from. It is supplied once and
// never mutated.
type Input[E Entity] struct {
	Entities      []E
	Categories    []CategoryOption
	Neighborhoods []NeighborhoodOption
	Locked        Locked
	Locale        string
}

// Options tune a Controller. The zero value is usable.
type Options[E Entity] struct {
	// Window is the debounce quiescence window, debounce.DefaultWindow if zero.
	Window time.Duration
	// Clock drives the debounce timer, the wall clock if nil.
	Clock clock.WithDelayedExecution
	// Navigator receives the encoded query after every commit.
	Navigator Navigator
	// OnChange is called after every edit and every commit.
	OnChange func(Snapshot[E])
	// OnRecompute is called with the engine run time and visible count.
	OnRecompute func(elapsed time.Duration, visible int)
}

// Snapshot is what the presentation layer renders.
type Snapshot[E Entity] struct {
	Visible []E
	Count   int
	// State is the committed state the visible set was computed from.
	State State
	// Pending is the latest edited state; equal to State while idle.
	Pending State
	Locked  Locked
	Query   string
	Chips   []Chip
	Phase   Phase
	Busy    bool
	// Seq grows with every edit and commit. Listeners notified from
	// different goroutines use it to drop a snapshot older than one they
	// already delivered.
	Seq uint64
}

// Controller owns the filter state of one page view.
//
// Edits are merged into the canonical state immediately and committed after
// the debounce window; commits recompute the visible set and push the encoded
// state to the Navigator. Close cancels a pending commit.
//
// Lock order is Controller.mu, then the debouncer, then the clock. Fake
// clocks run timer callbacks while holding their own lock, so callbacks must
// not call Edit.
type Controller[E Entity] struct {
	entities      []E
	categories    []CategoryOption
	neighborhoods []NeighborhoodOption
	locked        Locked
	locale        string
	engine        *Engine[E]
	debouncer     *debounce.Debouncer[State]
	nav           Navigator
	onChange      func(Snapshot[E])
	onRecompute   func(time.Duration, int)

	mu        sync.Mutex
	state     State
	committed State
	visible   []E
	query     string
	phase     Phase
	seq       uint64
	closed    bool
}

// NewController decodes query, computes the initial visible set
// synchronously and starts Idle. Nothing is pushed to the Navigator on mount.
func NewController[E Entity](in Input[E], query url.Values, opts Options[E]) *Controller[E] {
	c := &Controller[E]{
		entities:      in.Entities,
		categories:    in.Categories,
		neighborhoods: in.Neighborhoods,
		locked:        in.Locked,
		locale:        in.Locale,
		engine:        NewEngine[E](in.Locale),
		nav:           opts.Navigator,
		onChange:      opts.OnChange,
		onRecompute:   opts.OnRecompute,
	}

	var dopts []debounce.Option
	if opts.Clock != nil {
		dopts = append(dopts, debounce.WithClock(opts.Clock))
	}
	c.debouncer = debounce.New(opts.Window, c.commit, dopts...)

	c.state = Decode(query, in.Locked)
	c.committed = c.state.Clone()
	c.visible = c.engine.Apply(c.entities, c.committed)
	c.query = EncodeQuery(c.committed, c.locked)
	c.phase = Idle
	return c
}

// Editor returns an editor bound to the page's locked filters.
func (c *Controller[E]) Editor() Editor {
	return NewEditor(c.locked)
}

// State returns a copy of the canonical (latest edited) state.
func (c *Controller[E]) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Clone()
}

// Phase returns the current phase.
func (c *Controller[E]) Phase() Phase {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.phase
}

// Edit merges p into the canonical state and arms the debouncer.
// It returns false for an empty update or a closed controller.
func (c *Controller[E]) Edit(p Partial) bool {
	return c.EditWith(func(Editor, State) (Partial, bool) { return p, true })
}

// EditWith builds an update from the current state under the controller
// lock, so the gesture and the merge see the same state.
func (c *Controller[E]) EditWith(fn func(ed Editor, cur State) (Partial, bool)) bool {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return false
	}
	p, ok := fn(c.Editor(), c.state.Clone())
	if !ok || p.IsZero() {
		c.mu.Unlock()
		return false
	}
	c.state = EnforceLocked(Merge(c.state, p), c.locked)
	c.phase = Debouncing
	c.debouncer.Push(c.state.Clone())
	c.seq++
	snap := c.snapshotLocked()
	c.mu.Unlock()

	c.notify(snap)
	return true
}

// Snapshot returns the current render state.
func (c *Controller[E]) Snapshot() Snapshot[E] {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// Close tears the controller down. A pending commit is discarded without
// recomputing, navigating or notifying.
func (c *Controller[E]) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	c.debouncer.Stop()
}

// commit runs on the debounce timer goroutine.
func (c *Controller[E]) commit(s State) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.phase = Recomputing
	start := time.Now()
	c.visible = c.engine.Apply(c.entities, s)
	elapsed := time.Since(start)
	c.committed = s
	c.query = EncodeQuery(s, c.locked)
	if c.debouncer.Pending() {
		c.phase = Debouncing
	} else {
		c.phase = Idle
	}
	c.seq++
	snap := c.snapshotLocked()
	c.mu.Unlock()

	if c.onRecompute != nil {
		c.onRecompute(elapsed, snap.Count)
	}
	if c.nav != nil {
		c.nav.Navigate(snap.Query)
	}
	c.notify(snap)
}

func (c *Controller[E]) notify(snap Snapshot[E]) {
	if c.onChange != nil {
		c.onChange(snap)
	}
}

func (c *Controller[E]) snapshotLocked() Snapshot[E] {
	return Snapshot[E]{
		Visible: c.visible,
		Count:   len(c.visible),
		State:   c.committed.Clone(),
		Pending: c.state.Clone(),
		Locked:  c.locked,
		Query:   c.query,
		Chips:   Chips(c.state, c.locked, c.categories, c.neighborhoods, c.locale),
		Phase:   c.phase,
		Busy:    c.phase != Idle,
		Seq:     c.seq,
	}
}
