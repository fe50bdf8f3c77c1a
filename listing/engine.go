package listing

import (
	"slices"
	"strings"

	"golang.org/x/text/cases"
)

// Entity is a filterable record. Implementations must be safe to read
// concurrently; the engine never mutates them.
type Entity interface {
	CategoryIDs() []string
	NeighborhoodID() string
	PriceTier() PriceTier
	// SearchText returns the fields free-text search looks at, with localized
	// fields already resolved for locale.
	SearchText(locale string) []string
}

// Engine applies a State to a slice of entities.
type Engine[E Entity] struct {
	locale string
}

// NewEngine returns an engine matching localized text in locale.
func NewEngine[E Entity](locale string) *Engine[E] {
	return &Engine[E]{locale: locale}
}

// Locale returns the locale search text is resolved in.
func (e *Engine[E]) Locale() string {
	return e.locale
}

// Apply returns the entities matching every non-empty dimension of s, in
// input order. An empty state returns entities itself.
func (e *Engine[E]) Apply(entities []E, s State) []E {
	if s.IsEmpty() {
		return entities
	}
	m := e.matcher(s)
	visible := make([]E, 0, len(entities))
	for _, ent := range entities {
		if m.match(ent) {
			visible = append(visible, ent)
		}
	}
	return visible
}

// Match reports whether a single entity passes s.
func (e *Engine[E]) Match(ent E, s State) bool {
	return e.matcher(s).match(ent)
}

func (e *Engine[E]) matcher(s State) matcher[E] {
	m := matcher[E]{state: s, locale: e.locale}
	// Blank terms impose nothing; other terms match as typed, spaces included.
	if strings.TrimSpace(s.Search) != "" {
		m.fold = cases.Fold()
		m.term = m.fold.String(s.Search)
	}
	return m
}

type matcher[E Entity] struct {
	state  State
	locale string
	term   string
	fold   cases.Caser
}

func (m matcher[E]) match(ent E) bool {
	return m.matchSearch(ent) &&
		m.matchCategories(ent) &&
		m.matchNeighborhood(ent) &&
		m.matchPriceTier(ent)
}

func (m matcher[E]) matchSearch(ent E) bool {
	if m.term == "" {
		return true
	}
	for _, field := range ent.SearchText(m.locale) {
		if strings.Contains(m.fold.String(field), m.term) {
			return true
		}
	}
	return false
}

func (m matcher[E]) matchCategories(ent E) bool {
	if len(m.state.Categories) == 0 {
		return true
	}
	for _, id := range ent.CategoryIDs() {
		if slices.Contains(m.state.Categories, id) {
			return true
		}
	}
	return false
}

func (m matcher[E]) matchNeighborhood(ent E) bool {
	if len(m.state.Neighborhoods) == 0 {
		return true
	}
	return slices.Contains(m.state.Neighborhoods, ent.NeighborhoodID())
}

func (m matcher[E]) matchPriceTier(ent E) bool {
	if len(m.state.PriceTiers) == 0 {
		return true
	}
	return slices.Contains(m.state.PriceTiers, ent.PriceTier())
}
