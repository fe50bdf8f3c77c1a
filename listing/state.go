package listing

import (
	"slices"
	"strings"
)

// PriceTier is one of the four price buckets shown on a restaurant card.
type PriceTier string

const (
	TierBudget   PriceTier = "$"
	TierModerate PriceTier = "$$"
	TierUpscale  PriceTier = "$$$"
	TierFine     PriceTier = "$$$$"
)

// PriceTiers lists every tier in ascending order.
var PriceTiers = []PriceTier{TierBudget, TierModerate, TierUpscale, TierFine}

// ParsePriceTier reports whether s names a known tier.
func ParsePriceTier(s string) (PriceTier, bool) {
	for _, t := range PriceTiers {
		if string(t) == s {
			return t, true
		}
	}
	return "", false
}

// State is the filter selection of a listing page.
// Sets are ordered, duplicate-free slices; compare them with Equal.
type State struct {
	Search        string      `json:"search"`
	Categories    []string    `json:"categories"`
	Neighborhoods []string    `json:"neighborhoods"`
	PriceTiers    []PriceTier `json:"priceTiers"`
}

// Locked holds the values a page context pins into the State.
type Locked struct {
	Categories    []string `json:"categories,omitempty"`
	Neighborhoods []string `json:"neighborhoods,omitempty"`
}

// Partial is a whole-dimension update. A nil field leaves that dimension alone.
type Partial struct {
	Search        *string      `json:"search,omitempty"`
	Categories    *[]string    `json:"categories,omitempty"`
	Neighborhoods *[]string    `json:"neighborhoods,omitempty"`
	PriceTiers    *[]PriceTier `json:"priceTiers,omitempty"`
}

// IsZero reports whether p touches no dimension.
func (p Partial) IsZero() bool {
	return p.Search == nil && p.Categories == nil && p.Neighborhoods == nil && p.PriceTiers == nil
}

// IsEmpty reports whether the state constrains nothing.
func (s State) IsEmpty() bool {
	return strings.TrimSpace(s.Search) == "" &&
		len(s.Categories) == 0 &&
		len(s.Neighborhoods) == 0 &&
		len(s.PriceTiers) == 0
}

// Equal compares search text exactly and the three sets ignoring order.
func (s State) Equal(o State) bool {
	return s.Search == o.Search &&
		sameSet(s.Categories, o.Categories) &&
		sameSet(s.Neighborhoods, o.Neighborhoods) &&
		sameSet(s.PriceTiers, o.PriceTiers)
}

// Clone returns a deep copy.
func (s State) Clone() State {
	return State{
		Search:        s.Search,
		Categories:    cloneSet(s.Categories),
		Neighborhoods: cloneSet(s.Neighborhoods),
		PriceTiers:    cloneSet(s.PriceTiers),
	}
}

// HasCategory reports whether id is locked.
func (l Locked) HasCategory(id string) bool {
	return slices.Contains(l.Categories, id)
}

// HasNeighborhood reports whether id is locked.
func (l Locked) HasNeighborhood(id string) bool {
	return slices.Contains(l.Neighborhoods, id)
}

// IsZero reports whether nothing is locked.
func (l Locked) IsZero() bool {
	return len(l.Categories) == 0 && len(l.Neighborhoods) == 0
}

// Defaults is the state a locked page starts from.
func (l Locked) Defaults() State {
	return State{
		Categories:    normalize(l.Categories),
		Neighborhoods: normalize(l.Neighborhoods),
	}
}

// Merge replaces the dimensions present in p and normalizes the result.
func Merge(base State, p Partial) State {
	out := base.Clone()
	if p.Search != nil {
		out.Search = *p.Search
	}
	if p.Categories != nil {
		out.Categories = cloneSet(*p.Categories)
	}
	if p.Neighborhoods != nil {
		out.Neighborhoods = cloneSet(*p.Neighborhoods)
	}
	if p.PriceTiers != nil {
		out.PriceTiers = cloneSet(*p.PriceTiers)
	}
	return Normalize(out)
}

// Normalize drops empty and duplicate values and unknown price tiers.
func Normalize(s State) State {
	tiers := make([]PriceTier, 0, len(s.PriceTiers))
	for _, t := range normalize(s.PriceTiers) {
		if _, ok := ParsePriceTier(string(t)); ok {
			tiers = append(tiers, t)
		}
	}
	return State{
		Search:        s.Search,
		Categories:    normalize(s.Categories),
		Neighborhoods: normalize(s.Neighborhoods),
		PriceTiers:    tiers,
	}
}

// EnforceLocked returns s with every locked value present. Locked values are
// appended after the existing selection; nothing is ever removed.
func EnforceLocked(s State, l Locked) State {
	out := Normalize(s)
	out.Categories = union(out.Categories, normalize(l.Categories))
	out.Neighborhoods = union(out.Neighborhoods, normalize(l.Neighborhoods))
	return out
}

func normalize[T ~string](vals []T) []T {
	out := make([]T, 0, len(vals))
	for _, v := range vals {
		if v == "" || slices.Contains(out, v) {
			continue
		}
		out = append(out, v)
	}
	return out
}

func union[T ~string](set, extra []T) []T {
	for _, v := range extra {
		if !slices.Contains(set, v) {
			set = append(set, v)
		}
	}
	return set
}

func sameSet[T ~string](a, b []T) bool {
	a, b = normalize(a), normalize(b)
	if len(a) != len(b) {
		return false
	}
	for _, v := range a {
		if !slices.Contains(b, v) {
			return false
		}
	}
	return true
}

func cloneSet[T ~string](vals []T) []T {
	if vals == nil {
		return []T{}
	}
	out := make([]T, len(vals))
	copy(out, vals)
	return out
}

func without[T ~string](set []T, v T) []T {
	out := make([]T, 0, len(set))
	for _, s := range set {
		if s != v {
			out = append(out, s)
		}
	}
	return out
}
