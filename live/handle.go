package live

import (
	"bestcdmx/listing"
)

// Rejection reasons.
const (
	ReasonLocked       = "locked"
	ReasonNoChange     = "no change"
	ReasonBadFrame     = "unknown frame type"
	ReasonBadDimension = "unknown dimension"
)

type gesture func(ed listing.Editor, cur listing.State) (listing.Partial, bool)

func (s *session) handle(in Inbound) {
	if in.Type == TypePing {
		s.enqueue(Outbound{Type: TypePong})
		return
	}

	g, reason := s.gesture(in)
	if g == nil {
		s.reject(reason)
		return
	}
	if !s.ctrl.EditWith(g) {
		s.reject(s.refusal(in))
		return
	}
	if s.metrics != nil {
		s.metrics.Edits.WithLabelValues("accepted").Inc()
	}
}

func (s *session) reject(reason string) {
	if s.metrics != nil {
		s.metrics.Edits.WithLabelValues("rejected").Inc()
	}
	s.enqueue(rejectedFrame(reason))
}

// gesture maps a frame to an editor call.
func (s *session) gesture(in Inbound) (gesture, string) {
	switch in.Type {
	case TypeEdit:
		p := in.Filters
		return func(listing.Editor, listing.State) (listing.Partial, bool) { return p, true }, ""
	case TypeSearch:
		v := in.Value
		return func(ed listing.Editor, _ listing.State) (listing.Partial, bool) { return ed.SetSearch(v), true }, ""
	case TypeClear:
		return func(ed listing.Editor, _ listing.State) (listing.Partial, bool) { return ed.Clear(), true }, ""
	case TypeToggle, TypeRemove:
		dim, ok := listing.ParseDimension(in.Dimension)
		if !ok {
			return nil, ReasonBadDimension
		}
		return dimensionGesture(dim, in.Value, in.Type == TypeRemove), ""
	}
	return nil, ReasonBadFrame
}

func dimensionGesture(dim listing.Dimension, v string, remove bool) gesture {
	return func(ed listing.Editor, cur listing.State) (listing.Partial, bool) {
		switch dim {
		case listing.DimensionCategory:
			if remove {
				return ed.RemoveCategory(cur, v)
			}
			return ed.ToggleCategory(cur, v)
		case listing.DimensionNeighborhood:
			if remove {
				return ed.RemoveNeighborhood(cur, v)
			}
			return ed.ToggleNeighborhood(cur, v)
		case listing.DimensionPrice:
			if remove {
				return ed.RemovePriceTier(cur, listing.PriceTier(v))
			}
			return ed.TogglePriceTier(cur, listing.PriceTier(v))
		case listing.DimensionSearch:
			if remove {
				return ed.SetSearch(""), true
			}
		}
		return listing.Partial{}, false
	}
}

func (s *session) refusal(in Inbound) string {
	ed := s.ctrl.Editor()
	switch in.Dimension {
	case string(listing.DimensionCategory):
		if !ed.CanRemoveCategory(in.Value) {
			return ReasonLocked
		}
	case string(listing.DimensionNeighborhood):
		if !ed.CanRemoveNeighborhood(in.Value) {
			return ReasonLocked
		}
	}
	return ReasonNoChange
}
