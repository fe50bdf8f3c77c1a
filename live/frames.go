package live

import (
	"bestcdmx/listing"
	"bestcdmx/pages"
)

// Inbound frame types.
const (
	TypeEdit   = "edit"
	TypeSearch = "search"
	TypeToggle = "toggle"
	TypeRemove = "remove"
	TypeClear  = "clear"
	TypePing   = "ping"
)

// Outbound frame types.
const (
	TypeSnapshot = "snapshot"
	TypeNavigate = "navigate"
	TypeRejected = "rejected"
	TypePong     = "pong"
)

// Inbound is a client gesture.
type Inbound struct {
	Type      string          `json:"type"`
	Filters   listing.Partial `json:"filters"`
	Dimension string          `json:"dimension,omitempty"`
	Value     string          `json:"value,omitempty"`
}

// Outbound is a server frame. Exactly one payload field is set per type.
type Outbound struct {
	Type     string         `json:"type"`
	Snapshot *pages.Payload `json:"snapshot,omitempty"`
	Query    *string        `json:"query,omitempty"`
	Reason   string         `json:"reason,omitempty"`
}

func snapshotFrame(p pages.Payload) Outbound {
	return Outbound{Type: TypeSnapshot, Snapshot: &p}
}

func navigateFrame(query string) Outbound {
	return Outbound{Type: TypeNavigate, Query: &query}
}

func rejectedFrame(reason string) Outbound {
	return Outbound{Type: TypeRejected, Reason: reason}
}
