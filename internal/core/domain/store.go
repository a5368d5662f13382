package domain

// StoreState is the connection state of the tiered vector store adapter.
type StoreState int

// Adapter states. The lifecycle is
// Uninitialized -> Connecting -> {Connected | Degraded}.
// Connected -> Degraded is one-way for the life of an adapter.
const (
	StateUninitialized StoreState = iota
	StateConnecting
	StateConnected
	StateDegraded
)

// String returns the state name.
func (s StoreState) String() string {
	switch s {
	case StateUninitialized:
		return "UNINITIALIZED"
	case StateConnecting:
		return "CONNECTING"
	case StateConnected:
		return "CONNECTED"
	case StateDegraded:
		return "DEGRADED"
	default:
		return unknownDescription
	}
}

// Tier names.
const (
	TierRemote   = "remote"
	TierLocal    = "local"
	TierDefaults = "defaults"
)

// TierStats describes a single vector store tier.
type TierStats struct {
	// Name is the tier name.
	Name string `json:"name"`

	// Records is the number of stored records, -1 when unknown.
	Records int64 `json:"records"`

	// Writable is false for tiers that ignore inserts.
	Writable bool `json:"writable"`

	// Location is the collection name or file path backing the tier.
	Location string `json:"location,omitempty"`

	// Err holds the stats error message when the tier could not report.
	Err string `json:"error,omitempty"`
}

// StoreStats summarises the vector store adapter.
type StoreStats struct {
	// State is the adapter connection state.
	State string `json:"state"`

	// ActiveTier is the highest-priority tier currently eligible for search.
	ActiveTier string `json:"active_tier"`

	// Dimension is the configured embedding dimension.
	Dimension int `json:"embedding_dim"`

	// Tiers lists each tier in priority order.
	Tiers []TierStats `json:"tiers"`
}
