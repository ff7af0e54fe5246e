package cache

// State is the lifecycle position of a cache entry.
type State int

const (
	// StateIdle is a registered entry that has never been fetched.
	StateIdle State = iota
	// StateFetching means a fetch is in flight.
	StateFetching
	// StateValid holds a current result.
	StateValid
	// StateInvalidated holds a stale result (or none) awaiting re-fetch.
	StateInvalidated
	// StateError holds the error of the last fetch.
	StateError
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateFetching:
		return "fetching"
	case StateValid:
		return "valid"
	case StateInvalidated:
		return "invalidated"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}

// Snapshot is a point-in-time view of one entry, as delivered to listeners.
type Snapshot struct {
	Key     Key
	State   State
	Data    any
	HasData bool
	Err     error
	Tags    []Tag

	// ver orders deliveries; zero for snapshots that were never delivered.
	ver uint64
}

// IsLoading is true while the first result is still outstanding.
func (s Snapshot) IsLoading() bool {
	return !s.HasData && (s.State == StateIdle || s.State == StateFetching)
}

// IsFetching is true whenever a fetch is in flight, including re-fetches
// of an entry that still shows older data.
func (s Snapshot) IsFetching() bool {
	return s.State == StateFetching
}

// IsError is true when the last fetch failed.
func (s Snapshot) IsError() bool {
	return s.State == StateError
}
