package cache

import "sync/atomic"

// EventKind names something the cache did.
type EventKind string

const (
	EventHit         EventKind = "hit"
	EventFetch       EventKind = "fetch"
	EventStore       EventKind = "store"
	EventError       EventKind = "error"
	EventStale       EventKind = "stale"
	EventInvalidate  EventKind = "invalidate"
	EventMutate      EventKind = "mutate"
	EventMutateError EventKind = "mutate_error"
)

// Event is one step of cache activity, stamped by the cache Clock.
type Event struct {
	Seq  int64     `json:"seq"`
	Kind EventKind `json:"kind"`

	// Key is set for entry events (hit, fetch, store, error, stale, invalidate).
	Key Key `json:"key,omitzero"`

	// Op is the mutation name for mutate and mutate_error.
	Op string `json:"op,omitempty"`

	// Tags are the provided tags (store, error) or invalidated tags (mutate).
	Tags []Tag `json:"tags,omitempty"`

	// Err is the error text for error and mutate_error.
	Err string `json:"err,omitempty"`
}

// Observer receives every event. It is called synchronously and must not
// block.
type Observer func(Event)

// Clock numbers events. Seqs are logical, never wall time, so the same
// sequence of calls yields the same trace on every run. Several caches may
// share a Clock to interleave their events on one sequence.
//
// Thread-safety: Clock is safe for concurrent use.
type Clock struct {
	seq atomic.Int64
}

// NewClock creates a clock whose first event is seq 1.
func NewClock() *Clock {
	return &Clock{}
}

// Stamp returns ev with the next seq.
func (c *Clock) Stamp(ev Event) Event {
	ev.Seq = c.seq.Add(1)
	return ev
}

// Last returns the seq of the most recent event, or 0.
func (c *Clock) Last() int64 {
	return c.seq.Load()
}

// Reset starts a new trace: the next event is seq 1 again.
func (c *Clock) Reset() {
	c.seq.Store(0)
}
