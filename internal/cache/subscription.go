package cache

import (
	"context"
	"sync"
)

// Subscription keeps an entry live: while open, invalidation of the entry
// re-fetches it and the listener sees the result.
type Subscription struct {
	cache *Cache
	entry *entry
	id    uint64
	once  sync.Once
}

// Key returns the subscribed key.
func (s *Subscription) Key() Key {
	return s.entry.key
}

// Snapshot returns the entry's current state.
func (s *Subscription) Snapshot() Snapshot {
	s.cache.mu.Lock()
	defer s.cache.mu.Unlock()
	return s.entry.snapshotLocked()
}

// Refetch forces a fresh fetch of the subscribed entry.
func (s *Subscription) Refetch(ctx context.Context) (any, error) {
	return s.cache.Refetch(ctx, s.entry.key)
}

// Close removes the listener. The entry and its data stay cached but are
// no longer re-fetched on invalidation unless other subscribers remain.
// Close is idempotent.
func (s *Subscription) Close() {
	s.once.Do(func() {
		s.cache.mu.Lock()
		delete(s.entry.subs, s.id)
		s.cache.mu.Unlock()
	})
}

// orderedListener serializes deliveries to one listener and drops any
// snapshot older than the last one delivered.
type orderedListener struct {
	mu      sync.Mutex
	last    uint64
	settled bool
	l       Listener
}

func (o *orderedListener) deliver(s Snapshot) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if s.ver <= o.last {
		return
	}
	o.last = s.ver
	if s.State == StateValid || s.State == StateError {
		o.settled = true
	}
	o.l(s)
}

func (o *orderedListener) hasSettled() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.settled
}
