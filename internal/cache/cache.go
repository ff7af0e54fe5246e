package cache

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strconv"
	"sync"

	"golang.org/x/sync/singleflight"
)

// Request binds a read operation to one argument.
type Request struct {
	// Key identifies the cached result.
	Key Key

	// Fetch reads from the backend.
	Fetch func(ctx context.Context) (any, error)

	// Provides returns the tags a result (or error) is labelled with.
	// Nil means the entry is never invalidated by tag.
	Provides func(result any, err error) []Tag
}

// Mutation is a write operation plus the tags it invalidates on success.
type Mutation struct {
	// Name identifies the mutation in events and logs.
	Name string

	// Apply performs the write.
	Apply func(ctx context.Context) (any, error)

	// Invalidates returns the tags to invalidate after a successful Apply.
	Invalidates func(result any) []Tag
}

// Listener receives entry snapshots. Calls for one subscription never
// overlap, so a listener must not wait on another delivery to itself.
type Listener func(Snapshot)

type entry struct {
	key     Key
	req     Request
	state   State
	data    any
	hasData bool
	err     error
	tags    []Tag

	// gen is bumped on every invalidation; fetches started under an older
	// gen never settle the entry.
	gen uint64

	subs map[uint64]Listener
}

func (e *entry) snapshotLocked() Snapshot {
	return Snapshot{
		Key:     e.key,
		State:   e.state,
		Data:    e.data,
		HasData: e.hasData,
		Err:     e.err,
		Tags:    slices.Clone(e.tags),
	}
}

// Cache maps query keys to entries and tags to keys.
//
// Thread-safety: Cache is safe for concurrent use. Fetch and Apply
// functions run without the cache lock held.
type Cache struct {
	mu      sync.Mutex
	entries map[Key]*entry
	index   map[Tag]map[Key]struct{}

	// epoch counts Invalidate calls; tagEpoch records the epoch at which
	// each tag was last invalidated.
	epoch    uint64
	tagEpoch map[Tag]uint64

	nextSub   uint64
	delivered uint64
	flight    singleflight.Group

	clock    *Clock
	logger   *slog.Logger
	observer Observer
}

// Option configures a Cache.
type Option func(*Cache)

// WithLogger sets the logger (default discards).
func WithLogger(l *slog.Logger) Option {
	return func(c *Cache) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithObserver registers a callback for every cache event.
func WithObserver(o Observer) Option {
	return func(c *Cache) {
		c.observer = o
	}
}

// WithClock sets the clock used to stamp events.
func WithClock(clock *Clock) Option {
	return func(c *Cache) {
		if clock != nil {
			c.clock = clock
		}
	}
}

// New creates an empty cache.
func New(opts ...Option) *Cache {
	c := &Cache{
		entries:  make(map[Key]*entry),
		index:    make(map[Tag]map[Key]struct{}),
		tagEpoch: make(map[Tag]uint64),
		clock:    NewClock(),
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Query returns the cached result for req.Key if it is valid, and
// otherwise fetches, stores and tags a fresh one.
func (c *Cache) Query(ctx context.Context, req Request) (any, error) {
	c.mu.Lock()
	e := c.entryLocked(req)
	if e.state == StateValid {
		data := e.data
		c.mu.Unlock()
		c.emit(Event{Kind: EventHit, Key: e.key})
		c.logger.Debug("cache hit", "key", e.key.String())
		return data, nil
	}
	gen := e.gen
	c.mu.Unlock()

	c.logger.Debug("cache miss", "key", e.key.String())
	return c.fetch(ctx, e, gen)
}

// Subscribe registers l on the entry for req and makes sure it holds a
// result: a valid entry is delivered to l immediately, anything else is
// fetched (and l sees the loading and settled snapshots).
//
// Deliveries to l are serialized and never go backwards: a snapshot taken
// before one l has already seen is dropped.
//
// While at least one subscription is open, invalidation of the entry
// triggers an immediate re-fetch.
func (c *Cache) Subscribe(ctx context.Context, req Request, l Listener) *Subscription {
	ol := &orderedListener{l: l}

	c.mu.Lock()
	e := c.entryLocked(req)
	c.nextSub++
	id := c.nextSub
	e.subs[id] = ol.deliver
	valid := e.state == StateValid
	var snap Snapshot
	if valid {
		snap = c.stampLocked(e)
	}
	gen := e.gen
	c.mu.Unlock()

	sub := &Subscription{cache: c, entry: e, id: id}
	if valid {
		c.emit(Event{Kind: EventHit, Key: e.key})
		ol.deliver(snap)
		return sub
	}
	if _, err := c.fetch(ctx, e, gen); err != nil {
		c.logger.Debug("subscription fetch failed", "key", e.key.String(), "error", err)
	}
	// A fetch that was already settled when we joined never notified us.
	if !ol.hasSettled() {
		c.mu.Lock()
		snap = c.stampLocked(e)
		c.mu.Unlock()
		ol.deliver(snap)
	}
	return sub
}

// Mutate applies m and, on success, invalidates the tags it declares.
// On failure nothing is invalidated and the error is returned unchanged.
func (c *Cache) Mutate(ctx context.Context, m Mutation) (any, error) {
	res, err := m.Apply(ctx)
	if err != nil {
		c.emit(Event{Kind: EventMutateError, Op: m.Name, Err: err.Error()})
		c.logger.Warn("mutation failed", "op", m.Name, "error", err)
		return nil, err
	}

	var tags []Tag
	if m.Invalidates != nil {
		tags = dedupeTags(m.Invalidates(res))
	}
	c.emit(Event{Kind: EventMutate, Op: m.Name, Tags: tags})
	c.logger.Debug("mutation applied", "op", m.Name, "invalidates", tags)

	c.Invalidate(ctx, tags...)
	return res, nil
}

type pending struct {
	e   *entry
	gen uint64
}

// Invalidate marks every entry under tags stale and re-fetches those with
// subscribers before returning.
func (c *Cache) Invalidate(ctx context.Context, tags ...Tag) {
	if len(tags) == 0 {
		return
	}

	c.mu.Lock()
	c.epoch++
	keys := make(map[Key]struct{})
	for _, tag := range tags {
		c.tagEpoch[tag] = c.epoch
		for key := range c.index[tag] {
			keys[key] = struct{}{}
		}
	}
	stale := make([]Key, 0, len(keys))
	for key := range keys {
		stale = append(stale, key)
	}
	sortKeys(stale)

	var refetch []pending
	for _, key := range stale {
		e := c.entries[key]
		e.gen++
		e.state = StateInvalidated
		if len(e.subs) > 0 {
			refetch = append(refetch, pending{e: e, gen: e.gen})
		}
	}
	c.mu.Unlock()

	for _, key := range stale {
		c.emit(Event{Kind: EventInvalidate, Key: key})
	}
	c.logger.Debug("invalidated", "tags", tags, "entries", len(stale), "refetch", len(refetch))

	for _, p := range refetch {
		if _, err := c.fetch(ctx, p.e, p.gen); err != nil {
			c.logger.Warn("refetch failed", "key", p.e.key.String(), "error", err)
		}
	}
}

// Refetch forces a fresh fetch of key regardless of its state.
func (c *Cache) Refetch(ctx context.Context, key Key) (any, error) {
	c.mu.Lock()
	e, ok := c.entries[key]
	if !ok {
		c.mu.Unlock()
		return nil, fmt.Errorf("refetch %s: no such entry", key)
	}
	e.gen++
	e.state = StateInvalidated
	gen := e.gen
	c.mu.Unlock()

	return c.fetch(ctx, e, gen)
}

// Entry returns a snapshot of key, or false if the key was never queried.
func (c *Cache) Entry(key Key) (Snapshot, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok {
		return Snapshot{}, false
	}
	return e.snapshotLocked(), true
}

// Keys returns the keys currently labelled with tag, sorted.
func (c *Cache) Keys(tag Tag) []Key {
	c.mu.Lock()
	defer c.mu.Unlock()
	keys := make([]Key, 0, len(c.index[tag]))
	for key := range c.index[tag] {
		keys = append(keys, key)
	}
	sortKeys(keys)
	return keys
}

// Len returns the number of entries.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Subscribers returns the number of open subscriptions on key.
func (c *Cache) Subscribers(key Key) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.entries[key]; ok {
		return len(e.subs)
	}
	return 0
}

// entryLocked returns the entry for req.Key, creating it if needed.
// The entry always adopts the latest Request so re-fetches use it.
func (c *Cache) entryLocked(req Request) *entry {
	e, ok := c.entries[req.Key]
	if !ok {
		e = &entry{
			key:   req.Key,
			state: StateIdle,
			subs:  make(map[uint64]Listener),
		}
		c.entries[req.Key] = e
	}
	e.req = req
	return e
}

// fetch runs (or joins) the fetch of e under generation gen.
func (c *Cache) fetch(ctx context.Context, e *entry, gen uint64) (any, error) {
	flightKey := e.key.String() + "#" + strconv.FormatUint(gen, 10)
	v, err, _ := c.flight.Do(flightKey, func() (any, error) {
		c.mu.Lock()
		if e.gen == gen && e.state == StateValid {
			// Settled by a fetch that finished before this one began.
			data := e.data
			c.mu.Unlock()
			return data, nil
		}
		if e.gen == gen {
			e.state = StateFetching
		}
		req := e.req
		startEpoch := c.epoch
		c.mu.Unlock()

		c.emit(Event{Kind: EventFetch, Key: e.key})
		c.notify(e)

		res, err := req.Fetch(ctx)

		next, again := c.settle(e, gen, startEpoch, req, res, err)
		if again {
			return c.fetch(ctx, e, next)
		}
		return res, err
	})
	return v, err
}

// settle stores a fetch outcome. It returns again=true (with the new gen)
// when the result went stale in flight and subscribers need a new fetch.
func (c *Cache) settle(e *entry, gen, startEpoch uint64, req Request, res any, fetchErr error) (uint64, bool) {
	var tags []Tag
	if req.Provides != nil {
		tags = dedupeTags(req.Provides(res, fetchErr))
	}

	c.mu.Lock()
	if e.gen != gen {
		// Invalidated while in flight; whoever invalidated owns the re-fetch.
		c.mu.Unlock()
		return 0, false
	}

	if fetchErr != nil {
		e.state = StateError
		e.err = fetchErr
		c.reindexLocked(e, tags)
		c.mu.Unlock()
		c.emit(Event{Kind: EventError, Key: e.key, Tags: tags, Err: fetchErr.Error()})
		c.notify(e)
		return 0, false
	}

	e.data = res
	e.hasData = true
	e.err = nil
	c.reindexLocked(e, tags)

	stale := false
	for _, t := range tags {
		if c.tagEpoch[t] > startEpoch {
			stale = true
			break
		}
	}
	if !stale {
		e.state = StateValid
		c.mu.Unlock()
		c.emit(Event{Kind: EventStore, Key: e.key, Tags: tags})
		c.notify(e)
		return 0, false
	}

	e.gen++
	e.state = StateInvalidated
	next := e.gen
	again := len(e.subs) > 0
	c.mu.Unlock()
	c.emit(Event{Kind: EventStale, Key: e.key, Tags: tags})
	c.logger.Debug("result went stale in flight", "key", e.key.String(), "refetch", again)
	return next, again
}

// reindexLocked replaces e's tags in the inverted index.
func (c *Cache) reindexLocked(e *entry, tags []Tag) {
	for _, t := range e.tags {
		if keys, ok := c.index[t]; ok {
			delete(keys, e.key)
			if len(keys) == 0 {
				delete(c.index, t)
			}
		}
	}
	for _, t := range tags {
		keys, ok := c.index[t]
		if !ok {
			keys = make(map[Key]struct{})
			c.index[t] = keys
		}
		keys[e.key] = struct{}{}
	}
	e.tags = tags
}

// notify delivers the current snapshot of e to its listeners in
// subscription order.
func (c *Cache) notify(e *entry) {
	c.mu.Lock()
	if len(e.subs) == 0 {
		c.mu.Unlock()
		return
	}
	snap := c.stampLocked(e)
	ids := make([]uint64, 0, len(e.subs))
	for id := range e.subs {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	listeners := make([]Listener, len(ids))
	for i, id := range ids {
		listeners[i] = e.subs[id]
	}
	c.mu.Unlock()

	for _, l := range listeners {
		l(snap)
	}
}

// stampLocked snapshots e with the next delivery version.
func (c *Cache) stampLocked(e *entry) Snapshot {
	c.delivered++
	snap := e.snapshotLocked()
	snap.ver = c.delivered
	return snap
}

func (c *Cache) emit(ev Event) {
	if c.observer == nil {
		return
	}
	c.observer(c.clock.Stamp(ev))
}
