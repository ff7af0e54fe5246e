package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/roach88/qbank/internal/testutil"
)

const testType = "Item"

// fakeBackend is a tiny tagged data source: a list of ids plus per-id
// values, with call counting and optional gating of one fetch call.
type fakeBackend struct {
	mu     sync.Mutex
	items  []string
	values map[string]int

	listCalls atomic.Int32
	itemCalls atomic.Int32

	failNext atomic.Bool

	// gate, when set, blocks the list fetch whose call number equals
	// gateCall until release is closed.
	gateCall int32
	started  chan struct{}
	release  chan struct{}
}

func newFakeBackend(ids ...string) *fakeBackend {
	b := &fakeBackend{values: make(map[string]int)}
	for _, id := range ids {
		b.items = append(b.items, id)
		b.values[id] = 0
	}
	return b
}

// gateListCall makes list call n block until the returned release func runs.
func (b *fakeBackend) gateListCall(n int32) (started <-chan struct{}, release func()) {
	b.gateCall = n
	b.started = make(chan struct{})
	b.release = make(chan struct{})
	return b.started, func() { close(b.release) }
}

var errBackend = errors.New("backend unavailable")

func (b *fakeBackend) listRequest() Request {
	return Request{
		Key: Key{Op: "list"},
		Fetch: func(ctx context.Context) (any, error) {
			n := b.listCalls.Add(1)
			if b.gateCall != 0 && n == b.gateCall {
				close(b.started)
				<-b.release
			}
			if b.failNext.CompareAndSwap(true, false) {
				return nil, errBackend
			}
			b.mu.Lock()
			defer b.mu.Unlock()
			out := make([]string, len(b.items))
			copy(out, b.items)
			return out, nil
		},
		Provides: func(result any, err error) []Tag {
			if err != nil {
				return []Tag{ListTag(testType)}
			}
			ids := result.([]string)
			tags := make([]Tag, 0, len(ids)+1)
			for _, id := range ids {
				tags = append(tags, ItemTag(testType, id))
			}
			return append(tags, ListTag(testType))
		},
	}
}

func (b *fakeBackend) itemRequest(id string) Request {
	return Request{
		Key: Key{Op: "item", Arg: id},
		Fetch: func(ctx context.Context) (any, error) {
			b.itemCalls.Add(1)
			b.mu.Lock()
			defer b.mu.Unlock()
			return b.values[id], nil
		},
		Provides: func(result any, err error) []Tag {
			return []Tag{ItemTag(testType, id)}
		},
	}
}

func (b *fakeBackend) addMutation(id string) Mutation {
	return Mutation{
		Name: "add",
		Apply: func(ctx context.Context) (any, error) {
			b.mu.Lock()
			defer b.mu.Unlock()
			b.items = append([]string{id}, b.items...)
			b.values[id] = 0
			return id, nil
		},
		Invalidates: func(any) []Tag {
			return []Tag{ListTag(testType)}
		},
	}
}

func (b *fakeBackend) bumpMutation(id string) Mutation {
	return Mutation{
		Name: "bump",
		Apply: func(ctx context.Context) (any, error) {
			b.mu.Lock()
			defer b.mu.Unlock()
			if _, ok := b.values[id]; !ok {
				return nil, errors.New("not found: " + id)
			}
			b.values[id]++
			return b.values[id], nil
		},
		Invalidates: func(any) []Tag {
			return []Tag{ItemTag(testType, id)}
		},
	}
}

func newRecordedCache(t *testing.T) (*Cache, *testutil.Recorder[Event]) {
	t.Helper()
	rec := testutil.NewRecorder[Event]()
	return New(WithObserver(rec.Record)), rec
}

func kinds(events []Event) []EventKind {
	out := make([]EventKind, len(events))
	for i, ev := range events {
		out[i] = ev.Kind
	}
	return out
}
