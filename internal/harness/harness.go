package harness

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/roach88/qbank/internal/api"
	"github.com/roach88/qbank/internal/cache"
	"github.com/roach88/qbank/internal/question"
	"github.com/roach88/qbank/internal/seed"
	"github.com/roach88/qbank/internal/store"
)

// Harness executes one scenario against a fresh store.
type Harness struct {
	store  store.RecordStore
	api    *api.API
	logger *slog.Logger

	mu     sync.Mutex
	events []cache.Event
}

// Run executes a test scenario and returns the result.
//
// Each scenario runs against a fresh store, so scenarios are isolated.
//
// Execution flow:
// 1. Create the store and seed it
// 2. Open the list subscription if the scenario watches
// 3. Execute steps, checking expect clauses
// 4. Check the final store order
// 5. Return result with pass/fail, trace, and errors
func Run(scenario *Scenario) (*Result, error) {
	return RunWithLogger(scenario, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// RunWithLogger is Run with cache and API logs sent to logger.
func RunWithLogger(scenario *Scenario, logger *slog.Logger) (*Result, error) {
	ctx := context.Background()

	records, err := loadSeed(scenario.Seed)
	if err != nil {
		return nil, fmt.Errorf("failed to load seed: %w", err)
	}

	st, closeStore, err := openStore(ctx, scenario, records)
	if err != nil {
		return nil, fmt.Errorf("failed to create store: %w", err)
	}
	defer closeStore()

	h := &Harness{store: st, logger: logger}
	h.api = api.New(st,
		api.WithLogger(logger),
		api.WithCacheOptions(cache.WithObserver(h.record)),
	)

	var watch *api.Watch
	if scenario.Watch {
		watch = h.api.WatchQuestions(ctx, func(api.QuestionsState) {})
		defer watch.Close()
	}

	result := NewResult()
	for i, step := range scenario.Steps {
		h.executeStep(ctx, i, step, result)
	}

	final, err := st.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read final state: %w", err)
	}
	result.Final = ids(final)
	if scenario.Final != nil {
		if msg := compareIDs("final", scenario.Final, result.Final); msg != "" {
			result.AddError(msg)
		}
	}
	if watch != nil {
		state := watch.State()
		result.Watched = ids(state.Data)
		if scenario.Final != nil {
			if msg := compareIDs("watched", result.Final, result.Watched); msg != "" {
				result.AddError(msg)
			}
		}
	}

	for _, ev := range h.Events() {
		result.AddEvent(ev)
	}
	return result, nil
}

// Events returns the cache events recorded so far.
func (h *Harness) Events() []cache.Event {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]cache.Event, len(h.events))
	copy(out, h.events)
	return out
}

func (h *Harness) record(ev cache.Event) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.events = append(h.events, ev)
}

// executeStep runs one step and records expectation failures on result.
func (h *Harness) executeStep(ctx context.Context, i int, step Step, result *Result) {
	out := outcome{}
	switch step.Op {
	case OpList:
		out.list, out.err = h.api.GetQuestions(ctx)
		out.isList = true
	case OpGet:
		out.one, out.err = h.api.GetQuestion(ctx, step.ID)
	case OpAdd:
		out.one, out.err = h.api.AddQuestion(ctx, *step.Input)
	case OpUpdate:
		out.one, out.err = h.api.UpdateQuestion(ctx, *step.Patch)
	case OpDelete:
		out.one.ID, out.err = h.api.DeleteQuestion(ctx, step.ID)
	}

	h.logger.Debug("scenario step",
		"index", i,
		"op", step.Op,
		"error", out.err,
	)

	for _, msg := range checkExpect(step.Expect, out) {
		result.AddError(fmt.Sprintf("steps[%d] %s: %s", i, step.Op, msg))
	}
}

func loadSeed(src string) ([]question.Question, error) {
	switch src {
	case "", SeedDefault:
		return seed.Default(), nil
	case SeedNone:
		return nil, nil
	default:
		return seed.Load(src)
	}
}

func openStore(ctx context.Context, s *Scenario, records []question.Question) (store.RecordStore, func(), error) {
	opts := []store.Option{store.WithIDGenerator(store.NewFixedGenerator(s.IDs...))}

	if s.Store != StoreSQLite {
		return store.NewMemory(records, opts...), func() {}, nil
	}

	db, err := store.OpenSQLite(":memory:", opts...)
	if err != nil {
		return nil, nil, err
	}
	if _, err := db.Seed(ctx, records); err != nil {
		db.Close()
		return nil, nil, err
	}
	return db, func() { db.Close() }, nil
}

func ids(qs []question.Question) []string {
	out := make([]string, len(qs))
	for i, q := range qs {
		out[i] = q.ID
	}
	return out
}
