package harness

import "github.com/roach88/qbank/internal/cache"

// TraceEvent is one cache event in a scenario trace.
type TraceEvent struct {
	Seq  int64    `json:"seq"`
	Kind string   `json:"kind"`
	Key  string   `json:"key,omitempty"`
	Op   string   `json:"op,omitempty"`
	Tags []string `json:"tags,omitempty"`
	Err  string   `json:"err,omitempty"`
}

func traceEvent(ev cache.Event) TraceEvent {
	te := TraceEvent{
		Seq:  ev.Seq,
		Kind: string(ev.Kind),
		Op:   ev.Op,
		Err:  ev.Err,
	}
	if ev.Key != (cache.Key{}) {
		te.Key = ev.Key.String()
	}
	for _, t := range ev.Tags {
		te.Tags = append(te.Tags, t.String())
	}
	return te
}

// Result is the outcome of a test scenario execution.
type Result struct {
	// Pass indicates overall test success.
	// True if all expect clauses match.
	Pass bool `json:"pass"`

	// Trace contains every cache event in order.
	Trace []TraceEvent `json:"trace"`

	// Errors contains expectation failures.
	// Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`

	// Final is the store's id order after the last step.
	Final []string `json:"final"`

	// Watched is the subscribed list's id order after the last step,
	// when the scenario watches.
	Watched []string `json:"watched,omitempty"`
}

// NewResult creates a new passing result.
// Used as the starting point for test execution.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Trace:  []TraceEvent{},
		Errors: []string{},
		Final:  []string{},
	}
}

// AddError adds a validation error and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

// AddEvent appends a cache event to the trace.
func (r *Result) AddEvent(ev cache.Event) {
	r.Trace = append(r.Trace, traceEvent(ev))
}
