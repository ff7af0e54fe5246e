// Package harness runs YAML question scenarios against a fresh store and
// the caching API, checking each step's expectations and recording the
// cache's event trace.
//
// # Scenario Format
//
//	name: add_then_list
//	description: "Adding a question prepends it to the list"
//	store: memory          # or sqlite (in-memory database)
//	seed: default          # default, none, or a .cue file relative to the scenario
//	ids: ["100"]           # identifiers handed out to added questions, in order
//	watch: true            # keep a question-list subscription open
//	steps:
//	  - op: list
//	    expect: { count: 3 }
//	  - op: add
//	    input: { title: "New", tags: "a", difficulty: Easy }
//	    expect: { id: "100" }
//	  - op: update
//	    patch: { id: "999", title: "X" }
//	    expect: { error: NOT_FOUND }
//	final: ["100", "1", "2", "3"]
//
// Step ops are list, get, add, update and delete. An expect clause
// without error requires the step to succeed.
//
// # Deterministic Traces
//
// Identifiers come from the scenario's ids list and cache events are
// stamped by the cache's logical clock, so the same scenario always
// yields the same trace. RunWithGolden compares that trace against
// testdata/golden/<name>.golden.
package harness
