package store

import (
	"context"

	"github.com/roach88/qbank/internal/question"
)

// RecordStore is the backend the cache layer reads from and writes to.
// Implementations must be safe for concurrent use; the operations are
// linearizable with respect to each other.
type RecordStore interface {
	// List returns every record, most recently added first.
	List(ctx context.Context) ([]question.Question, error)

	// Get returns one record or a not-found error.
	Get(ctx context.Context, id string) (question.Question, error)

	// Add stores a new record under a fresh ID and returns it.
	Add(ctx context.Context, in question.Input) (question.Question, error)

	// Update merges p into the record with p.ID.
	Update(ctx context.Context, p question.Patch) (question.Question, error)

	// Remove deletes the record with id if present and returns id.
	Remove(ctx context.Context, id string) (string, error)
}

// Option configures a store.
type Option func(*options)

type options struct {
	ids IDGenerator
}

// WithIDGenerator overrides the identifier source (default UUIDv7Generator).
func WithIDGenerator(g IDGenerator) Option {
	return func(o *options) {
		o.ids = g
	}
}

func buildOptions(opts []Option) options {
	o := options{ids: UUIDv7Generator{}}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func duplicateIDError(id string) error {
	e := question.NewValidationError("id", "identifier already in use")
	e.ID = id
	return e
}
