package store

import (
	"context"
	"sync"

	"github.com/roach88/qbank/internal/question"
)

// Memory is an in-process RecordStore.
//
// Each Memory owns its records; there is no shared package state, so tests
// can run in parallel against separate instances.
type Memory struct {
	mu      sync.RWMutex
	records []question.Question
	ids     IDGenerator
}

var _ RecordStore = (*Memory)(nil)

// NewMemory creates a store holding a copy of seed, in seed order.
func NewMemory(seed []question.Question, opts ...Option) *Memory {
	o := buildOptions(opts)
	return &Memory{
		records: question.CloneAll(seed),
		ids:     o.ids,
	}
}

// List returns a snapshot copy of all records.
func (m *Memory) List(ctx context.Context) ([]question.Question, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return question.CloneAll(m.records), nil
}

// Get returns the record with id.
func (m *Memory) Get(ctx context.Context, id string) (question.Question, error) {
	if err := ctx.Err(); err != nil {
		return question.Question{}, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if i := m.indexOf(id); i >= 0 {
		return m.records[i].Clone(), nil
	}
	return question.Question{}, question.NewNotFoundError(id)
}

// Add prepends a new record.
func (m *Memory) Add(ctx context.Context, in question.Input) (question.Question, error) {
	if err := ctx.Err(); err != nil {
		return question.Question{}, err
	}
	if err := in.Validate(); err != nil {
		return question.Question{}, err
	}
	id := m.ids.Generate()

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.indexOf(id) >= 0 {
		return question.Question{}, duplicateIDError(id)
	}
	q := in.New(id)
	records := make([]question.Question, 0, len(m.records)+1)
	records = append(records, q)
	m.records = append(records, m.records...)
	return q.Clone(), nil
}

// Update merges p into the matching record in place.
func (m *Memory) Update(ctx context.Context, p question.Patch) (question.Question, error) {
	if err := ctx.Err(); err != nil {
		return question.Question{}, err
	}
	if err := p.Validate(); err != nil {
		return question.Question{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	i := m.indexOf(p.ID)
	if i < 0 {
		return question.Question{}, question.NewNotFoundError(p.ID)
	}
	m.records[i] = p.Apply(m.records[i])
	return m.records[i].Clone(), nil
}

// Remove drops the record with id. Missing ids are not an error.
func (m *Memory) Remove(ctx context.Context, id string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	kept := m.records[:0:0]
	for _, q := range m.records {
		if q.ID != id {
			kept = append(kept, q)
		}
	}
	m.records = kept
	return id, nil
}

// Len returns the current record count.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.records)
}

func (m *Memory) indexOf(id string) int {
	for i, q := range m.records {
		if q.ID == id {
			return i
		}
	}
	return -1
}
