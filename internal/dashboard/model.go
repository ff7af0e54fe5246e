package dashboard

import (
	"context"
	"fmt"
	"sync"

	"github.com/roach88/qbank/internal/api"
	"github.com/roach88/qbank/internal/question"
)

// Status summarizes what the question table shows.
type Status string

const (
	StatusLoading Status = "loading"
	StatusFailed  Status = "failed"
	StatusEmpty   Status = "empty"
	StatusReady   Status = "ready"
)

// Message is the placeholder text for statuses without rows.
func (s Status) Message() string {
	switch s {
	case StatusLoading:
		return "Loading..."
	case StatusFailed:
		return "Failed to load"
	case StatusEmpty:
		return "No matching questions found."
	default:
		return ""
	}
}

// View is a rendered dashboard frame.
type View struct {
	Status    Status              `json:"status"`
	Search    string              `json:"search,omitempty"`
	Questions []question.Question `json:"questions"`
	Window    Window              `json:"window"`
	Fetching  bool                `json:"fetching,omitempty"`
}

// Model is the dashboard state machine over a live question list.
//
// Thread-safety: Model is safe for concurrent use. Render callbacks run
// without the model lock held.
type Model struct {
	api *api.API

	mu      sync.Mutex
	state   api.QuestionsState
	search  string
	page    int
	editing *question.Question
	watch   *api.Watch
	render  func(View)
}

// New creates a model over a. Call Start before use.
func New(a *api.API) *Model {
	return &Model{
		api:   a,
		page:  1,
		state: api.QuestionsState{IsLoading: true},
	}
}

// Start subscribes to the question list. render, if non-nil, receives a
// new View after every list change.
func (m *Model) Start(ctx context.Context, render func(View)) {
	m.mu.Lock()
	m.render = render
	m.mu.Unlock()

	w := m.api.WatchQuestions(ctx, m.onState)

	m.mu.Lock()
	m.watch = w
	m.mu.Unlock()
}

// Close ends the subscription.
func (m *Model) Close() {
	m.mu.Lock()
	w := m.watch
	m.watch = nil
	m.mu.Unlock()
	if w != nil {
		w.Close()
	}
}

func (m *Model) onState(st api.QuestionsState) {
	m.mu.Lock()
	m.state = st
	v := m.viewLocked()
	render := m.render
	m.mu.Unlock()

	if render != nil {
		render(v)
	}
}

// SetSearch changes the search term and returns to page 1.
func (m *Model) SetSearch(term string) View {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.search = term
	m.page = 1
	return m.viewLocked()
}

// SetPage moves to page p, clamped to the available pages.
func (m *Model) SetPage(p int) View {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.page = p
	return m.viewLocked()
}

// NextPage moves forward one page if possible.
func (m *Model) NextPage() View {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.page++
	return m.viewLocked()
}

// PrevPage moves back one page if possible.
func (m *Model) PrevPage() View {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.page--
	return m.viewLocked()
}

// View renders the current frame.
func (m *Model) View() View {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.viewLocked()
}

// Err returns the error of the last failed list fetch, or nil.
func (m *Model) Err() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.state.IsError {
		return nil
	}
	return m.state.Err
}

func (m *Model) viewLocked() View {
	filtered := Filter(m.state.Data, m.search)
	w := Paginate(len(filtered), m.page, PageSize)
	m.page = w.Page

	v := View{
		Search:    m.search,
		Questions: question.CloneAll(Slice(filtered, w)),
		Window:    w,
		Fetching:  m.state.IsFetching,
	}
	switch {
	case m.state.IsLoading:
		v.Status = StatusLoading
	case m.state.IsError:
		v.Status = StatusFailed
	case len(filtered) == 0:
		v.Status = StatusEmpty
	default:
		v.Status = StatusReady
	}
	if v.Status != StatusReady {
		v.Questions = []question.Question{}
	}
	return v
}

// Add validates f against the last fetched list and creates the
// question. Validation failures never reach the store.
func (m *Model) Add(ctx context.Context, f Form) (question.Question, error) {
	m.mu.Lock()
	existing := m.state.Data
	m.mu.Unlock()

	in, err := f.input(existing)
	if err != nil {
		return question.Question{}, err
	}
	return m.api.AddQuestion(ctx, in)
}

// BeginEdit opens the edit form for the listed question id.
func (m *Model) BeginEdit(id string) (Form, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, q := range m.state.Data {
		if q.ID == id {
			q = q.Clone()
			m.editing = &q
			return EditForm(q), nil
		}
	}
	return Form{}, question.NewNotFoundError(id)
}

// Editing returns the question being edited, if any.
func (m *Model) Editing() (question.Question, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.editing == nil {
		return question.Question{}, false
	}
	return m.editing.Clone(), true
}

// CancelEdit closes the edit form without saving.
func (m *Model) CancelEdit() {
	m.mu.Lock()
	m.editing = nil
	m.mu.Unlock()
}

// SubmitEdit saves f over the question opened by BeginEdit. The form
// stays open when the update fails.
func (m *Model) SubmitEdit(ctx context.Context, f Form) (question.Question, error) {
	m.mu.Lock()
	editing := m.editing
	m.mu.Unlock()
	if editing == nil {
		return question.Question{}, fmt.Errorf("submit edit: no question is being edited")
	}

	p, err := f.patch(editing.ID)
	if err != nil {
		return question.Question{}, err
	}
	q, err := m.api.UpdateQuestion(ctx, p)
	if err != nil {
		return question.Question{}, err
	}

	m.mu.Lock()
	if m.editing == editing {
		m.editing = nil
	}
	m.mu.Unlock()
	return q, nil
}

// Delete removes the question with id.
func (m *Model) Delete(ctx context.Context, id string) error {
	_, err := m.api.DeleteQuestion(ctx, id)
	return err
}
