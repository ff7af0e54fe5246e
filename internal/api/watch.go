package api

import (
	"context"

	"github.com/roach88/qbank/internal/cache"
	"github.com/roach88/qbank/internal/question"
)

// QuestionsState is what a question-list subscriber sees.
type QuestionsState struct {
	// Data is the latest list. It keeps the previous result while a
	// re-fetch is in flight or after a failed one.
	Data []question.Question

	// IsLoading is true until the first result arrives.
	IsLoading bool

	// IsFetching is true during any fetch, including re-fetches.
	IsFetching bool

	// IsError is true when the last fetch failed; Err holds the cause.
	IsError bool
	Err     error
}

func questionsState(s cache.Snapshot) QuestionsState {
	st := QuestionsState{
		Data:       []question.Question{},
		IsLoading:  s.IsLoading(),
		IsFetching: s.IsFetching(),
		IsError:    s.IsError(),
		Err:        s.Err,
	}
	if qs, ok := s.Data.([]question.Question); ok && s.HasData {
		st.Data = question.CloneAll(qs)
	}
	return st
}

// Watch is an open subscription to the question list.
type Watch struct {
	sub *cache.Subscription
}

// WatchQuestions subscribes fn to the question list. fn is called with
// the current state when WatchQuestions returns (at the latest) and again
// on every change: the loading state, each settled fetch, and re-fetches
// triggered by mutations. fn runs synchronously on the goroutine causing
// the change and must not call mutation methods.
func (a *API) WatchQuestions(ctx context.Context, fn func(QuestionsState)) *Watch {
	sub := a.cache.Subscribe(ctx, a.questionsRequest(), func(s cache.Snapshot) {
		fn(questionsState(s))
	})
	return &Watch{sub: sub}
}

// State returns the current list state.
func (w *Watch) State() QuestionsState {
	return questionsState(w.sub.Snapshot())
}

// Refetch re-reads the list regardless of cache state.
func (w *Watch) Refetch(ctx context.Context) error {
	_, err := w.sub.Refetch(ctx)
	return err
}

// Close ends the subscription. Close is idempotent.
func (w *Watch) Close() {
	w.sub.Close()
}
