package api

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/roach88/qbank/internal/cache"
	"github.com/roach88/qbank/internal/question"
	"github.com/roach88/qbank/internal/store"
)

// TagType is the tag type of every question tag.
const TagType = "Questions"

// Query operation names, as they appear in cache keys.
const (
	OpGetQuestions = "getQuestions"
	OpGetQuestion  = "getQuestion"
)

// Mutation names, as they appear in cache events.
const (
	OpAddQuestion    = "addQuestion"
	OpUpdateQuestion = "updateQuestion"
	OpDeleteQuestion = "deleteQuestion"
)

// QuestionsKey is the cache key of the question list.
var QuestionsKey = cache.Key{Op: OpGetQuestions}

// QuestionKey is the cache key of a single question.
func QuestionKey(id string) cache.Key {
	return cache.Key{Op: OpGetQuestion, Arg: id}
}

// API routes question reads and writes through a cache.
//
// Thread-safety: API is safe for concurrent use.
type API struct {
	store  store.RecordStore
	cache  *cache.Cache
	logger *slog.Logger
}

// Option configures an API.
type Option func(*config)

type config struct {
	logger    *slog.Logger
	cacheOpts []cache.Option
}

// WithLogger sets the logger for the API and its cache.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithCacheOptions passes options through to the cache.
func WithCacheOptions(opts ...cache.Option) Option {
	return func(c *config) {
		c.cacheOpts = append(c.cacheOpts, opts...)
	}
}

// New creates an API over s with an empty cache.
func New(s store.RecordStore, opts ...Option) *API {
	cfg := config{logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
	for _, opt := range opts {
		opt(&cfg)
	}
	cacheOpts := append([]cache.Option{cache.WithLogger(cfg.logger)}, cfg.cacheOpts...)
	return &API{
		store:  s,
		cache:  cache.New(cacheOpts...),
		logger: cfg.logger,
	}
}

// Cache exposes the underlying cache for inspection.
func (a *API) Cache() *cache.Cache {
	return a.cache
}

// GetQuestions returns every question, most recent first.
func (a *API) GetQuestions(ctx context.Context) ([]question.Question, error) {
	v, err := a.cache.Query(ctx, a.questionsRequest())
	if err != nil {
		return nil, fmt.Errorf("get questions: %w", err)
	}
	return question.CloneAll(v.([]question.Question)), nil
}

// GetQuestion returns one question.
func (a *API) GetQuestion(ctx context.Context, id string) (question.Question, error) {
	v, err := a.cache.Query(ctx, a.questionRequest(id))
	if err != nil {
		return question.Question{}, fmt.Errorf("get question %s: %w", id, err)
	}
	return v.(question.Question).Clone(), nil
}

// AddQuestion creates a question. Title checks are the caller's job.
func (a *API) AddQuestion(ctx context.Context, in question.Input) (question.Question, error) {
	v, err := a.cache.Mutate(ctx, cache.Mutation{
		Name: OpAddQuestion,
		Apply: func(ctx context.Context) (any, error) {
			return a.store.Add(ctx, in)
		},
		Invalidates: func(any) []cache.Tag {
			return []cache.Tag{cache.ListTag(TagType)}
		},
	})
	if err != nil {
		return question.Question{}, fmt.Errorf("add question: %w", err)
	}
	q := v.(question.Question)
	a.logger.Info("question added", "id", q.ID, "title", q.Title)
	return q.Clone(), nil
}

// UpdateQuestion merges p into the question with p.ID.
// An unknown ID fails with a not-found error and invalidates nothing.
func (a *API) UpdateQuestion(ctx context.Context, p question.Patch) (question.Question, error) {
	v, err := a.cache.Mutate(ctx, cache.Mutation{
		Name: OpUpdateQuestion,
		Apply: func(ctx context.Context) (any, error) {
			return a.store.Update(ctx, p)
		},
		Invalidates: func(any) []cache.Tag {
			return []cache.Tag{cache.ItemTag(TagType, p.ID)}
		},
	})
	if err != nil {
		return question.Question{}, fmt.Errorf("update question %s: %w", p.ID, err)
	}
	q := v.(question.Question)
	a.logger.Info("question updated", "id", q.ID)
	return q.Clone(), nil
}

// DeleteQuestion removes the question with id. Deleting an absent id
// succeeds and returns id.
func (a *API) DeleteQuestion(ctx context.Context, id string) (string, error) {
	_, err := a.cache.Mutate(ctx, cache.Mutation{
		Name: OpDeleteQuestion,
		Apply: func(ctx context.Context) (any, error) {
			return a.store.Remove(ctx, id)
		},
		Invalidates: func(any) []cache.Tag {
			return []cache.Tag{cache.ItemTag(TagType, id), cache.ListTag(TagType)}
		},
	})
	if err != nil {
		return "", fmt.Errorf("delete question %s: %w", id, err)
	}
	a.logger.Info("question deleted", "id", id)
	return id, nil
}

func (a *API) questionsRequest() cache.Request {
	return cache.Request{
		Key: QuestionsKey,
		Fetch: func(ctx context.Context) (any, error) {
			return a.store.List(ctx)
		},
		Provides: func(result any, err error) []cache.Tag {
			list := cache.ListTag(TagType)
			if err != nil {
				return []cache.Tag{list}
			}
			qs := result.([]question.Question)
			tags := make([]cache.Tag, 0, len(qs)+1)
			for _, q := range qs {
				tags = append(tags, cache.ItemTag(TagType, q.ID))
			}
			return append(tags, list)
		},
	}
}

func (a *API) questionRequest(id string) cache.Request {
	return cache.Request{
		Key: QuestionKey(id),
		Fetch: func(ctx context.Context) (any, error) {
			return a.store.Get(ctx, id)
		},
		Provides: func(any, error) []cache.Tag {
			return []cache.Tag{cache.ItemTag(TagType, id)}
		},
	}
}
