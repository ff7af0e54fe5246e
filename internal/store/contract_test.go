package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/qbank/internal/question"
	"github.com/roach88/qbank/internal/testutil"
)

func strPtr(s string) *string { return &s }

func TestRecordStore_List_SeedOrder(t *testing.T) {
	forEachStore(t, func(t *testing.T, newStore storeFactory) {
		s := seeded(t, newStore)

		qs, err := s.List(t.Context())
		require.NoError(t, err)
		assert.Equal(t, testutil.Questions(), qs)
	})
}

func TestRecordStore_List_EmptyIsNotNil(t *testing.T) {
	forEachStore(t, func(t *testing.T, newStore storeFactory) {
		s := newStore(t, nil)

		qs, err := s.List(t.Context())
		require.NoError(t, err)
		assert.NotNil(t, qs)
		assert.Empty(t, qs)
	})
}

func TestRecordStore_List_ReturnsSnapshot(t *testing.T) {
	forEachStore(t, func(t *testing.T, newStore storeFactory) {
		s := seeded(t, newStore)

		qs, err := s.List(t.Context())
		require.NoError(t, err)
		qs[0].Title = "mutated"
		qs[0].Tags[0] = "mutated"

		again, err := s.List(t.Context())
		require.NoError(t, err)
		assert.Equal(t, "What is React?", again[0].Title)
		assert.Equal(t, "React", again[0].Tags[0])
	})
}

func TestRecordStore_Add_PrependsWithFreshID(t *testing.T) {
	forEachStore(t, func(t *testing.T, newStore storeFactory) {
		s := seeded(t, newStore, "100")

		created, err := s.Add(t.Context(), question.Input{
			Title: "New",
			Tags:  question.Tags{"a"},
		})
		require.NoError(t, err)
		assert.Equal(t, "100", created.ID)
		assert.Equal(t, question.Easy, created.Difficulty)

		qs, err := s.List(t.Context())
		require.NoError(t, err)
		require.Len(t, qs, 4)
		assert.Equal(t, created, qs[0])
		assert.Equal(t, []string{"100", "1", "2", "3"}, testutil.IDs(qs))
	})
}

func TestRecordStore_Add_DefaultGeneratorIsUnique(t *testing.T) {
	forEachStore(t, func(t *testing.T, newStore storeFactory) {
		s := newStore(t, testutil.Questions())

		a, err := s.Add(t.Context(), question.Input{Title: "a"})
		require.NoError(t, err)
		b, err := s.Add(t.Context(), question.Input{Title: "b"})
		require.NoError(t, err)

		assert.NotEqual(t, a.ID, b.ID)
		for _, seed := range []string{"1", "2", "3"} {
			assert.NotEqual(t, seed, a.ID)
		}
	})
}

func TestRecordStore_Add_DuplicateIDRejected(t *testing.T) {
	forEachStore(t, func(t *testing.T, newStore storeFactory) {
		s := seeded(t, newStore, "2")

		_, err := s.Add(t.Context(), question.Input{Title: "clash"})
		require.Error(t, err)
		assert.True(t, question.IsValidation(err))

		qs, err := s.List(t.Context())
		require.NoError(t, err)
		assert.Len(t, qs, 3)
	})
}

func TestRecordStore_RejectsUnknownDifficulty(t *testing.T) {
	forEachStore(t, func(t *testing.T, newStore storeFactory) {
		s := seeded(t, newStore, "100")
		extreme := question.Difficulty("Extreme")

		_, err := s.Add(t.Context(), question.Input{Title: "x", Difficulty: extreme})
		require.Error(t, err)
		assert.True(t, question.IsValidation(err), "got %v", err)
		var qerr *question.Error
		require.ErrorAs(t, err, &qerr)
		assert.Equal(t, "difficulty", qerr.Field)

		_, err = s.Update(t.Context(), question.Patch{ID: "2", Difficulty: &extreme})
		require.Error(t, err)
		assert.True(t, question.IsValidation(err), "got %v", err)

		qs, err := s.List(t.Context())
		require.NoError(t, err)
		assert.Equal(t, testutil.Questions(), qs)

		created, err := s.Add(t.Context(), question.Input{Title: "y"})
		require.NoError(t, err)
		assert.Equal(t, "100", created.ID, "rejected add must not consume an id")
	})
}

func TestRecordStore_Update_PartialMerge(t *testing.T) {
	forEachStore(t, func(t *testing.T, newStore storeFactory) {
		s := seeded(t, newStore)

		updated, err := s.Update(t.Context(), question.Patch{ID: "2", Title: strPtr("Explain Redux Toolkit")})
		require.NoError(t, err)
		assert.Equal(t, "Explain Redux Toolkit", updated.Title)

		got, err := s.Get(t.Context(), "2")
		require.NoError(t, err)
		assert.Equal(t, "Explain Redux Toolkit", got.Title)
		assert.Equal(t, question.Tags{"Redux", "State Management"}, got.Tags)
		assert.Equal(t, question.Medium, got.Difficulty)

		qs, err := s.List(t.Context())
		require.NoError(t, err)
		assert.Equal(t, []string{"1", "2", "3"}, testutil.IDs(qs), "update keeps position")
	})
}

func TestRecordStore_Update_NotFound(t *testing.T) {
	forEachStore(t, func(t *testing.T, newStore storeFactory) {
		s := seeded(t, newStore)

		_, err := s.Update(t.Context(), question.Patch{ID: "999", Title: strPtr("X")})
		require.Error(t, err)
		assert.True(t, question.IsNotFound(err))

		qs, err := s.List(t.Context())
		require.NoError(t, err)
		assert.Equal(t, testutil.Questions(), qs)
	})
}

func TestRecordStore_Get_NotFound(t *testing.T) {
	forEachStore(t, func(t *testing.T, newStore storeFactory) {
		s := seeded(t, newStore)

		_, err := s.Get(t.Context(), "nope")
		assert.True(t, question.IsNotFound(err))
	})
}

func TestRecordStore_Remove_Idempotent(t *testing.T) {
	forEachStore(t, func(t *testing.T, newStore storeFactory) {
		s := seeded(t, newStore)

		id, err := s.Remove(t.Context(), "1")
		require.NoError(t, err)
		assert.Equal(t, "1", id)

		id, err = s.Remove(t.Context(), "1")
		require.NoError(t, err)
		assert.Equal(t, "1", id)

		qs, err := s.List(t.Context())
		require.NoError(t, err)
		assert.Equal(t, []string{"2", "3"}, testutil.IDs(qs))
	})
}

func TestRecordStore_SequenceNetEffect(t *testing.T) {
	forEachStore(t, func(t *testing.T, newStore storeFactory) {
		s := seeded(t, newStore, "a", "b", "c")
		ctx := t.Context()

		_, err := s.Add(ctx, question.Input{Title: "A"})
		require.NoError(t, err)
		_, err = s.Add(ctx, question.Input{Title: "B", Tags: question.ParseTags("x, y")})
		require.NoError(t, err)
		_, err = s.Remove(ctx, "2")
		require.NoError(t, err)
		hard := question.Hard
		_, err = s.Update(ctx, question.Patch{ID: "a", Difficulty: &hard})
		require.NoError(t, err)
		_, err = s.Add(ctx, question.Input{Title: "C"})
		require.NoError(t, err)
		_, err = s.Remove(ctx, "b")
		require.NoError(t, err)

		qs, err := s.List(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"c", "a", "1", "3"}, testutil.IDs(qs))
		assert.Equal(t, question.Hard, qs[1].Difficulty)
	})
}

func TestRecordStore_TagsRoundTrip(t *testing.T) {
	forEachStore(t, func(t *testing.T, newStore storeFactory) {
		s := seeded(t, newStore, "s", "l")

		fromString, err := s.Add(t.Context(), question.Input{Title: "s", Tags: question.ParseTags(" go, ,concurrency ")})
		require.NoError(t, err)
		fromList, err := s.Add(t.Context(), question.Input{Title: "l", Tags: question.Tags{"go", "concurrency", ""}})
		require.NoError(t, err)

		a, err := s.Get(t.Context(), fromString.ID)
		require.NoError(t, err)
		b, err := s.Get(t.Context(), fromList.ID)
		require.NoError(t, err)
		assert.Equal(t, question.Tags{"go", "concurrency"}, a.Tags)
		assert.Equal(t, a.Tags, b.Tags)
	})
}
