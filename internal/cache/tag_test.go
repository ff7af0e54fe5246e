package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTag(t *testing.T) {
	assert.Equal(t, "Questions:LIST", ListTag("Questions").String())
	assert.True(t, ListTag("Questions").IsList())
	assert.False(t, ItemTag("Questions", "1").IsList())
	assert.Equal(t, "Questions:1", ItemTag("Questions", "1").String())
}

func TestKey_String(t *testing.T) {
	assert.Equal(t, "getQuestions()", Key{Op: "getQuestions"}.String())
	assert.Equal(t, "getQuestion(2)", Key{Op: "getQuestion", Arg: "2"}.String())
}

func TestSortKeys(t *testing.T) {
	keys := []Key{{Op: "b"}, {Op: "a", Arg: "2"}, {Op: "a", Arg: "1"}}
	sortKeys(keys)
	assert.Equal(t, []Key{{Op: "a", Arg: "1"}, {Op: "a", Arg: "2"}, {Op: "b"}}, keys)
}

func TestDedupeTags(t *testing.T) {
	a, b := ItemTag("T", "a"), ListTag("T")
	assert.Equal(t, []Tag{a, b}, dedupeTags([]Tag{a, b, a, b}))
	assert.Nil(t, dedupeTags(nil))
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "idle", StateIdle.String())
	assert.Equal(t, "fetching", StateFetching.String())
	assert.Equal(t, "valid", StateValid.String())
	assert.Equal(t, "invalidated", StateInvalidated.String())
	assert.Equal(t, "error", StateError.String())
	assert.Equal(t, "unknown", State(99).String())
}

func TestSnapshot_Flags(t *testing.T) {
	assert.True(t, Snapshot{State: StateIdle}.IsLoading())
	assert.True(t, Snapshot{State: StateFetching}.IsLoading())
	assert.False(t, Snapshot{State: StateFetching, HasData: true}.IsLoading())
	assert.True(t, Snapshot{State: StateFetching, HasData: true}.IsFetching())
	assert.True(t, Snapshot{State: StateError}.IsError())
}
