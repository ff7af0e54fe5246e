package seed

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/qbank/internal/question"
	"github.com/roach88/qbank/internal/testutil"
)

func TestDefault_MatchesFixtures(t *testing.T) {
	assert.Equal(t, testutil.Questions(), Default())
}

func TestParse_TagForms(t *testing.T) {
	qs, err := Parse("tags.cue", []byte(`
questions: [
	{id: "a", title: "String tags", tags: " React, ,Redux "},
	{id: "b", title: "List tags", tags: ["React", " Redux", ""]},
	{id: "c", title: "No tags"},
]
`))
	require.NoError(t, err)
	require.Len(t, qs, 3)
	assert.Equal(t, question.Tags{"React", "Redux"}, qs[0].Tags)
	assert.Equal(t, qs[0].Tags, qs[1].Tags, "string and list forms normalize identically")
	assert.Equal(t, question.Tags{}, qs[2].Tags)
}

func TestParse_Defaults(t *testing.T) {
	qs, err := Parse("defaults.cue", []byte(`questions: [{id: "a", title: "Minimal"}]`))
	require.NoError(t, err)
	require.Len(t, qs, 1)
	assert.Equal(t, question.Easy, qs[0].Difficulty)
	assert.Equal(t, "", qs[0].Answer)
}

func TestParse_Empty(t *testing.T) {
	qs, err := Parse("empty.cue", []byte(`questions: []`))
	require.NoError(t, err)
	assert.NotNil(t, qs)
	assert.Empty(t, qs)
}

func TestParse_Rejects(t *testing.T) {
	tests := []struct {
		name  string
		src   string
		field string
	}{
		{"syntax error", `questions: [`, "cue"},
		{"missing questions", `other: 1`, "questions"},
		{"bad difficulty", `questions: [{id: "a", title: "T", difficulty: "Impossible"}]`, "cue"},
		{"blank title", `questions: [{id: "a", title: "   "}]`, "cue"},
		{"empty id", `questions: [{id: "", title: "T"}]`, "cue"},
		{"unknown field", `questions: [{id: "a", title: "T", level: 3}]`, "cue"},
		{"duplicate id", `questions: [{id: "a", title: "T"}, {id: "a", title: "U"}]`, "id"},
		{"duplicate title", `questions: [{id: "a", title: "Explain Redux"}, {id: "b", title: " explain redux "}]`, "title"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse("bad.cue", []byte(tt.src))
			require.Error(t, err)
			var seedErr *Error
			if assert.True(t, errors.As(err, &seedErr), "got %T: %v", err, err) {
				assert.Equal(t, tt.field, seedErr.Field)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "seed.cue")
	require.NoError(t, os.WriteFile(path, []byte(`questions: [{id: "x", title: "From file", difficulty: "Hard"}]`), 0o644))

	qs, err := Load(path)
	require.NoError(t, err)
	require.Len(t, qs, 1)
	assert.Equal(t, "x", qs[0].ID)
	assert.Equal(t, question.Hard, qs[0].Difficulty)

	_, err = Load(filepath.Join(dir, "missing.cue"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
