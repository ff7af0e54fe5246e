package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/qbank/internal/dashboard"
	"github.com/roach88/qbank/internal/question"
	"github.com/roach88/qbank/internal/testutil"
)

type listResponse struct {
	Status string         `json:"status"`
	Data   dashboard.View `json:"data"`
}

type questionResponse struct {
	Status string            `json:"status"`
	Data   question.Question `json:"data"`
	Error  *CLIError         `json:"error"`
}

func decode[T any](t *testing.T, out string) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal([]byte(out), &v), out)
	return v
}

func tempDB(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "qbank.db")
}

func TestList_DefaultSeed(t *testing.T) {
	out, _, err := execute(t, "list")
	require.NoError(t, err)

	assert.Contains(t, out, "What is React?")
	assert.Contains(t, out, "React, Frontend, JavaScript")
	assert.Contains(t, out, "Showing 1-3 of 3 (page 1/1)")
}

func TestList_SearchJSON(t *testing.T) {
	out, _, err := execute(t, "--format", "json", "list", "--search", "REDUX")
	require.NoError(t, err)

	resp := decode[listResponse](t, out)
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, dashboard.StatusReady, resp.Data.Status)
	assert.Equal(t, []string{"2"}, testutil.IDs(resp.Data.Questions))
	assert.Equal(t, 1, resp.Data.Window.Total)
}

func TestList_SearchMatchesTags(t *testing.T) {
	out, _, err := execute(t, "--format", "json", "list", "-s", "performance")
	require.NoError(t, err)

	resp := decode[listResponse](t, out)
	assert.Equal(t, []string{"3"}, testutil.IDs(resp.Data.Questions))
}

func TestList_NoMatches(t *testing.T) {
	out, _, err := execute(t, "list", "--search", "kubernetes")
	require.NoError(t, err)
	assert.Equal(t, "No matching questions found.\n", out)
}

func TestList_PageClamped(t *testing.T) {
	out, _, err := execute(t, "--format", "json", "list", "--page", "9")
	require.NoError(t, err)

	resp := decode[listResponse](t, out)
	assert.Equal(t, 1, resp.Data.Window.Page)
	assert.Len(t, resp.Data.Questions, 3)
}

func TestList_CustomSeed(t *testing.T) {
	seedFile := filepath.Join("..", "harness", "testdata", "seeds", "two.cue")
	out, _, err := execute(t, "--seed", seedFile, "--format", "json", "list")
	require.NoError(t, err)

	resp := decode[listResponse](t, out)
	assert.Equal(t, []string{"a", "b"}, testutil.IDs(resp.Data.Questions))
	assert.Equal(t, question.Hard, resp.Data.Questions[1].Difficulty)
}

func TestList_InvalidSeed(t *testing.T) {
	seedFile := filepath.Join(t.TempDir(), "bad.cue")
	require.NoError(t, os.WriteFile(seedFile, []byte(`questions: [{id: "1", title: "A"}, {id: "1", title: "B"}]`), 0644))

	out, _, err := execute(t, "--seed", seedFile, "list")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, out, "Error [E301]")
}

func TestShow(t *testing.T) {
	out, _, err := execute(t, "show", "2")
	require.NoError(t, err)

	assert.Contains(t, out, "Title:      Explain Redux")
	assert.Contains(t, out, "Difficulty: Medium")
	assert.Contains(t, out, "Answer:     Redux is a predictable state container")
}

func TestShow_NotFound(t *testing.T) {
	out, _, err := execute(t, "--format", "json", "show", "999")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	resp := decode[questionResponse](t, out)
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, ErrCodeNoQuestion, resp.Error.Code)
}

func TestAdd_PersistsInDatabase(t *testing.T) {
	db := tempDB(t)

	out, _, err := execute(t, "--db", db, "--format", "json", "add",
		"--title", "  What is a closure?  ",
		"--tags", "JavaScript, ,Functions",
		"--difficulty", "Medium")
	require.NoError(t, err)

	added := decode[questionResponse](t, out).Data
	assert.NotEmpty(t, added.ID)
	assert.Equal(t, "What is a closure?", added.Title)
	assert.Equal(t, question.Tags{"JavaScript", "Functions"}, added.Tags)
	assert.Equal(t, question.Medium, added.Difficulty)

	out, _, err = execute(t, "--db", db, "--format", "json", "list")
	require.NoError(t, err)
	resp := decode[listResponse](t, out)
	assert.Equal(t, []string{added.ID, "1", "2", "3"}, testutil.IDs(resp.Data.Questions))
}

func TestAdd_DefaultsDifficulty(t *testing.T) {
	out, _, err := execute(t, "--format", "json", "add", "--title", "What is JSX?")
	require.NoError(t, err)
	assert.Equal(t, question.Easy, decode[questionResponse](t, out).Data.Difficulty)
}

func TestAdd_RejectsInvalidTitles(t *testing.T) {
	tests := []struct {
		name  string
		title string
	}{
		{"empty", ""},
		{"blank", "   "},
		{"duplicate_folded", "  what is REACT?  "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := tempDB(t)
			out, _, err := execute(t, "--db", db, "add", "--title", tt.title)
			require.Error(t, err)
			assert.Equal(t, ExitFailure, GetExitCode(err))
			assert.Contains(t, out, "Error [E201]")

			out, _, err = execute(t, "--db", db, "--format", "json", "list")
			require.NoError(t, err)
			assert.Len(t, decode[listResponse](t, out).Data.Questions, 3)
		})
	}
}

func TestAdd_RejectsUnknownDifficulty(t *testing.T) {
	out, _, err := execute(t, "add", "--title", "New", "--difficulty", "Impossible")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "Error [E201]")
}

func TestUpdate_ChangesOnlyGivenFields(t *testing.T) {
	db := tempDB(t)

	out, _, err := execute(t, "--db", db, "--format", "json", "update", "2", "--difficulty", "Hard")
	require.NoError(t, err)
	updated := decode[questionResponse](t, out).Data
	assert.Equal(t, question.Hard, updated.Difficulty)
	assert.Equal(t, "Explain Redux", updated.Title)
	assert.Equal(t, question.Tags{"Redux", "State Management"}, updated.Tags)

	out, _, err = execute(t, "--db", db, "--format", "json", "show", "2")
	require.NoError(t, err)
	assert.Equal(t, updated, decode[questionResponse](t, out).Data)
}

func TestUpdate_AllowsExistingTitle(t *testing.T) {
	out, _, err := execute(t, "--format", "json", "update", "2", "--title", "What is React?")
	require.NoError(t, err)
	assert.Equal(t, "What is React?", decode[questionResponse](t, out).Data.Title)
}

func TestUpdate_RejectsEmptyTitle(t *testing.T) {
	out, _, err := execute(t, "update", "2", "--title", "")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "Error [E201]")
}

func TestUpdate_NothingToUpdate(t *testing.T) {
	out, _, err := execute(t, "update", "2")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, out, "Error [E008]")
}

func TestUpdate_UnknownID(t *testing.T) {
	out, _, err := execute(t, "update", "999", "--title", "x")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "Error [E202]")
}

func TestDelete(t *testing.T) {
	db := tempDB(t)

	out, _, err := execute(t, "--db", db, "delete", "3")
	require.NoError(t, err)
	assert.Equal(t, "✓ Deleted question 3 (2 remaining)\n", out)

	out, _, err = execute(t, "--db", db, "--format", "json", "delete", "3")
	require.NoError(t, err)
	res := decode[struct {
		Data DeleteResult `json:"data"`
	}](t, out)
	assert.Equal(t, DeleteResult{ID: "3", Total: 2}, res.Data)
}
