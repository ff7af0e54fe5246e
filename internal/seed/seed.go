// Package seed loads initial question records from CUE files validated
// against an embedded schema.
package seed

import (
	_ "embed"
	"fmt"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"

	"github.com/roach88/qbank/internal/question"
)

//go:embed schema.cue
var schemaSrc []byte

//go:embed default.cue
var defaultSrc []byte

// Error is a seed validation failure, with the CUE position when known.
type Error struct {
	Field   string
	Message string
	Pos     token.Pos
}

func (e *Error) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s",
			e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(),
			e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Default returns the built-in seed records.
//
// Panics if the embedded seed is invalid.
func Default() []question.Question {
	qs, err := Parse("default.cue", defaultSrc)
	if err != nil {
		panic(fmt.Sprintf("seed: embedded default seed: %v", err))
	}
	return qs
}

// Load reads and parses the seed file at path.
func Load(path string) ([]question.Question, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed: %w", err)
	}
	return Parse(path, src)
}

// Parse validates src against the seed schema and returns its records in
// file order. filename is used in error positions.
func Parse(filename string, src []byte) ([]question.Question, error) {
	ctx := cuecontext.New()

	schema := ctx.CompileBytes(schemaSrc, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return nil, fmt.Errorf("compile seed schema: %w", err)
	}

	v := ctx.CompileBytes(src, cue.Filename(filename))
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}

	if !v.LookupPath(cue.ParsePath("questions")).Exists() {
		return nil, &Error{Field: "questions", Message: "questions is required", Pos: v.Pos()}
	}

	v = schema.Unify(v)
	if err := v.Validate(cue.Concrete(true)); err != nil {
		return nil, formatCUEError(err)
	}

	list := v.LookupPath(cue.ParsePath("questions"))
	iter, err := list.List()
	if err != nil {
		return nil, formatCUEError(err)
	}

	qs := []question.Question{}
	for iter.Next() {
		q, err := parseQuestion(iter.Value())
		if err != nil {
			return nil, err
		}
		if err := checkUnique(q, qs, iter.Value().Pos()); err != nil {
			return nil, err
		}
		qs = append(qs, q)
	}
	return qs, nil
}

func parseQuestion(v cue.Value) (question.Question, error) {
	var q question.Question
	var err error

	if q.ID, err = field(v, "id").String(); err != nil {
		return q, formatCUEError(err)
	}
	if q.Title, err = field(v, "title").String(); err != nil {
		return q, formatCUEError(err)
	}
	if q.Answer, err = field(v, "answer").String(); err != nil {
		return q, formatCUEError(err)
	}

	// tags: string or list
	tagsVal := field(v, "tags")
	switch tagsVal.Kind() {
	case cue.StringKind:
		s, _ := tagsVal.String()
		q.Tags = question.ParseTags(s)
	default:
		var list []string
		if err := tagsVal.Decode(&list); err != nil {
			return q, formatCUEError(err)
		}
		q.Tags = question.NormalizeTags(list)
	}

	d, err := field(v, "difficulty").String()
	if err != nil {
		return q, formatCUEError(err)
	}
	if q.Difficulty, err = question.ParseDifficulty(d); err != nil {
		return q, &Error{Field: "difficulty", Message: err.Error(), Pos: v.Pos()}
	}
	return q, nil
}

// field looks up name in v and resolves its default.
func field(v cue.Value, name string) cue.Value {
	f := v.LookupPath(cue.ParsePath(name))
	if d, ok := f.Default(); ok {
		return d
	}
	return f
}

// checkUnique enforces the store invariants: ids are unique and titles
// are unique under FoldTitle.
func checkUnique(q question.Question, seen []question.Question, pos token.Pos) error {
	for _, other := range seen {
		if other.ID == q.ID {
			return &Error{Field: "id", Message: fmt.Sprintf("duplicate id %q", q.ID), Pos: pos}
		}
	}
	if err := question.CheckNewTitle(q.Title, seen); err != nil {
		return &Error{Field: "title", Message: fmt.Sprintf("%q: %v", q.Title, err), Pos: pos}
	}
	return nil
}

// formatCUEError extracts position info from CUE errors.
func formatCUEError(err error) error {
	errs := errors.Errors(err)
	if len(errs) == 0 {
		return err
	}

	first := errs[0]
	if positions := errors.Positions(first); len(positions) > 0 {
		return &Error{
			Field:   "cue",
			Message: first.Error(),
			Pos:     positions[0],
		}
	}
	return err
}
