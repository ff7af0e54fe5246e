package harness

import (
	"errors"
	"fmt"
	"slices"

	"github.com/roach88/qbank/internal/question"
)

// outcome is what a step returned.
type outcome struct {
	list   []question.Question
	isList bool
	one    question.Question
	err    error
}

// checkExpect compares a step outcome to its expect clause and returns
// one message per mismatch. A nil clause still requires success.
func checkExpect(exp *Expect, out outcome) []string {
	if exp == nil {
		exp = &Expect{}
	}

	code := errorCode(out.err)
	if exp.Error != "" || out.err != nil {
		if exp.Error == "" {
			return []string{fmt.Sprintf("unexpected error: %v", out.err)}
		}
		if out.err == nil {
			return []string{fmt.Sprintf("expected error %s, got success", exp.Error)}
		}
		if string(code) != exp.Error {
			return []string{fmt.Sprintf("expected error %s, got %v", exp.Error, out.err)}
		}
		return nil
	}

	var msgs []string
	if out.isList {
		if exp.Count != nil && len(out.list) != *exp.Count {
			msgs = append(msgs, fmt.Sprintf("count: expected %d, got %d", *exp.Count, len(out.list)))
		}
		if exp.IDs != nil {
			if msg := compareIDs("ids", exp.IDs, ids(out.list)); msg != "" {
				msgs = append(msgs, msg)
			}
		}
		return msgs
	}

	q := out.one
	if exp.ID != "" && q.ID != exp.ID {
		msgs = append(msgs, fmt.Sprintf("id: expected %q, got %q", exp.ID, q.ID))
	}
	if exp.Title != "" && q.Title != exp.Title {
		msgs = append(msgs, fmt.Sprintf("title: expected %q, got %q", exp.Title, q.Title))
	}
	if exp.Tags != nil && !exp.Tags.Equal(q.Tags) {
		msgs = append(msgs, fmt.Sprintf("tags: expected %v, got %v", []string(*exp.Tags), []string(q.Tags)))
	}
	if exp.Difficulty != "" && string(q.Difficulty) != exp.Difficulty {
		msgs = append(msgs, fmt.Sprintf("difficulty: expected %s, got %s", exp.Difficulty, q.Difficulty))
	}
	return msgs
}

func compareIDs(what string, expected, actual []string) string {
	if slices.Equal(expected, actual) {
		return ""
	}
	return fmt.Sprintf("%s: expected %v, got %v", what, expected, actual)
}

func errorCode(err error) question.ErrorCode {
	var qe *question.Error
	if errors.As(err, &qe) {
		return qe.Code
	}
	return ""
}
