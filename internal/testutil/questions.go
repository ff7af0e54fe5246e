// Package testutil provides shared fixtures for tests across packages.
//
// It depends only on the question model so any package, including those
// it describes, can import it from _test files without import cycles.
package testutil

import (
	"strconv"

	"github.com/roach88/qbank/internal/question"
)

// Questions returns a fresh copy of the three default seed records:
// ids "1", "2", "3" in that order.
func Questions() []question.Question {
	return []question.Question{
		{
			ID:         "1",
			Title:      "What is React?",
			Answer:     "React is a JavaScript library for building user interfaces.",
			Tags:       question.Tags{"React", "Frontend", "JavaScript"},
			Difficulty: question.Easy,
		},
		{
			ID:         "2",
			Title:      "Explain Redux",
			Answer:     "Redux is a predictable state container for JavaScript apps.",
			Tags:       question.Tags{"Redux", "State Management"},
			Difficulty: question.Medium,
		},
		{
			ID:         "3",
			Title:      "What is Virtual DOM?",
			Answer:     "Virtual DOM is a lightweight copy of the actual DOM that allows React to update the UI efficiently.",
			Tags:       question.Tags{"React", "Performance"},
			Difficulty: question.Medium,
		},
	}
}

// ManyQuestions returns n generated records with ids "q1".."qn" and
// titles "Question 1".."Question n", for pagination tests.
func ManyQuestions(n int) []question.Question {
	qs := make([]question.Question, n)
	for i := range qs {
		qs[i] = question.Question{
			ID:         "q" + strconv.Itoa(i+1),
			Title:      "Question " + strconv.Itoa(i+1),
			Tags:       question.Tags{"generated"},
			Difficulty: question.Easy,
		}
	}
	return qs
}

// IDs extracts record ids in order.
func IDs(qs []question.Question) []string {
	ids := make([]string, len(qs))
	for i, q := range qs {
		ids[i] = q.ID
	}
	return ids
}
