package dashboard

import (
	"strings"

	"github.com/roach88/qbank/internal/question"
)

// Filter returns the questions whose title or displayed tag list
// contains term, ignoring case. An empty term matches everything.
func Filter(qs []question.Question, term string) []question.Question {
	out := make([]question.Question, 0, len(qs))
	needle := question.Fold(term)
	for _, q := range qs {
		if needle == "" ||
			strings.Contains(question.Fold(q.Title), needle) ||
			strings.Contains(question.Fold(q.Tags.String()), needle) {
			out = append(out, q)
		}
	}
	return out
}
