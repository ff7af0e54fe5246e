package dashboard

import (
	"strings"

	"github.com/roach88/qbank/internal/question"
)

// Form holds raw add/edit form input. Tags is comma separated text.
type Form struct {
	Title      string `json:"title" yaml:"title"`
	Answer     string `json:"answer,omitempty" yaml:"answer,omitempty"`
	Tags       string `json:"tags" yaml:"tags"`
	Difficulty string `json:"difficulty" yaml:"difficulty"`
}

// EditForm pre-fills the edit form from q.
func EditForm(q question.Question) Form {
	return Form{
		Title:      q.Title,
		Answer:     q.Answer,
		Tags:       q.Tags.String(),
		Difficulty: string(q.Difficulty.OrDefault()),
	}
}

// input converts an add form. The title must be non-empty and not
// collide with any of existing.
func (f Form) input(existing []question.Question) (question.Input, error) {
	if err := question.CheckNewTitle(f.Title, existing); err != nil {
		return question.Input{}, err
	}
	d, err := question.ParseDifficulty(f.Difficulty)
	if err != nil {
		return question.Input{}, err
	}
	return question.Input{
		Title:      strings.TrimSpace(f.Title),
		Answer:     f.Answer,
		Tags:       question.ParseTags(f.Tags),
		Difficulty: d,
	}, nil
}

// patch converts an edit form into a full patch for id. Titles are
// required but not checked for duplicates.
func (f Form) patch(id string) (question.Patch, error) {
	if err := question.ValidateTitle(f.Title); err != nil {
		return question.Patch{}, err
	}
	d, err := question.ParseDifficulty(f.Difficulty)
	if err != nil {
		return question.Patch{}, err
	}
	title := f.Title
	tags := question.ParseTags(f.Tags)
	return question.Patch{
		ID:         id,
		Title:      &title,
		Answer:     &f.Answer,
		Tags:       &tags,
		Difficulty: &d,
	}, nil
}
