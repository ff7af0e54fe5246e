package question

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// FoldTitle returns the comparison form of a title: trimmed, NFC
// normalized and case folded. Two titles are duplicates iff their folded
// forms are equal.
func FoldTitle(title string) string {
	return Fold(strings.TrimSpace(title))
}

// Fold NFC-normalizes and case-folds s. Search matching uses the same fold.
func Fold(s string) string {
	return cases.Fold().String(norm.NFC.String(s))
}

// ValidateTitle rejects titles that are empty after trimming.
func ValidateTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return NewValidationError("title", "Title is required")
	}
	return nil
}

// CheckNewTitle validates a title for creation against the currently
// known records. Duplicates are only rejected here; edits are not
// re-validated.
func CheckNewTitle(title string, existing []Question) error {
	if err := ValidateTitle(title); err != nil {
		return err
	}
	folded := FoldTitle(title)
	for _, q := range existing {
		if FoldTitle(q.Title) == folded {
			e := NewValidationError("title", "A question with this title already exists")
			e.ID = q.ID
			return e
		}
	}
	return nil
}
