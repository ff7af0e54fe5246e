package cli

import (
	"errors"
	"fmt"
	"io"
	"io/fs"

	"github.com/spf13/cobra"

	"github.com/roach88/qbank/internal/question"
	"github.com/roach88/qbank/internal/seed"
)

// ValidationResult holds validation results.
type ValidationResult struct {
	Valid     bool              `json:"valid"`
	Questions int               `json:"questions"`
	Errors    []ValidationError `json:"errors,omitempty"`
}

// ValidationError is one seed problem with its source position.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	File    string `json:"file,omitempty"`
	Line    int    `json:"line,omitempty"`
	Column  int    `json:"column,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <seed.cue>",
		Short: "Validate a seed file",
		Long: `Check a CUE seed file against the question schema.

Every question needs an id and a non-blank title. Ids and titles (ignoring
case) must be unique. Tags may be a comma separated string or a list.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true, // Don't print usage on errors
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runValidate(opts *RootOptions, path string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)

	qs, err := seed.Load(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			if outErr := formatter.Error(ErrCodeNotFound, fmt.Sprintf("seed file not found: %s", path), nil); outErr != nil {
				return outErr
			}
			return WrapExitError(ExitCommandError, "seed file not found", err)
		}
		return outputValidationFailure(formatter, err)
	}

	formatter.VerboseLog("Parsed %d question(s) from %s", len(qs), path)

	result := ValidationResult{Valid: true, Questions: len(qs)}
	return formatter.Success(result, func(w io.Writer) {
		fmt.Fprintf(w, "✓ %s is valid (%d questions)\n", path, len(qs))
		if opts.Verbose {
			for _, q := range qs {
				fmt.Fprintf(w, "  %s  %s [%s]\n", q.ID, q.Title, q.Difficulty.OrDefault())
			}
		}
	})
}

func outputValidationFailure(formatter *OutputFormatter, err error) error {
	verr := validationError(err)
	result := ValidationResult{Errors: []ValidationError{verr}}

	if formatter.Format == "json" {
		if outErr := formatter.Error(ErrCodeSeedInvalid, "seed validation failed", result); outErr != nil {
			return outErr
		}
	} else {
		w := formatter.Writer
		fmt.Fprintln(w, "✗ Seed validation failed")
		if verr.Line > 0 {
			fmt.Fprintf(w, "  %s:%d:%d: %s: %s\n", verr.File, verr.Line, verr.Column, verr.Field, verr.Message)
		} else {
			fmt.Fprintf(w, "  %s: %s\n", verr.Field, verr.Message)
		}
	}
	return WrapExitError(ExitFailure, "seed validation failed", err)
}

func validationError(err error) ValidationError {
	var seedErr *seed.Error
	if errors.As(err, &seedErr) {
		verr := ValidationError{Field: seedErr.Field, Message: seedErr.Message}
		if seedErr.Pos.IsValid() {
			verr.File = seedErr.Pos.Filename()
			verr.Line = seedErr.Pos.Line()
			verr.Column = seedErr.Pos.Column()
		}
		return verr
	}
	var qerr *question.Error
	if errors.As(err, &qerr) {
		return ValidationError{Field: qerr.Field, Message: qerr.Message}
	}
	return ValidationError{Field: "seed", Message: err.Error()}
}
