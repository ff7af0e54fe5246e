package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/roach88/qbank/internal/dashboard"
)

// AddOptions holds flags for the add command.
type AddOptions struct {
	*RootOptions
	Form dashboard.Form
}

// NewAddCommand creates the add command.
func NewAddCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &AddOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a question",
		Long: `Add a question to the bank.

The title is required and must not match an existing title (ignoring case
and surrounding whitespace). Tags are comma separated. Difficulty is one
of Easy, Medium or Hard and defaults to Easy.

Example:
  qbank add --title "What is a closure?" --tags "JS, Functions" --difficulty Medium`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAdd(opts, cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Form.Title, "title", "t", "", "question title (required)")
	cmd.Flags().StringVarP(&opts.Form.Answer, "answer", "a", "", "answer text")
	cmd.Flags().StringVar(&opts.Form.Tags, "tags", "", "comma separated tags")
	cmd.Flags().StringVarP(&opts.Form.Difficulty, "difficulty", "d", "Easy", "Easy, Medium or Hard")

	return cmd
}

func runAdd(opts *AddOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	ctx := commandContext(cmd)
	s, err := openSession(ctx, opts.RootOptions, cmd)
	if err != nil {
		return formatter.Fail("failed to open store", err)
	}
	defer s.close()

	q, err := s.model.Add(ctx, opts.Form)
	if err != nil {
		return formatter.Fail("failed to add question", err)
	}
	formatter.VerboseLog("Store now lists %d question(s)", s.model.View().Window.Total)

	return formatter.Success(q, func(w io.Writer) {
		fmt.Fprintf(w, "✓ Added question %s\n", q.ID)
		renderQuestion(w, q)
	})
}
