package cli

import (
	"io"

	"github.com/spf13/cobra"
)

// NewShowCommand creates the show command.
func NewShowCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one question",
		Long: `Show a single question, including its answer.

Example:
  qbank show 1
  qbank show 1 --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(rootOpts, args[0], cmd)
		},
	}
}

func runShow(opts *RootOptions, id string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)

	ctx := commandContext(cmd)
	s, err := openSession(ctx, opts, cmd)
	if err != nil {
		return formatter.Fail("failed to open store", err)
	}
	defer s.close()

	q, err := s.api.GetQuestion(ctx, id)
	if err != nil {
		return formatter.Fail("failed to get question", err)
	}

	return formatter.Success(q, func(w io.Writer) {
		renderQuestion(w, q)
	})
}
