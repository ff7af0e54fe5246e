package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

// NewUpdateCommand creates the update command.
func NewUpdateCommand(rootOpts *RootOptions) *cobra.Command {
	var title, answer, tags, difficulty string

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Edit a question",
		Long: `Edit a listed question. Only the given flags change; the rest keep
their current values. The title must stay non-empty.

Example:
  qbank update 2 --difficulty Hard
  qbank update 2 --tags "CSS, Layout"`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := newFormatter(rootOpts, cmd)
			flags := cmd.Flags()
			if !flags.Changed("title") && !flags.Changed("answer") &&
				!flags.Changed("tags") && !flags.Changed("difficulty") {
				if err := formatter.Error(ErrCodeUsage, "nothing to update: pass at least one of --title, --answer, --tags, --difficulty", nil); err != nil {
					return err
				}
				return NewExitError(ExitCommandError, "nothing to update")
			}

			ctx := commandContext(cmd)
			s, err := openSession(ctx, rootOpts, cmd)
			if err != nil {
				return formatter.Fail("failed to open store", err)
			}
			defer s.close()

			form, err := s.model.BeginEdit(args[0])
			if err != nil {
				return formatter.Fail("failed to edit question", err)
			}
			if flags.Changed("title") {
				form.Title = title
			}
			if flags.Changed("answer") {
				form.Answer = answer
			}
			if flags.Changed("tags") {
				form.Tags = tags
			}
			if flags.Changed("difficulty") {
				form.Difficulty = difficulty
			}

			q, err := s.model.SubmitEdit(ctx, form)
			if err != nil {
				return formatter.Fail("failed to update question", err)
			}
			return formatter.Success(q, func(w io.Writer) {
				fmt.Fprintf(w, "✓ Updated question %s\n", q.ID)
				renderQuestion(w, q)
			})
		},
	}

	cmd.Flags().StringVarP(&title, "title", "t", "", "new title")
	cmd.Flags().StringVarP(&answer, "answer", "a", "", "new answer")
	cmd.Flags().StringVar(&tags, "tags", "", "new comma separated tags")
	cmd.Flags().StringVarP(&difficulty, "difficulty", "d", "", "new difficulty")

	return cmd
}
