package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

// DeleteResult is the JSON payload of the delete command.
type DeleteResult struct {
	ID    string `json:"id"`
	Total int    `json:"total"`
}

// NewDeleteCommand creates the delete command.
func NewDeleteCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a question",
		Long: `Delete a question. Deleting an id that does not exist succeeds.

Example:
  qbank delete 3`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := newFormatter(rootOpts, cmd)

			ctx := commandContext(cmd)
			s, err := openSession(ctx, rootOpts, cmd)
			if err != nil {
				return formatter.Fail("failed to open store", err)
			}
			defer s.close()

			if err := s.model.Delete(ctx, args[0]); err != nil {
				return formatter.Fail("failed to delete question", err)
			}

			res := DeleteResult{ID: args[0], Total: s.model.View().Window.Total}
			return formatter.Success(res, func(w io.Writer) {
				fmt.Fprintf(w, "✓ Deleted question %s (%d remaining)\n", res.ID, res.Total)
			})
		},
	}
}
