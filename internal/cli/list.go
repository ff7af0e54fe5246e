package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/roach88/qbank/internal/dashboard"
	"github.com/roach88/qbank/internal/question"
)

// ListOptions holds flags for the list command.
type ListOptions struct {
	*RootOptions
	Search string
	Page   int
}

// NewListCommand creates the list command.
func NewListCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ListOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List questions",
		Long: `List questions, most recently added first, ten per page.

--search keeps questions whose title or tags contain the term (ignoring
case). Pages outside the available range are clamped.

Example:
  qbank list --search react
  qbank list --page 2 --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(opts, cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Search, "search", "s", "", "filter by title or tag")
	cmd.Flags().IntVarP(&opts.Page, "page", "p", 1, "page number")

	return cmd
}

func runList(opts *ListOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	s, err := openSession(commandContext(cmd), opts.RootOptions, cmd)
	if err != nil {
		return formatter.Fail("failed to open store", err)
	}
	defer s.close()

	s.model.SetSearch(opts.Search)
	view := s.model.SetPage(opts.Page)
	if view.Status == dashboard.StatusFailed {
		return formatter.Fail("failed to load questions", s.model.Err())
	}

	return formatter.Success(view, func(w io.Writer) {
		renderView(w, view)
	})
}

func renderView(w io.Writer, view dashboard.View) {
	if view.Status != dashboard.StatusReady {
		fmt.Fprintln(w, view.Status.Message())
		return
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tTAGS\tDIFFICULTY")
	for _, q := range view.Questions {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", q.ID, q.Title, q.Tags, q.Difficulty)
	}
	tw.Flush()
	fmt.Fprintf(w, "%s (page %d/%d)\n", view.Window.Label(), view.Window.Page, view.Window.Pages)
}

func renderQuestion(w io.Writer, q question.Question) {
	fmt.Fprintf(w, "ID:         %s\n", q.ID)
	fmt.Fprintf(w, "Title:      %s\n", q.Title)
	fmt.Fprintf(w, "Tags:       %s\n", q.Tags)
	fmt.Fprintf(w, "Difficulty: %s\n", q.Difficulty)
	if q.Answer != "" {
		fmt.Fprintf(w, "Answer:     %s\n", q.Answer)
	}
}
