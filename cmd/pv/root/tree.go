package root

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vova2plova/Progressivity/internal/engine"
	"github.com/vova2plova/Progressivity/internal/ui"
)

func newTreeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tree [task-id]",
		Short: "Show the task tree with computed progress",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, owner, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			out := cmd.OutOrStdout()

			if len(args) == 1 {
				id, err := resolveTaskID(ctx, svc, args[0])
				if err != nil {
					return err
				}
				view, err := svc.GetTaskView(ctx, id)
				if err != nil {
					return err
				}
				printTree(out, *view, 0)
				return nil
			}

			roots, err := svc.RootsOf(ctx, owner)
			if err != nil {
				return err
			}
			if len(roots) == 0 {
				fmt.Fprintln(out, ui.Muted.Render("No tasks yet. Add one with: pv add \"My goal\""))
				return nil
			}
			for _, r := range roots {
				view, err := svc.GetTaskView(ctx, r.ID)
				if err != nil {
					return err
				}
				printTree(out, *view, 0)
			}
			return nil
		},
	}

	return cmd
}

func printTree(out io.Writer, view engine.TaskView, depth int) {
	indent := strings.Repeat("  ", depth)
	line := fmt.Sprintf("%s%s %s  %s  %s %s",
		indent,
		ui.KindIcon(view.Kind),
		view.Title,
		ui.ProgressBar(view.Progress, 16),
		ui.StatusText(view.Status),
		ui.Muted.Render("("+shortID(view.ID)+")"))
	if view.TotalChildren > 0 {
		line += ui.Muted.Render(fmt.Sprintf(" %d/%d done", view.CompletedChildren, view.TotalChildren))
	}
	fmt.Fprintln(out, line)
	for _, child := range view.Children {
		printTree(out, child, depth+1)
	}
}
