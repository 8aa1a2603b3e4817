package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vova2plova/Progressivity/internal/engine"
	"github.com/vova2plova/Progressivity/internal/ui"
)

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show an overview of your tasks and progress",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, owner, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			stats, err := svc.Stats(ctx, owner)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconChart, "Progress Overview"))
			fmt.Fprintln(out, ui.LabelValue("Overall", ui.ProgressBar(stats.OverallProgress, 24)))
			fmt.Fprintln(out, ui.LabelValue("Tasks", fmt.Sprintf("%d (%d goals, %d items)", stats.TotalTasks, stats.Containers, stats.Leaves)))
			fmt.Fprintln(out, ui.LabelValue("Entries", stats.ProgressEntries))
			fmt.Fprintln(out, "")

			fmt.Fprintln(out, ui.H2.Render("By status"))
			for _, s := range []engine.Status{engine.StatusPending, engine.StatusInProgress, engine.StatusCompleted, engine.StatusCancelled} {
				if n := stats.ByStatus[s]; n > 0 {
					fmt.Fprintf(out, "- %s %d\n", ui.StatusText(string(s)), n)
				}
			}
			return nil
		},
	}

	return cmd
}
