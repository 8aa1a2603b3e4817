package root

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vova2plova/Progressivity/internal/ui"
)

func newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history <task-id>",
		Short: "List a task's progress entries",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("task id is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, _, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			id, err := resolveTaskID(ctx, svc, args[0])
			if err != nil {
				return err
			}
			task, err := svc.GetTask(ctx, id)
			if err != nil {
				return err
			}
			entries, err := svc.ListProgress(ctx, id)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconChart, task.Title))
			if len(entries) == 0 {
				fmt.Fprintln(out, ui.Muted.Render("No progress recorded yet."))
				return nil
			}

			unit := ""
			if task.Unit != nil {
				unit = " " + *task.Unit
			}
			var total float64
			for _, e := range entries {
				total += e.Value
				line := fmt.Sprintf("%s  %+g%s", e.RecordedAt.Format("2006-01-02"), e.Value, unit)
				if e.Note != nil {
					line += "  " + ui.Muted.Render(*e.Note)
				}
				line += "  " + ui.Muted.Render("("+shortID(e.ID)+")")
				fmt.Fprintln(out, line)
			}

			if task.TargetValue != nil {
				fmt.Fprintln(out, ui.LabelValue("Total", fmt.Sprintf("%g / %g%s", total, *task.TargetValue, unit)))
			} else {
				fmt.Fprintln(out, ui.LabelValue("Total", fmt.Sprintf("%g%s", total, unit)))
			}
			return nil
		},
	}

	return cmd
}
