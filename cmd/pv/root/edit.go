package root

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vova2plova/Progressivity/internal/engine"
	"github.com/vova2plova/Progressivity/internal/ui"
)

func newEditCmd() *cobra.Command {
	var title string
	var description string
	var clearDescription bool
	var status string
	var unit string
	var target float64
	var clearTarget bool
	var due string
	var clearDue bool

	cmd := &cobra.Command{
		Use:   "edit <task-id>",
		Short: "Edit a task's fields",
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

			var in engine.UpdateTaskInput
			if cmd.Flags().Changed("title") {
				in.Title = engine.Set(title)
			}
			switch {
			case clearDescription:
				in.Description = engine.Clear[string]()
			case cmd.Flags().Changed("description"):
				in.Description = engine.Set(description)
			}
			if cmd.Flags().Changed("status") {
				s, ok := engine.ParseStatus(status)
				if !ok {
					return fmt.Errorf("invalid status %q", status)
				}
				in.Status = engine.Set(s)
			}
			if cmd.Flags().Changed("unit") {
				in.Unit = engine.Set(unit)
			}
			switch {
			case clearTarget:
				in.TargetValue = engine.Clear[float64]()
			case cmd.Flags().Changed("target"):
				in.TargetValue = engine.Set(target)
			}
			switch {
			case clearDue:
				in.Deadline = engine.Clear[time.Time]()
			case cmd.Flags().Changed("due"):
				d, err := time.Parse("2006-01-02", due)
				if err != nil {
					return fmt.Errorf("invalid due date %q (want YYYY-MM-DD)", due)
				}
				in.Deadline = engine.Set(d)
			}

			task, err := svc.UpdateTask(ctx, id, in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s %s\n",
				ui.Good.Render(ui.IconSparkle+" Updated"),
				ui.KindIcon(task.Kind),
				task.Title,
				ui.StatusText(task.Status))
			return nil
		},
	}

	cmd.Flags().StringVarP(&title, "title", "t", "", "New title")
	cmd.Flags().StringVarP(&description, "description", "d", "", "New description")
	cmd.Flags().BoolVar(&clearDescription, "clear-description", false, "Clear the description")
	cmd.Flags().StringVarP(&status, "status", "s", "", "New status (pending|in_progress|completed|cancelled)")
	cmd.Flags().StringVarP(&unit, "unit", "u", "", "New unit label")
	cmd.Flags().Float64Var(&target, "target", 0, "New target value")
	cmd.Flags().BoolVar(&clearTarget, "clear-target", false, "Make the task binary (drop the target)")
	cmd.Flags().StringVar(&due, "due", "", "New deadline (YYYY-MM-DD)")
	cmd.Flags().BoolVar(&clearDue, "clear-due", false, "Clear the deadline")

	return cmd
}
