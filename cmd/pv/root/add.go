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

func newAddCmd() *cobra.Command {
	var parent string
	var kind string
	var description string
	var unit string
	var target float64
	var due string

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a goal or task",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("title is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, owner, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			in := engine.CreateTaskInput{Title: args[0]}
			if parent != "" {
				id, err := resolveTaskID(ctx, svc, parent)
				if err != nil {
					return err
				}
				in.ParentID = &id
			}
			if kind != "" {
				k, ok := engine.ParseKind(kind)
				if !ok {
					return fmt.Errorf("invalid kind %q (container|leaf)", kind)
				}
				in.Kind = k
			}
			if description != "" {
				in.Description = &description
			}
			if unit != "" {
				in.Unit = &unit
			}
			if cmd.Flags().Changed("target") {
				in.TargetValue = &target
			}
			if due != "" {
				d, err := time.Parse("2006-01-02", due)
				if err != nil {
					return fmt.Errorf("invalid due date %q (want YYYY-MM-DD)", due)
				}
				in.Deadline = &d
			}

			task, err := svc.CreateTask(ctx, in, owner)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s %s\n",
				ui.Good.Render(ui.IconPlus+" Added"),
				ui.KindIcon(task.Kind),
				task.Title,
				ui.Muted.Render("("+shortID(task.ID)+")"))
			return nil
		},
	}

	cmd.Flags().StringVarP(&parent, "parent", "p", "", "Parent task id (or unique prefix)")
	cmd.Flags().StringVarP(&kind, "kind", "k", "", "Task kind (container|leaf; default inferred from parent)")
	cmd.Flags().StringVarP(&description, "description", "d", "", "Description")
	cmd.Flags().StringVarP(&unit, "unit", "u", "", "Unit label for progress (pages, km, ...)")
	cmd.Flags().Float64VarP(&target, "target", "t", 0, "Target value (omit for a binary task)")
	cmd.Flags().StringVar(&due, "due", "", "Deadline (YYYY-MM-DD)")

	return cmd
}
