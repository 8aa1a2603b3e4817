package root

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/vova2plova/Progressivity/internal/engine"
	"github.com/vova2plova/Progressivity/internal/ui"
)

func newMvCmd() *cobra.Command {
	var parent string
	var toRoot bool

	cmd := &cobra.Command{
		Use:   "mv <task-id> <position>",
		Short: "Move a task among its siblings (optionally to a new parent)",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 2 {
				return errors.New("task id and position are required")
			}
			if _, err := strconv.Atoi(args[1]); err != nil {
				return errors.New("position must be an integer")
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
			position, _ := strconv.Atoi(args[1])
			if position < 0 {
				return errors.New("position must not be negative")
			}

			in := engine.ReorderTaskInput{NewPosition: position}
			switch {
			case toRoot:
				in.NewParentID = engine.Clear[string]()
			case parent != "":
				pid, err := resolveTaskID(ctx, svc, parent)
				if err != nil {
					return err
				}
				in.NewParentID = engine.Set(pid)
			}

			ok, err := svc.ReorderTask(ctx, id, in)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("task %s not found", shortID(id))
			}

			task, err := svc.GetTask(ctx, id)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s → position %d\n",
				ui.Good.Render(ui.IconMove+" Moved"),
				ui.KindIcon(task.Kind),
				task.Title,
				task.Position)
			return nil
		},
	}

	cmd.Flags().StringVarP(&parent, "parent", "p", "", "New parent task id (or unique prefix)")
	cmd.Flags().BoolVar(&toRoot, "root", false, "Move the task to the root level")

	return cmd
}
