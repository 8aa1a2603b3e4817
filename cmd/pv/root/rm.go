package root

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vova2plova/Progressivity/internal/ui"
)

func newRmCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rm <task-id>",
		Short: "Delete a task and its whole subtree",
		Long: `Delete a task, every descendant task, and every progress entry
recorded under that subtree. This cannot be undone.`,
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

			ok, err := svc.DeleteTask(ctx, id)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("task %s not found", shortID(id))
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n",
				ui.Warn.Render(ui.IconTrash+" Deleted"),
				ui.KindIcon(task.Kind),
				task.Title)
			return nil
		},
	}

	return cmd
}
