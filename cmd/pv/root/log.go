package root

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/vova2plova/Progressivity/internal/engine"
	"github.com/vova2plova/Progressivity/internal/ui"
)

func newLogCmd() *cobra.Command {
	var note string
	var at string

	cmd := &cobra.Command{
		Use:   "log <task-id> <value>",
		Short: "Record progress against a leaf task",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 2 {
				return errors.New("task id and value are required")
			}
			if _, err := strconv.ParseFloat(args[1], 64); err != nil {
				return errors.New("value must be a number")
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
			value, _ := strconv.ParseFloat(args[1], 64)

			in := engine.AddProgressInput{Value: value}
			if note != "" {
				in.Note = &note
			}
			if at != "" {
				recorded, err := parseWhen(at)
				if err != nil {
					return err
				}
				in.RecordedAt = &recorded
			}

			entry, err := svc.AddProgress(ctx, id, in)
			if err != nil {
				return err
			}

			task, err := svc.GetTask(ctx, id)
			if err != nil {
				return err
			}
			ratio, err := svc.CompletionRatio(ctx, id)
			if err != nil {
				return err
			}

			unit := ""
			if task.Unit != nil {
				unit = " " + *task.Unit
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %+g%s on %s\n",
				ui.Good.Render(ui.IconChart+" Logged"), entry.Value, unit, task.Title)
			fmt.Fprintln(cmd.OutOrStdout(), ui.ProgressBar(ratio*100, 24))
			return nil
		},
	}

	cmd.Flags().StringVarP(&note, "note", "n", "", "Note attached to the entry")
	cmd.Flags().StringVar(&at, "at", "", "When the work happened (YYYY-MM-DD or RFC3339; default now)")

	return cmd
}

func parseWhen(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time %q (want YYYY-MM-DD or RFC3339)", s)
	}
	return t, nil
}
