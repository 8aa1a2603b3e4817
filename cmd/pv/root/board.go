package root

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/vova2plova/Progressivity/internal/tui"
)

func newBoardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "board",
		Short: "Open the TUI dashboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, owner, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			return tui.RunBoard(ctx, svc, owner, cmd.OutOrStdout())
		},
	}

	return cmd
}
