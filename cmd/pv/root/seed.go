package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vova2plova/Progressivity/internal/ui"
)

func newSeedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Populate the store with demo data",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, owner, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			if err := svc.Seed(ctx, owner); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Good.Render(ui.IconSparkle+" Seeded demo data"))
			return nil
		},
	}

	return cmd
}
