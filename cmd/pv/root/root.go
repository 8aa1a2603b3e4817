package root

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vova2plova/Progressivity/internal/ui"
)

const Version = "0.1.0"

var rootCmd = &cobra.Command{
	Use:           "pv",
	Short:         "Progressivity, a personal goal and progress tracker",
	Long:          "Progressivity tracks goals as a tree of tasks and accumulates numeric progress against leaf tasks.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("{{.Name}} v{{.Version}}\n")

	rootCmd.AddCommand(
		newAddCmd(),
		newLogCmd(),
		newTreeCmd(),
		newHistoryCmd(),
		newEditCmd(),
		newDoneCmd(),
		newRmCmd(),
		newMvCmd(),
		newStatsCmd(),
		newSeedCmd(),
		newBoardCmd(),
		newServeCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, ui.Bad.Render(ui.IconError+" "+err.Error()))
		os.Exit(1)
	}
}
