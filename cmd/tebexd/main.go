package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/tebexd/internal/cli"
	"github.com/example/tebexd/internal/version"
)

func main() {
	os.Exit(run())
}

func run() int {
	rootCmd := &cobra.Command{
		Use:     "tebexd",
		Short:   "tebexd - Tebex purchase delivery for game servers",
		Version: version.String(),
		Long: `tebexd polls the Tebex plugin API and delivers purchased commands to a game
server over RCON. Commands for offline players are buffered locally and run
when the player next joins.`,
		SilenceUsage:       true,
		SilenceErrors:      true,
		PersistentPreRunE:  cli.Setup,
		PersistentPostRunE: cli.Teardown,
	}
	cli.AddGlobalFlags(rootCmd)

	// Delivery
	rootCmd.AddCommand(cli.RunCmd())
	rootCmd.AddCommand(cli.PassCmd())
	rootCmd.AddCommand(cli.QueueCmd())

	// Local state
	rootCmd.AddCommand(cli.PendingCmd())
	rootCmd.AddCommand(cli.HistoryCmd())
	rootCmd.AddCommand(cli.ConfigCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}
