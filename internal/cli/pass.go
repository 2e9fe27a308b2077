package cli

import (
	"github.com/spf13/cobra"

	"github.com/example/tebexd/internal/wire"
)

// PassCmd returns the pass command
func PassCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pass",
		Short: "Run a single reconciliation pass and exit",
		Long: `Run one reconciliation pass and print its report.

Presence flushes are not handled; use 'tebexd run' for that.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireRemote(); err != nil {
				return err
			}
			_, err := wire.QueueAdapter().Pass(cmd.Context())
			return err
		},
	}
}
