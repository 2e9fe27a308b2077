package cli

import (
	"github.com/spf13/cobra"

	"github.com/example/tebexd/internal/wire"
)

// HistoryCmd returns the history command
func HistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent command deliveries",
		Long: `Show recent command deliveries, newest first.

Every executed, failed, buffered and flushed command is recorded.
Only the sqlite store keeps history.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			account, _ := cmd.Flags().GetString("account")
			limit, _ := cmd.Flags().GetInt("limit")
			_, err := wire.HistoryAdapterWithOutput(cmd.OutOrStdout()).List(cmd.Context(), account, limit)
			return err
		},
	}

	cmd.Flags().String("account", "", "Filter by account id")
	cmd.Flags().IntP("limit", "n", 50, "Maximum entries to show")

	return cmd
}
