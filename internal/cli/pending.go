package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/tebexd/internal/wire"
)

// PendingCmd returns the pending command
func PendingCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pending",
		Short: "Inspect commands buffered for offline players",
	}

	cmd.AddCommand(pendingListCmd())
	cmd.AddCommand(pendingShowCmd())
	cmd.AddCommand(pendingClearCmd())

	return cmd
}

func pendingListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List buffered command batches",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := wire.PendingAdapterWithOutput(cmd.OutOrStdout()).List(cmd.Context())
			return err
		},
	}
}

func pendingShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <account-id> <online|offline>",
		Short: "Show the commands buffered for one account and channel",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := wire.PendingAdapterWithOutput(cmd.OutOrStdout()).Show(cmd.Context(), args[0], args[1])
			return err
		},
	}
}

func pendingClearCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clear <account-id>",
		Short: "Drop buffered commands without running them",
		Long: `Drop buffered commands without running them.

The commands remain queued remotely and are offered again on the next pass.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			channel, _ := cmd.Flags().GetString("channel")
			yes, _ := cmd.Flags().GetBool("yes")
			if !yes {
				return fmt.Errorf("refusing to clear without --yes")
			}
			return wire.PendingAdapterWithOutput(cmd.OutOrStdout()).Clear(cmd.Context(), args[0], channel)
		},
	}

	cmd.Flags().String("channel", "", "Only clear this channel (online or offline)")
	cmd.Flags().Bool("yes", false, "Confirm the clear")

	return cmd
}
