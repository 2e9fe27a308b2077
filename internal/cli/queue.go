package cli

import (
	"github.com/spf13/cobra"

	"github.com/example/tebexd/internal/wire"
)

// QueueCmd returns the queue command
func QueueCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "queue",
		Short: "Show the remote command queue without delivering anything",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireRemote(); err != nil {
				return err
			}
			_, err := wire.QueueAdapter().Preview(cmd.Context())
			return err
		},
	}
}
