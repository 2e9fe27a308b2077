package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/example/tebexd/internal/wire"
)

// RunCmd returns the run command
func RunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the reconciliation daemon",
		Long: `Run the reconciliation daemon until interrupted.

Every poll interval the daemon reads the remote queue and, for each account,
either runs the commands on the game server (player online) or buffers them
until the player next joins. Joins are detected by polling the server's
player list over RCON; a player's first spawn of a session flushes their
buffered commands.

Examples:
  tebexd run
  tebexd run --interval-ticks 200        # poll every 10 seconds
  TEBEXD_TEBEX_SECRET=... tebexd run --config /etc/tebexd.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireRemote(); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return runDaemon(ctx)
		},
	}

	cmd.Flags().Int("interval-ticks", 0, "Poll interval in ticks, 20 ticks = 1s (overrides config)")

	return cmd
}

func runDaemon(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return wire.Watcher().Run(ctx)
	})
	g.Go(func() error {
		return wire.Daemon().Run(ctx)
	})
	return g.Wait()
}
