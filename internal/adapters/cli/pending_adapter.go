// Package cli provides thin CLI adapters that translate between CLI concerns
// and application services. Adapters handle output formatting but delegate
// business logic to services.
package cli

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/example/tebexd/internal/ports/primary"
)

// PendingAdapter is a thin adapter that translates CLI operations to PendingService calls.
type PendingAdapter struct {
	service primary.PendingService
	out     io.Writer
}

// NewPendingAdapter creates a new PendingAdapter with the given service.
func NewPendingAdapter(service primary.PendingService, out io.Writer) *PendingAdapter {
	return &PendingAdapter{
		service: service,
		out:     out,
	}
}

// List prints every buffered batch.
func (a *PendingAdapter) List(ctx context.Context) ([]*primary.PendingEntry, error) {
	entries, err := a.service.ListPending(ctx)
	if err != nil {
		return nil, err
	}

	if len(entries) == 0 {
		fmt.Fprintln(a.out, "No pending commands.")
		return entries, nil
	}

	w := tabwriter.NewWriter(a.out, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "ACCOUNT\tCHANNEL\tCOMMANDS\tKEY")
	fmt.Fprintln(w, "-------\t-------\t--------\t---")
	for _, e := range entries {
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\n", e.AccountID, channelLabel(e.Channel), len(e.Commands), e.Key)
	}
	w.Flush()
	return entries, nil
}

// Show prints the commands buffered for one account and channel.
func (a *PendingAdapter) Show(ctx context.Context, accountID, channel string) (*primary.PendingEntry, error) {
	entry, err := a.service.ShowPending(ctx, accountID, channel)
	if err != nil {
		return nil, err
	}

	fmt.Fprintf(a.out, "\nAccount: %s\n", entry.AccountID)
	fmt.Fprintf(a.out, "Channel: %s\n", channelLabel(entry.Channel))
	fmt.Fprintf(a.out, "Key:     %s\n\n", entry.Key)
	printCommands(a.out, entry.Commands)
	fmt.Fprintln(a.out)
	return entry, nil
}

// Clear drops buffered commands without running them.
func (a *PendingAdapter) Clear(ctx context.Context, accountID, channel string) error {
	if err := a.service.ClearPending(ctx, accountID, channel); err != nil {
		return fmt.Errorf("failed to clear pending commands: %w", err)
	}

	scope := "all channels"
	if channel != "" {
		scope = channel + " channel"
	}
	fmt.Fprintf(a.out, "✓ Cleared pending commands for account %s (%s)\n", accountID, scope)
	return nil
}

func printCommands(out io.Writer, commands []primary.CommandView) {
	w := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "ID\tCOMMAND")
	fmt.Fprintln(w, "--\t-------")
	for _, c := range commands {
		fmt.Fprintf(w, "%d\t%s\n", c.ID, c.Command)
	}
	w.Flush()
}
