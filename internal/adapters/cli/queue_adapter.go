package cli

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/fatih/color"

	"github.com/example/tebexd/internal/ports/primary"
)

// QueueAdapter translates CLI operations to ReconcileService calls.
type QueueAdapter struct {
	service primary.ReconcileService
	out     io.Writer
}

// NewQueueAdapter creates a new QueueAdapter with the given service.
func NewQueueAdapter(service primary.ReconcileService, out io.Writer) *QueueAdapter {
	return &QueueAdapter{
		service: service,
		out:     out,
	}
}

// Preview prints what the remote queue currently offers.
func (a *QueueAdapter) Preview(ctx context.Context) ([]*primary.QueueEntry, error) {
	entries, err := a.service.PreviewQueue(ctx)
	if err != nil {
		return nil, err
	}

	if len(entries) == 0 {
		fmt.Fprintln(a.out, "Remote queue is empty.")
		return entries, nil
	}

	w := tabwriter.NewWriter(a.out, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "ACCOUNT\tPLAYER\tCHANNEL\tID\tCOMMAND")
	fmt.Fprintln(w, "-------\t------\t-------\t--\t-------")
	for _, e := range entries {
		for _, c := range e.Commands {
			fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\n", e.AccountID, e.Principal, channelLabel(e.Channel), c.ID, c.Command)
		}
	}
	w.Flush()
	return entries, nil
}

// Pass runs one reconciliation pass and prints its report. A pass that
// could not read the queue is returned as an error.
func (a *QueueAdapter) Pass(ctx context.Context) (*primary.PassReport, error) {
	report := a.service.RunPass(ctx)
	if report.Err != nil {
		return report, fmt.Errorf("pass %s failed: %w", report.PassID, report.Err)
	}

	fmt.Fprintf(a.out, "✓ Pass %s complete in %s\n", report.PassID, report.Duration.Round(time.Millisecond))
	fmt.Fprintf(a.out, "  Accounts: %d\n", report.Accounts)
	fmt.Fprintf(a.out, "  Executed: %d\n", report.Executed)
	if report.Failed > 0 {
		fmt.Fprintf(a.out, "  Failed:   %s\n", color.New(color.FgRed).Sprint(report.Failed))
	}
	fmt.Fprintf(a.out, "  Buffered: %d\n", report.Buffered)
	if report.Unrouted > 0 {
		fmt.Fprintf(a.out, "  Unrouted: %s (retried next pass)\n", color.New(color.FgYellow).Sprint(report.Unrouted))
	}
	return report, nil
}
