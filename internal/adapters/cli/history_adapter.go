package cli

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/example/tebexd/internal/ports/primary"
)

// HistoryAdapter translates CLI operations to HistoryService calls.
type HistoryAdapter struct {
	service primary.HistoryService
	out     io.Writer
}

// NewHistoryAdapter creates a new HistoryAdapter with the given service.
func NewHistoryAdapter(service primary.HistoryService, out io.Writer) *HistoryAdapter {
	return &HistoryAdapter{
		service: service,
		out:     out,
	}
}

// List prints recent deliveries, newest first.
func (a *HistoryAdapter) List(ctx context.Context, accountID string, limit int) ([]*primary.DeliveryEntry, error) {
	entries, err := a.service.ListDeliveries(ctx, primary.HistoryFilters{
		AccountID: accountID,
		Limit:     limit,
	})
	if err != nil {
		return nil, err
	}

	if len(entries) == 0 {
		fmt.Fprintln(a.out, "No deliveries recorded.")
		return entries, nil
	}

	w := tabwriter.NewWriter(a.out, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "TIME\tACCOUNT\tPLAYER\tCHANNEL\tID\tACTION\tDETAIL")
	fmt.Fprintln(w, "----\t-------\t------\t-------\t--\t------\t------")
	for _, e := range entries {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%s\t%s\n",
			e.CreatedAt,
			e.AccountID,
			e.Principal,
			e.Channel,
			e.CommandID,
			actionLabel(e.Action),
			e.Detail,
		)
	}
	w.Flush()
	return entries, nil
}
