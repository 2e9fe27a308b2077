// Package primary defines the primary ports (driving adapters) for the application.
// These are the interfaces through which the outside world drives the application.
package primary

import (
	"context"
	"time"
)

// ReconcileService defines the primary port for reconciliation passes.
type ReconcileService interface {
	// RunPass performs one full reconciliation pass. Failures are reported
	// in the PassReport, never returned: the next pass is the retry.
	RunPass(ctx context.Context) *PassReport

	// PreviewQueue reads the remote queue without routing anything.
	PreviewQueue(ctx context.Context) ([]*QueueEntry, error)
}

// PassReport summarises one reconciliation pass.
type PassReport struct {
	PassID    string
	StartedAt time.Time
	Duration  time.Duration

	// Err is set when the queue could not be read and the pass did nothing.
	Err error

	Accounts int
	Executed int
	Failed   int
	Buffered int

	// Unrouted counts channel batches left for the next pass because a
	// fetch, presence lookup or buffer write failed.
	Unrouted int
}

// QueueEntry is one (account, channel) batch as currently offered remotely.
type QueueEntry struct {
	AccountID string
	Principal string
	Channel   string
	Commands  []CommandView
}

// CommandView is a queued command at the port boundary.
type CommandView struct {
	ID      int64
	Command string
}
