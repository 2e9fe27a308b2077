// Package secondary defines the secondary ports (driven adapters) for the application.
// These are the interfaces through which the application drives external systems:
// the remote queue, the game server and durable storage.
package secondary

import (
	"context"

	"github.com/example/tebexd/internal/core/delivery"
)

// QueueClient defines the secondary port for the remote purchase queue.
// Implementations do not retry; the next reconciliation pass is the retry.
type QueueClient interface {
	// FetchQueue returns every account currently holding pending commands,
	// each with its offline-channel commands inline.
	FetchQueue(ctx context.Context) (*QueueSnapshot, error)

	// FetchOnlineCommands returns the online-channel commands for one account.
	FetchOnlineCommands(ctx context.Context, account delivery.AccountID) ([]delivery.Command, error)

	// LookupAccountID resolves a principal name to a remote account.
	// An unknown name returns found=false with a nil error.
	LookupAccountID(ctx context.Context, principal string) (account delivery.AccountID, found bool, err error)

	// DeleteCommands acknowledges dispatched commands. Callers log and
	// swallow the error.
	DeleteCommands(ctx context.Context, ids []delivery.CommandID) error
}

// QueueSnapshot is one read of the remote queue.
type QueueSnapshot struct {
	Accounts []QueuedAccount
}

// QueuedAccount is an account with pending commands.
type QueuedAccount struct {
	ID              delivery.AccountID
	Principal       string
	OfflineCommands []delivery.Command
}
