package primary

import "context"

// PendingService defines the primary port for inspecting buffered commands.
type PendingService interface {
	// ListPending returns every non-empty buffer.
	ListPending(ctx context.Context) ([]*PendingEntry, error)

	// ShowPending returns one buffer.
	ShowPending(ctx context.Context, accountID, channel string) (*PendingEntry, error)

	// ClearPending drops a buffer. An empty channel clears both channels.
	ClearPending(ctx context.Context, accountID, channel string) error
}

// PendingEntry is a buffered batch awaiting the principal's next join.
type PendingEntry struct {
	Key       string
	AccountID string
	Channel   string
	Commands  []CommandView
}
