package primary

import "context"

// HistoryService defines the primary port for the delivery audit trail.
type HistoryService interface {
	// ListDeliveries retrieves audit entries matching the given filters,
	// newest first.
	ListDeliveries(ctx context.Context, filters HistoryFilters) ([]*DeliveryEntry, error)
}

// DeliveryEntry represents one audit entry at the port boundary.
type DeliveryEntry struct {
	ID        int64
	PassID    string // empty for flushes triggered by presence
	AccountID string
	Principal string
	Channel   string
	CommandID int64
	Action    string // 'executed', 'failed', 'buffered', 'flushed'
	Detail    string
	CreatedAt string
}

// HistoryFilters contains filter options for querying deliveries.
type HistoryFilters struct {
	AccountID string
	Limit     int
}
