package secondary

import "context"

// DeliveryAction names what happened to a command.
type DeliveryAction string

const (
	DeliveryExecuted DeliveryAction = "executed"
	DeliveryFailed   DeliveryAction = "failed"
	DeliveryBuffered DeliveryAction = "buffered"
	DeliveryFlushed  DeliveryAction = "flushed"
)

// DeliveryLog defines the secondary port for the delivery audit trail.
// Implementations read the pass ID from context.
type DeliveryLog interface {
	// Record appends one entry.
	Record(ctx context.Context, record *DeliveryRecord) error

	// Recent returns the newest entries first.
	Recent(ctx context.Context, filters DeliveryFilters) ([]*DeliveryRecord, error)
}

// DeliveryRecord represents one audit entry as stored in persistence.
type DeliveryRecord struct {
	ID        int64
	PassID    string
	AccountID string
	Principal string
	Channel   string
	CommandID int64
	Action    DeliveryAction
	Detail    string
	CreatedAt string
}

// DeliveryFilters contains filter options for querying the delivery log.
type DeliveryFilters struct {
	AccountID string
	Limit     int
}
