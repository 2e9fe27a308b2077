package secondary

import "context"

// PropertyStore defines the secondary port for durable, process-wide
// key-value state that survives restarts.
type PropertyStore interface {
	// Get returns the value stored under key; found is false when absent.
	Get(ctx context.Context, key string) (value []byte, found bool, err error)

	// Set stores value under key, replacing any prior value.
	Set(ctx context.Context, key string, value []byte) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Keys lists stored keys with the given prefix, sorted.
	Keys(ctx context.Context, prefix string) ([]string, error)
}
