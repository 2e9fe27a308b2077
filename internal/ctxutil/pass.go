// Package ctxutil provides context utilities that can be safely imported anywhere.
// This package has no internal dependencies to avoid import cycles.
package ctxutil

import "context"

// PassKey is the context key for the reconciliation pass ID.
// Exported so it can be used consistently across packages.
type PassKey struct{}

// WithPassID returns a context with the pass ID embedded.
func WithPassID(ctx context.Context, passID string) context.Context {
	return context.WithValue(ctx, PassKey{}, passID)
}

// PassIDFromContext returns the pass ID from context, or empty string if not set.
// Work triggered by presence events carries no pass ID.
func PassIDFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(PassKey{}).(string); ok {
		return v
	}
	return ""
}
