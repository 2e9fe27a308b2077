package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/example/tebexd/internal/ports/primary"
	"github.com/example/tebexd/internal/ports/secondary"
)

// ErrHistoryUnavailable is returned when the configured store keeps no
// delivery log.
var ErrHistoryUnavailable = errors.New("delivery history requires the sqlite store")

// HistoryServiceImpl implements the HistoryService interface.
type HistoryServiceImpl struct {
	deliveryLog secondary.DeliveryLog
}

// NewHistoryService creates a new HistoryService. deliveryLog may be nil.
func NewHistoryService(deliveryLog secondary.DeliveryLog) *HistoryServiceImpl {
	return &HistoryServiceImpl{deliveryLog: deliveryLog}
}

// ListDeliveries retrieves audit entries matching the given filters.
func (s *HistoryServiceImpl) ListDeliveries(ctx context.Context, filters primary.HistoryFilters) ([]*primary.DeliveryEntry, error) {
	if s.deliveryLog == nil {
		return nil, ErrHistoryUnavailable
	}

	records, err := s.deliveryLog.Recent(ctx, secondary.DeliveryFilters{
		AccountID: filters.AccountID,
		Limit:     filters.Limit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list deliveries: %w", err)
	}

	entries := make([]*primary.DeliveryEntry, len(records))
	for i, r := range records {
		entries[i] = &primary.DeliveryEntry{
			ID:        r.ID,
			PassID:    r.PassID,
			AccountID: r.AccountID,
			Principal: r.Principal,
			Channel:   r.Channel,
			CommandID: r.CommandID,
			Action:    string(r.Action),
			Detail:    r.Detail,
			CreatedAt: r.CreatedAt,
		}
	}
	return entries, nil
}

// Ensure HistoryServiceImpl implements the interface
var _ primary.HistoryService = (*HistoryServiceImpl)(nil)
