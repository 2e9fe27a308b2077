package app

import (
	"context"
	"fmt"

	"github.com/example/tebexd/internal/core/delivery"
	"github.com/example/tebexd/internal/ports/primary"
)

// PendingServiceImpl implements the PendingService interface.
type PendingServiceImpl struct {
	buffer *CommandBuffer
}

// NewPendingService creates a new PendingService with injected dependencies.
func NewPendingService(buffer *CommandBuffer) *PendingServiceImpl {
	return &PendingServiceImpl{buffer: buffer}
}

// ListPending returns every stored buffer.
func (s *PendingServiceImpl) ListPending(ctx context.Context) ([]*primary.PendingEntry, error) {
	batches, err := s.buffer.Pending(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending commands: %w", err)
	}

	entries := make([]*primary.PendingEntry, len(batches))
	for i, b := range batches {
		entries[i] = &primary.PendingEntry{
			Key:       b.Key,
			AccountID: string(b.Account),
			Channel:   string(b.Channel),
			Commands:  commandViews(b.Commands),
		}
	}
	return entries, nil
}

// ShowPending returns the buffer for one account and channel.
func (s *PendingServiceImpl) ShowPending(ctx context.Context, accountID, channel string) (*primary.PendingEntry, error) {
	ch, err := delivery.ParseChannel(channel)
	if err != nil {
		return nil, err
	}
	account := delivery.AccountID(accountID)

	commands, err := s.buffer.Load(ctx, account, ch)
	if err != nil {
		return nil, err
	}
	if len(commands) == 0 {
		return nil, fmt.Errorf("no pending %s commands for account %s", ch, accountID)
	}
	return &primary.PendingEntry{
		Key:       delivery.BufferKey(account, ch),
		AccountID: accountID,
		Channel:   string(ch),
		Commands:  commandViews(commands),
	}, nil
}

// ClearPending drops buffered commands without running them.
func (s *PendingServiceImpl) ClearPending(ctx context.Context, accountID, channel string) error {
	channels := delivery.Channels
	if channel != "" {
		ch, err := delivery.ParseChannel(channel)
		if err != nil {
			return err
		}
		channels = []delivery.Channel{ch}
	}

	for _, ch := range channels {
		if err := s.buffer.Clear(ctx, delivery.AccountID(accountID), ch); err != nil {
			return err
		}
	}
	return nil
}

// Ensure PendingServiceImpl implements the interface
var _ primary.PendingService = (*PendingServiceImpl)(nil)
