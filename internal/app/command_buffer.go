package app

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/example/tebexd/internal/core/delivery"
	applog "github.com/example/tebexd/internal/log"
	"github.com/example/tebexd/internal/ports/secondary"
)

// CommandBuffer persists commands for absent principals, one JSON array per
// (account, channel). Callers must not write the same key concurrently.
type CommandBuffer struct {
	store secondary.PropertyStore
}

// BufferedBatch is one stored buffer.
type BufferedBatch struct {
	Key      string
	Account  delivery.AccountID
	Channel  delivery.Channel
	Commands []delivery.Command
}

// NewCommandBuffer creates a buffer over the given property store.
func NewCommandBuffer(store secondary.PropertyStore) *CommandBuffer {
	return &CommandBuffer{store: store}
}

// Save replaces the buffer. An empty list clears it.
func (b *CommandBuffer) Save(ctx context.Context, account delivery.AccountID, channel delivery.Channel, commands []delivery.Command) error {
	if len(commands) == 0 {
		return b.Clear(ctx, account, channel)
	}

	key := delivery.BufferKey(account, channel)
	payload, err := json.Marshal(commands)
	if err != nil {
		return &SerializationError{Key: key, Err: err}
	}
	if err := b.store.Set(ctx, key, payload); err != nil {
		return fmt.Errorf("failed to save buffer %s: %w", key, err)
	}
	return nil
}

// Load returns the buffered commands, or nil when the buffer is absent or
// unreadable. Only store failures are returned.
func (b *CommandBuffer) Load(ctx context.Context, account delivery.AccountID, channel delivery.Channel) ([]delivery.Command, error) {
	return b.load(ctx, delivery.BufferKey(account, channel))
}

func (b *CommandBuffer) load(ctx context.Context, key string) ([]delivery.Command, error) {
	payload, found, err := b.store.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("failed to load buffer %s: %w", key, err)
	}
	if !found {
		return nil, nil
	}

	var commands []delivery.Command
	if err := json.Unmarshal(payload, &commands); err != nil {
		serr := &SerializationError{Key: key, Err: err}
		applog.Warn("discarding unreadable command buffer", "key", key, "error", serr)
		return nil, nil
	}
	return commands, nil
}

// Clear removes the buffer. Clearing an absent buffer is a no-op.
func (b *CommandBuffer) Clear(ctx context.Context, account delivery.AccountID, channel delivery.Channel) error {
	key := delivery.BufferKey(account, channel)
	if err := b.store.Delete(ctx, key); err != nil {
		return fmt.Errorf("failed to clear buffer %s: %w", key, err)
	}
	return nil
}

// Pending lists every stored buffer. Keys that are not buffer keys are
// skipped.
func (b *CommandBuffer) Pending(ctx context.Context) ([]BufferedBatch, error) {
	keys, err := b.store.Keys(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("failed to list buffers: %w", err)
	}

	var batches []BufferedBatch
	for _, key := range keys {
		account, channel, ok := delivery.ParseBufferKey(key)
		if !ok {
			continue
		}
		commands, err := b.load(ctx, key)
		if err != nil {
			return nil, err
		}
		batches = append(batches, BufferedBatch{
			Key:      key,
			Account:  account,
			Channel:  channel,
			Commands: commands,
		})
	}
	return batches, nil
}
