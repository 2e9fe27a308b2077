package app

import (
	"context"

	"github.com/example/tebexd/internal/core/delivery"
	applog "github.com/example/tebexd/internal/log"
	"github.com/example/tebexd/internal/ports/secondary"
)

// FlushHandler drains buffered commands when a principal becomes present.
type FlushHandler struct {
	queue      secondary.QueueClient
	identities *IdentityCache
	buffer     *CommandBuffer
	executor   *CommandExecutor
	recorder   deliveryRecorder
}

// NewFlushHandler creates a FlushHandler with injected dependencies.
// deliveryLog may be nil.
func NewFlushHandler(
	queue secondary.QueueClient,
	identities *IdentityCache,
	buffer *CommandBuffer,
	executor *CommandExecutor,
	deliveryLog secondary.DeliveryLog,
) *FlushHandler {
	return &FlushHandler{
		queue:      queue,
		identities: identities,
		buffer:     buffer,
		executor:   executor,
		recorder:   deliveryRecorder{log: deliveryLog},
	}
}

// Handle dispatches a presence event. Spawns other than the first of a
// session are ignored.
func (h *FlushHandler) Handle(ctx context.Context, event secondary.PresenceEvent) {
	switch event.Kind {
	case secondary.PresenceJoined:
		h.HandleJoin(ctx, event.Principal)
	case secondary.PresenceSpawned:
		if !event.InitialSpawn {
			applog.Debug("ignoring respawn", "principal", event.Principal)
			return
		}
		h.HandleInitialSpawn(ctx, event.Principal)
	default:
		applog.Warn("unknown presence event", "kind", event.Kind, "principal", event.Principal)
	}
}

// HandleJoin warms the identity cache for a principal that just connected.
func (h *FlushHandler) HandleJoin(ctx context.Context, principal string) {
	account, found, err := h.queue.LookupAccountID(ctx, principal)
	if err != nil {
		applog.Warn("account lookup failed", "principal", principal, "error", err)
		return
	}
	if !found {
		applog.Debug("no remote account", "principal", principal)
		return
	}
	h.identities.Remember(account, principal)
}

// HandleInitialSpawn runs and clears the principal's buffers, offline
// first. Buffers are cleared and acknowledged even when commands fail;
// failed commands are not retried.
func (h *FlushHandler) HandleInitialSpawn(ctx context.Context, principal string) {
	account, ok := h.identities.ResolveByName(principal)
	if !ok {
		return
	}

	for _, channel := range delivery.Channels {
		commands, err := h.buffer.Load(ctx, account, channel)
		if err != nil {
			applog.Warn("failed to load buffer", "account", account, "channel", channel, "error", err)
			continue
		}
		if len(commands) == 0 {
			continue
		}

		outcomes := h.executor.Execute(ctx, principal, commands)
		if err := h.buffer.Clear(ctx, account, channel); err != nil {
			applog.Warn("failed to clear buffer after flush", "account", account, "channel", channel, "error", err)
		}
		acknowledge(ctx, h.queue, delivery.CommandIDs(commands))
		h.recorder.outcomes(ctx, account, principal, channel, outcomes, secondary.DeliveryFlushed)

		applog.Info("flushed buffered commands",
			"principal", principal,
			"channel", channel,
			"count", len(outcomes),
			"failed", countFailed(outcomes),
		)
	}
}
