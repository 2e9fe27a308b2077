package app

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/example/tebexd/internal/core/delivery"
	"github.com/example/tebexd/internal/ctxutil"
	applog "github.com/example/tebexd/internal/log"
	"github.com/example/tebexd/internal/ports/primary"
	"github.com/example/tebexd/internal/ports/secondary"
)

// Reconciler implements the ReconcileService interface.
type Reconciler struct {
	queue      secondary.QueueClient
	presence   secondary.PresenceProvider
	identities *IdentityCache
	buffer     *CommandBuffer
	executor   *CommandExecutor
	recorder   deliveryRecorder
}

// NewReconciler creates a Reconciler with injected dependencies.
// deliveryLog may be nil.
func NewReconciler(
	queue secondary.QueueClient,
	presence secondary.PresenceProvider,
	identities *IdentityCache,
	buffer *CommandBuffer,
	executor *CommandExecutor,
	deliveryLog secondary.DeliveryLog,
) *Reconciler {
	return &Reconciler{
		queue:      queue,
		presence:   presence,
		identities: identities,
		buffer:     buffer,
		executor:   executor,
		recorder:   deliveryRecorder{log: deliveryLog},
	}
}

// RunPass performs one reconciliation pass.
func (r *Reconciler) RunPass(ctx context.Context) *primary.PassReport {
	report := &primary.PassReport{
		PassID:    uuid.NewString(),
		StartedAt: time.Now(),
	}
	ctx = ctxutil.WithPassID(ctx, report.PassID)
	defer func() { report.Duration = time.Since(report.StartedAt) }()

	snapshot, err := r.queue.FetchQueue(ctx)
	if err != nil {
		applog.Warn("queue fetch failed, skipping pass", "pass", report.PassID, "error", err)
		report.Err = err
		return report
	}

	for _, account := range snapshot.Accounts {
		report.Accounts++
		r.identities.Remember(account.ID, account.Principal)

		r.route(ctx, report, account, delivery.ChannelOffline, account.OfflineCommands)

		online, err := r.queue.FetchOnlineCommands(ctx, account.ID)
		if err != nil {
			applog.Warn("online command fetch failed", "account", account.ID, "error", err)
			report.Unrouted++
			continue
		}
		r.route(ctx, report, account, delivery.ChannelOnline, online)
	}

	applog.Info("pass complete",
		"pass", report.PassID,
		"accounts", report.Accounts,
		"executed", report.Executed,
		"failed", report.Failed,
		"buffered", report.Buffered,
		"unrouted", report.Unrouted,
	)
	return report
}

func (r *Reconciler) route(ctx context.Context, report *primary.PassReport, account secondary.QueuedAccount, channel delivery.Channel, commands []delivery.Command) {
	if len(commands) == 0 {
		return
	}

	present, err := r.isPresent(ctx, account.Principal)
	if err != nil {
		applog.Warn("presence lookup failed", "principal", account.Principal, "channel", channel, "error", err)
		report.Unrouted++
		return
	}

	plan := delivery.GenerateRoutePlan(delivery.RoutePlanInput{
		Account:   account.ID,
		Principal: account.Principal,
		Channel:   channel,
		Commands:  commands,
		Present:   present,
	})

	switch plan.Action {
	case delivery.RouteExecute:
		outcomes := r.executor.Execute(ctx, plan.Principal, plan.Commands)
		failed := countFailed(outcomes)
		report.Executed += len(outcomes) - failed
		report.Failed += failed

		if plan.ClearBuffer {
			if err := r.buffer.Clear(ctx, account.ID, channel); err != nil {
				applog.Warn("failed to clear buffer after execution", "key", plan.BufferKey, "error", err)
			}
		}
		acknowledge(ctx, r.queue, plan.DeleteIDs)
		r.recorder.outcomes(ctx, account.ID, plan.Principal, channel, outcomes, secondary.DeliveryExecuted)

	case delivery.RouteBuffer:
		if err := r.buffer.Save(ctx, account.ID, channel, plan.Commands); err != nil {
			applog.Warn("failed to buffer commands", "key", plan.BufferKey, "error", err)
			report.Unrouted++
			return
		}
		report.Buffered += len(plan.Commands)
		r.recorder.buffered(ctx, account.ID, plan.Principal, channel, plan.Commands)
		applog.Debug("buffered commands", "key", plan.BufferKey, "count", len(plan.Commands))
	}
}

func (r *Reconciler) isPresent(ctx context.Context, principal string) (bool, error) {
	names, err := r.presence.Present(ctx)
	if err != nil {
		return false, err
	}
	return slices.Contains(names, principal), nil
}

// PreviewQueue reads the remote queue without routing or caching anything.
func (r *Reconciler) PreviewQueue(ctx context.Context) ([]*primary.QueueEntry, error) {
	snapshot, err := r.queue.FetchQueue(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch queue: %w", err)
	}

	var entries []*primary.QueueEntry
	for _, account := range snapshot.Accounts {
		if len(account.OfflineCommands) > 0 {
			entries = append(entries, queueEntry(account, delivery.ChannelOffline, account.OfflineCommands))
		}
		online, err := r.queue.FetchOnlineCommands(ctx, account.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch online commands for %s: %w", account.ID, err)
		}
		if len(online) > 0 {
			entries = append(entries, queueEntry(account, delivery.ChannelOnline, online))
		}
	}
	return entries, nil
}

func queueEntry(account secondary.QueuedAccount, channel delivery.Channel, commands []delivery.Command) *primary.QueueEntry {
	return &primary.QueueEntry{
		AccountID: string(account.ID),
		Principal: account.Principal,
		Channel:   string(channel),
		Commands:  commandViews(commands),
	}
}

func commandViews(commands []delivery.Command) []primary.CommandView {
	views := make([]primary.CommandView, len(commands))
	for i, c := range commands {
		views[i] = primary.CommandView{ID: int64(c.ID), Command: c.Template}
	}
	return views
}

// Ensure Reconciler implements the interface
var _ primary.ReconcileService = (*Reconciler)(nil)
