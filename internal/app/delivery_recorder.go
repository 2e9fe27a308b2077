package app

import (
	"context"

	"github.com/example/tebexd/internal/core/delivery"
	applog "github.com/example/tebexd/internal/log"
	"github.com/example/tebexd/internal/ports/secondary"
)

// deliveryRecorder writes the audit trail. A nil log records nothing, and
// audit failures never affect delivery.
type deliveryRecorder struct {
	log secondary.DeliveryLog
}

func (r deliveryRecorder) outcomes(ctx context.Context, account delivery.AccountID, principal string, channel delivery.Channel, outcomes []Outcome, success secondary.DeliveryAction) {
	for _, o := range outcomes {
		action, detail := success, o.Rendered
		if o.Err != nil {
			action, detail = secondary.DeliveryFailed, o.Err.Error()
		}
		r.record(ctx, account, principal, channel, o.Command.ID, action, detail)
	}
}

func (r deliveryRecorder) buffered(ctx context.Context, account delivery.AccountID, principal string, channel delivery.Channel, commands []delivery.Command) {
	for _, cmd := range commands {
		r.record(ctx, account, principal, channel, cmd.ID, secondary.DeliveryBuffered, cmd.Template)
	}
}

func (r deliveryRecorder) record(ctx context.Context, account delivery.AccountID, principal string, channel delivery.Channel, id delivery.CommandID, action secondary.DeliveryAction, detail string) {
	if r.log == nil {
		return
	}
	err := r.log.Record(ctx, &secondary.DeliveryRecord{
		AccountID: string(account),
		Principal: principal,
		Channel:   string(channel),
		CommandID: int64(id),
		Action:    action,
		Detail:    detail,
	})
	if err != nil {
		applog.Warn("failed to record delivery", "command_id", id, "error", err)
	}
}

// acknowledge asks the remote queue to drop ids. Failure is logged and
// swallowed; the commands will be offered again and may run twice.
func acknowledge(ctx context.Context, queue secondary.QueueClient, ids []delivery.CommandID) {
	if len(ids) == 0 {
		return
	}
	if err := queue.DeleteCommands(ctx, ids); err != nil {
		applog.Warn("remote delete failed, commands may be re-offered", "ids", ids, "error", err)
	}
}
