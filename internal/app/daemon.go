package app

import (
	"context"
	"time"

	applog "github.com/example/tebexd/internal/log"
	"github.com/example/tebexd/internal/ports/primary"
	"github.com/example/tebexd/internal/ports/secondary"
)

type passRunner interface {
	RunPass(ctx context.Context) *primary.PassReport
}

type presenceHandler interface {
	Handle(ctx context.Context, event secondary.PresenceEvent)
}

// Daemon is the single scheduler: one goroutine runs every pass and every
// presence event, so passes never overlap and a presence event that arrives
// mid-pass waits for the pass to end.
type Daemon struct {
	passes   passRunner
	handler  presenceHandler
	source   secondary.PresenceSource
	interval time.Duration
}

// NewDaemon creates a Daemon. source may be nil when no presence events
// are available.
func NewDaemon(passes passRunner, handler presenceHandler, source secondary.PresenceSource, interval time.Duration) *Daemon {
	return &Daemon{
		passes:   passes,
		handler:  handler,
		source:   source,
		interval: interval,
	}
}

// Run runs a pass immediately and then every interval until ctx is done.
// Ticks missed during a long pass are dropped by the ticker.
func (d *Daemon) Run(ctx context.Context) error {
	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()

	var signals <-chan secondary.PresenceEvent
	if d.source != nil {
		signals = d.source.Signals()
	}

	applog.Info("daemon started", "interval", d.interval.String())
	d.passes.RunPass(ctx)

	for {
		select {
		case <-ctx.Done():
			applog.Info("daemon stopped")
			return nil
		case <-ticker.C:
			d.passes.RunPass(ctx)
		case event, ok := <-signals:
			if !ok {
				signals = nil
				continue
			}
			d.handler.Handle(ctx, event)
		}
	}
}
