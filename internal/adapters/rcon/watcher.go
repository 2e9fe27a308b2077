package rcon

import (
	"context"
	"time"

	applog "github.com/example/tebexd/internal/log"
	"github.com/example/tebexd/internal/ports/secondary"
)

type presenceLister interface {
	Present(ctx context.Context) ([]string, error)
}

// Watcher turns successive presence polls into join and initial-spawn
// events. A name that stays present emits nothing; one that leaves and
// returns starts a new session.
type Watcher struct {
	lister   presenceLister
	interval time.Duration
	signals  chan secondary.PresenceEvent
	present  map[string]bool
}

// NewWatcher creates a watcher polling lister every interval.
func NewWatcher(lister presenceLister, interval time.Duration) *Watcher {
	return &Watcher{
		lister:   lister,
		interval: interval,
		signals:  make(chan secondary.PresenceEvent, 64),
		present:  make(map[string]bool),
	}
}

// Signals returns the event channel. It is closed when Run returns.
func (w *Watcher) Signals() <-chan secondary.PresenceEvent {
	return w.signals
}

// Run polls until ctx is done.
func (w *Watcher) Run(ctx context.Context) error {
	defer close(w.signals)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		w.poll(ctx)
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

func (w *Watcher) poll(ctx context.Context) {
	names, err := w.lister.Present(ctx)
	if err != nil {
		applog.Debug("presence poll failed", "error", err)
		return
	}

	current := make(map[string]bool, len(names))
	for _, name := range names {
		current[name] = true
		if w.present[name] {
			continue
		}
		w.emit(ctx, secondary.PresenceEvent{Kind: secondary.PresenceJoined, Principal: name})
		w.emit(ctx, secondary.PresenceEvent{Kind: secondary.PresenceSpawned, Principal: name, InitialSpawn: true})
	}
	w.present = current
}

func (w *Watcher) emit(ctx context.Context, event secondary.PresenceEvent) {
	select {
	case w.signals <- event:
	case <-ctx.Done():
	}
}

var _ secondary.PresenceSource = (*Watcher)(nil)
