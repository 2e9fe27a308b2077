package secondary

import "context"

// PresenceProvider defines the secondary port for the interactive session
// registry: who is present, and a way to run commands for them.
type PresenceProvider interface {
	// Present lists the names of currently present principals.
	Present(ctx context.Context) ([]string, error)

	// Execute runs a rendered command on behalf of a present principal.
	Execute(ctx context.Context, principal, command string) error
}

// PresenceSource emits presence transitions.
type PresenceSource interface {
	// Signals returns the channel presence events are delivered on.
	Signals() <-chan PresenceEvent
}

// PresenceKind distinguishes presence signals.
type PresenceKind string

const (
	// PresenceJoined fires when a principal connects.
	PresenceJoined PresenceKind = "joined"
	// PresenceSpawned fires whenever a principal (re)appears in the world.
	PresenceSpawned PresenceKind = "spawned"
)

// PresenceEvent is a single presence transition.
type PresenceEvent struct {
	Kind      PresenceKind
	Principal string

	// InitialSpawn is set on the first spawn of a session. Respawns within
	// the same session carry false.
	InitialSpawn bool
}
