package app

import (
	"context"

	"github.com/example/tebexd/internal/core/delivery"
	applog "github.com/example/tebexd/internal/log"
	"github.com/example/tebexd/internal/ports/secondary"
)

// Outcome is the result of running one command.
type Outcome struct {
	Command  delivery.Command
	Rendered string
	Err      error // *CommandExecutionError on failure
}

// CommandExecutor runs command batches for a present principal.
type CommandExecutor struct {
	presence secondary.PresenceProvider
}

// NewCommandExecutor creates an executor over the presence provider.
func NewCommandExecutor(presence secondary.PresenceProvider) *CommandExecutor {
	return &CommandExecutor{presence: presence}
}

// Execute runs every command in order. A failing command is logged and
// recorded; the rest of the batch still runs and nothing is rolled back.
func (e *CommandExecutor) Execute(ctx context.Context, principal string, commands []delivery.Command) []Outcome {
	outcomes := make([]Outcome, 0, len(commands))
	for _, cmd := range commands {
		rendered := delivery.Render(cmd.Template, principal)
		outcome := Outcome{Command: cmd, Rendered: rendered}

		if err := e.presence.Execute(ctx, principal, rendered); err != nil {
			outcome.Err = &CommandExecutionError{CommandID: cmd.ID, Principal: principal, Err: err}
			applog.Warn("command failed", "command_id", cmd.ID, "principal", principal, "error", err)
		} else {
			applog.Debug("command executed", "command_id", cmd.ID, "principal", principal)
		}
		outcomes = append(outcomes, outcome)
	}
	return outcomes
}

func countFailed(outcomes []Outcome) int {
	n := 0
	for _, o := range outcomes {
		if o.Err != nil {
			n++
		}
	}
	return n
}
