package app

import (
	"fmt"

	"github.com/example/tebexd/internal/core/delivery"
)

// SerializationError reports a stored buffer payload that could not be
// decoded. The buffer is treated as lost.
type SerializationError struct {
	Key string
	Err error
}

func (e *SerializationError) Error() string {
	return fmt.Sprintf("corrupt command buffer %s: %v", e.Key, e.Err)
}

func (e *SerializationError) Unwrap() error { return e.Err }

// CommandExecutionError reports a command the presence provider rejected.
type CommandExecutionError struct {
	CommandID delivery.CommandID
	Principal string
	Err       error
}

func (e *CommandExecutionError) Error() string {
	return fmt.Sprintf("command %d for %s failed: %v", e.CommandID, e.Principal, e.Err)
}

func (e *CommandExecutionError) Unwrap() error { return e.Err }
