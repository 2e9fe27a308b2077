package secondary

import (
	"errors"
	"fmt"
)

// TransportError reports a failed exchange with the remote queue: a non-2xx
// status, a timeout, or a malformed body. Callers treat it as "no progress
// this cycle", never as an empty queue.
type TransportError struct {
	Op         string // e.g. "GET /queue"
	StatusCode int    // 0 when no response was received
	Body       string
	Err        error
}

func (e *TransportError) Error() string {
	switch {
	case e.StatusCode != 0 && e.Body != "":
		return fmt.Sprintf("%s: remote error (status %d): %s", e.Op, e.StatusCode, e.Body)
	case e.StatusCode != 0:
		return fmt.Sprintf("%s: remote error (status %d)", e.Op, e.StatusCode)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	default:
		return e.Op + ": transport error"
	}
}

func (e *TransportError) Unwrap() error { return e.Err }

// IsTransportError reports whether err is or wraps a TransportError.
func IsTransportError(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}
