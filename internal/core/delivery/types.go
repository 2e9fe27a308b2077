// Package delivery contains the pure business logic for command delivery.
// This is part of the Functional Core - no I/O, only pure functions.
package delivery

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Channel partitions queued commands by their delivery rule.
type Channel string

const (
	// ChannelOffline commands may run whether or not the principal is present.
	ChannelOffline Channel = "offline"
	// ChannelOnline commands require the principal to be present.
	ChannelOnline Channel = "online"
)

// Channels lists every channel in flush order.
var Channels = []Channel{ChannelOffline, ChannelOnline}

// Valid reports whether c is a known channel.
func (c Channel) Valid() bool {
	return c == ChannelOffline || c == ChannelOnline
}

// ParseChannel converts user input to a Channel.
func ParseChannel(s string) (Channel, error) {
	c := Channel(s)
	if !c.Valid() {
		return "", fmt.Errorf("unknown channel %q (want online or offline)", s)
	}
	return c, nil
}

// AccountID identifies a paying customer on the remote queue service.
// The remote side encodes it as a JSON number or string; both decode to
// the same textual value.
type AccountID string

// UnmarshalJSON accepts both numeric and string encodings.
func (a *AccountID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*a = AccountID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("account id: %w", err)
	}
	*a = AccountID(n.String())
	return nil
}

// MarshalJSON writes numeric ids as numbers so stored payloads match the
// remote encoding.
func (a AccountID) MarshalJSON() ([]byte, error) {
	if n, err := strconv.ParseInt(string(a), 10, 64); err == nil && strconv.FormatInt(n, 10) == string(a) {
		return []byte(a), nil
	}
	return json.Marshal(string(a))
}

// CommandID is the remote identifier of a queued command.
type CommandID int64

// Command is one queued command as offered by the remote queue.
type Command struct {
	ID         CommandID       `json:"id"`
	Template   string          `json:"command"`
	Conditions json.RawMessage `json:"conditions,omitempty"`
}

// CommandIDs returns the ids of cmds in order.
func CommandIDs(cmds []Command) []CommandID {
	ids := make([]CommandID, 0, len(cmds))
	for _, c := range cmds {
		ids = append(ids, c.ID)
	}
	return ids
}
