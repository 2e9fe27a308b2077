package delivery

import "strings"

const bufferKeyInfix = "_tebex_commands_"

// BufferKey returns the property-store key holding the pending buffer for
// an account and channel, e.g. "42_tebex_commands_offline".
func BufferKey(account AccountID, channel Channel) string {
	return string(account) + bufferKeyInfix + string(channel)
}

// ParseBufferKey splits a key produced by BufferKey.
// Keys that do not follow the schema return ok=false.
func ParseBufferKey(key string) (account AccountID, channel Channel, ok bool) {
	idx := strings.LastIndex(key, bufferKeyInfix)
	if idx <= 0 {
		return "", "", false
	}
	channel = Channel(key[idx+len(bufferKeyInfix):])
	if !channel.Valid() {
		return "", "", false
	}
	return AccountID(key[:idx]), channel, true
}
