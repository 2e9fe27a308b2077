package app

import (
	"sync"

	"github.com/example/tebexd/internal/core/delivery"
)

// IdentityCache maps remote accounts to principal names. It is populated
// from queue observations and join lookups, never evicted, and starts cold
// after a restart.
type IdentityCache struct {
	mu      sync.RWMutex
	entries []identityEntry
}

type identityEntry struct {
	account   delivery.AccountID
	principal string
}

// NewIdentityCache creates an empty cache.
func NewIdentityCache() *IdentityCache {
	return &IdentityCache{}
}

// Remember upserts the mapping. Any other account holding the same name is
// dropped so a name resolves to the most recently seen account.
func (c *IdentityCache) Remember(account delivery.AccountID, principal string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	kept := c.entries[:0]
	found := false
	for _, e := range c.entries {
		if e.account == account {
			e.principal = principal
			found = true
		} else if e.principal == principal {
			continue
		}
		kept = append(kept, e)
	}
	if !found {
		kept = append(kept, identityEntry{account: account, principal: principal})
	}
	c.entries = kept
}

// ResolveByName returns the account for a principal, first match in
// insertion order.
func (c *IdentityCache) ResolveByName(principal string) (delivery.AccountID, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, e := range c.entries {
		if e.principal == principal {
			return e.account, true
		}
	}
	return "", false
}

// Len returns the number of cached identities.
func (c *IdentityCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
