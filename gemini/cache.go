package gemini

import (
	"sync"

	"github.com/cespare/xxhash/v2"
)

// responseCache memoizes raw model responses keyed by a content hash of
// the prompt. It is safe for concurrent use.
type responseCache struct {
	mu        sync.RWMutex
	responses map[uint64]string
}

func newResponseCache() *responseCache {
	return &responseCache{responses: make(map[uint64]string)}
}

func (c *responseCache) get(prompt string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	raw, ok := c.responses[xxhash.Sum64String(prompt)]
	return raw, ok
}

func (c *responseCache) put(prompt, raw string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.responses[xxhash.Sum64String(prompt)] = raw
}

func (c *responseCache) len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.responses)
}
