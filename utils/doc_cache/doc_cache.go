// Package doc_cache provides a small in-process cache for store documents,
// keyed by document path. It shadows reads within a session; callers must
// invalidate a path after writing to it.
package doc_cache

import (
	"encoding/json"
	"sync"
)

type DocumentCache struct {
	mu      sync.RWMutex
	entries map[string]json.RawMessage
}

func NewDocumentCache() *DocumentCache {
	return &DocumentCache{entries: make(map[string]json.RawMessage)}
}

func (c *DocumentCache) Get(path string) (json.RawMessage, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	doc, ok := c.entries[path]
	return doc, ok
}

func (c *DocumentCache) Set(path string, doc json.RawMessage) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[path] = doc
}

// Invalidate drops the cached copy of path, if any.
func (c *DocumentCache) Invalidate(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, path)
}
