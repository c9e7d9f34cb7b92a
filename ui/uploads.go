package ui

import (
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"pacesetter/domain/grid"
)

// uploadEntry holds one uploaded workbook, already decoded so review round
// trips do not decode it again.
type uploadEntry struct {
	name     string
	workbook *grid.Workbook
	uploaded time.Time
}

// uploadCache keeps recent uploads in memory, keyed by a generated id.
// Expired entries are evicted lazily whenever a new upload arrives.
type uploadCache struct {
	mu      sync.RWMutex
	entries map[string]*uploadEntry
	ttl     time.Duration
}

func newUploadCache(ttl time.Duration) *uploadCache {
	return &uploadCache{
		entries: make(map[string]*uploadEntry),
		ttl:     ttl,
	}
}

// Put stores an upload and returns the id to retrieve it with.
func (c *uploadCache) Put(name string, wb *grid.Workbook) string {
	id := uuid.NewString()
	c.mu.Lock()
	defer c.mu.Unlock()
	c.evictExpiredLocked()
	c.entries[id] = &uploadEntry{name: name, workbook: wb, uploaded: time.Now()}
	return id
}

// Get returns the entry for id if it is still fresh.
func (c *uploadCache) Get(id string) (*uploadEntry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	entry, ok := c.entries[id]
	if !ok || time.Since(entry.uploaded) > c.ttl {
		return nil, false
	}
	return entry, true
}

// Len reports how many entries are held, fresh or not.
func (c *uploadCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

func (c *uploadCache) evictExpiredLocked() {
	for id, entry := range c.entries {
		if time.Since(entry.uploaded) > c.ttl {
			delete(c.entries, id)
			log.Printf("[Review] Evicted expired upload %s (%s)", id, entry.name)
		}
	}
}
