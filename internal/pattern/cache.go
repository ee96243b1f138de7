package pattern

import (
	"container/list"
	"sync"
)

// DefaultCapacity is the number of compiled patterns a cache retains before
// evicting. The metadata set in use rarely carries more distinct patterns than
// this, so steady state recompiles nothing.
const DefaultCapacity = 100

// Cache is a capacity-bounded store of compiled patterns keyed by exact
// pattern text. Eviction is by insertion order (oldest inserted goes first),
// not access order: a hit does not refresh an entry's position. Safe for
// concurrent use; hits on already-cached entries take only the read lock.
type Cache struct {
	mu       sync.RWMutex
	capacity int
	entries  map[string]*list.Element
	order    *list.List // front = oldest insertion
}

type cacheEntry struct {
	text     string
	compiled *Compiled
}

// NewCache returns a cache bounded to the given capacity. Capacities below 1
// fall back to DefaultCapacity.
func NewCache(capacity int) *Cache {
	if capacity < 1 {
		capacity = DefaultCapacity
	}
	return &Cache{
		capacity: capacity,
		entries:  make(map[string]*list.Element, capacity),
		order:    list.New(),
	}
}

// Compile returns the compiled form of the given pattern text, compiling and
// inserting it on first sight. Idempotent: repeated calls with the same text
// yield matchers with identical behavior, and two descriptors carrying the
// same text share one entry.
func (c *Cache) Compile(text string) (*Compiled, error) {
	c.mu.RLock()
	elem, ok := c.entries[text]
	c.mu.RUnlock()
	if ok {
		return elem.Value.(*cacheEntry).compiled, nil
	}

	compiled, err := compile(text)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	// Another caller may have inserted while we compiled.
	if elem, ok := c.entries[text]; ok {
		return elem.Value.(*cacheEntry).compiled, nil
	}
	if c.order.Len() >= c.capacity {
		oldest := c.order.Front()
		c.order.Remove(oldest)
		delete(c.entries, oldest.Value.(*cacheEntry).text)
	}
	c.entries[text] = c.order.PushBack(&cacheEntry{text: text, compiled: compiled})
	return compiled, nil
}

// Contains reports whether the given pattern text is currently resident.
func (c *Cache) Contains(text string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.entries[text]
	return ok
}

// Len returns the number of resident entries.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.order.Len()
}
