package keycodec

import (
	"sync"

	"github.com/arloliu/mdkey/schema"
)

// Cache shares codecs between scan tasks whose block schemas have identical
// key layouts, keyed by the snapshot fingerprint. Sharing is an optimization
// only: codecs are immutable, so tasks may equally build their own.
//
// All methods are safe for concurrent use.
type Cache struct {
	mu     sync.RWMutex
	codecs map[uint64]*Codec
}

// NewCache creates an empty codec cache.
func NewCache() *Cache {
	return &Cache{codecs: make(map[uint64]*Codec)}
}

// ForSnapshot returns the cached codec for the snapshot's key layout, building
// and caching it on first use.
func (c *Cache) ForSnapshot(s *schema.Snapshot) (*Codec, error) {
	if s == nil {
		return FromSnapshot(s) // yields ErrNilSnapshot
	}

	fp := s.Fingerprint()

	c.mu.RLock()
	codec, ok := c.codecs[fp]
	c.mu.RUnlock()
	if ok {
		return codec, nil
	}

	codec, err := FromSnapshot(s)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	// Another task may have built it in the meantime; keep the first one so
	// all tasks share a single instance.
	if existing, ok := c.codecs[fp]; ok {
		codec = existing
	} else {
		c.codecs[fp] = codec
	}
	c.mu.Unlock()

	return codec, nil
}

// Len returns the number of cached codecs.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.codecs)
}
