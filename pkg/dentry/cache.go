// Package dentry provides an in-memory directory entry cache that performs
// alias reconciliation: at most one object instance is resident per
// identifier, and equivalent names within a directory share one entry.
package dentry

import (
	"sync"

	"github.com/golang/groupcache/lru"

	"github.com/mutagen-io/namei/pkg/logging"
	"github.com/mutagen-io/namei/pkg/lookup"
	"github.com/mutagen-io/namei/pkg/naming"
)

// DefaultNegativeEntries is the default bound on resident negative entries.
const DefaultNegativeEntries = 1024

// bucket identifies a hash chain within the cache.
type bucket struct {
	// directory is the parent directory identifier.
	directory lookup.ID
	// hash is the name hash.
	hash uint64
}

// Cache is a directory entry cache. It implements lookup.EntryCache and is safe
// for concurrent usage. Positive entries are retained until invalidated;
// negative entries are evicted on an LRU basis.
type Cache struct {
	// mode is the volume match mode used to compare names within a chain.
	mode naming.MatchMode
	// logger is the cache logger.
	logger *logging.Logger
	// lock serializes access to all cache state.
	lock sync.Mutex
	// chains maps hash buckets to the entries within them.
	chains map[bucket][]*lookup.Entry
	// objects maps identifiers to their canonical resident objects.
	objects map[lookup.ID]lookup.Object
	// references counts positive entries per resident object.
	references map[lookup.ID]int
	// negatives tracks negative entries for eviction.
	negatives *lru.Cache
}

// New creates a new cache for a volume with the specified match mode. If
// negativeEntries is zero, DefaultNegativeEntries is used.
func New(mode naming.MatchMode, negativeEntries int, logger *logging.Logger) *Cache {
	if negativeEntries <= 0 {
		negativeEntries = DefaultNegativeEntries
	}
	cache := &Cache{
		mode:       mode,
		logger:     logger,
		chains:     make(map[bucket][]*lookup.Entry),
		objects:    make(map[lookup.ID]lookup.Object),
		references: make(map[lookup.ID]int),
		negatives:  lru.New(negativeEntries),
	}
	cache.negatives.OnEvicted = func(key lru.Key, _ interface{}) {
		if entry, ok := key.(*lookup.Entry); !ok {
			panic("invalid key type in negative entry cache")
		} else {
			cache.unlink(entry)
		}
	}
	return cache
}

// find locates the entry for a key within its chain. The cache lock must be
// held.
func (c *Cache) find(key lookup.Key) (*lookup.Entry, int) {
	chain := c.chains[bucket{key.Directory, key.Hash}]
	for i, entry := range chain {
		if entry.Key.Directory == key.Directory &&
			naming.Equal(c.mode, []byte(entry.Key.Name), []byte(key.Name)) {
			return entry, i
		}
	}
	return nil, -1
}

// unlink removes an entry from its chain and releases its object reference.
// The cache lock must be held.
func (c *Cache) unlink(entry *lookup.Entry) {
	b := bucket{entry.Key.Directory, entry.Key.Hash}
	chain := c.chains[b]
	for i, candidate := range chain {
		if candidate != entry {
			continue
		}
		chain = append(chain[:i], chain[i+1:]...)
		if len(chain) == 0 {
			delete(c.chains, b)
		} else {
			c.chains[b] = chain
		}
		break
	}
	if entry.Object != nil {
		id := entry.Object.ID()
		if c.references[id]--; c.references[id] <= 0 {
			delete(c.references, id)
			delete(c.objects, id)
		}
	}
}

// remove removes a resident entry. The cache lock must be held.
func (c *Cache) remove(entry *lookup.Entry) {
	if entry.Negative() {
		// Eviction from the LRU invokes unlink.
		c.negatives.Remove(entry)
	} else {
		c.unlink(entry)
	}
}

// Splice implements lookup.EntryCache.Splice.
func (c *Cache) Splice(key lookup.Key, object lookup.Object) *lookup.Entry {
	c.lock.Lock()
	defer c.lock.Unlock()

	// Substitute the canonical object if one is already resident.
	if object != nil {
		if resident, ok := c.objects[object.ID()]; ok {
			if resident != object {
				c.logger.Tracef("Aliasing object %d to resident instance", object.ID())
			}
			object = resident
		}
	}

	// If an equivalent entry already exists in the same state, reuse it.
	existing, _ := c.find(key)
	if existing != nil {
		if existing.Object == object {
			if existing.Negative() {
				c.negatives.Get(existing)
			}
			return existing
		}
		c.remove(existing)
	}

	// Create and register the new entry.
	entry := &lookup.Entry{Key: key, Object: object}
	b := bucket{key.Directory, key.Hash}
	c.chains[b] = append(c.chains[b], entry)
	if object == nil {
		c.negatives.Add(entry, nil)
	} else {
		c.objects[object.ID()] = object
		c.references[object.ID()]++
	}
	return entry
}

// Lookup returns the resident entry for a key, if any.
func (c *Cache) Lookup(key lookup.Key) (*lookup.Entry, bool) {
	c.lock.Lock()
	defer c.lock.Unlock()
	entry, _ := c.find(key)
	if entry == nil {
		return nil, false
	} else if entry.Negative() {
		c.negatives.Get(entry)
	}
	return entry, true
}

// Invalidate implements lookup.EntryCache.Invalidate.
func (c *Cache) Invalidate(key lookup.Key) {
	c.lock.Lock()
	defer c.lock.Unlock()
	if entry, _ := c.find(key); entry != nil {
		c.remove(entry)
	}
}

// Object returns the resident object for an identifier, if any.
func (c *Cache) Object(id lookup.ID) (lookup.Object, bool) {
	c.lock.Lock()
	defer c.lock.Unlock()
	object, ok := c.objects[id]
	return object, ok
}

// Len returns the number of resident entries, positive and negative.
func (c *Cache) Len() (positive, negative int) {
	c.lock.Lock()
	defer c.lock.Unlock()
	negative = c.negatives.Len()
	for _, chain := range c.chains {
		positive += len(chain)
	}
	return positive - negative, negative
}
