// pkg/chunk/mem_cache.go

package chunk

import (
	"sort"

	"github.com/hashicorp/golang-lru/v2/simplelru"
)

// memCache is not safe for concurrent use, the owning Store holds its lock.
type memCache interface {
	get(index uint64) (*Page, bool)
	// add returns the indexes evicted to stay within capacity.
	add(index uint64, p *Page) []uint64
	len() int
	usedMemory() int64
	purge()
}

func newMemCache(policy EvictionPolicy, capacity int) memCache {
	if policy == EvictLowestIndex {
		return newIndexCache(capacity)
	}
	return newLRUCache(capacity)
}

type lruCache struct {
	lru     *simplelru.LRU[uint64, *Page]
	used    int64
	evicted []uint64
}

func newLRUCache(capacity int) *lruCache {
	c := &lruCache{}
	lru, err := simplelru.NewLRU[uint64, *Page](capacity, c.onEvict)
	if err != nil {
		panic(err)
	}
	c.lru = lru
	return c
}

func (c *lruCache) onEvict(index uint64, p *Page) {
	c.used -= int64(p.Len())
	c.evicted = append(c.evicted, index)
}

func (c *lruCache) get(index uint64) (*Page, bool) {
	return c.lru.Get(index)
}

func (c *lruCache) add(index uint64, p *Page) []uint64 {
	if old, ok := c.lru.Peek(index); ok {
		c.used -= int64(old.Len())
	}
	c.used += int64(p.Len())
	c.evicted = nil
	c.lru.Add(index, p)
	evicted := c.evicted
	c.evicted = nil
	return evicted
}

func (c *lruCache) len() int { return c.lru.Len() }

func (c *lruCache) usedMemory() int64 { return c.used }

func (c *lruCache) purge() {
	c.lru.Purge()
	c.used = 0
	c.evicted = nil
}

// indexCache evicts by ascending chunk index, ignoring access order.
type indexCache struct {
	capacity int
	used     int64
	pages    map[uint64]*Page
}

func newIndexCache(capacity int) *indexCache {
	return &indexCache{
		capacity: capacity,
		pages:    make(map[uint64]*Page),
	}
}

func (c *indexCache) get(index uint64) (*Page, bool) {
	p, ok := c.pages[index]
	return p, ok
}

func (c *indexCache) add(index uint64, p *Page) []uint64 {
	if old, ok := c.pages[index]; ok {
		c.used -= int64(old.Len())
	}
	c.pages[index] = p
	c.used += int64(p.Len())
	if len(c.pages) > c.capacity {
		return c.cleanup()
	}
	return nil
}

// locked
func (c *indexCache) cleanup() []uint64 {
	indexes := make([]uint64, 0, len(c.pages))
	for idx := range c.pages {
		indexes = append(indexes, idx)
	}
	sort.Slice(indexes, func(i, j int) bool { return indexes[i] < indexes[j] })
	victims := indexes[:len(c.pages)-c.capacity]
	for _, idx := range victims {
		c.used -= int64(c.pages[idx].Len())
		delete(c.pages, idx)
	}
	return victims
}

func (c *indexCache) len() int { return len(c.pages) }

func (c *indexCache) usedMemory() int64 { return c.used }

func (c *indexCache) purge() {
	c.pages = make(map[uint64]*Page)
	c.used = 0
}
