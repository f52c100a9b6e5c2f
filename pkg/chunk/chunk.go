// pkg/chunk/chunk.go

// Package chunk serves byte ranges of a remote file out of fixed-size chunks
// fetched on demand from an object.Backend and kept in a bounded memory cache.
package chunk

import (
	"fmt"
	"strings"
)

// EvictionPolicy decides which cached chunks are dropped once the cache is full.
type EvictionPolicy int

const (
	// EvictLRU drops the least recently used chunk.
	EvictLRU EvictionPolicy = iota
	// EvictLowestIndex drops the chunks with the lowest index first.
	EvictLowestIndex
)

func (p EvictionPolicy) String() string {
	switch p {
	case EvictLRU:
		return "lru"
	case EvictLowestIndex:
		return "lowest-index"
	}
	return fmt.Sprintf("EvictionPolicy(%d)", int(p))
}

// ParseEvictionPolicy accepts the names returned by EvictionPolicy.String.
func ParseEvictionPolicy(name string) (EvictionPolicy, error) {
	switch strings.ToLower(name) {
	case "", "lru":
		return EvictLRU, nil
	case "lowest-index", "index":
		return EvictLowestIndex, nil
	}
	return EvictLRU, fmt.Errorf("unknown eviction policy: %s", name)
}

// Config for chunk stores.
type Config struct {
	Eviction EvictionPolicy
	Strategy *Strategy // pinned strategy, SelectStrategy is used when nil
}
