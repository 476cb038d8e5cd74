package pure

import (
	"sync"

	"github.com/cespare/xxhash/v2"
)

// Store is an unbounded Key -> V mapping split into independently locked shards.
// Entries are never evicted.
type Store[V any] struct {
	shards []*shard[V]
}

type shard[V any] struct {
	mu      sync.RWMutex
	entries map[Key]V
}

func NewStore[V any](numShards int) *Store[V] {
	if numShards <= 0 {
		panic("numShards should be greater than 0")
	}
	shards := make([]*shard[V], numShards)
	for i := range shards {
		shards[i] = &shard[V]{entries: make(map[Key]V)}
	}
	return &Store[V]{shards: shards}
}

func (s *Store[V]) shardOf(key Key) *shard[V] {
	if len(s.shards) == 1 {
		return s.shards[0]
	}
	return s.shards[xxhash.Sum64String(string(key))%uint64(len(s.shards))]
}

// Load reports whether key is present. A stored zero value is still present.
func (s *Store[V]) Load(key Key) (V, bool) {
	sh := s.shardOf(key)
	sh.mu.RLock()
	v, ok := sh.entries[key]
	sh.mu.RUnlock()
	return v, ok
}

// LoadOrStore keeps the first value stored under key and returns it.
// loaded is true if the value was already present.
func (s *Store[V]) LoadOrStore(key Key, value V) (actual V, loaded bool) {
	sh := s.shardOf(key)
	sh.mu.Lock()
	defer sh.mu.Unlock()
	if v, ok := sh.entries[key]; ok {
		return v, true
	}
	sh.entries[key] = value
	return value, false
}

func (s *Store[V]) Len() int {
	n := 0
	for _, sh := range s.shards {
		sh.mu.RLock()
		n += len(sh.entries)
		sh.mu.RUnlock()
	}
	return n
}
