package profile

import (
	"hash/fnv"
	"sync"
)

const shardCount = 256

// shardedLocks is a fixed pool of mutexes keyed by address. Memory for locks
// stays bounded regardless of how many addresses are seen; unrelated
// addresses occasionally share a mutex.
type shardedLocks struct {
	shards [shardCount]sync.Mutex
}

// lock acquires the mutex of key and returns its unlock function.
func (s *shardedLocks) lock(key string) func() {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	mu := &s.shards[h.Sum32()%shardCount]
	mu.Lock()
	return mu.Unlock
}
