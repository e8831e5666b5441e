// Package dedup keeps a bounded set of already-scored transaction hashes.
package dedup

import "sync"

const (
	// DefaultMaxEntries is the size above which the set is compacted.
	DefaultMaxEntries = 5000
	// DefaultRetain is the number of recent hashes kept by a compaction.
	DefaultRetain = 2500
)

// RecentSource supplies the most recent hashes, newest first, used to reseed the set on compaction.
type RecentSource func(n int) []string

// Deduplicator is a bounded set of transaction hashes. Compaction clears the
// set and reseeds it from the recent source, so hashes older than the retained
// window may be scored again if they reappear.
type Deduplicator struct {
	mu         sync.Mutex
	seen       map[string]struct{}
	maxEntries int
	retain     int
	recent     RecentSource
	compacted  uint64
}

// New constructs a Deduplicator. Non-positive limits fall back to the defaults.
func New(maxEntries, retain int, recent RecentSource) *Deduplicator {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	if retain <= 0 || retain > maxEntries {
		retain = min(DefaultRetain, maxEntries)
	}
	return &Deduplicator{
		seen:       make(map[string]struct{}, maxEntries+1),
		maxEntries: maxEntries,
		retain:     retain,
		recent:     recent,
	}
}

// Contains reports whether the hash has already been marked.
func (d *Deduplicator) Contains(hash string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	_, ok := d.seen[hash]
	return ok
}

// TryMark marks the hash and reports whether it was new. The check and the
// insert happen in one critical section.
func (d *Deduplicator) TryMark(hash string) bool {
	return d.TryMarkThen(hash, nil)
}

// TryMarkThen marks the hash and, only when it was new, runs commit while the
// set is still locked. Callers use commit to publish results that must not be
// observed twice for the same hash.
func (d *Deduplicator) TryMarkThen(hash string, commit func()) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.seen[hash]; ok {
		return false
	}
	d.seen[hash] = struct{}{}
	if commit != nil {
		commit()
	}
	if len(d.seen) > d.maxEntries {
		d.compact()
	}
	return true
}

// Len returns the number of tracked hashes.
func (d *Deduplicator) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.seen)
}

// Compactions returns how many times the set was compacted.
func (d *Deduplicator) Compactions() uint64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.compacted
}

func (d *Deduplicator) compact() {
	clear(d.seen)
	d.compacted++
	if d.recent == nil {
		return
	}
	for _, h := range d.recent(d.retain) {
		d.seen[h] = struct{}{}
	}
}
