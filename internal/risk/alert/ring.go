package alert

// Order is the order a Ring returns its items in.
type Order int

const (
	// NewestFirst returns the most recently inserted item first.
	NewestFirst Order = iota
	// FIFO returns items in insertion order, oldest first.
	FIFO
)

// Ring is a fixed-capacity buffer that evicts the oldest item on overflow.
// It is not safe for concurrent use.
type Ring[T any] struct {
	buf   []T
	head  int
	size  int
	order Order
}

// NewRing constructs a Ring. Capacity must be positive.
func NewRing[T any](capacity int, order Order) *Ring[T] {
	if capacity <= 0 {
		capacity = 1
	}
	return &Ring[T]{buf: make([]T, capacity), order: order}
}

// Push inserts an item, evicting the oldest one when full.
func (r *Ring[T]) Push(item T) {
	idx := (r.head + r.size) % len(r.buf)
	if r.size == len(r.buf) {
		r.buf[r.head] = item
		r.head = (r.head + 1) % len(r.buf)
		return
	}
	r.buf[idx] = item
	r.size++
}

// Len returns the number of stored items.
func (r *Ring[T]) Len() int { return r.size }

// Cap returns the capacity.
func (r *Ring[T]) Cap() int { return len(r.buf) }

// Snapshot returns a copy of up to limit items in the ring's order; limit <= 0 returns all.
func (r *Ring[T]) Snapshot(limit int) []T {
	n := r.size
	if limit > 0 && limit < n {
		n = limit
	}
	out := make([]T, n)
	for i := 0; i < n; i++ {
		var pos int
		if r.order == NewestFirst {
			pos = r.head + r.size - 1 - i
		} else {
			pos = r.head + i
		}
		out[i] = r.buf[pos%len(r.buf)]
	}
	return out
}

// Reset drops all items.
func (r *Ring[T]) Reset() {
	clear(r.buf)
	r.head, r.size = 0, 0
}
