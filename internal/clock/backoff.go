package clock

import "time"

// Backoff yields exponentially growing waits between Initial and Max.
// It is not safe for concurrent use.
type Backoff struct {
	Initial time.Duration
	Max     time.Duration

	current time.Duration
}

// NewBackoff constructs a Backoff doubling from initial up to max.
func NewBackoff(initial, max time.Duration) *Backoff {
	if max < initial {
		max = initial
	}
	return &Backoff{Initial: initial, Max: max}
}

// Next returns the next wait and doubles the following one.
func (b *Backoff) Next() time.Duration {
	if b.current == 0 {
		b.current = b.Initial
	} else {
		b.current *= 2
	}
	if b.current > b.Max {
		b.current = b.Max
	}
	return b.current
}

// Reset restarts the sequence at Initial.
func (b *Backoff) Reset() {
	b.current = 0
}
