package scoring

import (
	"hash/fnv"
	"math/rand"
	"sync"
)

// DefaultJitterAmplitude bounds the perturbation of the opt-in jitter sources.
const DefaultJitterAmplitude = 0.10

// NoJitter leaves probabilities unchanged.
type NoJitter struct{}

// Apply returns p unchanged.
func (NoJitter) Apply(_ string, p float64) float64 { return p }

// HashJitter adds a perturbation derived from the transaction hash, so
// repeated scoring of the same transaction yields the same value.
type HashJitter struct {
	Amplitude float64
}

// Apply shifts p by a hash-derived offset in [-Amplitude, Amplitude].
func (j HashJitter) Apply(hash string, p float64) float64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(hash))
	u := float64(h.Sum64()%10_000) / 9_999
	return p + (2*u-1)*j.Amplitude
}

// SeededJitter adds uniform noise from a seeded source.
type SeededJitter struct {
	amplitude float64

	mu  sync.Mutex
	rng *rand.Rand
}

// NewSeededJitter constructs a SeededJitter with the given seed and amplitude.
func NewSeededJitter(seed int64, amplitude float64) *SeededJitter {
	return &SeededJitter{amplitude: amplitude, rng: rand.New(rand.NewSource(seed))}
}

// Apply shifts p by a uniform offset in [-amplitude, amplitude).
func (j *SeededJitter) Apply(_ string, p float64) float64 {
	j.mu.Lock()
	u := j.rng.Float64()
	j.mu.Unlock()
	return p + (2*u-1)*j.amplitude
}

// NewJitter returns the jitter source for a mode: "none", "hash" or "seeded".
func NewJitter(mode string, seed int64) Jitter {
	switch mode {
	case "hash":
		return HashJitter{Amplitude: DefaultJitterAmplitude}
	case "seeded":
		return NewSeededJitter(seed, DefaultJitterAmplitude)
	default:
		return NoJitter{}
	}
}
