package feature

import "fmt"

// Vector is the ordered feature vector of a single transaction.
type Vector struct {
	Hash   string
	values []float64
}

func newVector(hash string) Vector {
	return Vector{Hash: hash, values: make([]float64, len(Names))}
}

// Get returns the named feature value, or 0 when the name is unknown.
func (v Vector) Get(name string) float64 {
	i, ok := nameIndex[name]
	if !ok || i >= len(v.values) {
		return 0
	}
	return v.values[i]
}

// Values returns a copy of the values in Names order.
func (v Vector) Values() []float64 {
	out := make([]float64, len(Names))
	copy(out, v.values)
	return out
}

// Select returns the values of the given feature names, in that order.
func (v Vector) Select(names []string) []float64 {
	out := make([]float64, len(names))
	for i, n := range names {
		out[i] = v.Get(n)
	}
	return out
}

func (v Vector) set(name string, value float64) {
	i, ok := nameIndex[name]
	if !ok {
		panic(fmt.Sprintf("feature %q is not registered", name))
	}
	v.values[i] = value
}

// Warning records a feature that fell back to its neutral value.
type Warning struct {
	Hash    string
	Feature string
	Reason  string
}

func (w Warning) String() string {
	return fmt.Sprintf("tx %s feature %s: %s", w.Hash, w.Feature, w.Reason)
}
