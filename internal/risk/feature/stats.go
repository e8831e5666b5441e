package feature

import (
	"math"
	"slices"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// batchStats holds the distribution of a batch that batch-relative features are measured against.
type batchStats struct {
	sorted     []float64
	mean       float64
	std        float64
	q25, q75   float64
	thresholds []float64

	fromCounts map[string]int
	toCounts   map[string]int
	fromP95    float64
	fromP99    float64
	toP95      float64
	toP99      float64
}

func newBatchStats(values []float64, from, to []string) *batchStats {
	s := &batchStats{
		sorted:     slices.Clone(values),
		thresholds: make([]float64, len(valuePercentiles)),
		fromCounts: counts(from),
		toCounts:   counts(to),
	}
	slices.Sort(s.sorted)

	if len(values) > 1 {
		s.mean, s.std = stat.MeanStdDev(values, nil)
	} else if len(values) == 1 {
		s.mean = values[0]
	}
	s.q25 = Quantile(s.sorted, 0.25)
	s.q75 = Quantile(s.sorted, 0.75)
	for i, vp := range valuePercentiles {
		s.thresholds[i] = Quantile(s.sorted, vp.p)
	}

	s.fromP95, s.fromP99 = frequencyQuantiles(from, s.fromCounts)
	s.toP95, s.toP99 = frequencyQuantiles(to, s.toCounts)

	return s
}

// Quantile returns the p-quantile of an ascending slice, or 0 for an empty slice.
func Quantile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	return stat.Quantile(p, stat.LinInterp, sorted, nil)
}

// rank returns the percentile rank of v, assigning tied values their average rank.
func (s *batchStats) rank(v float64) float64 {
	n := len(s.sorted)
	if n == 0 {
		return 0
	}
	below := sort.SearchFloat64s(s.sorted, v)
	upto := sort.Search(n, func(i int) bool { return s.sorted[i] > v })
	ties := upto - below
	if ties == 0 {
		return float64(below) / float64(n)
	}
	avg := float64(below) + float64(ties+1)/2
	return avg / float64(n)
}

func (s *batchStats) zscore(v float64) float64 {
	return (v - s.mean) / (s.std + 1e-8)
}

func counts(addrs []string) map[string]int {
	out := make(map[string]int, len(addrs))
	for _, a := range addrs {
		out[a]++
	}
	return out
}

func frequencyQuantiles(addrs []string, byAddr map[string]int) (float64, float64) {
	freqs := make([]float64, len(addrs))
	for i, a := range addrs {
		freqs[i] = float64(byAddr[a])
	}
	slices.Sort(freqs)
	return Quantile(freqs, 0.95), Quantile(freqs, 0.99)
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
