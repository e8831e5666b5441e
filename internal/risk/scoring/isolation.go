package scoring

import (
	"math"
	"math/rand"
	"slices"

	"github.com/goodnatureofminers/chainguard-backend/internal/risk/feature"
	"gonum.org/v1/gonum/stat"
)

const eulerGamma = 0.5772156649015329

// ForestConfig configures an isolation forest.
type ForestConfig struct {
	Trees         int
	MaxSamples    int
	Contamination float64
	Seed          int64
}

// DefaultForestConfig returns the forest settings used for batch anomaly detection.
func DefaultForestConfig() ForestConfig {
	return ForestConfig{
		Trees:         50,
		MaxSamples:    256,
		Contamination: 0.1,
		Seed:          42,
	}
}

type isoNode struct {
	feature     int
	split       float64
	left, right *isoNode
	size        int
}

// IsolationForest is an ensemble of random isolation trees fitted on one batch.
type IsolationForest struct {
	cfg      ForestConfig
	rng      *rand.Rand
	trees    []*isoNode
	psi      int
	maxDepth int
	offset   float64
	mean     []float64
	scale    []float64
	fitted   bool
}

// NewIsolationForest constructs an unfitted forest.
func NewIsolationForest(cfg ForestConfig) *IsolationForest {
	if cfg.Trees <= 0 {
		cfg.Trees = DefaultForestConfig().Trees
	}
	if cfg.MaxSamples <= 0 {
		cfg.MaxSamples = DefaultForestConfig().MaxSamples
	}
	if cfg.Contamination <= 0 || cfg.Contamination >= 0.5 {
		cfg.Contamination = DefaultForestConfig().Contamination
	}
	return &IsolationForest{cfg: cfg, rng: rand.New(rand.NewSource(cfg.Seed))}
}

// Fit standardizes the rows and grows the trees. Rows must share one width.
// Fewer than two rows leave the forest unfitted.
func (f *IsolationForest) Fit(rows [][]float64) {
	f.trees = nil
	f.fitted = false
	n := len(rows)
	if n < 2 {
		return
	}

	f.mean, f.scale = standardize(rows)
	data := make([][]float64, n)
	for i, r := range rows {
		data[i] = f.transform(r)
	}

	f.psi = min(f.cfg.MaxSamples, n)
	f.maxDepth = int(math.Ceil(math.Log2(math.Max(float64(f.psi), 2))))
	for t := 0; t < f.cfg.Trees; t++ {
		idx := f.rng.Perm(n)[:f.psi]
		sample := make([][]float64, f.psi)
		for i, j := range idx {
			sample[i] = data[j]
		}
		f.trees = append(f.trees, f.grow(sample, 0))
	}
	f.fitted = true

	scores := make([]float64, n)
	for i, r := range data {
		scores[i] = f.scoreTransformed(r)
	}
	slices.Sort(scores)
	f.offset = feature.Quantile(scores, f.cfg.Contamination)
}

// Decision returns the decision value of a row: negative values are anomalies.
// An unfitted forest reports every row as normal.
func (f *IsolationForest) Decision(row []float64) float64 {
	if !f.fitted {
		return 0
	}
	return f.scoreTransformed(f.transform(row)) - f.offset
}

// AnomalyScore returns the standard isolation score in (0,1]; values near 1 are anomalous.
func (f *IsolationForest) AnomalyScore(row []float64) float64 {
	if !f.fitted {
		return 0
	}
	return -f.scoreTransformed(f.transform(row))
}

func (f *IsolationForest) scoreTransformed(x []float64) float64 {
	var total float64
	for _, t := range f.trees {
		total += pathLength(t, x, 0)
	}
	mean := total / float64(len(f.trees))
	return -math.Pow(2, -mean/averagePathLength(f.psi))
}

func (f *IsolationForest) grow(rows [][]float64, depth int) *isoNode {
	if depth >= f.maxDepth || len(rows) <= 1 {
		return &isoNode{size: len(rows)}
	}

	width := len(rows[0])
	candidates := make([]int, 0, width)
	for j := 0; j < width; j++ {
		lo, hi := columnRange(rows, j)
		if hi > lo {
			candidates = append(candidates, j)
		}
	}
	if len(candidates) == 0 {
		return &isoNode{size: len(rows)}
	}

	j := candidates[f.rng.Intn(len(candidates))]
	lo, hi := columnRange(rows, j)
	split := lo + f.rng.Float64()*(hi-lo)

	var left, right [][]float64
	for _, r := range rows {
		if r[j] < split {
			left = append(left, r)
		} else {
			right = append(right, r)
		}
	}
	return &isoNode{
		feature: j,
		split:   split,
		left:    f.grow(left, depth+1),
		right:   f.grow(right, depth+1),
	}
}

func (f *IsolationForest) transform(row []float64) []float64 {
	out := make([]float64, len(row))
	for i, v := range row {
		if i < len(f.mean) {
			v = (v - f.mean[i]) / f.scale[i]
		}
		out[i] = v
	}
	return out
}

func pathLength(n *isoNode, x []float64, depth int) float64 {
	if n.left == nil {
		return float64(depth) + averagePathLength(n.size)
	}
	if x[n.feature] < n.split {
		return pathLength(n.left, x, depth+1)
	}
	return pathLength(n.right, x, depth+1)
}

// averagePathLength is the expected path length of an unsuccessful search in a binary tree of n nodes.
func averagePathLength(n int) float64 {
	switch {
	case n <= 1:
		return 0
	case n == 2:
		return 1
	default:
		fn := float64(n)
		return 2*(math.Log(fn-1)+eulerGamma) - 2*(fn-1)/fn
	}
}

func columnRange(rows [][]float64, j int) (float64, float64) {
	lo, hi := rows[0][j], rows[0][j]
	for _, r := range rows[1:] {
		lo = math.Min(lo, r[j])
		hi = math.Max(hi, r[j])
	}
	return lo, hi
}

func standardize(rows [][]float64) ([]float64, []float64) {
	width := len(rows[0])
	mean := make([]float64, width)
	scale := make([]float64, width)
	col := make([]float64, len(rows))
	for j := 0; j < width; j++ {
		for i, r := range rows {
			col[i] = r[j]
		}
		mean[j], scale[j] = stat.PopMeanStdDev(col, nil)
		if scale[j] == 0 || math.IsNaN(scale[j]) {
			scale[j] = 1
		}
	}
	return mean, scale
}
