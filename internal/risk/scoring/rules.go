package scoring

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync/atomic"

	"github.com/goodnatureofminers/chainguard-backend/internal/model"
	"github.com/goodnatureofminers/chainguard-backend/internal/risk/classify"
	"github.com/goodnatureofminers/chainguard-backend/internal/risk/feature"
)

const (
	// DefaultReferenceHeight approximates the chain tip when no live height is known.
	DefaultReferenceHeight int64 = 19_000_000

	recentBlockWindow    = 100
	oldBlockAge          = 10_000_000
	contractZeroMinimum  = 20
	anomalyPointsCap     = 25
	anomalyPointsScale   = 15
	anomalyPointsBonus   = 5
	defaultDecisionLevel = 0.5
)

var errLengthMismatch = errors.New("records and vectors length mismatch")

// rule is one independently triggered entry of the points table.
type rule struct {
	flag   string
	points func(r model.TransactionRecord, ref int64) float64
}

var rules = []rule{
	{flag: FlagLargeAmount, points: when(func(r model.TransactionRecord, _ int64) bool { return r.Value > 10 }, 30)},
	{flag: FlagMediumAmount, points: when(func(r model.TransactionRecord, _ int64) bool { return r.Value > 1 && r.Value <= 10 }, 15)},
	{flag: FlagDust, points: when(func(r model.TransactionRecord, _ int64) bool { return r.Value < 0.001 }, 20)},
	{flag: FlagError, points: when(func(r model.TransactionRecord, _ int64) bool { return r.IsError }, 40)},
	{flag: FlagRoundAmount, points: when(isRoundAmount, 15)},
	{flag: FlagSelfTransaction, points: when(func(r model.TransactionRecord, _ int64) bool {
		return r.From != "" && r.From == r.To
	}, 25)},
	{flag: FlagContractFrom, points: when(func(r model.TransactionRecord, _ int64) bool {
		return feature.ZeroCount(r.From) > contractZeroMinimum
	}, 10)},
	{flag: FlagContractTo, points: when(func(r model.TransactionRecord, _ int64) bool {
		return feature.ZeroCount(r.To) > contractZeroMinimum
	}, 10)},
	{flag: FlagRecentBlock, points: when(func(r model.TransactionRecord, ref int64) bool {
		return r.BlockHeight > 0 && ref-r.BlockHeight < recentBlockWindow
	}, 10)},
	{flag: FlagOldBlock, points: when(func(r model.TransactionRecord, ref int64) bool {
		return r.BlockHeight > 0 && ref-r.BlockHeight > oldBlockAge
	}, 5)},
}

func when(cond func(model.TransactionRecord, int64) bool, points float64) func(model.TransactionRecord, int64) float64 {
	return func(r model.TransactionRecord, ref int64) float64 {
		if cond(r, ref) {
			return points
		}
		return 0
	}
}

func isRoundAmount(r model.TransactionRecord, _ int64) bool {
	return r.Value > 0 && math.Abs(r.Value-math.Round(r.Value*100)/100) < 0.0001
}

// RuleBased is the deterministic points-table scorer.
type RuleBased struct {
	reference atomic.Int64
	detector  *AnomalyDetector
	jitter    Jitter
}

// NewRuleBased constructs a RuleBased scorer. A nil detector disables the
// anomaly rule and a nil jitter leaves probabilities unchanged.
func NewRuleBased(referenceHeight int64, detector *AnomalyDetector, jitter Jitter) *RuleBased {
	if referenceHeight <= 0 {
		referenceHeight = DefaultReferenceHeight
	}
	if jitter == nil {
		jitter = NoJitter{}
	}
	s := &RuleBased{detector: detector, jitter: jitter}
	s.reference.Store(referenceHeight)
	return s
}

// SetReferenceHeight raises the height that block age is measured against.
func (s *RuleBased) SetReferenceHeight(height int64) {
	for {
		cur := s.reference.Load()
		if height <= cur || s.reference.CompareAndSwap(cur, height) {
			return
		}
	}
}

// ReferenceHeight returns the current reference height.
func (s *RuleBased) ReferenceHeight() int64 {
	return s.reference.Load()
}

// Name implements Scorer.
func (s *RuleBased) Name() string { return ModelRules }

// Score implements Scorer. Missing vectors disable only the anomaly rule.
func (s *RuleBased) Score(ctx context.Context, records []model.TransactionRecord, vectors []feature.Vector) ([]Score, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var anomalies []Anomaly
	if s.detector != nil && len(vectors) == len(records) {
		anomalies = s.detector.Detect(vectors)
	}

	out := make([]Score, len(records))
	for i, r := range records {
		var a *Anomaly
		if anomalies != nil {
			a = &anomalies[i]
		}
		out[i] = s.ScoreOne(r, a)
	}
	return out, nil
}

// ScoreOne scores a single record with an optional anomaly verdict.
func (s *RuleBased) ScoreOne(r model.TransactionRecord, a *Anomaly) Score {
	points, flags := Points(r, s.reference.Load(), a)
	p := classify.ClampProbability(s.jitter.Apply(r.Hash, classify.ProbabilityFromPoints(points)))

	out := Score{
		Probability: p,
		Prediction:  p >= defaultDecisionLevel,
		Points:      points,
		Flags:       flags,
		ModelType:   ModelRules,
	}
	if a != nil {
		out.Anomaly = a.Decision
	}
	return out
}

// Points evaluates the points table for a record. The total is capped at 100.
func Points(r model.TransactionRecord, referenceHeight int64, a *Anomaly) (int, []string) {
	if math.IsNaN(r.Value) || math.IsInf(r.Value, 0) || r.Value < 0 {
		r.Value = 0
	}

	var total float64
	flags := make([]string, 0, 4)
	for _, rl := range rules {
		if pts := rl.points(r, referenceHeight); pts > 0 {
			total += pts
			flags = append(flags, rl.flag)
		}
	}
	if a != nil && a.Flagged {
		total += math.Min(anomalyPointsCap, math.Abs(a.Decision)*anomalyPointsScale) + anomalyPointsBonus
		flags = append(flags, FlagIsolationAnomaly)
	}

	return classify.ClampScore(int(total)), flags
}

func checkLengths(records []model.TransactionRecord, vectors []feature.Vector) error {
	if len(records) != len(vectors) {
		return fmt.Errorf("%w: %d records, %d vectors", errLengthMismatch, len(records), len(vectors))
	}
	return nil
}
