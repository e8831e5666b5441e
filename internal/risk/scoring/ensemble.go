package scoring

import (
	"context"
	"fmt"
	"math"
	"sync"

	"github.com/goodnatureofminers/chainguard-backend/internal/model"
	"github.com/goodnatureofminers/chainguard-backend/internal/risk/classify"
	"github.com/goodnatureofminers/chainguard-backend/internal/risk/feature"
	"go.uber.org/zap"
)

const highConfidenceLevel = 0.8

type weightedModel struct {
	model  SubModel
	weight float64
}

// Ensemble combines weighted sub-model probabilities into one fraud probability.
type Ensemble struct {
	features  []string
	scaler    *Scaler
	models    []weightedModel
	threshold float64
}

// NewEnsemble builds an Ensemble of logistic sub-models from a validated manifest.
func NewEnsemble(m *Manifest) (*Ensemble, error) {
	if m == nil {
		return nil, ErrModelUnavailable
	}
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrModelUnavailable, err)
	}

	e := &Ensemble{
		features:  m.Features,
		scaler:    m.Scaler,
		threshold: m.Threshold,
	}
	for _, spec := range m.Models {
		e.models = append(e.models, weightedModel{model: NewLogistic(spec), weight: spec.Weight})
	}
	return e, nil
}

// Name implements Scorer.
func (e *Ensemble) Name() string { return ModelEnsemble }

// Threshold returns the decision threshold.
func (e *Ensemble) Threshold() float64 { return e.threshold }

// Score implements Scorer. Any sub-model failure fails the whole batch.
func (e *Ensemble) Score(ctx context.Context, records []model.TransactionRecord, vectors []feature.Vector) ([]Score, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := checkLengths(records, vectors); err != nil {
		return nil, err
	}

	out := make([]Score, len(vectors))
	for i, vec := range vectors {
		x := e.scaler.Transform(vec.Select(e.features))

		var p float64
		for _, wm := range e.models {
			sub, err := wm.model.PredictProba(x)
			if err != nil {
				return nil, fmt.Errorf("sub-model %s: %w", wm.model.Name(), err)
			}
			p += wm.weight * sub
		}

		out[i] = e.score(p, vec)
	}
	return out, nil
}

func (e *Ensemble) score(p float64, vec feature.Vector) Score {
	prediction := p >= e.threshold
	confidence := math.Abs(p-0.5) * 2

	var flags []string
	if prediction {
		flags = append(flags, FlagEnsembleHighRisk)
	}
	if p > highConfidenceLevel {
		flags = append(flags, FlagHighConfidence)
	}
	if vec.Get(feature.IsSuspiciousHour) == 1 {
		flags = append(flags, FlagSuspiciousHour)
	}
	if vec.Get(feature.IsWeekend) == 1 {
		flags = append(flags, FlagWeekendTransaction)
	}

	p = classify.ClampProbability(p)
	return Score{
		Probability: p,
		Prediction:  prediction,
		Points:      classify.ScoreFromProbability(p),
		Flags:       flags,
		Confidence:  &confidence,
		ModelType:   ModelEnsemble,
	}
}

// Fallback scores with a primary scorer and switches to a fallback scorer
// for any batch the primary cannot score.
type Fallback struct {
	primary  Scorer
	fallback Scorer
	logger   *zap.Logger

	unavailable sync.Once
}

// NewFallback constructs a Fallback. A nil primary routes every batch to the fallback.
func NewFallback(primary, fallback Scorer, logger *zap.Logger) *Fallback {
	return &Fallback{
		primary:  primary,
		fallback: fallback,
		logger:   logger.Named("scorer"),
	}
}

// Name reports the primary scorer name when one is configured.
func (f *Fallback) Name() string {
	if f.primary == nil {
		return f.fallback.Name()
	}
	return f.primary.Name()
}

// Score implements Scorer.
func (f *Fallback) Score(ctx context.Context, records []model.TransactionRecord, vectors []feature.Vector) ([]Score, error) {
	if f.primary == nil {
		f.unavailable.Do(func() {
			f.logger.Warn("trained model unavailable, using fallback scorer", zap.String("fallback", f.fallback.Name()))
		})
		return f.fallback.Score(ctx, records, vectors)
	}

	scores, err := f.primary.Score(ctx, records, vectors)
	if err == nil {
		return scores, nil
	}
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	f.logger.Warn("primary scorer failed, batch falls back",
		zap.String("primary", f.primary.Name()),
		zap.String("fallback", f.fallback.Name()),
		zap.Int("records", len(records)),
		zap.Error(err),
	)
	return f.fallback.Score(ctx, records, vectors)
}
