package scoring

import (
	"context"

	"github.com/goodnatureofminers/chainguard-backend/internal/model"
	"github.com/goodnatureofminers/chainguard-backend/internal/risk/classify"
	"github.com/goodnatureofminers/chainguard-backend/internal/risk/feature"
)

// anomalyFeatures are the columns the isolation forest is fitted on.
var anomalyFeatures = []string{
	feature.Value,
	feature.LogValue,
	feature.IsError,
	feature.Hour,
	feature.SameAddress,
	feature.FromFrequency,
	feature.ToFrequency,
	feature.FromZeroCount,
	feature.ToZeroCount,
	feature.ValueZScore,
}

// Anomaly is the isolation-forest verdict for one vector.
type Anomaly struct {
	Decision float64
	Score    float64
	Flagged  bool
}

// AnomalyDetector fits a fresh isolation forest on every batch it sees.
type AnomalyDetector struct {
	cfg ForestConfig
}

// NewAnomalyDetector constructs an AnomalyDetector.
func NewAnomalyDetector(cfg ForestConfig) *AnomalyDetector {
	return &AnomalyDetector{cfg: cfg}
}

// Detect fits the forest on the batch and returns one verdict per vector.
// The forest is reseeded on every call so identical batches yield identical verdicts.
func (d *AnomalyDetector) Detect(vectors []feature.Vector) []Anomaly {
	rows := make([][]float64, len(vectors))
	for i, v := range vectors {
		rows[i] = v.Select(anomalyFeatures)
	}

	forest := NewIsolationForest(d.cfg)
	forest.Fit(rows)

	out := make([]Anomaly, len(vectors))
	for i, r := range rows {
		dec := forest.Decision(r)
		out[i] = Anomaly{
			Decision: dec,
			Score:    forest.AnomalyScore(r),
			Flagged:  dec < 0,
		}
	}
	return out
}

// Name implements Scorer.
func (d *AnomalyDetector) Name() string { return ModelAnomaly }

// Score implements Scorer using the isolation score as the fraud probability.
func (d *AnomalyDetector) Score(ctx context.Context, records []model.TransactionRecord, vectors []feature.Vector) ([]Score, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := checkLengths(records, vectors); err != nil {
		return nil, err
	}

	anomalies := d.Detect(vectors)
	out := make([]Score, len(records))
	for i, a := range anomalies {
		p := classify.ClampProbability(a.Score)
		s := Score{
			Probability: p,
			Prediction:  a.Flagged,
			Points:      classify.ScoreFromProbability(p),
			ModelType:   ModelAnomaly,
			Anomaly:     a.Decision,
		}
		if a.Flagged {
			s.Flags = []string{FlagIsolationAnomaly}
		}
		out[i] = s
	}
	return out, nil
}
