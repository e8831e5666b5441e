// Package scoring combines scoring signals into a single fraud probability.
//
// Three variants implement Scorer: the deterministic rule-based points table,
// an isolation-forest anomaly detector, and a weighted ensemble of trained
// sub-models that falls back to the rules when it cannot score a batch.
package scoring

import (
	"context"

	"github.com/goodnatureofminers/chainguard-backend/internal/model"
	"github.com/goodnatureofminers/chainguard-backend/internal/risk/feature"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

// Model type labels reported on scored transactions.
const (
	ModelRules    = "rule_based"
	ModelAnomaly  = "isolation_forest"
	ModelEnsemble = "ensemble"
)

// Score is the result of scoring a single transaction.
type Score struct {
	Probability float64
	Prediction  bool
	Points      int
	Flags       []string
	Confidence  *float64
	ModelType   string
	// Anomaly is the isolation-forest decision value; negative values are anomalous.
	Anomaly float64
}

type (
	// Scorer assigns a score to every record of a batch. vectors[i] belongs to records[i].
	Scorer interface {
		Score(ctx context.Context, records []model.TransactionRecord, vectors []feature.Vector) ([]Score, error)
		Name() string
	}
	// SubModel is a trained model producing an independent fraud probability.
	SubModel interface {
		Name() string
		PredictProba(x []float64) (float64, error)
	}
	// Jitter perturbs a probability. Implementations must be safe for concurrent use.
	Jitter interface {
		Apply(hash string, p float64) float64
	}
)
