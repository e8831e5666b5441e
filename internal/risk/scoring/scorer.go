package scoring

import (
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// Scorer variants selectable by configuration.
const (
	VariantRules    = "rules"
	VariantAnomaly  = "anomaly"
	VariantEnsemble = "ensemble"
)

// Config selects and tunes the scorer variant.
type Config struct {
	Variant         string
	ModelDir        string
	ReferenceHeight int64
	Forest          ForestConfig
	// AnomalyRule enables the isolation-forest rule of the points table.
	AnomalyRule bool
	Jitter      Jitter
}

// DefaultConfig returns the deterministic rule-based configuration.
func DefaultConfig() Config {
	return Config{
		Variant:         VariantRules,
		ReferenceHeight: DefaultReferenceHeight,
		Forest:          DefaultForestConfig(),
		AnomalyRule:     true,
		Jitter:          NoJitter{},
	}
}

// New builds the configured scorer. The returned RuleBased is the points-table
// scorer in use as primary or fallback, so callers can move its reference height.
func New(cfg Config, logger *zap.Logger) (Scorer, *RuleBased, error) {
	var detector *AnomalyDetector
	if cfg.AnomalyRule {
		detector = NewAnomalyDetector(cfg.Forest)
	}
	rules := NewRuleBased(cfg.ReferenceHeight, detector, cfg.Jitter)

	switch cfg.Variant {
	case VariantRules, "":
		return rules, rules, nil
	case VariantAnomaly:
		return NewAnomalyDetector(cfg.Forest), rules, nil
	case VariantEnsemble:
		manifest, err := LoadManifest(cfg.ModelDir)
		if err != nil {
			if !errors.Is(err, ErrModelUnavailable) {
				return nil, nil, err
			}
			logger.Warn("ensemble manifest not loaded", zap.String("model_dir", cfg.ModelDir), zap.Error(err))
			return NewFallback(nil, rules, logger), rules, nil
		}
		ensemble, err := NewEnsemble(manifest)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("ensemble loaded",
			zap.String("version", manifest.Version),
			zap.Int("models", len(manifest.Models)),
			zap.Float64("threshold", manifest.Threshold),
		)
		return NewFallback(ensemble, rules, logger), rules, nil
	default:
		return nil, nil, fmt.Errorf("unknown scorer variant %q", cfg.Variant)
	}
}
