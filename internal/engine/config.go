package engine

import (
	"github.com/goodnatureofminers/chainguard-backend/internal/risk/alert"
	"github.com/goodnatureofminers/chainguard-backend/internal/risk/dedup"
	"github.com/goodnatureofminers/chainguard-backend/internal/risk/scoring"
)

// Config tunes the engine.
type Config struct {
	Scoring         scoring.Config
	Alerts          alert.Capacities
	DedupMaxEntries int
	DedupRetain     int
}

// DefaultConfig returns the engine defaults: rule-based scoring without jitter.
func DefaultConfig() Config {
	return Config{
		Scoring:         scoring.DefaultConfig(),
		Alerts:          alert.DefaultCapacities(),
		DedupMaxEntries: dedup.DefaultMaxEntries,
		DedupRetain:     dedup.DefaultRetain,
	}
}
