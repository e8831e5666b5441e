package transport

import (
	"context"
	"io"

	"github.com/goodnatureofminers/chainguard-backend/internal/engine"
	"github.com/goodnatureofminers/chainguard-backend/internal/model"
	"github.com/goodnatureofminers/chainguard-backend/internal/risk/alert"
	"github.com/goodnatureofminers/chainguard-backend/internal/service/batch"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	// Engine exposes the engine counters.
	Engine interface {
		Metrics() engine.Snapshot
	}
	// Alerts exposes the recent-result buffers.
	Alerts interface {
		Live(limit int) []model.ScoredTransaction
		HighRisk(limit int) []model.ScoredTransaction
		Suspicious(limit int) []model.Alert
		History() []float64
		Stats() alert.Stats
	}
	// Profiles reads and flags address profiles.
	Profiles interface {
		Get(ctx context.Context, address string) (model.AddressProfile, bool, error)
		Top(ctx context.Context, n int) ([]model.AddressProfile, error)
		Flagged(ctx context.Context) ([]model.AddressProfile, error)
		SetFlagged(ctx context.Context, address string, flagged bool) (model.AddressProfile, error)
	}
	// Monitor reports whether streaming ingestion runs.
	Monitor interface {
		Active() bool
	}
	// Analyzer scores uploaded batch files.
	Analyzer interface {
		AnalyzeCSV(ctx context.Context, r io.Reader, progress func(batch.Progress)) (*batch.Result, error)
	}
)
