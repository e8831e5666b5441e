package engine

import (
	"context"
	"time"

	"github.com/goodnatureofminers/chainguard-backend/internal/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	// Metrics observes engine activity.
	Metrics interface {
		ObserveProcess(source, scorer string, err error, started time.Time)
		ObserveScored(source, tier string)
		ObserveDuplicates(source string, n int)
		ObserveFeatureWarnings(n int)
		ObserveProfileError()
	}
	// ProfileUpdater folds scored transactions into address profiles.
	ProfileUpdater interface {
		Update(ctx context.Context, tx model.ScoredTransaction) error
	}
	// ScoredRepository persists scored transactions.
	ScoredRepository interface {
		InsertScoredTransactions(ctx context.Context, txs []model.ScoredTransaction) error
	}
	// Service is a background component started and stopped with the engine.
	Service interface {
		Start(ctx context.Context)
		Stop()
	}
)
