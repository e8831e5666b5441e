package batch

import (
	"context"
	"time"

	"github.com/goodnatureofminers/chainguard-backend/internal/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	// Processor scores a chunk of transactions.
	Processor interface {
		Process(ctx context.Context, records []model.TransactionRecord, source model.Source) ([]model.ScoredTransaction, error)
	}
	// Metrics observes batch analyses.
	Metrics interface {
		ObserveChunk(err error, size int, started time.Time)
		ObserveRowErrors(n int)
		ObserveReport(err error)
	}
)
