package streaming

import (
	"context"
	"time"

	"github.com/goodnatureofminers/chainguard-backend/internal/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	// Source reads recent blocks from a chain node.
	Source interface {
		LatestHeight(ctx context.Context) (int64, error)
		BlockTransactions(ctx context.Context, height int64) ([]model.TransactionRecord, error)
	}
	// Processor scores sampled transactions and tracks the chain head.
	Processor interface {
		Process(ctx context.Context, records []model.TransactionRecord, source model.Source) ([]model.ScoredTransaction, error)
		SetChainHead(height int64)
		SetConnected(connected bool)
	}
	// Metrics observes the monitor loop.
	Metrics interface {
		ObserveFetch(err error, started time.Time)
		ObserveCycle(err error, transactions int, started time.Time)
		SetBackoff(d time.Duration)
		SetActive(active bool)
	}
)
