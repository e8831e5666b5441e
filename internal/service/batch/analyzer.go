// Package batch scores uploaded transaction files in fixed-size chunks and
// summarizes the outcome in a report.
package batch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/goodnatureofminers/chainguard-backend/internal/model"
	"github.com/goodnatureofminers/chainguard-backend/pkg/workerpool"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Config tunes the analyzer.
type Config struct {
	ChunkSize int
	Workers   int
	TopN      int
	Unit      Unit
}

// DefaultConfig returns the analyzer defaults.
func DefaultConfig() Config {
	return Config{
		ChunkSize: defaultChunkSize,
		Workers:   defaultWorkers,
		TopN:      defaultTopN,
		Unit:      UnitEther,
	}
}

// Progress is reported after each scored chunk.
type Progress struct {
	Chunks    int
	Done      int
	Total     int
	Processed int
}

// Result is the outcome of an analysis.
type Result struct {
	Transactions []model.ScoredTransaction
	RowErrors    []*RowParseError
	Report       Report
}

// Analyzer runs batch analyses.
type Analyzer struct {
	logger    *zap.Logger
	processor Processor
	metrics   Metrics
	cfg       Config
	now       func() time.Time
	newID     func() string
}

// NewAnalyzer builds an Analyzer with dependencies.
func NewAnalyzer(processor Processor, metrics Metrics, cfg Config, logger *zap.Logger) (*Analyzer, error) {
	if processor == nil {
		return nil, errors.New("batch analyzer processor is required")
	}
	if metrics == nil {
		return nil, errors.New("batch analyzer metrics is required")
	}
	if cfg.ChunkSize <= 0 {
		return nil, fmt.Errorf("invalid batch chunk size %d", cfg.ChunkSize)
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	if cfg.TopN < 0 {
		cfg.TopN = defaultTopN
	}
	if cfg.Unit == "" {
		cfg.Unit = UnitEther
	}

	return &Analyzer{
		logger:    logger.Named("batchAnalyzer"),
		processor: processor,
		metrics:   metrics,
		cfg:       cfg,
		now:       time.Now,
		newID: func() string {
			return uuid.NewString()[:8]
		},
	}, nil
}

// AnalyzeCSV reads a CSV input and analyzes its well-formed rows.
func (a *Analyzer) AnalyzeCSV(ctx context.Context, r io.Reader, progress func(Progress)) (res *Result, err error) {
	defer func() {
		a.metrics.ObserveReport(err)
	}()

	rows, err := ReadCSV(r, a.cfg.Unit)
	if err != nil {
		return nil, err
	}
	if n := len(rows.Errors); n > 0 {
		a.metrics.ObserveRowErrors(n)
		a.logger.Warn("rows skipped", zap.Int("count", n), zap.Error(rows.Errors[0]))
	}

	res, err = a.analyze(ctx, rows.Records, len(rows.Errors), progress)
	if err != nil {
		return nil, err
	}
	res.RowErrors = rows.Errors
	return res, nil
}

// Analyze scores records that were already parsed.
func (a *Analyzer) Analyze(ctx context.Context, records []model.TransactionRecord, progress func(Progress)) (res *Result, err error) {
	defer func() {
		a.metrics.ObserveReport(err)
	}()
	return a.analyze(ctx, records, 0, progress)
}

func (a *Analyzer) analyze(ctx context.Context, records []model.TransactionRecord, rowErrors int, progress func(Progress)) (*Result, error) {
	started := time.Now()
	chunks := split(records, a.cfg.ChunkSize)

	var (
		mu        sync.Mutex
		done      int
		processed int
	)
	scored, err := workerpool.Map(ctx, a.cfg.Workers, chunks, func(ctx context.Context, i int, chunk []model.TransactionRecord) ([]model.ScoredTransaction, error) {
		chunkStarted := time.Now()
		out, err := a.processor.Process(ctx, chunk, model.SourceBatch)
		a.metrics.ObserveChunk(err, len(chunk), chunkStarted)
		if err != nil {
			return nil, fmt.Errorf("chunk %d: %w", i, err)
		}

		mu.Lock()
		defer mu.Unlock()
		done++
		processed += len(chunk)
		if progress != nil {
			progress(Progress{Chunks: len(chunks), Done: done, Total: len(records), Processed: processed})
		}
		return out, nil
	})
	if err != nil {
		return nil, err
	}

	var txs []model.ScoredTransaction
	for _, out := range scored {
		txs = append(txs, out...)
	}
	report := NewReport(a.newID(), a.now(), txs, rowErrors, a.cfg.TopN)

	a.logger.Info("batch analyzed",
		zap.String("report_id", report.ID),
		zap.Int("records", len(records)),
		zap.Int("scored", len(txs)),
		zap.Int("blocked", report.Summary.Blocked),
		zap.Int("suspicious", report.Summary.Suspicious),
		zap.Int("row_errors", rowErrors),
		zap.Duration("elapsed", time.Since(started)),
	)
	return &Result{Transactions: txs, Report: report}, nil
}

func split(records []model.TransactionRecord, size int) [][]model.TransactionRecord {
	var out [][]model.TransactionRecord
	for start := 0; start < len(records); start += size {
		end := start + size
		if end > len(records) {
			end = len(records)
		}
		out = append(out, records[start:end])
	}
	return out
}
