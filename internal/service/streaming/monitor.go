// Package streaming polls a chain node and scores a sample of the newest transactions.
package streaming

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"github.com/goodnatureofminers/chainguard-backend/internal/clock"
	"github.com/goodnatureofminers/chainguard-backend/internal/model"
	"github.com/goodnatureofminers/chainguard-backend/pkg/workerpool"
	"go.uber.org/zap"
)

var errAlreadyRunning = errors.New("monitor is already running")

// SourceError reports a failure to read from the chain node.
type SourceError struct {
	Op     string
	Height int64
	Err    error
}

func (e *SourceError) Error() string {
	if e.Height > 0 {
		return fmt.Sprintf("source %s at height %d: %v", e.Op, e.Height, e.Err)
	}
	return fmt.Sprintf("source %s: %v", e.Op, e.Err)
}

func (e *SourceError) Unwrap() error {
	return e.Err
}

// Config tunes the monitor loop.
type Config struct {
	BlocksPerCycle int
	TxPerBlock     int
	PollInterval   time.Duration
	BackoffInitial time.Duration
	BackoffMax     time.Duration
	FetchWorkers   int
	Seed           int64
}

// DefaultConfig returns the polling defaults.
func DefaultConfig() Config {
	return Config{
		BlocksPerCycle: defaultBlocksPerCycle,
		TxPerBlock:     defaultTxPerBlock,
		PollInterval:   defaultPollInterval,
		BackoffInitial: defaultBackoffInitial,
		BackoffMax:     defaultBackoffMax,
		FetchWorkers:   defaultFetchWorkers,
		Seed:           time.Now().UnixNano(),
	}
}

// Monitor is the streaming ingestion worker. A single loop polls the source,
// samples transactions from the newest blocks and hands them to the processor.
type Monitor struct {
	logger    *zap.Logger
	source    Source
	processor Processor
	metrics   Metrics
	sleep     func(context.Context, time.Duration) error
	sample    func([]model.TransactionRecord, int) []model.TransactionRecord
	backoff   *clock.Backoff
	cfg       Config

	// lastHeight is the newest block already sampled, -1 before the first
	// cycle. Only the Run loop touches it.
	lastHeight int64

	active atomic.Bool
	mu     sync.Mutex
	cancel context.CancelFunc
}

// NewMonitor builds a Monitor with dependencies.
func NewMonitor(source Source, processor Processor, metrics Metrics, cfg Config, logger *zap.Logger) (*Monitor, error) {
	if source == nil {
		return nil, errors.New("stream monitor source is required")
	}
	if processor == nil {
		return nil, errors.New("stream monitor processor is required")
	}
	if metrics == nil {
		return nil, errors.New("stream monitor metrics is required")
	}
	if cfg.BlocksPerCycle <= 0 || cfg.TxPerBlock <= 0 || cfg.PollInterval <= 0 {
		return nil, fmt.Errorf("invalid stream monitor config: %+v", cfg)
	}
	if cfg.FetchWorkers <= 0 {
		cfg.FetchWorkers = 1
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	return &Monitor{
		logger:    logger.Named("streamMonitor"),
		source:    source,
		processor: processor,
		metrics:   metrics,
		sleep:     clock.Sleep,
		sample: func(txs []model.TransactionRecord, n int) []model.TransactionRecord {
			return sample(rng, txs, n)
		},
		backoff:    clock.NewBackoff(cfg.BackoffInitial, cfg.BackoffMax),
		cfg:        cfg,
		lastHeight: -1,
	}, nil
}

// Active reports whether the loop is running.
func (m *Monitor) Active() bool {
	return m.active.Load()
}

// Run polls until Stop is called or ctx is canceled. Stop makes Run return nil.
func (m *Monitor) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	m.mu.Lock()
	if m.cancel != nil {
		m.mu.Unlock()
		return errAlreadyRunning
	}
	m.cancel = cancel
	m.active.Store(true)
	m.mu.Unlock()
	m.metrics.SetActive(true)
	m.logger.Info("stream monitor started",
		zap.Int("blocks_per_cycle", m.cfg.BlocksPerCycle),
		zap.Int("tx_per_block", m.cfg.TxPerBlock),
		zap.Duration("interval", m.cfg.PollInterval),
	)

	defer func() {
		m.mu.Lock()
		m.cancel = nil
		m.active.Store(false)
		m.mu.Unlock()
		m.metrics.SetActive(false)
		m.logger.Info("stream monitor stopped")
	}()

	for m.active.Load() {
		wait := m.cfg.PollInterval
		if err := m.run(ctx); err != nil {
			if !m.active.Load() {
				return nil
			}
			if ctx.Err() != nil {
				return ctx.Err()
			}
			wait = m.backoff.Next()
			m.logger.Warn("cycle failed, backing off", zap.Error(err), zap.Duration("sleep", wait))
		} else {
			m.backoff.Reset()
		}
		m.metrics.SetBackoff(wait)

		if err := m.sleep(ctx, wait); err != nil {
			if !m.active.Load() {
				return nil
			}
			return err
		}
	}
	return nil
}

// Stop asks the loop to finish. The current block or transaction is the last one handled.
func (m *Monitor) Stop() {
	m.active.Store(false)
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.cancel != nil {
		m.cancel()
	}
}

func (m *Monitor) run(ctx context.Context) (err error) {
	started := time.Now()
	scored := 0
	defer func() {
		m.metrics.ObserveCycle(err, scored, started)
	}()

	records, head, err := m.collect(ctx)
	if err != nil {
		return err
	}
	if !m.active.Load() {
		return nil
	}
	if len(records) > 0 {
		out, err := m.processor.Process(ctx, records, model.SourceStreaming)
		if err != nil {
			return fmt.Errorf("process %d sampled transactions: %w", len(records), err)
		}
		scored = len(out)
		m.logger.Debug("cycle scored", zap.Int("sampled", len(records)), zap.Int("scored", scored))
	}
	if head > m.lastHeight {
		m.lastHeight = head
	}
	return nil
}

// collect samples transactions from the blocks above the last sampled height,
// at most BlocksPerCycle of them, newest first. It also returns the chain head.
// A block that cannot be read is skipped unless every block fails.
func (m *Monitor) collect(ctx context.Context) ([]model.TransactionRecord, int64, error) {
	started := time.Now()
	latest, err := m.source.LatestHeight(ctx)
	m.metrics.ObserveFetch(err, started)
	if err != nil {
		m.processor.SetConnected(false)
		return nil, 0, &SourceError{Op: "latest_height", Err: err}
	}
	m.processor.SetConnected(true)
	m.processor.SetChainHead(latest)

	heights := make([]int64, 0, m.cfg.BlocksPerCycle)
	for h := latest; h > m.lastHeight && h >= 0 && len(heights) < m.cfg.BlocksPerCycle; h-- {
		heights = append(heights, h)
	}
	if len(heights) == 0 {
		m.logger.Debug("no new blocks", zap.Int64("head", latest))
		return nil, latest, nil
	}

	errs := make([]error, len(heights))
	blocks, err := workerpool.Map(ctx, m.cfg.FetchWorkers, heights, func(ctx context.Context, i int, height int64) ([]model.TransactionRecord, error) {
		if !m.active.Load() {
			return nil, nil
		}
		started := time.Now()
		txs, ferr := m.source.BlockTransactions(ctx, height)
		m.metrics.ObserveFetch(ferr, started)
		if ferr != nil {
			errs[i] = &SourceError{Op: "block_transactions", Height: height, Err: ferr}
			return nil, nil
		}
		return txs, nil
	})
	if err != nil {
		return nil, 0, err
	}

	var (
		records []model.TransactionRecord
		failed  int
	)
	for i := range heights {
		if !m.active.Load() {
			break
		}
		if errs[i] != nil {
			failed++
			m.logger.Warn("block skipped", zap.Int64("height", heights[i]), zap.Error(errs[i]))
			continue
		}
		for _, tx := range m.sample(blocks[i], m.cfg.TxPerBlock) {
			if !m.active.Load() {
				break
			}
			records = append(records, tx)
		}
	}
	if failed > 0 && failed == len(heights) {
		m.processor.SetConnected(false)
		return nil, 0, errors.Join(errs...)
	}
	return records, latest, nil
}

// sample returns up to n transactions chosen uniformly without replacement, in block order.
func sample(rng *rand.Rand, txs []model.TransactionRecord, n int) []model.TransactionRecord {
	if len(txs) <= n {
		return txs
	}
	picked := rng.Perm(len(txs))[:n]
	keep := make([]bool, len(txs))
	for _, i := range picked {
		keep[i] = true
	}
	out := make([]model.TransactionRecord, 0, n)
	for i, tx := range txs {
		if keep[i] {
			out = append(out, tx)
		}
	}
	return out
}
