// Package engine wires feature extraction, scoring, classification,
// deduplication, profile aggregation and alerting into one service object.
package engine

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/goodnatureofminers/chainguard-backend/internal/metrics"
	"github.com/goodnatureofminers/chainguard-backend/internal/model"
	"github.com/goodnatureofminers/chainguard-backend/internal/risk/alert"
	"github.com/goodnatureofminers/chainguard-backend/internal/risk/classify"
	"github.com/goodnatureofminers/chainguard-backend/internal/risk/dedup"
	"github.com/goodnatureofminers/chainguard-backend/internal/risk/feature"
	"github.com/goodnatureofminers/chainguard-backend/internal/risk/profile"
	"github.com/goodnatureofminers/chainguard-backend/internal/risk/scoring"
	"go.uber.org/zap"
)

// ErrNotRunning is returned by Process outside Start and Stop.
var ErrNotRunning = errors.New("engine is not running")

// Deps are the collaborators of an Engine. Nil members get in-memory defaults.
type Deps struct {
	Logger    *zap.Logger
	Scorer    scoring.Scorer
	Rules     *scoring.RuleBased
	Profiles  ProfileUpdater
	Publisher alert.Publisher
	Scored    ScoredRepository
	Metrics   Metrics
	Services  []Service
}

// Snapshot is the monitoring view of the engine.
type Snapshot struct {
	TotalProcessed uint64    `json:"total_processed"`
	TotalFraud     uint64    `json:"total_fraud"`
	FraudRate      float64   `json:"fraud_rate"`
	CurrentBlock   int64     `json:"current_block"`
	LastUpdate     time.Time `json:"last_update"`
	Connected      bool      `json:"connected"`
	Scorer         string    `json:"scorer"`
	TrackedHashes  int       `json:"tracked_hashes"`
}

// Engine scores transaction records and records their effects.
type Engine struct {
	logger    *zap.Logger
	extractor *feature.Extractor
	scorer    scoring.Scorer
	rules     *scoring.RuleBased
	dedup     *dedup.Deduplicator
	sink      *alert.Sink
	profiles  ProfileUpdater
	scored    ScoredRepository
	metrics   Metrics
	services  []Service
	now       func() time.Time

	mu      sync.Mutex
	running bool
	cancel  context.CancelFunc

	totalProcessed atomic.Uint64
	totalFraud     atomic.Uint64
	currentBlock   atomic.Int64
	lastUpdate     atomic.Int64
	connected      atomic.Bool
}

// New constructs an Engine.
func New(cfg Config, deps Deps) (*Engine, error) {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.Named("engine")

	scorer, rules := deps.Scorer, deps.Rules
	if scorer == nil {
		var err error
		scorer, rules, err = scoring.New(cfg.Scoring, logger)
		if err != nil {
			return nil, fmt.Errorf("build scorer: %w", err)
		}
	}

	profiles := deps.Profiles
	if profiles == nil {
		profiles = profile.NewAggregator(profile.NewMemoryStore(), logger)
	}
	m := deps.Metrics
	if m == nil {
		m = metrics.NewEngine()
	}

	sink := alert.NewSink(cfg.Alerts, deps.Publisher, logger)
	e := &Engine{
		logger:    logger,
		extractor: feature.NewExtractor(logger),
		scorer:    scorer,
		rules:     rules,
		dedup:     dedup.New(cfg.DedupMaxEntries, cfg.DedupRetain, sink.RecentHashes),
		sink:      sink,
		profiles:  profiles,
		scored:    deps.Scored,
		metrics:   m,
		services:  deps.Services,
		now:       time.Now,
	}
	if rules != nil {
		e.currentBlock.Store(rules.ReferenceHeight())
	}
	return e, nil
}

// Start starts background services and enables Process.
func (e *Engine) Start(ctx context.Context) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.running {
		return
	}

	ctx, e.cancel = context.WithCancel(ctx)
	for _, s := range e.services {
		s.Start(ctx)
	}
	e.running = true
	e.logger.Info("engine started", zap.String("scorer", e.scorer.Name()))
}

// Stop disables Process and stops background services in reverse order.
func (e *Engine) Stop() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.running {
		return
	}

	e.running = false
	for i := len(e.services) - 1; i >= 0; i-- {
		e.services[i].Stop()
	}
	e.cancel()
	e.logger.Info("engine stopped",
		zap.Uint64("total_processed", e.totalProcessed.Load()),
		zap.Uint64("total_fraud", e.totalFraud.Load()),
	)
}

func (e *Engine) isRunning() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.running
}

// Process scores records that have not been scored before and returns them
// in input order. Records without a hash are skipped. Duplicates, within the
// call or against earlier calls, are skipped and produce no side effects.
func (e *Engine) Process(ctx context.Context, records []model.TransactionRecord, source model.Source) (out []model.ScoredTransaction, err error) {
	start := e.now()
	defer func() {
		e.metrics.ObserveProcess(string(source), e.scorer.Name(), err, start)
	}()

	if !e.isRunning() {
		return nil, ErrNotRunning
	}

	fresh := e.filter(records, source)
	if len(fresh) == 0 {
		return nil, nil
	}

	vectors, warnings := e.extractor.Extract(fresh)
	e.metrics.ObserveFeatureWarnings(len(warnings))

	scores, err := e.scorer.Score(ctx, fresh, vectors)
	if err != nil {
		return nil, fmt.Errorf("score %d records: %w", len(fresh), err)
	}
	if len(scores) != len(fresh) {
		return nil, fmt.Errorf("scorer %s returned %d scores for %d records", e.scorer.Name(), len(scores), len(fresh))
	}

	scoredAt := e.now().UTC()
	var alerts []model.Alert
	out = make([]model.ScoredTransaction, 0, len(fresh))
	for i, r := range fresh {
		tx := build(r, scores[i], scoredAt)
		committed := e.dedup.TryMarkThen(tx.Hash, func() {
			alerts = append(alerts, e.sink.Emit(tx, source)...)
			e.totalProcessed.Add(1)
			if tx.RiskTier.IsFraud() {
				e.totalFraud.Add(1)
			}
			out = append(out, tx)
		})
		if !committed {
			e.metrics.ObserveDuplicates(string(source), 1)
			continue
		}
		e.metrics.ObserveScored(string(source), string(tx.RiskTier))
	}

	for _, tx := range out {
		if uerr := e.profiles.Update(ctx, tx); uerr != nil {
			e.metrics.ObserveProfileError()
			e.logger.Warn("profile update skipped", zap.String("hash", tx.Hash), zap.Error(uerr))
		}
	}
	e.sink.Publish(ctx, alerts)
	if e.scored != nil && len(out) > 0 {
		if ierr := e.scored.InsertScoredTransactions(ctx, out); ierr != nil {
			e.logger.Warn("scored transactions not persisted", zap.Int("count", len(out)), zap.Error(ierr))
		}
	}

	e.lastUpdate.Store(scoredAt.UnixNano())
	e.logger.Debug("records processed",
		zap.String("source", string(source)),
		zap.Int("received", len(records)),
		zap.Int("scored", len(out)),
		zap.Int("alerts", len(alerts)),
	)
	return out, nil
}

// filter drops records without a hash and records already scored.
func (e *Engine) filter(records []model.TransactionRecord, source model.Source) []model.TransactionRecord {
	fresh := make([]model.TransactionRecord, 0, len(records))
	inCall := make(map[string]struct{}, len(records))
	duplicates := 0
	for _, r := range records {
		r.Hash = strings.TrimSpace(r.Hash)
		if r.Hash == "" {
			e.logger.Warn("record without hash skipped", zap.Int64("block", r.BlockHeight))
			continue
		}
		if _, ok := inCall[r.Hash]; ok || e.dedup.Contains(r.Hash) {
			duplicates++
			continue
		}
		inCall[r.Hash] = struct{}{}
		fresh = append(fresh, r)
	}
	e.metrics.ObserveDuplicates(string(source), duplicates)
	return fresh
}

func build(r model.TransactionRecord, s scoring.Score, scoredAt time.Time) model.ScoredTransaction {
	p := classify.ClampProbability(s.Probability)
	score := classify.ScoreFromProbability(p)
	decision := classify.Classify(score)

	flags := make([]string, 0, len(s.Flags))
	flags = append(flags, s.Flags...)
	var confidence *float64
	if s.Confidence != nil {
		c := *s.Confidence
		confidence = &c
	}

	return model.ScoredTransaction{
		Hash:             r.Hash,
		From:             r.From,
		To:               r.To,
		Value:            r.Value,
		BlockHeight:      r.BlockHeight,
		Timestamp:        r.Timestamp,
		IsError:          r.IsError,
		FraudProbability: p,
		RiskScore:        score,
		RiskTier:         decision.Tier,
		Action:           decision.Action,
		Flags:            flags,
		Confidence:       confidence,
		ModelType:        s.ModelType,
		ScoredAt:         scoredAt,
	}
}

// SetChainHead records the newest block height seen by a live source. The
// rule-based scorer measures block recency against it.
func (e *Engine) SetChainHead(height int64) {
	for {
		cur := e.currentBlock.Load()
		if height <= cur || e.currentBlock.CompareAndSwap(cur, height) {
			break
		}
	}
	if e.rules != nil {
		e.rules.SetReferenceHeight(height)
	}
}

// SetConnected records whether the live source is reachable.
func (e *Engine) SetConnected(connected bool) {
	e.connected.Store(connected)
}

// Metrics returns the monitoring counters.
func (e *Engine) Metrics() Snapshot {
	s := Snapshot{
		TotalProcessed: e.totalProcessed.Load(),
		TotalFraud:     e.totalFraud.Load(),
		CurrentBlock:   e.currentBlock.Load(),
		Connected:      e.connected.Load(),
		Scorer:         e.scorer.Name(),
		TrackedHashes:  e.dedup.Len(),
	}
	if s.TotalProcessed > 0 {
		s.FraudRate = float64(s.TotalFraud) / float64(s.TotalProcessed) * 100
	}
	if ns := e.lastUpdate.Load(); ns > 0 {
		s.LastUpdate = time.Unix(0, ns).UTC()
	}
	return s
}

// Alerts exposes the alert buffers for read APIs.
func (e *Engine) Alerts() *alert.Sink {
	return e.sink
}
