// Package alert holds the bounded buffers of recent scoring results consumed by reporting.
package alert

import (
	"context"
	"sync"
	"time"

	"github.com/goodnatureofminers/chainguard-backend/internal/model"
	"github.com/goodnatureofminers/chainguard-backend/internal/risk/classify"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/stat"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

// Publisher forwards emitted alerts to an external system.
type Publisher interface {
	Publish(ctx context.Context, a model.Alert) error
}

// Capacities sizes the sink buffers.
type Capacities struct {
	Live       int
	History    int
	HighRisk   int
	Suspicious int
}

// DefaultCapacities returns the standard buffer sizes.
func DefaultCapacities() Capacities {
	return Capacities{
		Live:       1000,
		History:    1000,
		HighRisk:   100,
		Suspicious: 200,
	}
}

// Stats summarizes the fraud-probability history.
type Stats struct {
	Count    int     `json:"count"`
	Mean     float64 `json:"mean"`
	Variance float64 `json:"variance"`
	// Trend is the least-squares slope of probability over insertion index.
	Trend float64 `json:"trend"`
}

// Sink owns the live feed, probability history, high-risk and suspicious-alert buffers.
type Sink struct {
	mu         sync.RWMutex
	live       *Ring[model.ScoredTransaction]
	history    *Ring[float64]
	highRisk   *Ring[model.ScoredTransaction]
	suspicious *Ring[model.Alert]

	publisher Publisher
	logger    *zap.Logger
	now       func() time.Time
}

// NewSink constructs a Sink. A nil publisher disables publishing.
func NewSink(caps Capacities, publisher Publisher, logger *zap.Logger) *Sink {
	def := DefaultCapacities()
	if caps.Live <= 0 {
		caps.Live = def.Live
	}
	if caps.History <= 0 {
		caps.History = def.History
	}
	if caps.HighRisk <= 0 {
		caps.HighRisk = def.HighRisk
	}
	if caps.Suspicious <= 0 {
		caps.Suspicious = def.Suspicious
	}
	return &Sink{
		live:       NewRing[model.ScoredTransaction](caps.Live, NewestFirst),
		history:    NewRing[float64](caps.History, FIFO),
		highRisk:   NewRing[model.ScoredTransaction](caps.HighRisk, NewestFirst),
		suspicious: NewRing[model.Alert](caps.Suspicious, NewestFirst),
		publisher:  publisher,
		logger:     logger.Named("alertSink"),
		now:        time.Now,
	}
}

// Emit records a scored transaction in every buffer its tier qualifies for and
// returns the alerts raised for it. Only suspicious scores raise an alert;
// blocked transactions go to the high-risk buffer alone. Publishing is left to
// Publish so that no I/O happens while callers hold their own locks.
func (s *Sink) Emit(tx model.ScoredTransaction, source model.Source) []model.Alert {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.live.Push(tx)
	s.history.Push(tx.FraudProbability)

	if tx.RiskTier == model.TierBlocked {
		s.highRisk.Push(tx)
	}
	if !classify.Classify(tx.RiskScore).TriggersAlert {
		return nil
	}
	a := model.Alert{
		Type:        model.AlertSuspicious,
		Transaction: tx,
		Reason:      classify.AlertReason(tx.RiskScore, source),
		Source:      source,
		RaisedAt:    s.now().UTC(),
	}
	s.suspicious.Push(a)
	return []model.Alert{a}
}

// Publish forwards alerts to the publisher. Failures are logged, never returned.
func (s *Sink) Publish(ctx context.Context, alerts []model.Alert) {
	if s.publisher == nil {
		return
	}
	for _, a := range alerts {
		if err := s.publisher.Publish(ctx, a); err != nil {
			s.logger.Warn("publish alert failed",
				zap.String("hash", a.Transaction.Hash),
				zap.String("type", string(a.Type)),
				zap.Error(err),
			)
		}
	}
}

// Live returns up to limit recent scored transactions, newest first.
func (s *Sink) Live(limit int) []model.ScoredTransaction {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.live.Snapshot(limit)
}

// RecentHashes returns the hashes of up to n recent scored transactions, newest first.
func (s *Sink) RecentHashes(n int) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	txs := s.live.Snapshot(n)
	out := make([]string, len(txs))
	for i, tx := range txs {
		out[i] = tx.Hash
	}
	return out
}

// HighRisk returns up to limit recent blocked transactions, newest first.
func (s *Sink) HighRisk(limit int) []model.ScoredTransaction {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.highRisk.Snapshot(limit)
}

// Suspicious returns up to limit recent suspicious alerts, newest first.
func (s *Sink) Suspicious(limit int) []model.Alert {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.suspicious.Snapshot(limit)
}

// History returns the fraud-probability history, oldest first.
func (s *Sink) History() []float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.history.Snapshot(0)
}

// Stats computes mean, variance and trend of the probability history.
func (s *Sink) Stats() Stats {
	h := s.History()
	out := Stats{Count: len(h)}
	switch len(h) {
	case 0:
		return out
	case 1:
		out.Mean = h[0]
		return out
	}

	out.Mean, out.Variance = stat.MeanVariance(h, nil)
	xs := make([]float64, len(h))
	for i := range xs {
		xs[i] = float64(i)
	}
	_, out.Trend = stat.LinearRegression(xs, h, nil, false)
	return out
}

// Reset clears every buffer.
func (s *Sink) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.live.Reset()
	s.history.Reset()
	s.highRisk.Reset()
	s.suspicious.Reset()
}
