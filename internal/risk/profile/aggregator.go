// Package profile maintains per-address risk profiles built from scored transactions.
package profile

import (
	"context"
	"errors"
	"fmt"
	"math"
	"slices"
	"sort"
	"strings"
	"time"

	"github.com/goodnatureofminers/chainguard-backend/internal/model"
	"go.uber.org/zap"
)

var (
	// ErrInvalidAddress rejects an empty or null address.
	ErrInvalidAddress = errors.New("invalid address")

	errQueueFull = errors.New("write queue full")
)

// PersistenceError reports a profile that could not be loaded or stored.
// The in-memory aggregate is unaffected.
type PersistenceError struct {
	Address string
	Op      string
	Err     error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("profile %s %s: %v", e.Op, e.Address, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// Aggregator applies scored transactions to the profiles of both participants.
// Updates to the same address are serialized.
type Aggregator struct {
	store  Store
	locks  shardedLocks
	logger *zap.Logger
	now    func() time.Time
}

// NewAggregator constructs an Aggregator over store.
func NewAggregator(store Store, logger *zap.Logger) *Aggregator {
	return &Aggregator{
		store:  store,
		logger: logger.Named("profileAggregator"),
		now:    time.Now,
	}
}

// Update folds tx into the sender and receiver profiles. A self-transfer
// updates the address once per role. Persistence failures are logged and
// returned joined; the remaining role is still applied. A profile that cannot
// be loaded is left untouched rather than restarted from zero.
func (a *Aggregator) Update(ctx context.Context, tx model.ScoredTransaction) error {
	from, to := normalize(tx.From), normalize(tx.To)

	var errs []error
	if !skip(from) {
		if err := a.apply(ctx, from, to, model.RoleSender, tx); err != nil {
			errs = append(errs, err)
		}
	}
	if !skip(to) {
		if err := a.apply(ctx, to, from, model.RoleReceiver, tx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (a *Aggregator) apply(ctx context.Context, addr, peer string, role model.Role, tx model.ScoredTransaction) error {
	unlock := a.locks.lock(addr)
	defer unlock()

	p, ok, err := a.store.Get(ctx, addr)
	if err != nil {
		a.logger.Warn("load profile, update skipped", zap.String("address", addr), zap.String("role", string(role)), zap.Error(err))
		var perr *PersistenceError
		if !errors.As(err, &perr) {
			err = &PersistenceError{Address: addr, Op: "load", Err: err}
		}
		return err
	}
	if !ok {
		p = model.AddressProfile{Address: addr}
	}

	seen := a.now().UTC()
	if tx.Timestamp > 0 {
		seen = tx.Record().Time()
	}
	fraud := tx.RiskTier.IsFraud()
	value := tx.Value
	if value < 0 || math.IsNaN(value) || math.IsInf(value, 0) {
		value = 0
	}

	p.TotalTx++
	p.TotalValue += value
	switch role {
	case model.RoleSender:
		p.SentTx++
		p.ValueSent += value
		if fraud {
			p.FraudSent++
		}
	case model.RoleReceiver:
		p.ReceivedTx++
		p.ValueReceived += value
		if fraud {
			p.FraudReceived++
		}
	}
	if fraud {
		p.FraudTx++
		p.FraudValue += value
	}
	p.FraudPercentage = float64(p.FraudTx) / float64(p.TotalTx) * 100

	if !skip(peer) {
		addCounterparty(&p, peer)
		// Rows stored before the set was persisted carry only the count.
		p.UniqueCounterparties = max(p.UniqueCounterparties, uint64(len(p.Counterparties)))
	}

	if p.FirstSeen.IsZero() {
		p.FirstSeen = seen
	}
	if seen.After(p.LastSeen) {
		p.LastSeen = seen
	}
	p.RiskScore = RiskScore(p)

	if err = a.store.Put(ctx, p); err != nil {
		a.logger.Warn("store profile", zap.String("address", addr), zap.Error(err))
		return err
	}
	return nil
}

// SetFlagged marks or clears the manual flag of an address, creating the profile if needed.
func (a *Aggregator) SetFlagged(ctx context.Context, address string, flagged bool) (model.AddressProfile, error) {
	addr := normalize(address)
	if skip(addr) {
		return model.AddressProfile{}, fmt.Errorf("%w: %q", ErrInvalidAddress, address)
	}

	unlock := a.locks.lock(addr)
	defer unlock()

	p, ok, err := a.store.Get(ctx, addr)
	if err != nil {
		return model.AddressProfile{}, err
	}
	if !ok {
		now := a.now().UTC()
		p = model.AddressProfile{Address: addr, FirstSeen: now, LastSeen: now}
	}
	p.Flagged = flagged
	return p, a.store.Put(ctx, p)
}

// Get returns the profile of address.
func (a *Aggregator) Get(ctx context.Context, address string) (model.AddressProfile, bool, error) {
	return a.store.Get(ctx, normalize(address))
}

// Top returns up to n profiles ordered by risk score, highest first. n <= 0 returns all.
func (a *Aggregator) Top(ctx context.Context, n int) ([]model.AddressProfile, error) {
	all, err := a.store.All(ctx)
	if err != nil {
		return nil, err
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].RiskScore != all[j].RiskScore {
			return all[i].RiskScore > all[j].RiskScore
		}
		return all[i].Address < all[j].Address
	})
	if n > 0 && len(all) > n {
		all = all[:n]
	}
	return all, nil
}

// Flagged returns every manually flagged profile.
func (a *Aggregator) Flagged(ctx context.Context) ([]model.AddressProfile, error) {
	all, err := a.store.All(ctx)
	if err != nil {
		return nil, err
	}
	out := all[:0]
	for _, p := range all {
		if p.Flagged {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Address < out[j].Address })
	return out, nil
}

// RiskScore combines fraud share, fraud count, value and activity into [0,1].
func RiskScore(p model.AddressProfile) float64 {
	fraudCount := math.Min(100, float64(p.FraudTx)/10*100)
	value := math.Min(100, p.TotalValue/1000*100)
	activity := math.Min(100, float64(p.TotalTx)/100*100)

	s := math.Min(100, 0.4*p.FraudPercentage+0.3*fraudCount+0.2*value+0.1*activity) / 100
	return math.Max(0, math.Min(1, s))
}

// addCounterparty inserts peer into the sorted counterparty set of p. The set
// is copied so snapshots already handed to the store stay unchanged.
func addCounterparty(p *model.AddressProfile, peer string) {
	i, found := slices.BinarySearch(p.Counterparties, peer)
	if found {
		return
	}
	set := make([]string, 0, len(p.Counterparties)+1)
	set = append(set, p.Counterparties[:i]...)
	set = append(set, peer)
	set = append(set, p.Counterparties[i:]...)
	p.Counterparties = set
}

func normalize(addr string) string {
	return strings.ToLower(strings.TrimSpace(addr))
}

func skip(addr string) bool {
	return addr == "" || addr == model.NullAddress
}
