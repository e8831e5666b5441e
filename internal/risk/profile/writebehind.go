package profile

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/chainguard-backend/internal/model"
	"github.com/goodnatureofminers/chainguard-backend/pkg/batcher"
	"go.uber.org/zap"
)

// WriteBehindConfig tunes the durable flush of profile updates.
type WriteBehindConfig struct {
	FlushSize     int
	FlushInterval time.Duration
	RPS           int
}

// DefaultWriteBehindConfig returns the flush settings used by the engine.
func DefaultWriteBehindConfig() WriteBehindConfig {
	return WriteBehindConfig{
		FlushSize:     500,
		FlushInterval: 2 * time.Second,
		RPS:           20,
	}
}

// WriteBehindStore serves reads from memory, loads unknown addresses from the
// backend once, and queues writes for asynchronous upsert.
type WriteBehindStore struct {
	cache   *MemoryStore
	backend Backend
	batcher *batcher.Batcher[model.AddressProfile]
	logger  *zap.Logger
}

// NewWriteBehindStore constructs a WriteBehindStore. Start must be called
// before writes reach the backend.
func NewWriteBehindStore(backend Backend, cfg WriteBehindConfig, logger *zap.Logger) *WriteBehindStore {
	logger = logger.Named("profileStore")
	s := &WriteBehindStore{
		cache:   NewMemoryStore(),
		backend: backend,
		logger:  logger,
	}
	s.batcher = batcher.New(logger, s.flush, cfg.FlushSize, cfg.FlushInterval, cfg.RPS)
	return s
}

// Start launches the flush loop.
func (s *WriteBehindStore) Start(ctx context.Context) {
	s.batcher.Start(ctx)
}

// Stop flushes queued profiles and stops the flush loop.
func (s *WriteBehindStore) Stop() {
	s.batcher.Stop()
}

// Get implements Store.
func (s *WriteBehindStore) Get(ctx context.Context, address string) (model.AddressProfile, bool, error) {
	if p, ok, _ := s.cache.Get(ctx, address); ok {
		return p, true, nil
	}
	p, ok, err := s.backend.GetProfile(ctx, address)
	if err != nil {
		return model.AddressProfile{}, false, &PersistenceError{Address: address, Op: "load", Err: err}
	}
	if ok {
		_ = s.cache.Put(ctx, p)
	}
	return p, ok, nil
}

// Put implements Store. The cache is always updated; the durable write is
// reported as a PersistenceError when the queue is full.
func (s *WriteBehindStore) Put(ctx context.Context, p model.AddressProfile) error {
	_ = s.cache.Put(ctx, p)
	if !s.batcher.TryAdd(p) {
		return &PersistenceError{Address: p.Address, Op: "enqueue", Err: errQueueFull}
	}
	return nil
}

// All implements Store with the cached profiles.
func (s *WriteBehindStore) All(ctx context.Context) ([]model.AddressProfile, error) {
	return s.cache.All(ctx)
}

// Dropped returns the number of profile writes rejected by a full queue.
func (s *WriteBehindStore) Dropped() uint64 {
	return s.batcher.Dropped()
}

func (s *WriteBehindStore) flush(ctx context.Context, profiles []model.AddressProfile) error {
	// The same address may be queued several times; only its newest state is written.
	latest := make(map[string]int, len(profiles))
	batch := make([]model.AddressProfile, 0, len(profiles))
	for _, p := range profiles {
		if i, ok := latest[p.Address]; ok {
			batch[i] = p
			continue
		}
		latest[p.Address] = len(batch)
		batch = append(batch, p)
	}
	if err := s.backend.UpsertProfiles(ctx, batch); err != nil {
		return fmt.Errorf("upsert %d profiles: %w", len(batch), err)
	}
	return nil
}
