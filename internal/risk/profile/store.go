package profile

import (
	"context"
	"sync"

	"github.com/goodnatureofminers/chainguard-backend/internal/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	// Store is the key-value contract for address profiles.
	Store interface {
		Get(ctx context.Context, address string) (model.AddressProfile, bool, error)
		Put(ctx context.Context, p model.AddressProfile) error
		All(ctx context.Context) ([]model.AddressProfile, error)
	}
	// Backend is durable profile storage behind a write-behind store.
	Backend interface {
		GetProfile(ctx context.Context, address string) (model.AddressProfile, bool, error)
		UpsertProfiles(ctx context.Context, profiles []model.AddressProfile) error
	}
)

// MemoryStore keeps profiles in process memory.
type MemoryStore struct {
	mu       sync.RWMutex
	profiles map[string]model.AddressProfile
}

// NewMemoryStore constructs an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{profiles: make(map[string]model.AddressProfile)}
}

// Get implements Store.
func (m *MemoryStore) Get(_ context.Context, address string) (model.AddressProfile, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.profiles[address]
	return p, ok, nil
}

// Put implements Store.
func (m *MemoryStore) Put(_ context.Context, p model.AddressProfile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.profiles[p.Address] = p
	return nil
}

// All implements Store.
func (m *MemoryStore) All(_ context.Context) ([]model.AddressProfile, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]model.AddressProfile, 0, len(m.profiles))
	for _, p := range m.profiles {
		out = append(out, p)
	}
	return out, nil
}

// Len returns the number of stored profiles.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.profiles)
}
