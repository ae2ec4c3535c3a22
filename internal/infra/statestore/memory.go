// Package statestore provides the drop-state store drivers. Every driver
// honors the same contract: Update is an atomic read-modify-write serialized
// per product id, and distinct products never block each other.
package statestore

import (
	"context"
	"log/slog"
	"sort"
	"sync"

	"qomo-drops/internal/domain/drop"
	"qomo-drops/internal/infra"
)

type memoryEntry struct {
	mu    sync.Mutex
	state drop.State
}

// MemoryStore keeps all drop states in process memory. The per-entry mutex
// gives each product a single writer while leaving other products untouched.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]*memoryEntry
	logger  *slog.Logger
}

func NewMemoryStore(logger *slog.Logger, seed []drop.State) *MemoryStore {
	s := &MemoryStore{
		entries: make(map[string]*memoryEntry, len(seed)),
		logger:  logger,
	}
	for _, state := range seed {
		s.entries[state.ProductID] = &memoryEntry{state: state}
	}
	return s
}

func (s *MemoryStore) Get(_ context.Context, productID string) (drop.State, error) {
	s.mu.RLock()
	entry, ok := s.entries[productID]
	s.mu.RUnlock()
	if !ok {
		return drop.State{}, infra.WrapRepoErr(s.logger, infra.KindNotFound, "drop state not found", nil)
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()
	return entry.state, nil
}

func (s *MemoryStore) List(_ context.Context) ([]drop.State, error) {
	s.mu.RLock()
	entries := make([]*memoryEntry, 0, len(s.entries))
	for _, entry := range s.entries {
		entries = append(entries, entry)
	}
	s.mu.RUnlock()

	states := make([]drop.State, 0, len(entries))
	for _, entry := range entries {
		entry.mu.Lock()
		states = append(states, entry.state)
		entry.mu.Unlock()
	}
	sort.Slice(states, func(i, j int) bool { return states[i].ProductID < states[j].ProductID })
	return states, nil
}

func (s *MemoryStore) Update(_ context.Context, productID string, fn func(drop.State) (drop.State, error)) (drop.State, error) {
	s.mu.RLock()
	entry, ok := s.entries[productID]
	s.mu.RUnlock()
	if !ok {
		return drop.State{}, infra.WrapRepoErr(s.logger, infra.KindNotFound, "drop state not found", nil)
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()

	next, err := fn(entry.state)
	if err != nil {
		return entry.state, err
	}
	entry.state = next
	return next, nil
}

func (s *MemoryStore) Reset(_ context.Context, states []drop.State) error {
	entries := make(map[string]*memoryEntry, len(states))
	for _, state := range states {
		entries[state.ProductID] = &memoryEntry{state: state}
	}

	s.mu.Lock()
	s.entries = entries
	s.mu.Unlock()
	return nil
}
