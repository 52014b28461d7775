package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/okian/riskradar/internal/domain/model"
)

// MemStore is an in-memory Store keeping a single ranked snapshot. Reads
// take a shared lock; Replace swaps the whole snapshot under an exclusive
// lock, so readers never observe a partially updated ranking.
type MemStore struct {
	mu     sync.RWMutex
	ranked []model.CompositeScoreRecord
	byID   map[string]int // city id -> index into ranked
}

// NewMemStore creates an empty ranking store.
func NewMemStore() *MemStore {
	return &MemStore{
		byID: make(map[string]int),
	}
}

// Replace swaps in a full set of scored records. Ranks are assigned by
// composite descending; ties break on city id so ordering stays stable
// across identical scenarios.
func (s *MemStore) Replace(_ context.Context, records []model.CompositeScoreRecord) {
	ranked := make([]model.CompositeScoreRecord, len(records))
	copy(ranked, records)
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Composite != ranked[j].Composite {
			return ranked[i].Composite > ranked[j].Composite
		}
		return ranked[i].ID < ranked[j].ID
	})

	byID := make(map[string]int, len(ranked))
	for i := range ranked {
		ranked[i].Rank = i + 1
		byID[ranked[i].ID] = i
	}

	s.mu.Lock()
	s.ranked = ranked
	s.byID = byID
	s.mu.Unlock()
}

// City returns the scored record for a city id.
func (s *MemStore) City(_ context.Context, id string) (model.CompositeScoreRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i, ok := s.byID[id]
	if !ok {
		return model.CompositeScoreRecord{}, ErrNotFound
	}
	return s.ranked[i], nil
}

// TopN returns the n highest-risk records in rank order.
func (s *MemStore) TopN(_ context.Context, n int) ([]model.CompositeScoreRecord, error) {
	if n < 1 {
		return nil, ErrInvalidLimit
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if n > len(s.ranked) {
		n = len(s.ranked)
	}
	out := make([]model.CompositeScoreRecord, n)
	copy(out, s.ranked[:n])
	return out, nil
}

// Count returns the number of cities in the current snapshot.
func (s *MemStore) Count(_ context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.ranked)
}
