// Package repository holds canonical predictions: an in-memory store used for
// scoring and a MongoDB sink for downstream consumers.
package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/okian/maulas/internal/domain/model"
)

// Store accepts canonical predictions. Upsert is idempotent on
// (round, member).
type Store interface {
	Upsert(ctx context.Context, p model.Prediction) error
}

// MemoryStore is the in-process prediction table for a run.
//
// Ordering: rounds ASC, then member id ASC.
type MemoryStore struct {
	mu     sync.RWMutex
	rounds map[int]map[int]model.Selection
	count  int
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{rounds: make(map[int]map[int]model.Selection)}
}

// Upsert stores p, replacing any earlier selection for the same key.
func (s *MemoryStore) Upsert(ctx context.Context, p model.Prediction) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if p.Round < 1 || p.MemberID < 1 {
		return fmt.Errorf("%w: %s", ErrInvalidRound, p.Key())
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	members, ok := s.rounds[p.Round]
	if !ok {
		members = make(map[int]model.Selection)
		s.rounds[p.Round] = members
	}
	if _, exists := members[p.MemberID]; !exists {
		s.count++
	}
	members[p.MemberID] = p.Selection
	return nil
}

// Prediction returns the stored selection for (round, member).
func (s *MemoryStore) Prediction(round, memberID int) (model.Prediction, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sel, ok := s.rounds[round][memberID]
	if !ok {
		return model.Prediction{}, false
	}
	return model.Prediction{Round: round, MemberID: memberID, Selection: sel}, true
}

// Rounds lists rounds holding at least one prediction.
func (s *MemoryStore) Rounds() []int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]int, 0, len(s.rounds))
	for r := range s.rounds {
		out = append(out, r)
	}
	sort.Ints(out)
	return out
}

// Members lists the members with a prediction for round.
func (s *MemoryStore) Members(round int) []int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]int, 0, len(s.rounds[round]))
	for id := range s.rounds[round] {
		out = append(out, id)
	}
	sort.Ints(out)
	return out
}

// All returns every prediction in key order.
func (s *MemoryStore) All() []model.Prediction {
	out := make([]model.Prediction, 0, s.Count())
	for _, round := range s.Rounds() {
		for _, id := range s.Members(round) {
			p, _ := s.Prediction(round, id)
			out = append(out, p)
		}
	}
	return out
}

// Count returns the number of stored predictions.
func (s *MemoryStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.count
}
