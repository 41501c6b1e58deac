// Package dedupe tracks which rounds already have an accepted sheet so a
// second sheet for the same round is skipped instead of merged.
package dedupe

import (
	"context"
	"sync"
)

// Deduper records the first sheet label accepted for each round.
type Deduper interface {
	// SeenAndRecord checks if round already has a sheet and records label if not.
	// Returns the label that owns the round and whether it was already taken.
	SeenAndRecord(ctx context.Context, round int, label string) (string, bool)

	// Size is the number of rounds with an accepted sheet.
	Size() int
}

// inMemoryDeduper keeps ownership in a plain map. Rounds per season number in
// the tens, so there is nothing to evict.
type inMemoryDeduper struct {
	mu     sync.Mutex
	owners map[int]string
}

// NewInMemoryDeduper creates an empty in-memory deduper.
func NewInMemoryDeduper() Deduper {
	return &inMemoryDeduper{
		owners: make(map[int]string),
	}
}

func (d *inMemoryDeduper) SeenAndRecord(_ context.Context, round int, label string) (string, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if owner, exists := d.owners[round]; exists {
		return owner, true
	}
	d.owners[round] = label
	return label, false
}

func (d *inMemoryDeduper) Size() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.owners)
}
