package workflow

import (
	"fmt"
	"sync"
)

// Board is one view's in-memory list of reviewable records. Each mutation
// replaces the list rather than editing it in place, and Reload restores the
// seed.
type Board[T Record[T, S], S comparable] struct {
	mu       sync.RWMutex
	machine  *Machine[S]
	seed     []T
	records  []T
	onChange func(Change[S])
}

// NewBoard starts a board from a copy of seed. onChange may be nil.
func NewBoard[T Record[T, S], S comparable](m *Machine[S], seed []T, onChange func(Change[S])) *Board[T, S] {
	b := &Board[T, S]{machine: m, seed: append([]T(nil), seed...), onChange: onChange}
	b.records = append([]T(nil), b.seed...)
	return b
}

// Machine returns the board's state machine.
func (b *Board[T, S]) Machine() *Machine[S] { return b.machine }

// Records returns a snapshot of the current list.
func (b *Board[T, S]) Records() []T {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return append([]T(nil), b.records...)
}

// Get returns the record with id.
func (b *Board[T, S]) Get(id string) (T, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return find[T, S](b.records, id)
}

// Apply runs action a on the record with id.
func (b *Board[T, S]) Apply(id string, a Action) (T, error) {
	b.mu.Lock()
	next, change, err := Apply(b.machine, b.records, id, a)
	if err != nil {
		b.mu.Unlock()
		var zero T
		return zero, err
	}
	b.records = next
	rec, _ := find[T, S](next, id)
	b.mu.Unlock()

	if b.onChange != nil {
		b.onChange(change)
	}
	return rec, nil
}

// Update replaces the record with id by fn's result. fn must not change the
// id or the status.
func (b *Board[T, S]) Update(id string, fn func(T) T) (T, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	idx := -1
	for i, r := range b.records {
		if r.RecordID() == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		var zero T
		return zero, fmt.Errorf("%w: %s", ErrRecordNotFound, id)
	}
	updated := fn(b.records[idx])
	if updated.RecordID() != id || updated.CurrentStatus() != b.records[idx].CurrentStatus() {
		var zero T
		return zero, fmt.Errorf("workflow: update may not change id or status of %s", id)
	}
	next := append([]T(nil), b.records...)
	next[idx] = updated
	b.records = next
	return updated, nil
}

// Reload discards every change and restores the seed list.
func (b *Board[T, S]) Reload() {
	b.mu.Lock()
	b.records = append([]T(nil), b.seed...)
	b.mu.Unlock()
}

func find[T Record[T, S], S comparable](records []T, id string) (T, bool) {
	for _, r := range records {
		if r.RecordID() == id {
			return r, true
		}
	}
	var zero T
	return zero, false
}
