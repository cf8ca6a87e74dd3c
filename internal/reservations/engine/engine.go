// Package engine wraps the calendar ledger with the atomicity contract the
// service layer depends on: availability checks and the mutations they guard
// run inside one critical section, so two concurrent claims for overlapping
// dates can never both succeed.
package engine

import (
	"sync"
	"time"

	reserrors "campsite/internal/reservations/errors"
	"campsite/internal/reservations/ledger"
	"campsite/pkg/model"
)

// Engine serializes all ledger mutations behind a write lock. Pure
// availability queries share a read lock and may run concurrently with each
// other, but never interleave with an in-flight mutation.
type Engine struct {
	mu     sync.RWMutex
	ledger *ledger.Ledger
}

func New(l *ledger.Ledger) *Engine {
	return &Engine{ledger: l}
}

// Horizon returns the ledger's inclusive day window.
func (e *Engine) Horizon() model.DateRange {
	return e.ledger.Horizon()
}

// QueryAvailable returns the free days in r, ascending. Read-only.
func (e *Engine) QueryAvailable(r model.DateRange) ([]time.Time, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.ledger.FreeDays(r)
}

// TryClaim atomically checks that every day in r is free and marks them
// owned by id. On conflict nothing changes.
func (e *Engine) TryClaim(r model.DateRange, id string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.ledger.Claim(r, id)
}

// Release frees every day in r.
func (e *Engine) Release(r model.DateRange) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.ledger.Release(r)
}

// Swap atomically moves id's ownership from oldRange to newRange. Days in
// the intersection stay owned throughout; only the net-new days must be
// free. A naive release-then-claim would open a window for a third party to
// steal the overlap, so the delta is computed and applied day by day under
// one lock. Either the whole swap happens or the old range is untouched.
func (e *Engine) Swap(oldRange, newRange model.DateRange, id string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.ledger.WithinRange(newRange) {
		return reserrors.ErrOutOfRange
	}

	var toClaim []time.Time
	for _, d := range newRange.Days() {
		if oldRange.Contains(d) {
			continue
		}
		if !e.ledger.IsFree(d) {
			return reserrors.ErrCampsiteUnavailable
		}
		toClaim = append(toClaim, d)
	}

	for _, d := range toClaim {
		e.ledger.SetOwner(d, id)
	}
	for _, d := range oldRange.Days() {
		if !newRange.Contains(d) {
			e.ledger.Clear(d)
		}
	}
	return nil
}

// Snapshot copies the ledger's ownership table for inspection.
func (e *Engine) Snapshot() map[time.Time]string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.ledger.Snapshot()
}

// OwnedDays lists the days currently owned by id, ascending.
func (e *Engine) OwnedDays(id string) []time.Time {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.ledger.OwnedDays(id)
}
