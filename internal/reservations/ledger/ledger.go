// Package ledger holds the per-day ownership table for the campsite: a
// finite rolling window of calendar days, each either free or owned by
// exactly one reservation id.
package ledger

import (
	"sort"
	"time"

	reserrors "campsite/internal/reservations/errors"
	"campsite/pkg/model"
)

// free marks an unowned day in the table.
const free = ""

// Ledger is NOT safe for concurrent use. The availability engine is the only
// component that touches a ledger after startup and guards it with its lock.
type Ledger struct {
	start time.Time
	end   time.Time
	days  map[time.Time]string
}

// New builds a ledger covering start..start+horizonDays inclusive, all days
// free. Days are never added or removed afterwards, only their owner changes.
func New(start time.Time, horizonDays int) *Ledger {
	start = model.Day(start)
	end := start.AddDate(0, 0, horizonDays)

	days := make(map[time.Time]string, horizonDays+1)
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		days[d] = free
	}

	return &Ledger{start: start, end: end, days: days}
}

// Horizon returns the inclusive range of days the ledger tracks.
func (l *Ledger) Horizon() model.DateRange {
	return model.DateRange{Checkin: l.start, Checkout: l.end}
}

// Within reports whether a single day is inside the horizon.
func (l *Ledger) Within(day time.Time) bool {
	_, ok := l.days[model.Day(day)]
	return ok
}

// WithinRange reports whether every day of r is inside the horizon.
func (l *Ledger) WithinRange(r model.DateRange) bool {
	return l.Within(r.Checkin) && l.Within(r.Checkout) && !r.Checkout.Before(r.Checkin)
}

// Owner returns the reservation id owning the day, or "" when the day is
// free or outside the horizon.
func (l *Ledger) Owner(day time.Time) string {
	return l.days[model.Day(day)]
}

// IsFree reports whether the day is inside the horizon and unowned. Days
// outside the horizon are never free.
func (l *Ledger) IsFree(day time.Time) bool {
	owner, ok := l.days[model.Day(day)]
	return ok && owner == free
}

// IsRangeFree reports whether every day in r is free.
func (l *Ledger) IsRangeFree(r model.DateRange) bool {
	if !l.WithinRange(r) {
		return false
	}
	for _, d := range r.Days() {
		if l.days[d] != free {
			return false
		}
	}
	return true
}

// Claim marks every day in r as owned by id. All-or-nothing: when any day is
// outside the horizon or already owned, nothing changes.
func (l *Ledger) Claim(r model.DateRange, id string) error {
	if !l.WithinRange(r) {
		return reserrors.ErrOutOfRange
	}
	days := r.Days()
	for _, d := range days {
		if l.days[d] != free {
			return reserrors.ErrCampsiteUnavailable
		}
	}
	for _, d := range days {
		l.days[d] = id
	}
	return nil
}

// Release frees every day in r regardless of prior owner. Idempotent on
// already-free days.
func (l *Ledger) Release(r model.DateRange) error {
	if !l.WithinRange(r) {
		return reserrors.ErrOutOfRange
	}
	for _, d := range r.Days() {
		l.days[d] = free
	}
	return nil
}

// SetOwner assigns a single day. Used by the engine's swap, which has
// already checked the day is inside the horizon.
func (l *Ledger) SetOwner(day time.Time, id string) {
	day = model.Day(day)
	if _, ok := l.days[day]; ok {
		l.days[day] = id
	}
}

// Clear frees a single day.
func (l *Ledger) Clear(day time.Time) {
	l.SetOwner(day, free)
}

// FreeDays returns the free days in r, ascending.
func (l *Ledger) FreeDays(r model.DateRange) ([]time.Time, error) {
	if !l.WithinRange(r) {
		return nil, reserrors.ErrOutOfRange
	}
	var out []time.Time
	for _, d := range r.Days() {
		if l.days[d] == free {
			out = append(out, d)
		}
	}
	return out, nil
}

// OwnedDays returns the days currently owned by id, ascending.
func (l *Ledger) OwnedDays(id string) []time.Time {
	var out []time.Time
	for d, owner := range l.days {
		if owner == id && id != free {
			out = append(out, d)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j]) })
	return out
}

// Snapshot copies the whole ownership table. Used by tests to assert that
// rejected operations left the ledger untouched.
func (l *Ledger) Snapshot() map[time.Time]string {
	cp := make(map[time.Time]string, len(l.days))
	for d, owner := range l.days {
		cp[d] = owner
	}
	return cp
}
