package model

import (
	"fmt"
	"time"
)

// DateLayout is the wire format for all dates accepted and returned by the
// service.
const DateLayout = time.DateOnly

// Day truncates a timestamp to its calendar date at UTC midnight. Every day
// stored in the ledger and every range boundary goes through this, so date
// equality is plain time.Time equality.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ParseDay parses a YYYY-MM-DD date string into a UTC midnight day.
func ParseDay(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, err
	}
	return Day(t), nil
}

// DateRange is an inclusive [Checkin, Checkout] pair of calendar days. The
// checkout day itself is part of the range and is claimed along with the
// rest of the stay.
type DateRange struct {
	Checkin  time.Time
	Checkout time.Time
}

func NewDateRange(checkin, checkout time.Time) DateRange {
	return DateRange{Checkin: Day(checkin), Checkout: Day(checkout)}
}

// Days returns every day in the range in ascending order, both endpoints
// included.
func (r DateRange) Days() []time.Time {
	if r.Checkout.Before(r.Checkin) {
		return nil
	}
	days := make([]time.Time, 0, r.Nights()+1)
	for d := r.Checkin; !d.After(r.Checkout); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

// Nights is the number of whole days between checkin and checkout.
func (r DateRange) Nights() int {
	return int(r.Checkout.Sub(r.Checkin).Hours() / 24)
}

func (r DateRange) Contains(day time.Time) bool {
	day = Day(day)
	return !day.Before(r.Checkin) && !day.After(r.Checkout)
}

func (r DateRange) Overlaps(other DateRange) bool {
	return !r.Checkin.After(other.Checkout) && !other.Checkin.After(r.Checkout)
}

func (r DateRange) Equal(other DateRange) bool {
	return r.Checkin.Equal(other.Checkin) && r.Checkout.Equal(other.Checkout)
}

func (r DateRange) String() string {
	return fmt.Sprintf("%s..%s", r.Checkin.Format(DateLayout), r.Checkout.Format(DateLayout))
}
