package engine

import (
	"errors"
	"sync"
	"testing"
	"time"

	reserrors "campsite/internal/reservations/errors"
	"campsite/internal/reservations/ledger"
	"campsite/pkg/model"
)

var start = model.Day(time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC))

func newEngine() *Engine {
	return New(ledger.New(start, 31))
}

func dayN(n int) time.Time {
	return start.AddDate(0, 0, n)
}

func rangeN(from, to int) model.DateRange {
	return model.DateRange{Checkin: dayN(from), Checkout: dayN(to)}
}

func TestTryClaimConflict(t *testing.T) {
	e := newEngine()

	if err := e.TryClaim(rangeN(10, 12), "res-a"); err != nil {
		t.Fatalf("first claim failed: %v", err)
	}
	err := e.TryClaim(rangeN(11, 13), "res-b")
	if !errors.Is(err, reserrors.ErrCampsiteUnavailable) {
		t.Fatalf("expected ErrCampsiteUnavailable, got %v", err)
	}

	// Per the conflict above, only day 13 of 10..13 should remain free.
	free, err := e.QueryAvailable(rangeN(10, 13))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(free) != 1 || !free[0].Equal(dayN(13)) {
		t.Errorf("free days = %v, want [day 13]", free)
	}
}

func TestConcurrentClaimsAtMostOneWins(t *testing.T) {
	e := newEngine()

	const attempts = 32
	var wg sync.WaitGroup
	errs := make([]error, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			errs[n] = e.TryClaim(rangeN(10, 12), "res")
		}(i)
	}
	wg.Wait()

	successes := 0
	for _, err := range errs {
		if err == nil {
			successes++
		} else if !errors.Is(err, reserrors.ErrCampsiteUnavailable) {
			t.Errorf("unexpected error: %v", err)
		}
	}
	if successes != 1 {
		t.Errorf("exactly one concurrent claim should win, got %d", successes)
	}
}

func TestSwapKeepsOverlapAndFreesRest(t *testing.T) {
	e := newEngine()

	if err := e.TryClaim(rangeN(10, 12), "res-a"); err != nil {
		t.Fatalf("claim failed: %v", err)
	}
	if err := e.Swap(rangeN(10, 12), rangeN(11, 13), "res-a"); err != nil {
		t.Fatalf("swap failed: %v", err)
	}

	free, err := e.QueryAvailable(rangeN(9, 14))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	wantFree := map[int]bool{9: true, 10: true, 14: true}
	if len(free) != len(wantFree) {
		t.Fatalf("free days = %v, want days 9, 10, 14", free)
	}
	for _, d := range free {
		n := int(d.Sub(start).Hours() / 24)
		if !wantFree[n] {
			t.Errorf("day %d unexpectedly free", n)
		}
	}

	owned := e.OwnedDays("res-a")
	if len(owned) != 3 {
		t.Fatalf("res-a should own 3 days after swap, got %d", len(owned))
	}
	for i, want := range []int{11, 12, 13} {
		if !owned[i].Equal(dayN(want)) {
			t.Errorf("owned[%d] = %v, want day %d", i, owned[i], want)
		}
	}
}

func TestSwapConflictLeavesOldRangeUntouched(t *testing.T) {
	e := newEngine()

	if err := e.TryClaim(rangeN(10, 12), "res-a"); err != nil {
		t.Fatalf("claim failed: %v", err)
	}
	if err := e.TryClaim(rangeN(13, 13), "res-b"); err != nil {
		t.Fatalf("blocking claim failed: %v", err)
	}

	before := e.Snapshot()
	err := e.Swap(rangeN(10, 12), rangeN(11, 13), "res-a")
	if !errors.Is(err, reserrors.ErrCampsiteUnavailable) {
		t.Fatalf("expected ErrCampsiteUnavailable, got %v", err)
	}
	after := e.Snapshot()
	for d, owner := range before {
		if after[d] != owner {
			t.Fatalf("failed swap mutated ledger at %v: %q -> %q", d, owner, after[d])
		}
	}
}

func TestSwapDisjointRanges(t *testing.T) {
	e := newEngine()

	if err := e.TryClaim(rangeN(5, 7), "res-a"); err != nil {
		t.Fatalf("claim failed: %v", err)
	}
	if err := e.Swap(rangeN(5, 7), rangeN(20, 22), "res-a"); err != nil {
		t.Fatalf("swap failed: %v", err)
	}

	free, err := e.QueryAvailable(rangeN(5, 7))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(free) != 3 {
		t.Errorf("old range should be fully free after disjoint swap, free = %v", free)
	}
	if got := len(e.OwnedDays("res-a")); got != 3 {
		t.Errorf("res-a should own the 3 new days, got %d", got)
	}
}

func TestSwapOutsideHorizon(t *testing.T) {
	e := newEngine()

	if err := e.TryClaim(rangeN(29, 31), "res-a"); err != nil {
		t.Fatalf("claim failed: %v", err)
	}
	err := e.Swap(rangeN(29, 31), rangeN(30, 32), "res-a")
	if !errors.Is(err, reserrors.ErrOutOfRange) {
		t.Fatalf("expected ErrOutOfRange, got %v", err)
	}
	if got := len(e.OwnedDays("res-a")); got != 3 {
		t.Errorf("failed swap should leave ownership intact, res-a owns %d days", got)
	}
}

// A stolen-overlap regression: while a swap is pending, a third party must
// not be able to take the days shared between old and new ranges.
func TestSwapRacesWithThirdPartyClaim(t *testing.T) {
	for i := 0; i < 50; i++ {
		e := newEngine()
		if err := e.TryClaim(rangeN(10, 12), "res-a"); err != nil {
			t.Fatalf("claim failed: %v", err)
		}

		var wg sync.WaitGroup
		var swapErr, claimErr error

		wg.Add(2)
		go func() {
			defer wg.Done()
			swapErr = e.Swap(rangeN(10, 12), rangeN(11, 13), "res-a")
		}()
		go func() {
			defer wg.Done()
			claimErr = e.TryClaim(rangeN(11, 12), "res-b")
		}()
		wg.Wait()

		// The overlap days belong to res-a in both old and new ranges, so
		// the swap always succeeds and the third-party claim always loses.
		if swapErr != nil {
			t.Fatalf("iteration %d: swap failed: %v", i, swapErr)
		}
		if !errors.Is(claimErr, reserrors.ErrCampsiteUnavailable) {
			t.Fatalf("iteration %d: overlap claim should conflict, got %v", i, claimErr)
		}
	}
}
