package model

import (
	"testing"
	"time"
)

func day(s string) time.Time {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		panic(err)
	}
	return Day(t)
}

func TestParseDay(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid date", "2026-09-15", false},
		{"valid leap day", "2028-02-29", false},
		{"wrong layout", "15-09-2026", true},
		{"not a date", "tomorrow", true},
		{"empty", "", true},
		{"time included", "2026-09-15T10:00:00Z", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDay(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseDay(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err == nil && got != Day(got) {
				t.Errorf("ParseDay(%q) = %v, not normalized to UTC midnight", tt.input, got)
			}
		})
	}
}

func TestDateRangeDays(t *testing.T) {
	r := DateRange{Checkin: day("2026-09-10"), Checkout: day("2026-09-12")}
	days := r.Days()
	if len(days) != 3 {
		t.Fatalf("expected 3 days, got %d", len(days))
	}
	for i, want := range []string{"2026-09-10", "2026-09-11", "2026-09-12"} {
		if !days[i].Equal(day(want)) {
			t.Errorf("days[%d] = %v, want %s", i, days[i], want)
		}
	}

	single := DateRange{Checkin: day("2026-09-10"), Checkout: day("2026-09-10")}
	if got := len(single.Days()); got != 1 {
		t.Errorf("single-day range: expected 1 day, got %d", got)
	}

	inverted := DateRange{Checkin: day("2026-09-12"), Checkout: day("2026-09-10")}
	if got := inverted.Days(); got != nil {
		t.Errorf("inverted range: expected nil, got %v", got)
	}
}

func TestDateRangeNights(t *testing.T) {
	r := DateRange{Checkin: day("2026-09-10"), Checkout: day("2026-09-13")}
	if got := r.Nights(); got != 3 {
		t.Errorf("Nights() = %d, want 3", got)
	}
}

func TestDateRangeOverlaps(t *testing.T) {
	base := DateRange{Checkin: day("2026-09-10"), Checkout: day("2026-09-12")}

	tests := []struct {
		name  string
		other DateRange
		want  bool
	}{
		{"identical", base, true},
		{"shares one day", DateRange{Checkin: day("2026-09-12"), Checkout: day("2026-09-14")}, true},
		{"contained", DateRange{Checkin: day("2026-09-11"), Checkout: day("2026-09-11")}, true},
		{"adjacent after", DateRange{Checkin: day("2026-09-13"), Checkout: day("2026-09-14")}, false},
		{"adjacent before", DateRange{Checkin: day("2026-09-08"), Checkout: day("2026-09-09")}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := base.Overlaps(tt.other); got != tt.want {
				t.Errorf("Overlaps(%v) = %v, want %v", tt.other, got, tt.want)
			}
			if got := tt.other.Overlaps(base); got != tt.want {
				t.Errorf("Overlaps is not symmetric for %v", tt.other)
			}
		})
	}
}

func TestDateRangeContains(t *testing.T) {
	r := DateRange{Checkin: day("2026-09-10"), Checkout: day("2026-09-12")}
	if !r.Contains(day("2026-09-10")) || !r.Contains(day("2026-09-12")) {
		t.Error("range should contain both endpoints")
	}
	if r.Contains(day("2026-09-09")) || r.Contains(day("2026-09-13")) {
		t.Error("range should not contain days outside it")
	}
}
