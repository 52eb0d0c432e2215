package checkin

import (
	"sort"
	"time"
)

// lifetimeLookbackDays bounds the backward search for the most recent real
// record carrying a lifetime check-in count.
const lifetimeLookbackDays = 30

// Window is an inclusive 7-day analysis window of completed days.
type Window struct {
	Start time.Time
	End   time.Time
}

// WeekID returns the canonical identifier for the window.
func (w Window) WeekID() string {
	return WeekID(w.Start)
}

// Contains reports whether d falls inside the window.
func (w Window) Contains(d time.Time) bool {
	return !d.Before(w.Start) && !d.After(w.End)
}

// WindowFor computes the 7-completed-day analysis window. The window ends
// today when today already has a real check-in, otherwise yesterday; the
// start is always six days before the end.
func WindowFor(today time.Time, todayHasRealCheckin bool) Window {
	end := today.Truncate(24 * time.Hour)
	if !todayHasRealCheckin {
		end = end.AddDate(0, 0, -1)
	}
	return Window{Start: end.AddDate(0, 0, -6), End: end}
}

// LifetimeLookbackStart returns the earliest date the lifetime-count
// fallback search may reach, relative to the window end.
func (w Window) LifetimeLookbackStart() time.Time {
	return w.End.AddDate(0, 0, -lifetimeLookbackDays)
}

// ResolveLifetimeCount finds the most recent known lifetime check-in count.
//
// Primary source: the newest real in-window record carrying a count.
// Fallback: the newest real record in the 30-day lookback set carrying one.
// When both miss, it returns (0, false); callers treat the defaulted zero
// conservatively (it forces the building-foundation outcome downstream).
func ResolveLifetimeCount(window, lookback []DailyRecord) (int, bool) {
	if n, ok := newestWithCount(window); ok {
		return n, true
	}
	if n, ok := newestWithCount(lookback); ok {
		return n, true
	}
	return 0, false
}

func newestWithCount(records []DailyRecord) (int, bool) {
	sorted := SortedByDate(records)
	for i := len(sorted) - 1; i >= 0; i-- {
		r := sorted[i]
		if r.IsReal() && r.HasLifetimeCheckIns {
			return r.LifetimeCheckIns, true
		}
	}
	return 0, false
}

// SortedByDate returns a copy of records ordered oldest to newest.
func SortedByDate(records []DailyRecord) []DailyRecord {
	out := make([]DailyRecord, len(records))
	copy(out, records)
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}
