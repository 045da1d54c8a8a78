package focus

import (
	"time"

	"github.com/abhisek/focusflow/internal/store"
)

// Analytics is the running focus-time total for today and this week.
type Analytics struct {
	Daily     time.Duration
	Weekly    time.Duration
	LastReset time.Time
}

// Rollover resets the totals that belong to a period now has left. A new
// calendar day clears Daily; a new ISO week also clears Weekly. LastReset
// moves to now whenever a reset happens.
func (a Analytics) Rollover(now time.Time) Analytics {
	if sameDay(a.LastReset, now) {
		return a
	}
	a.Daily = 0
	if !sameISOWeek(a.LastReset, now) {
		a.Weekly = 0
	}
	a.LastReset = now
	return a
}

// Add credits d to both totals.
func (a Analytics) Add(d time.Duration) Analytics {
	a.Daily += d
	a.Weekly += d
	return a
}

// Minutes returns whole minutes for today and this week.
func (a Analytics) Minutes() (today, week int) {
	return int(a.Daily / time.Minute), int(a.Weekly / time.Minute)
}

func (a Analytics) record() store.AnalyticsRecord {
	return store.AnalyticsRecord{Daily: a.Daily, Weekly: a.Weekly, LastReset: a.LastReset}
}

// FromRecord converts a stored record.
func FromRecord(r store.AnalyticsRecord) Analytics {
	return Analytics{Daily: r.Daily, Weekly: r.Weekly, LastReset: r.LastReset}
}

// sameDay compares calendar dates in now's location.
func sameDay(last, now time.Time) bool {
	if last.IsZero() {
		return false
	}
	ly, lm, ld := last.In(now.Location()).Date()
	ny, nm, nd := now.Date()
	return ly == ny && lm == nm && ld == nd
}

func sameISOWeek(last, now time.Time) bool {
	if last.IsZero() {
		return false
	}
	ly, lw := last.In(now.Location()).ISOWeek()
	ny, nw := now.ISOWeek()
	return ly == ny && lw == nw
}
