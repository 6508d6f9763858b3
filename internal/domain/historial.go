package domain

import "time"

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04:05"
)

// HistorialEntry is the single rate record kept for a calendar date.
type HistorialEntry struct {
	Date       string
	USD        string
	EUR        string
	RecordedAt time.Time
}

// DateKey returns the calendar date of t in loc, used as the history dedup key.
func DateKey(t time.Time, loc *time.Location) string {
	if loc != nil {
		t = t.In(loc)
	}
	return t.Format(DateLayout)
}

// NewHistorialEntry derives the entry for the day s was accepted.
func NewHistorialEntry(s RateSnapshot, now time.Time, loc *time.Location) HistorialEntry {
	return HistorialEntry{
		Date:       DateKey(now, loc),
		USD:        s.USD,
		EUR:        s.EUR,
		RecordedAt: now,
	}
}
