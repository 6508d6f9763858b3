package domain

import "time"

// IsBusinessDay reports whether t falls Monday through Friday in its own location.
func IsBusinessDay(t time.Time) bool {
	switch t.Weekday() {
	case time.Saturday, time.Sunday:
		return false
	default:
		return true
	}
}

// Schedule is the daily refresh window: Hour:00 on business days in Location.
type Schedule struct {
	Location *time.Location
	Hour     int
}

func (s Schedule) loc() *time.Location {
	if s.Location == nil {
		return time.UTC
	}
	return s.Location
}

// Due reports whether now is inside the refresh hour of a business day.
func (s Schedule) Due(now time.Time) bool {
	local := now.In(s.loc())
	return IsBusinessDay(local) && local.Hour() == s.Hour
}

// Next returns the first business-day Hour:00 instant strictly after now.
// Days are stepped with time.Date so DST transitions do not shift the wall-clock hour.
func (s Schedule) Next(now time.Time) time.Time {
	loc := s.loc()
	local := now.In(loc)
	y, m, d := local.Date()
	next := time.Date(y, m, d, s.Hour, 0, 0, 0, loc)
	for !next.After(local) || !IsBusinessDay(next) {
		d++
		next = time.Date(y, m, d, s.Hour, 0, 0, 0, loc)
	}
	return next
}
