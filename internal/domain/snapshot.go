package domain

import (
	"fmt"
	"strings"
	"time"
)

// SourceName is the fixed label reported alongside every snapshot.
const SourceName = "Banco Central de Venezuela (BCV)"

// unavailable is the placeholder the source publishes instead of a value.
const unavailable = "No disponible"

// RateSnapshot is one accepted USD/EUR pair. Rates are kept as the source formats them.
type RateSnapshot struct {
	USD             string
	EUR             string
	SourceTimestamp string
	FetchedAt       time.Time
	Source          string
}

// Validate rejects snapshots that must never reach the cache.
func (s RateSnapshot) Validate() error {
	if IsBlankRate(s.USD) {
		return fmt.Errorf("%w: usd rate is empty", ErrExtraction)
	}
	if IsBlankRate(s.EUR) {
		return fmt.Errorf("%w: eur rate is empty", ErrExtraction)
	}
	return nil
}

func IsBlankRate(v string) bool {
	v = strings.TrimSpace(v)
	return v == "" || strings.EqualFold(v, unavailable)
}

var esMeridiem = strings.NewReplacer("AM", "a. m.", "PM", "p. m.")

// FormatLocal renders t the way es-VE locale strings look, e.g. "20/10/2026, 8:00:05 a. m.".
func FormatLocal(t time.Time, loc *time.Location) string {
	if loc != nil {
		t = t.In(loc)
	}
	return esMeridiem.Replace(t.Format("2/1/2006, 3:04:05 PM"))
}
