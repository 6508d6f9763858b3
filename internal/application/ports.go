package application

import (
	"context"

	"bcvrates-service/internal/domain"
)

// RateExtractor fetches the source document and pulls both rates out of it.
// Failures wrap domain.ErrSourceUnavailable or domain.ErrExtraction.
type RateExtractor interface {
	Extract(ctx context.Context) (domain.RateSnapshot, error)
}

// RateCache holds the last accepted snapshot.
type RateCache interface {
	Get() (domain.RateSnapshot, bool)
	Set(s domain.RateSnapshot)
}

// HistorialStore is a date-keyed, first-write-wins log of daily rates.
type HistorialStore interface {
	// Append is a no-op when an entry for e.Date already exists.
	Append(ctx context.Context, e domain.HistorialEntry) error
	// All returns entries oldest first.
	All(ctx context.Context) ([]domain.HistorialEntry, error)
	ExistsForDate(ctx context.Context, date string) (bool, error)
}

// RefreshTrigger starts (or joins) a refresh.
type RefreshTrigger interface {
	RefreshNow(ctx context.Context) (domain.RateSnapshot, error)
}
