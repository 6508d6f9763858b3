package domain

import "errors"

var (
	// ErrSourceUnavailable means the raw source content could not be obtained.
	ErrSourceUnavailable = errors.New("source unavailable")
	// ErrExtraction means the content was reachable but a required value was missing or malformed.
	ErrExtraction = errors.New("extraction failed")
	// ErrPersistence means a history entry could not be written.
	ErrPersistence = errors.New("history not persisted")
)
