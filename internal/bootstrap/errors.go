package bootstrap

import "errors"

var (
	ErrMissingDBURL        = errors.New("DATABASE_URL is required for STORAGE=pg")
	ErrUnknownProvider     = errors.New("unknown PROVIDER")
	ErrUnknownStorage      = errors.New("unknown STORAGE")
	ErrUnknownScheduleMode = errors.New("unknown SCHEDULE_MODE")
)
