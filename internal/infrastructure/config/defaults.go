package config

import "time"

// Fallbacks shared by the binaries when the environment leaves a value unset.
const (
	DefaultHTTPPort        = "10000"
	DefaultShutdownTimeout = 10 * time.Second
	DefaultRefreshTimeout  = 20 * time.Second
	DefaultReadHeaderTime  = 5 * time.Second
	DefaultPingTimeout     = 2 * time.Second

	DefaultPGMaxConns = 4
	DefaultPGMinConns = 1
	DefaultPGIdleTime = 2 * time.Minute
)
