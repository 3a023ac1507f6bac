package config

import "time"

// Default content catalog location.
const DefaultContentDir = "configs/content"

// Default log file directory.
const DefaultLogDir = "logs"

// Database pool defaults.
const (
	DefaultDBMaxConns        = 20
	DefaultDBMaxConnIdleTime = 5 * time.Minute
	DefaultDBMaxConnLifetime = 30 * time.Minute
)

// Session cache defaults.
const (
	DefaultSessionCacheSize = 256
	DefaultSessionTTL       = 2 * time.Hour
)

// Periodic driver defaults. The generator engine banks partial cycles, so
// the tick interval affects latency only, never totals.
const (
	DefaultGeneratorTickInterval = 100 * time.Millisecond
	DefaultSessionTickInterval   = time.Second
	DefaultBankInterestInterval  = 10 * time.Minute
	DefaultAutosaveInterval      = 60 * time.Second
)
