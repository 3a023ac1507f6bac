package session

// Session cache defaults.
const (
	DefaultCacheSize = 256
	DefaultTTLHours  = 2
)

// Log Messages
const (
	LogMsgSessionCreated     = "New game session created"
	LogMsgSessionRestored    = "Game session restored from save"
	LogMsgAutosaveFailed     = "Autosave failed"
	LogMsgEvictionSaveFailed = "Eviction save failed"
	LogMsgShutdownSaveFailed = "Shutdown save failed"
)
