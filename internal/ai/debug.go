package ai

import "sync/atomic"

// debugLoggingEnabled guards per-tick debug logs of the AI subsystem.
// Checked instead of the slog level to keep the tick path cheap.
var debugLoggingEnabled atomic.Bool

// EnableDebugLogging turns per-tick AI debug logs on or off.
// Called once from main after the log level is parsed.
func EnableDebugLogging(enabled bool) {
	debugLoggingEnabled.Store(enabled)
}

// IsDebugEnabled returns true if AI debug logging is enabled.
//
//	if ai.IsDebugEnabled() {
//	    slog.Debug("enemy moved", "objectID", id, "x", pos.X)
//	}
func IsDebugEnabled() bool {
	return debugLoggingEnabled.Load()
}
