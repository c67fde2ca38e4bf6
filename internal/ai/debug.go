package ai

import "sync/atomic"

// debugLoggingEnabled gates per-tick debug logs of the AI subsystem.
var debugLoggingEnabled atomic.Bool

// EnableDebugLogging enables or disables debug logging for AI subsystem.
// Called from main after the log level is parsed from config.
func EnableDebugLogging(enabled bool) {
	debugLoggingEnabled.Store(enabled)
}

// IsDebugEnabled returns true if debug logging is enabled.
//
//	if ai.IsDebugEnabled() {
//	    slog.Debug("facing changed", "monster", m.Title(), "to", dir)
//	}
func IsDebugEnabled() bool {
	return debugLoggingEnabled.Load()
}
