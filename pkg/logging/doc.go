// Package logging provides structured logging utilities shared by all
// profilectl components.
//
// It wraps the standard library slog package with project defaults:
// JSON output to stderr, module/version context on every record,
// environment-based level configuration (LOG_LEVEL), and source
// location tracking for debug logs.
//
// Setting the default logger (recommended):
//
//	func main() {
//	    logging.SetDefaultStructuredLogger("profilectl", version)
//
//	    slog.Info("rendering profile", "path", profilePath)
//	    slog.Error("render failed", "error", err)
//	}
//
// Setting an explicit level (e.g. from a --log-level flag):
//
//	logging.SetDefaultStructuredLoggerWithLevel("profilectl", version, "debug")
//
// Supported levels (case-insensitive): DEBUG, INFO, WARN/WARNING, ERROR.
// Unknown values fall back to INFO.
package logging
