// Package logging assembles structured slog loggers and formatting helpers used
// across vecalc commands.
//
// It owns the configurable console/JSON handlers, centralizes level and output
// plumbing, and exposes context-aware helpers so every log line of one
// invocation carries the same correlation id and command path. The package
// also provides a no-op logger for tests and wiring code that cannot fail.
//
// Core codec and validation packages never log; only the command layer does.
package logging
