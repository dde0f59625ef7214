// Package logging assembles the structured slog loggers used across the
// pipeline library and the operator CLI.
//
// It owns the console and JSON handlers, centralizes level parsing, and
// exposes small attribute helpers so every component tags its lines the same
// way. A no-op logger is provided for tests and for library callers that do
// not care about output.
package logging
