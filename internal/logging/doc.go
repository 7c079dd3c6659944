// Package logging assembles the structured slog loggers used across caveplan.
//
// It owns the console and JSON handlers, centralizes level and output
// plumbing, and defines the standardized field keys (component, cave id,
// session step, correlation id) so every part of the pipeline emits log lines
// with the same shape. A no-op logger is provided for tests and wiring code
// that cannot fail.
//
// Prefer these constructors over hand-rolled slog setup.
package logging
