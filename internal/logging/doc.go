// Package logging assembles structured slog loggers and formatting helpers used
// across filesort.
//
// It owns the configurable console/JSON handlers, centralizes level and output
// plumbing, and exposes helpers so organizer code can tag log lines with the
// run identifier, the file being processed, and the category it was routed
// to. The package also provides a no-op logger for tests and wiring code that
// cannot fail.
//
// Prefer these constructors over hand-rolled slog setup so every component
// emits data with the same shape.
package logging
