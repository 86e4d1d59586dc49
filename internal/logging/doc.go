// Package logging assembles the structured slog loggers used across camsort.
//
// It owns the console and JSON handlers, centralizes level plumbing, and
// exposes attr aliases plus standardized field-name constants so every
// component tags log lines the same way. A no-op logger is provided for tests
// and wiring code that cannot fail.
package logging
