// Package logging builds slog loggers with the project's console and JSON
// output formats and provides typed attribute helpers.
package logging
