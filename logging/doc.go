// Package logging builds the structured slog loggers used across the module.
// Output is JSON by default; the text format is meant for interactive use such as the configctl CLI.
package logging
