// Package logging builds the slog loggers used across the daemon and defines
// the shared attribute helpers and field-name constants.
//
// Loggers are injected explicitly: every component receives its handle at
// construction (usually via NewComponentLogger) and nothing reads a global.
package logging
