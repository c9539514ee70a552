// Package history journals daemon events, service transitions, power
// changes, and shutdown triggers, in a SQLite database capped at a
// configured row count.
package history
