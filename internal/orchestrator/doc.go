// Package orchestrator owns the daemon's periodic tick loop and the
// lifecycle of the active peripheral sub-components.
package orchestrator
