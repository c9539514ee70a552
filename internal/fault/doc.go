// Package fault defines the shared error markers used at the boundaries to
// external collaborators (container runtime, init system, hardware buses).
//
// Fallible operations return wrapped errors tagged with a sentinel; the tick
// loop is the single log-and-continue point, so a failure in one peripheral
// never propagates into a sibling or crashes the daemon.
package fault
