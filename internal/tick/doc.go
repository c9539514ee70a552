// Package tick provides the timer gate primitive shared by every
// periodically-timed behavior in the daemon (page switching, service
// rechecks, IP rotation).
package tick
