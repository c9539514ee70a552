// Package metrics exposes the daemon's observability surface as a Recorder
// interface with a Prometheus implementation and a zero-cost Noop default.
//
// Components receive a Recorder by injection; nothing registers against a
// global registry.
package metrics
