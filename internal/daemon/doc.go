// Package daemon ties the orchestrator to its surrounding services: the
// single-instance lock, the event journal, push notifications, the metrics
// endpoint, and bus hotplug diagnostics.
package daemon
