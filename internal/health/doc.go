// Package health probes the services the daemon watches, over the Docker
// Engine API for containers and systemctl for init units, and caches the
// last known state of each for display and shutdown decisions.
package health
