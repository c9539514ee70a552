package ipc

import (
	"periphd/internal/config"
	"periphd/internal/daemon"
	"periphd/internal/history"
)

// StartRequest triggers orchestrator startup.
type StartRequest struct{}

// StartResponse indicates whether the daemon was started.
type StartResponse struct {
	Started bool   `json:"started"`
	Message string `json:"message"`
}

// StopRequest stops the orchestrator.
type StopRequest struct{}

// StopResponse indicates stop result.
type StopResponse struct {
	Stopped bool `json:"stopped"`
}

// StatusRequest fetches daemon status.
type StatusRequest struct{}

// StatusResponse carries the combined daemon and orchestrator status.
type StatusResponse struct {
	Status daemon.Status `json:"status"`
}

// ConfigUpdateRequest applies a live configuration update.
type ConfigUpdateRequest struct {
	Partial config.Partial `json:"partial"`
}

// ConfigUpdateResponse reports the update outcome. Message carries the
// joined per-field errors when Applied is false.
type ConfigUpdateResponse struct {
	Applied bool   `json:"applied"`
	Message string `json:"message"`
}

// Event mirrors a journal row for IPC callers.
type Event = history.Event

// EventsRequest fetches recent journal entries, optionally filtered by
// kind.
type EventsRequest struct {
	Kind  string `json:"kind"`
	Limit int    `json:"limit"`
}

// EventsResponse contains journal entries, newest first.
type EventsResponse struct {
	Events []Event `json:"events"`
}

// TestNotificationRequest triggers a notification test.
type TestNotificationRequest struct{}

// TestNotificationResponse reports notification test outcome.
type TestNotificationResponse struct {
	Sent    bool   `json:"sent"`
	Message string `json:"message"`
}
