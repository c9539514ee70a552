// Package notifications delivers daemon events via ntfy push messages.
//
// The default implementation publishes to the topic configured in
// config.toml and gracefully degrades to a no-op when no topic is set.
// Per-event toggles let a deployment keep shutdown alerts while silencing
// routine health transitions.
package notifications
