// Package main hosts the periphctl CLI entrypoint and command graph.
//
// The Cobra-based command tree translates terminal invocations into IPC
// calls against the periphd daemon: lifecycle control, status and service
// health views, journal queries, live configuration updates, and
// configuration scaffolding. It centralizes configuration resolution and
// socket discovery so subcommands can focus on output formatting.
package main
