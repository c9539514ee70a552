// Package sysinfo reads the host metrics shown on the system-stats page:
// CPU temperature and utilization, memory, disk, and active IP addresses.
//
// All reads are synchronous and fast; a missing sensor yields a zero value
// rather than an error so partially-instrumented boards still render.
package sysinfo
