// Package power watches the board's power supervisor for latched shutdown
// requests and low-battery conditions and drives the system shutdown when
// one qualifies.
package power
