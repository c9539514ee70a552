// Package fan switches a GPIO-driven cooling fan with temperature
// hysteresis.
package fan
