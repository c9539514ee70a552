// Package display renders the OLED status pages. The Pager owns the page
// rotation, the quiet-window blanking rule, and the per-page refresh
// cadences; the Driver interface isolates it from the panel hardware.
package display
