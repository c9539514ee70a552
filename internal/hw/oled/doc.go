// Package oled drives an SSD1306 panel over I2C and renders the display
// primitives into its 1-bit frame buffer.
package oled
