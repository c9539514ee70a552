// Package rgb animates a WS2812 LED chain over SPI.
package rgb
