// Package spc adapts the board's power supervisor MCU, read over I2C, to
// the power monitor's supervisor contract.
package spc
