package config

import (
	"errors"
	"fmt"
	"strings"
)

// Partial carries a live configuration update. Nil fields are not touched;
// each present field is validated independently so one bad value never
// blocks the rest of the update.
type Partial struct {
	TemperatureUnit *string  `json:"temperature_unit,omitempty"`
	OLEDRotation    *int     `json:"oled_rotation,omitempty"`
	OLEDEnable      *bool    `json:"oled_enable,omitempty"`
	OLEDBrightness  *int     `json:"oled_brightness,omitempty"`
	Interval        *float64 `json:"interval,omitempty"`

	// Pass-through blocks for the lighting and fan sub-components.
	RGB *RGBPartial `json:"rgb,omitempty"`
	Fan *FanPartial `json:"fan,omitempty"`
}

// RGBPartial is the lighting pass-through block.
type RGBPartial struct {
	Enabled    *bool   `json:"enabled,omitempty"`
	Color      *string `json:"color,omitempty"`
	Brightness *int    `json:"brightness,omitempty"`
	Style      *string `json:"style,omitempty"`
	Speed      *int    `json:"speed,omitempty"`
}

// FanPartial is the fan pass-through block.
type FanPartial struct {
	OnTempC  *float64 `json:"on_temp_c,omitempty"`
	OffTempC *float64 `json:"off_temp_c,omitempty"`
}

// Empty reports whether the partial carries no fields at all.
func (p Partial) Empty() bool {
	return p.TemperatureUnit == nil && p.OLEDRotation == nil && p.OLEDEnable == nil &&
		p.OLEDBrightness == nil && p.Interval == nil && p.RGB == nil && p.Fan == nil
}

// ValidateTemperatureUnit accepts "C" or "F".
func ValidateTemperatureUnit(unit string) error {
	switch strings.ToUpper(strings.TrimSpace(unit)) {
	case "C", "F":
		return nil
	}
	return fmt.Errorf("invalid temperature unit %q (want C or F)", unit)
}

// ValidateRotation accepts the orientations the panel supports.
func ValidateRotation(rotation int) error {
	switch rotation {
	case 0, 180:
		return nil
	}
	return fmt.Errorf("invalid rotation %d (want 0 or 180)", rotation)
}

// ValidateBrightness accepts a 0-100 percentage.
func ValidateBrightness(brightness int) error {
	if brightness < 0 || brightness > 100 {
		return fmt.Errorf("invalid brightness %d (want 0-100)", brightness)
	}
	return nil
}

// ValidateInterval accepts a positive number of seconds.
func ValidateInterval(seconds float64) error {
	if seconds <= 0 {
		return errors.New("interval must be a positive number of seconds")
	}
	return nil
}

// ValidateRGBStyle accepts the lighting animation styles.
func ValidateRGBStyle(style string) error {
	switch strings.ToLower(strings.TrimSpace(style)) {
	case "solid", "breathe", "rainbow":
		return nil
	}
	return fmt.Errorf("invalid rgb style %q (want solid, breathe, or rainbow)", style)
}

// ValidateRGBColor accepts a #rrggbb hex color.
func ValidateRGBColor(color string) error {
	trimmed := strings.TrimSpace(color)
	if len(trimmed) != 7 || trimmed[0] != '#' {
		return fmt.Errorf("invalid rgb color %q (want #rrggbb)", color)
	}
	for _, r := range trimmed[1:] {
		switch {
		case r >= '0' && r <= '9', r >= 'a' && r <= 'f', r >= 'A' && r <= 'F':
		default:
			return fmt.Errorf("invalid rgb color %q (want #rrggbb)", color)
		}
	}
	return nil
}
