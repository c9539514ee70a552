package rgb

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Color is an 8-bit-per-channel LED color.
type Color struct {
	R, G, B uint8
}

// ParseColor parses a #rrggbb hex color.
func ParseColor(s string) (Color, error) {
	trimmed := strings.TrimSpace(s)
	if len(trimmed) != 7 || trimmed[0] != '#' {
		return Color{}, fmt.Errorf("invalid color %q (want #rrggbb)", s)
	}
	value, err := strconv.ParseUint(trimmed[1:], 16, 24)
	if err != nil {
		return Color{}, fmt.Errorf("invalid color %q (want #rrggbb)", s)
	}
	return Color{
		R: uint8(value >> 16),
		G: uint8(value >> 8),
		B: uint8(value),
	}, nil
}

// Scale dims the color by a 0-1 factor.
func (c Color) Scale(factor float64) Color {
	if factor < 0 {
		factor = 0
	}
	if factor > 1 {
		factor = 1
	}
	return Color{
		R: uint8(math.Round(float64(c.R) * factor)),
		G: uint8(math.Round(float64(c.G) * factor)),
		B: uint8(math.Round(float64(c.B) * factor)),
	}
}

// hueColor maps a 0-360 hue onto the RGB wheel at full saturation.
func hueColor(hue float64) Color {
	hue = math.Mod(hue, 360)
	if hue < 0 {
		hue += 360
	}
	segment := hue / 60
	ramp := uint8(math.Round(255 * (segment - math.Floor(segment))))
	switch int(segment) {
	case 0:
		return Color{R: 255, G: ramp}
	case 1:
		return Color{R: 255 - ramp, G: 255}
	case 2:
		return Color{G: 255, B: ramp}
	case 3:
		return Color{G: 255 - ramp, B: 255}
	case 4:
		return Color{R: ramp, B: 255}
	default:
		return Color{R: 255, B: 255 - ramp}
	}
}
