package oled

import (
	"image"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"periph.io/x/devices/v3/ssd1306/image1bit"

	"periphd/internal/display"
)

var textFace = basicfont.Face7x13

// DrawText renders a single line with its top-left, top-center, or
// top-right pinned at x, y depending on align. Inverted text punches
// off-pixels into a filled shape underneath.
func (d *Device) DrawText(text string, x, y int, align display.Align, inverted bool) {
	width := font.MeasureString(textFace, text).Ceil()
	switch align {
	case display.AlignCenter:
		x -= width / 2
	case display.AlignRight:
		x -= width
	}
	ink := image1bit.On
	if inverted {
		ink = image1bit.Off
	}
	drawer := font.Drawer{
		Dst:  d.frame,
		Src:  &image.Uniform{C: ink},
		Face: textFace,
		Dot:  fixed.P(x, y+textFace.Ascent),
	}
	drawer.DrawString(text)
}

func (d *Device) DrawRect(r display.Rect, fill bool) {
	if fill {
		for y := r.Y; y < r.Y+r.H; y++ {
			for x := r.X; x < r.X+r.W; x++ {
				d.set(x, y)
			}
		}
		return
	}
	for x := r.X; x < r.X+r.W; x++ {
		d.set(x, r.Y)
		d.set(x, r.Y+r.H-1)
	}
	for y := r.Y; y < r.Y+r.H; y++ {
		d.set(r.X, y)
		d.set(r.X+r.W-1, y)
	}
}

// DrawRoundedRect insets each row by the corner circle so the badge
// corners read as rounded even at panel resolution.
func (d *Device) DrawRoundedRect(r display.Rect, radius int, fill bool) {
	if radius <= 0 {
		d.DrawRect(r, fill)
		return
	}
	maxRadius := r.H / 2
	if r.W/2 < maxRadius {
		maxRadius = r.W / 2
	}
	if radius > maxRadius {
		radius = maxRadius
	}
	for y := 0; y < r.H; y++ {
		inset := 0
		if y < radius {
			inset = radius - int(math.Round(math.Sqrt(float64(2*radius*y-y*y))))
		} else if y >= r.H-radius {
			yy := r.H - 1 - y
			inset = radius - int(math.Round(math.Sqrt(float64(2*radius*yy-yy*yy))))
		}
		if fill {
			for x := r.X + inset; x < r.X+r.W-inset; x++ {
				d.set(x, r.Y+y)
			}
			continue
		}
		d.set(r.X+inset, r.Y+y)
		d.set(r.X+r.W-1-inset, r.Y+y)
		if y == 0 || y == r.H-1 {
			for x := r.X + inset; x < r.X+r.W-inset; x++ {
				d.set(x, r.Y+y)
			}
		}
	}
}

// DrawBarH draws an outlined gauge filled from the left to fraction.
func (d *Device) DrawBarH(r display.Rect, fraction float64) {
	if fraction < 0 {
		fraction = 0
	}
	if fraction > 1 {
		fraction = 1
	}
	d.DrawRect(r, false)
	filled := int(math.Round(float64(r.W-2) * fraction))
	for y := r.Y + 1; y < r.Y+r.H-1; y++ {
		for x := r.X + 1; x < r.X+1+filled; x++ {
			d.set(x, y)
		}
	}
}

// DrawPieSlice fills the arc from startDeg to endDeg, measured clockwise
// with -90 pointing up.
func (d *Device) DrawPieSlice(cx, cy, radius int, startDeg, endDeg float64) {
	span := endDeg - startDeg
	if span <= 0 {
		return
	}
	if span > 360 {
		span = 360
	}
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			if dx*dx+dy*dy > radius*radius {
				continue
			}
			angle := math.Atan2(float64(dy), float64(dx)) * 180 / math.Pi
			rel := math.Mod(angle-startDeg+720, 360)
			if rel <= span {
				d.set(cx+dx, cy+dy)
			}
		}
	}
}

func (d *Device) set(x, y int) {
	if x < 0 || x >= panelWidth || y < 0 || y >= panelHeight {
		return
	}
	d.frame.SetBit(x, y, image1bit.On)
}
