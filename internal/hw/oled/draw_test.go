package oled

import (
	"image"
	"testing"

	"periph.io/x/devices/v3/ssd1306/image1bit"

	"periphd/internal/display"
)

func newTestDevice() *Device {
	return &Device{
		frame: image1bit.NewVerticalLSB(image.Rect(0, 0, panelWidth, panelHeight)),
	}
}

func countLit(d *Device) int {
	lit := 0
	for y := 0; y < panelHeight; y++ {
		for x := 0; x < panelWidth; x++ {
			if d.frame.BitAt(x, y) == image1bit.On {
				lit++
			}
		}
	}
	return lit
}

func TestDrawRectFill(t *testing.T) {
	d := newTestDevice()
	d.DrawRect(display.Rect{X: 2, Y: 3, W: 10, H: 4}, true)
	if got := countLit(d); got != 40 {
		t.Fatalf("lit pixels = %d, want 40", got)
	}
}

func TestDrawBarHFraction(t *testing.T) {
	d := newTestDevice()
	r := display.Rect{X: 0, Y: 0, W: 42, H: 5}
	d.DrawBarH(r, 0.5)

	// Interior rows are half filled from the left edge.
	if d.frame.BitAt(2, 2) != image1bit.On {
		t.Fatal("left interior pixel unlit")
	}
	if d.frame.BitAt(r.W-3, 2) != image1bit.Off {
		t.Fatal("right interior pixel lit at half fill")
	}
}

func TestDrawTextClipsAtEdges(t *testing.T) {
	d := newTestDevice()
	d.DrawText("IP", panelWidth-2, 52, display.AlignRight, false)
	if countLit(d) == 0 {
		t.Fatal("right-aligned text drew nothing")
	}
}

func TestDrawPieSliceQuarter(t *testing.T) {
	d := newTestDevice()
	full := newTestDevice()
	d.DrawPieSlice(32, 32, 10, -90, 0)
	full.DrawPieSlice(32, 32, 10, -90, 270)

	quarter := countLit(d)
	disc := countLit(full)
	if quarter == 0 || disc == 0 {
		t.Fatal("pie slices drew nothing")
	}
	if quarter >= disc {
		t.Fatalf("quarter slice (%d px) not smaller than full disc (%d px)", quarter, disc)
	}
}

func TestClearResetsFrame(t *testing.T) {
	d := newTestDevice()
	d.DrawRect(display.Rect{X: 0, Y: 0, W: 8, H: 8}, true)
	d.Clear()
	if got := countLit(d); got != 0 {
		t.Fatalf("lit pixels after clear = %d", got)
	}
}

func TestDrawTextInvertedPunchesFilledBadge(t *testing.T) {
	d := newTestDevice()
	badge := display.Rect{X: 94, Y: 15, W: 32, H: 11}
	d.DrawRoundedRect(badge, 3, true)

	filled := countLit(d)
	d.DrawText("OK", badge.X+badge.W/2, badge.Y+1, display.AlignCenter, true)
	if got := countLit(d); got >= filled {
		t.Fatalf("lit pixels = %d after inverted text, want fewer than %d", got, filled)
	}
}
