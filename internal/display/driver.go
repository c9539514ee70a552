package display

// Align positions text relative to its x coordinate.
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

// Rect is a pixel rectangle in panel coordinates.
type Rect struct {
	X, Y, W, H int
}

// Driver abstracts the monochrome panel. Draw calls accumulate into an
// off-screen frame; Display pushes the frame to the hardware.
type Driver interface {
	// IsReady reports whether the panel was detected and initialized.
	IsReady() bool

	// Bounds returns the panel dimensions.
	Bounds() Rect

	// Clear resets the frame to all-black.
	Clear()

	// Display pushes the current frame to the panel.
	Display() error

	// Off puts the panel to sleep. Display wakes it again.
	Off() error

	// SetContrastPercent maps 0-100 onto the panel contrast register.
	SetContrastPercent(percent int) error

	// SetRotation accepts 0 or 180 degrees.
	SetRotation(degrees int) error

	// DrawText renders a single line. Inverted text draws in the off
	// color, for labels sitting on a filled shape.
	DrawText(text string, x, y int, align Align, inverted bool)
	DrawRect(r Rect, fill bool)
	DrawRoundedRect(r Rect, radius int, fill bool)
	DrawBarH(r Rect, fraction float64)
	DrawPieSlice(cx, cy, radius int, startDeg, endDeg float64)
}
