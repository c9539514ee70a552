package oled

import (
	"fmt"
	"image"

	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/devices/v3/ssd1306"
	"periph.io/x/devices/v3/ssd1306/image1bit"

	"periphd/internal/display"
)

const (
	panelWidth  = 128
	panelHeight = 64
)

// Device drives an SSD1306 panel over I2C and implements the display
// driver contract. Draw calls render into an off-screen 1-bit frame;
// Display pushes the frame, flipped when a 180 degree rotation is set.
type Device struct {
	bus     i2c.BusCloser
	dev     *ssd1306.Dev
	frame   *image1bit.VerticalLSB
	rotated bool
}

// Open probes the named I2C bus for the panel, or the first registered
// bus when name is empty.
func Open(busName string, rotation int) (*Device, error) {
	bus, err := i2creg.Open(busName)
	if err != nil {
		return nil, fmt.Errorf("open i2c bus %q: %w", busName, err)
	}
	dev, err := ssd1306.NewI2C(bus, &ssd1306.Opts{W: panelWidth, H: panelHeight})
	if err != nil {
		bus.Close()
		return nil, fmt.Errorf("initialize ssd1306: %w", err)
	}
	d := &Device{
		bus:     bus,
		dev:     dev,
		frame:   image1bit.NewVerticalLSB(image.Rect(0, 0, panelWidth, panelHeight)),
		rotated: rotation == 180,
	}
	return d, nil
}

func (d *Device) IsReady() bool {
	return d != nil && d.dev != nil
}

func (d *Device) Bounds() display.Rect {
	return display.Rect{W: panelWidth, H: panelHeight}
}

func (d *Device) Clear() {
	d.frame = image1bit.NewVerticalLSB(image.Rect(0, 0, panelWidth, panelHeight))
}

func (d *Device) Display() error {
	frame := d.frame
	if d.rotated {
		frame = flip(frame)
	}
	if err := d.dev.Draw(d.dev.Bounds(), frame, image.Point{}); err != nil {
		return fmt.Errorf("push frame: %w", err)
	}
	return nil
}

func (d *Device) Off() error {
	if err := d.dev.Halt(); err != nil {
		return fmt.Errorf("sleep panel: %w", err)
	}
	return nil
}

func (d *Device) SetContrastPercent(percent int) error {
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	if err := d.dev.SetContrast(byte(percent * 255 / 100)); err != nil {
		return fmt.Errorf("set contrast: %w", err)
	}
	return nil
}

func (d *Device) SetRotation(degrees int) error {
	switch degrees {
	case 0:
		d.rotated = false
	case 180:
		d.rotated = true
	default:
		return fmt.Errorf("unsupported rotation %d", degrees)
	}
	return nil
}

// Close blanks the panel and releases the bus.
func (d *Device) Close() error {
	haltErr := d.dev.Halt()
	if err := d.bus.Close(); err != nil {
		return err
	}
	return haltErr
}

func flip(src *image1bit.VerticalLSB) *image1bit.VerticalLSB {
	dst := image1bit.NewVerticalLSB(src.Bounds())
	for y := 0; y < panelHeight; y++ {
		for x := 0; x < panelWidth; x++ {
			dst.SetBit(panelWidth-1-x, panelHeight-1-y, src.BitAt(x, y))
		}
	}
	return dst
}
