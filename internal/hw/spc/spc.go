package spc

import (
	"fmt"

	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"

	"periphd/internal/power"
)

// Register offsets in the supervisor data block.
const (
	regFeatures           = 0x00
	regShutdownRequest    = 0x01
	regExternalInput      = 0x02
	regBatteryPercent     = 0x03
	regShutdownBatteryPct = 0x04
)

// Feature bits in regFeatures.
const (
	featureExternalInput = 1 << 0
	featureBattery       = 1 << 1
)

// Device reads the power supervisor MCU registers over I2C and implements
// the supervisor contract for the power monitor.
type Device struct {
	bus      i2c.BusCloser
	dev      *i2c.Dev
	features byte
}

// Open probes the supervisor at addr on the named bus and reads its
// feature register once. A probe failure closes the bus and errors out so
// the capability stays inactive.
func Open(busName string, addr uint16) (*Device, error) {
	bus, err := i2creg.Open(busName)
	if err != nil {
		return nil, fmt.Errorf("open i2c bus %q: %w", busName, err)
	}
	d := &Device{bus: bus, dev: &i2c.Dev{Bus: bus, Addr: addr}}
	features, err := d.readReg(regFeatures)
	if err != nil {
		bus.Close()
		return nil, fmt.Errorf("probe power supervisor at 0x%02x: %w", addr, err)
	}
	d.features = features
	return d, nil
}

func (d *Device) readReg(reg byte) (byte, error) {
	var buf [1]byte
	if err := d.dev.Tx([]byte{reg}, buf[:]); err != nil {
		return 0, err
	}
	return buf[0], nil
}

func (d *Device) IsReady() bool {
	return d != nil && d.dev != nil
}

func (d *Device) HasFeature(feature string) bool {
	switch feature {
	case power.FeatureExternalInput:
		return d.features&featureExternalInput != 0
	case power.FeatureBattery:
		return d.features&featureBattery != 0
	}
	return false
}

// ReadShutdownRequest reads the latched request code. Unknown codes map to
// none so firmware additions cannot shut the board down by accident.
func (d *Device) ReadShutdownRequest() (power.Request, error) {
	raw, err := d.readReg(regShutdownRequest)
	if err != nil {
		return power.RequestNone, fmt.Errorf("read shutdown request: %w", err)
	}
	switch power.Request(raw) {
	case power.RequestButton, power.RequestLowPower:
		return power.Request(raw), nil
	}
	return power.RequestNone, nil
}

func (d *Device) ReadIsPluggedIn() (bool, error) {
	raw, err := d.readReg(regExternalInput)
	if err != nil {
		return false, fmt.Errorf("read external input: %w", err)
	}
	return raw != 0, nil
}

func (d *Device) ReadBatteryPercent() (float64, error) {
	raw, err := d.readReg(regBatteryPercent)
	if err != nil {
		return 0, fmt.Errorf("read battery percent: %w", err)
	}
	if raw > 100 {
		raw = 100
	}
	return float64(raw), nil
}

func (d *Device) ReadShutdownBatteryPercent() (int, error) {
	raw, err := d.readReg(regShutdownBatteryPct)
	if err != nil {
		return 0, fmt.Errorf("read shutdown battery percent: %w", err)
	}
	return int(raw), nil
}

// Close releases the bus.
func (d *Device) Close() error {
	return d.bus.Close()
}
